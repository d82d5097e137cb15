package render

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Company profile fallbacks, used when a settings field is blank.
const (
	fallbackCompanyName    = "Nama Perusahaan Anda"
	fallbackCompanyAddress = "Alamat Perusahaan\nKota, Kode Pos"
	fallbackCompanyPhone   = "+62 xxx-xxxx-xxxx"
	fallbackCompanyEmail   = "email@perusahaan.com"
)

// Input is everything needed to render one invoice.
type Input struct {
	Template string
	Company  CompanyInfo
	Invoice  InvoiceInfo
	Customer CustomerInfo
	Items    []ItemInfo
}

type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
	NPWP    string
}

type InvoiceInfo struct {
	Number    string
	IssueDate time.Time
	DueDate   time.Time
	Status    string
	Subtotal  decimal.Decimal
	TaxRate   decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
	Notes     string
}

type CustomerInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

type ItemInfo struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// BlockKind identifies a section of the document.
type BlockKind int

const (
	BlockCompany BlockKind = iota
	BlockMetadata
	BlockBillTo
	BlockItems
	BlockTotals
	BlockNotes
	BlockFooter
)

func (k BlockKind) String() string {
	return [...]string{"company", "metadata", "bill_to", "items", "totals", "notes", "footer"}[k]
}

// Pair is a label/value row.
type Pair struct {
	Label string
	Value string
}

// Block is one section. Which fields are set depends on Kind.
type Block struct {
	Kind   BlockKind
	Title  string
	Lines  []string
	Pairs  []Pair
	Header []string
	Rows   [][]string
}

// Document is the layout-independent content of a rendered invoice.
type Document struct {
	Style  Style
	Blocks []Block
}

// Kinds returns the block kinds in document order.
func (d Document) Kinds() []BlockKind {
	kinds := make([]BlockKind, len(d.Blocks))
	for i, b := range d.Blocks {
		kinds[i] = b.Kind
	}
	return kinds
}

// Block returns the first block of kind k.
func (d Document) Block(k BlockKind) (Block, bool) {
	for _, b := range d.Blocks {
		if b.Kind == k {
			return b, true
		}
	}
	return Block{}, false
}

// BuildDocument lays out the content of in. The block order is fixed:
// company, metadata, bill-to, items, totals, then optional notes and footer.
// The template only affects Style, never the values.
func BuildDocument(in Input) Document {
	style := ResolveStyle(in.Template)
	doc := Document{Style: style}

	doc.Blocks = append(doc.Blocks,
		companyBlock(in.Company, style.AddressLimit),
		Block{
			Kind:  BlockMetadata,
			Title: style.Title,
			Pairs: []Pair{
				{"Invoice Number:", in.Invoice.Number},
				{"Issue Date:", FormatDate(in.Invoice.IssueDate)},
				{"Due Date:", FormatDate(in.Invoice.DueDate)},
				{"Status:", in.Invoice.Status},
			},
		},
		billToBlock(in.Customer),
		itemsBlock(in.Items),
		Block{
			Kind: BlockTotals,
			Pairs: []Pair{
				{"Subtotal:", FormatCurrency(in.Invoice.Subtotal)},
				{"Tax (" + FormatPercent(in.Invoice.TaxRate) + "%):", FormatCurrency(in.Invoice.TaxAmount)},
				{"TOTAL:", FormatCurrency(in.Invoice.Total)},
			},
		},
	)

	if notes := strings.TrimSpace(in.Invoice.Notes); notes != "" {
		doc.Blocks = append(doc.Blocks, Block{Kind: BlockNotes, Title: "Notes:", Lines: splitLines(notes)})
	}
	if style.Footer != "" {
		doc.Blocks = append(doc.Blocks, Block{Kind: BlockFooter, Lines: []string{style.Footer}})
	}
	return doc
}

func companyBlock(c CompanyInfo, addressLimit int) Block {
	name := orDefault(c.Name, fallbackCompanyName)
	address := orDefault(c.Address, fallbackCompanyAddress)
	if addressLimit > 0 {
		address = truncate(strings.ReplaceAll(address, "\n", ", "), addressLimit)
	}

	lines := splitLines(address)
	lines = append(lines, orDefault(c.Phone, fallbackCompanyPhone), orDefault(c.Email, fallbackCompanyEmail))
	if w := strings.TrimSpace(c.Website); w != "" {
		lines = append(lines, w)
	}
	if n := strings.TrimSpace(c.NPWP); n != "" {
		lines = append(lines, "NPWP: "+n)
	}
	return Block{Kind: BlockCompany, Title: name, Lines: lines}
}

func billToBlock(c CustomerInfo) Block {
	lines := []string{c.Name}
	lines = append(lines, splitLines(c.Address)...)
	for _, v := range []string{c.Phone, c.Email} {
		if strings.TrimSpace(v) != "" {
			lines = append(lines, v)
		}
	}
	return Block{Kind: BlockBillTo, Title: "Bill To:", Lines: lines}
}

func itemsBlock(items []ItemInfo) Block {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Name,
			strconv.Itoa(it.Quantity),
			FormatCurrency(it.UnitPrice),
			FormatCurrency(it.Total),
		})
	}
	return Block{Kind: BlockItems, Header: []string{"Item", "Qty", "Unit Price", "Total"}, Rows: rows}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
