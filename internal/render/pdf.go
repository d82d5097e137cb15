package render

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

// Page geometry in millimetres: A4 with half-inch top/bottom and one-inch side margins.
const (
	pageHeight   = 297.0
	marginSide   = 25.4
	marginTop    = 12.7
	marginBottom = 12.7
	footerSpace  = 6.0
	contentWidth = 210.0 - 2*marginSide
	lineHeight   = 5.5
)

// itemColumns splits the content width 3 : 1 : 1.5 : 1.5.
var itemColumns = []float64{contentWidth * 3 / 7, contentWidth / 7, contentWidth * 1.5 / 7, contentWidth * 1.5 / 7}

// Renderer turns an invoice into a printable document.
type Renderer interface {
	Render(in Input) ([]byte, error)
}

// PDFRenderer draws documents with gofpdf.
type PDFRenderer struct {
	// Compress enables stream compression. Disabled only to inspect output.
	Compress bool
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Compress: true}
}

// Render builds the document for in and returns the PDF bytes.
func (r *PDFRenderer) Render(in Input) ([]byte, error) {
	return r.write(BuildDocument(in))
}

func (r *PDFRenderer) write(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.Compress)
	pdf.SetMargins(marginSide, marginTop, marginSide)
	pdf.SetAutoPageBreak(true, marginBottom+footerSpace)
	pdf.AliasNbPages("")
	pdf.SetTitle(doc.titleText(), true)

	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), style: doc.Style}
	pdf.SetFooterFunc(w.pageFooter)
	pdf.AddPage()

	for _, b := range doc.Blocks {
		switch b.Kind {
		case BlockCompany:
			w.company(b)
		case BlockMetadata:
			w.metadata(b)
		case BlockBillTo:
			w.billTo(b)
		case BlockItems:
			w.items(b)
		case BlockTotals:
			w.totals(b)
		case BlockNotes:
			w.notes(b)
		case BlockFooter:
			w.footer(b)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to draw pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (d Document) titleText() string {
	if meta, ok := d.Block(BlockMetadata); ok && len(meta.Pairs) > 0 {
		return "Invoice " + meta.Pairs[0].Value
	}
	return "Invoice"
}

type pdfWriter struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	style Style
}

func (w *pdfWriter) text(c RGB) { w.pdf.SetTextColor(c.R, c.G, c.B) }
func (w *pdfWriter) fill(c RGB) { w.pdf.SetFillColor(c.R, c.G, c.B) }
func (w *pdfWriter) draw(c RGB) { w.pdf.SetDrawColor(c.R, c.G, c.B) }

func (w *pdfWriter) font(style string, size float64) {
	w.pdf.SetFont("Helvetica", style, size)
}

func (w *pdfWriter) cell(width, height float64, s, border, align string, fill bool) {
	w.pdf.CellFormat(width, height, w.tr(s), border, 0, align, fill, 0, "")
}

func (w *pdfWriter) line(width float64, s, align string) {
	w.pdf.CellFormat(width, lineHeight, w.tr(s), "", 1, align, false, 0, "")
}

// ensureSpace starts a new page when h millimetres do not fit on the current one.
func (w *pdfWriter) ensureSpace(h float64) bool {
	if w.pdf.GetY()+h > pageHeight-marginBottom-footerSpace {
		w.pdf.AddPage()
		return true
	}
	return false
}

func (w *pdfWriter) company(b Block) {
	s := w.style
	switch s.Layout {
	case LayoutModern:
		w.font("B", s.CompanySize)
		w.text(s.CompanyColor)
		w.line(contentWidth, b.Title, "L")
		w.draw(s.AccentColor)
		w.pdf.SetLineWidth(1)
		y := w.pdf.GetY() + 1
		w.pdf.Line(marginSide, y, marginSide+contentWidth*6/7, y)
		w.pdf.Ln(4)
		w.font("", 10)
		w.text(black)
		for _, l := range b.Lines {
			w.line(contentWidth, l, "R")
		}
	case LayoutCreative:
		bar := contentWidth / 14
		h := s.CompanySize * 0.5
		w.fill(s.AccentColor)
		w.cell(bar, h, "", "", "C", true)
		w.fill(RGB{0xF8, 0xF9, 0xFA})
		w.font("B", s.CompanySize)
		w.text(s.CompanyColor)
		w.cell(contentWidth-2*bar, h, b.Title, "", "C", true)
		w.fill(s.AccentColor)
		w.cell(bar, h, "", "", "C", true)
		w.pdf.Ln(h + 2)
		w.fill(s.BoxFill)
		w.text(s.BoxText)
		w.font("B", 10)
		for _, l := range b.Lines {
			w.pdf.CellFormat(contentWidth, lineHeight, w.tr(l), "", 1, "C", true, 0, "")
		}
	default:
		w.font("B", s.CompanySize)
		w.text(s.CompanyColor)
		w.line(contentWidth, b.Title, "C")
		w.font("", 11)
		w.text(black)
		for _, l := range b.Lines {
			w.line(contentWidth, l, "C")
		}
	}
	w.pdf.Ln(6)
}

func (w *pdfWriter) metadata(b Block) {
	s := w.style
	align := "C"
	if s.Layout == LayoutModern {
		align = "L"
	}
	w.font("B", s.TitleSize)
	w.text(s.TitleColor)
	w.pdf.CellFormat(contentWidth, s.TitleSize*0.5, w.tr(b.Title), "", 1, align, false, 0, "")
	w.pdf.Ln(3)

	w.draw(s.GridColor)
	w.pdf.SetLineWidth(0.2)
	switch s.Layout {
	case LayoutModern:
		col := contentWidth / float64(len(b.Pairs))
		w.fill(s.SectionFill)
		w.text(s.SectionText)
		w.font("B", 9)
		for _, p := range b.Pairs {
			w.cell(col, 7, p.Label, "1", "C", true)
		}
		w.pdf.Ln(-1)
		w.font("", 10)
		w.text(black)
		for _, p := range b.Pairs {
			w.cell(col, 7, p.Value, "1", "C", false)
		}
		w.pdf.Ln(-1)
	case LayoutCreative:
		w.sectionBar("INVOICE INFO", s.SectionFill)
		w.pairs(b.Pairs, contentWidth*0.35)
	default:
		label, value := contentWidth*1.5/7, contentWidth*2/7
		w.text(black)
		for i, p := range b.Pairs {
			w.font("B", 10)
			w.cell(label, 7, p.Label, "", "L", false)
			w.font("", 10)
			w.cell(value, 7, p.Value, "", "L", false)
			if i%2 == 1 {
				w.pdf.Ln(-1)
			}
		}
		if len(b.Pairs)%2 == 1 {
			w.pdf.Ln(-1)
		}
	}
	w.pdf.Ln(6)
}

func (w *pdfWriter) sectionBar(title string, fill RGB) {
	w.fill(fill)
	w.text(w.style.SectionText)
	w.font("B", 11)
	w.pdf.CellFormat(contentWidth, 7, w.tr(title), "", 1, "L", true, 0, "")
}

func (w *pdfWriter) pairs(pairs []Pair, labelWidth float64) {
	w.text(black)
	for _, p := range pairs {
		w.font("B", 10)
		w.cell(labelWidth, 7, p.Label, "1", "L", false)
		w.font("", 10)
		w.pdf.CellFormat(contentWidth-labelWidth, 7, w.tr(p.Value), "1", 1, "L", false, 0, "")
	}
}

func (w *pdfWriter) billTo(b Block) {
	s := w.style
	w.ensureSpace(lineHeight * float64(len(b.Lines)+2))
	switch s.Layout {
	case LayoutCreative:
		w.sectionBar("CUSTOMER INFO", s.BillToFill)
		w.text(black)
		w.font("", 11)
	case LayoutModern:
		w.fill(s.BillToFill)
		w.text(s.SectionText)
		w.font("B", 12)
		w.pdf.CellFormat(contentWidth, 7, w.tr(b.Title), "", 1, "L", true, 0, "")
		w.text(black)
		w.font("", 11)
	default:
		w.font("B", 12)
		w.text(black)
		w.line(contentWidth, b.Title, "L")
		w.font("", 11)
	}
	for i, l := range b.Lines {
		if i == 0 {
			w.font("B", 11)
		} else {
			w.font("", 11)
		}
		w.line(contentWidth, l, "L")
	}
	w.pdf.Ln(6)
}

func (w *pdfWriter) tableHeader(header []string) {
	s := w.style
	w.fill(s.TableHeaderFill)
	w.text(s.TableHeaderText)
	w.draw(s.GridColor)
	w.pdf.SetLineWidth(s.GridWidth)
	w.font("B", 11)
	for i, h := range header {
		align := "C"
		if i == 0 {
			align = "L"
		}
		w.cell(itemColumns[i], 8, h, "1", align, true)
	}
	w.pdf.Ln(-1)
}

// items draws the line table. A row that does not fit moves to the next page
// and the header is repeated there.
func (w *pdfWriter) items(b Block) {
	w.ensureSpace(16)
	w.tableHeader(b.Header)

	for _, row := range b.Rows {
		w.font("", 10)
		name := w.tr(row[0])
		lines := w.pdf.SplitLines([]byte(name), itemColumns[0]-2)
		h := float64(len(lines)) * lineHeight
		if h < 7 {
			h = 7
		}
		if w.ensureSpace(h) {
			w.tableHeader(b.Header)
			w.font("", 10)
		}

		w.text(black)
		x, y := w.pdf.GetXY()
		offset := 0.0
		for _, cw := range itemColumns {
			w.pdf.Rect(x+offset, y, cw, h, "D")
			offset += cw
		}
		w.pdf.SetXY(x, y+(h-float64(len(lines))*lineHeight)/2)
		w.pdf.MultiCell(itemColumns[0], lineHeight, name, "", "L", false)
		w.pdf.SetXY(x+itemColumns[0], y)
		w.cell(itemColumns[1], h, row[1], "", "C", false)
		w.cell(itemColumns[2], h, row[2], "", "R", false)
		w.cell(itemColumns[3], h, row[3], "", "R", false)
		w.pdf.SetXY(x, y+h)
	}
}

// totals sits under the two right-hand columns; the last pair is the grand total.
func (w *pdfWriter) totals(b Block) {
	s := w.style
	w.ensureSpace(8 * float64(len(b.Pairs)))
	indent := itemColumns[0] + itemColumns[1]
	for i, p := range b.Pairs {
		last := i == len(b.Pairs)-1
		w.pdf.SetX(marginSide + indent)
		if last {
			w.fill(s.TotalFill)
			w.text(s.TotalText)
			w.font("B", 12)
		} else {
			w.text(black)
			w.font("", 10)
		}
		w.cell(itemColumns[2], 8, p.Label, "1", "R", last)
		w.pdf.CellFormat(itemColumns[3], 8, w.tr(p.Value), "1", 1, "R", last, 0, "")
	}
	w.pdf.Ln(8)
}

func (w *pdfWriter) notes(b Block) {
	w.ensureSpace(lineHeight * float64(len(b.Lines)+1))
	w.text(black)
	w.font("B", 10)
	w.line(contentWidth, b.Title, "L")
	w.font("", 10)
	for _, l := range b.Lines {
		w.pdf.MultiCell(contentWidth, lineHeight, w.tr(l), "", "L", false)
	}
	w.pdf.Ln(6)
}

func (w *pdfWriter) footer(b Block) {
	w.ensureSpace(lineHeight * float64(len(b.Lines)))
	w.text(grey)
	w.font("", 10)
	for _, l := range b.Lines {
		w.line(contentWidth, l, "C")
	}
}

func (w *pdfWriter) pageFooter() {
	w.pdf.SetY(-(marginBottom + 1))
	w.font("I", 8)
	w.text(grey)
	w.pdf.CellFormat(0, 5, fmt.Sprintf("Page %d/{nb}", w.pdf.PageNo()), "", 0, "C", false, 0, "")
}
