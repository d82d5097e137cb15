package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput(template string) Input {
	return Input{
		Template: template,
		Company: CompanyInfo{
			Name:    "Toko Maju Jaya",
			Address: "Jl. Merdeka No. 10\nBandung, 40111",
			Phone:   "+62 22 1234567",
			Email:   "halo@majujaya.id",
			Website: "majujaya.id",
			NPWP:    "01.234.567.8-901.000",
		},
		Invoice: InvoiceInfo{
			Number:    "INV-20261016-00001",
			IssueDate: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
			DueDate:   time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC),
			Status:    "Draft",
			Subtotal:  decimal.NewFromInt(200000),
			TaxRate:   decimal.RequireFromString("0.11"),
			TaxAmount: decimal.NewFromInt(22000),
			Total:     decimal.NewFromInt(222000),
			Notes:     "Pembayaran via transfer BCA",
		},
		Customer: CustomerInfo{
			Name:    "Budi Santoso",
			Address: "Jl. Asia Afrika 5",
			Phone:   "0812000111",
			Email:   "budi@example.com",
		},
		Items: []ItemInfo{
			{Name: "Widget", Quantity: 2, UnitPrice: decimal.NewFromInt(50000), Total: decimal.NewFromInt(100000)},
			{Name: "Gadget", Quantity: 1, UnitPrice: decimal.NewFromInt(100000), Total: decimal.NewFromInt(100000)},
		},
	}
}

func TestBuildDocumentBlockOrder(t *testing.T) {
	for _, key := range Keys() {
		doc := BuildDocument(sampleInput(string(key)))
		kinds := doc.Kinds()
		require.GreaterOrEqual(t, len(kinds), 6, key)
		assert.Equal(t, []BlockKind{BlockCompany, BlockMetadata, BlockBillTo, BlockItems, BlockTotals, BlockNotes}, kinds[:6], key)
	}
}

func TestBuildDocumentNumbersDoNotDependOnTemplate(t *testing.T) {
	base := BuildDocument(sampleInput("classic"))
	baseTotals, _ := base.Block(BlockTotals)
	baseItems, _ := base.Block(BlockItems)

	assert.Equal(t, []Pair{
		{"Subtotal:", "Rp 200,000"},
		{"Tax (11%):", "Rp 22,000"},
		{"TOTAL:", "Rp 222,000"},
	}, baseTotals.Pairs)
	assert.Equal(t, []string{"Widget", "2", "Rp 50,000", "Rp 100,000"}, baseItems.Rows[0])

	for _, key := range append(Keys(), "unknown") {
		doc := BuildDocument(sampleInput(string(key)))
		totals, _ := doc.Block(BlockTotals)
		items, _ := doc.Block(BlockItems)
		assert.Equal(t, baseTotals.Pairs, totals.Pairs, key)
		assert.Equal(t, baseItems.Rows, items.Rows, key)
	}
}

func TestBuildDocumentCompanyBlock(t *testing.T) {
	doc := BuildDocument(sampleInput("classic"))
	company, ok := doc.Block(BlockCompany)
	require.True(t, ok)
	assert.Equal(t, "Toko Maju Jaya", company.Title)
	assert.Equal(t, []string{
		"Jl. Merdeka No. 10", "Bandung, 40111", "+62 22 1234567", "halo@majujaya.id",
		"majujaya.id", "NPWP: 01.234.567.8-901.000",
	}, company.Lines)

	footer, ok := doc.Block(BlockFooter)
	require.True(t, ok)
	assert.Equal(t, []string{"Thank you for your business!"}, footer.Lines)
}

func TestBuildDocumentDefaultsAndOptionalBlocks(t *testing.T) {
	in := sampleInput("modern")
	in.Company = CompanyInfo{}
	in.Invoice.Notes = "  "

	doc := BuildDocument(in)
	company, _ := doc.Block(BlockCompany)
	assert.Equal(t, "Nama Perusahaan Anda", company.Title)
	assert.Equal(t, []string{"Alamat Perusahaan", "Kota, Kode Pos", "+62 xxx-xxxx-xxxx", "email@perusahaan.com"}, company.Lines)

	_, hasNotes := doc.Block(BlockNotes)
	assert.False(t, hasNotes)
	_, hasFooter := doc.Block(BlockFooter)
	assert.False(t, hasFooter, "only the classic layout prints a footer")
}

func TestBuildDocumentCreativeTruncatesAddress(t *testing.T) {
	in := sampleInput("food")
	in.Company.Address = "Jl. Panjang Sekali Nomor 123 Kelurahan Sukamaju"

	company, _ := BuildDocument(in).Block(BlockCompany)
	assert.Equal(t, "Jl. Panjang Sekali Nomor 123 K...", company.Lines[0])
}

func TestRenderProducesPDF(t *testing.T) {
	for _, key := range Keys() {
		out, err := NewPDFRenderer().Render(sampleInput(string(key)))
		require.NoError(t, err, key)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), key)
	}
}

func TestRenderDrawsBlocksInOrder(t *testing.T) {
	r := &PDFRenderer{Compress: false}
	out, err := r.Render(sampleInput("classic"))
	require.NoError(t, err)

	content := string(out)
	markers := []string{"Toko Maju Jaya", "INV-20261016-00001", "Budi Santoso", "Widget", "TOTAL:", "Notes:"}
	last := -1
	for _, m := range markers {
		idx := strings.Index(content, m)
		require.NotEqual(t, -1, idx, m)
		assert.Greater(t, idx, last, m)
		last = idx
	}
}

func TestRenderPaginatesLongInvoices(t *testing.T) {
	in := sampleInput("modern")
	in.Items = nil
	for i := 0; i < 80; i++ {
		in.Items = append(in.Items, ItemInfo{
			Name: fmt.Sprintf("Barang %02d", i), Quantity: 1,
			UnitPrice: decimal.NewFromInt(1000), Total: decimal.NewFromInt(1000),
		})
	}

	r := &PDFRenderer{Compress: false}
	out, err := r.Render(in)
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "Page 2/")
	assert.GreaterOrEqual(t, strings.Count(content, "Unit Price"), 2, "header repeats on the next page")
}
