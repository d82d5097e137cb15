package render

import "strings"

// TemplateKey names a visual preset. The set is closed; see Keys.
type TemplateKey string

const (
	Classic   TemplateKey = "classic"
	Modern    TemplateKey = "modern"
	Creative  TemplateKey = "creative"
	Corporate TemplateKey = "corporate"
	Tech      TemplateKey = "tech"
	Retail    TemplateKey = "retail"
	Food      TemplateKey = "food"
	Service   TemplateKey = "service"
)

// Layout is the drawing variant behind a template. Several keys share one.
type Layout int

const (
	LayoutClassic Layout = iota
	LayoutModern
	LayoutCreative
)

// RGB is a fill, draw or text color.
type RGB struct{ R, G, B int }

// Style is the full set of presentation parameters for one template key.
type Style struct {
	Key         TemplateKey
	DisplayName string
	Layout      Layout

	CompanyColor RGB
	CompanySize  float64
	AccentColor  RGB // modern rule, creative side bars
	BoxFill      RGB // creative company details box
	BoxText      RGB

	Title      string
	TitleColor RGB
	TitleSize  float64

	SectionFill RGB // metadata card / section bars
	SectionText RGB
	BillToFill  RGB

	TableHeaderFill RGB
	TableHeaderText RGB
	GridColor       RGB
	GridWidth       float64
	TotalFill       RGB
	TotalText       RGB

	Footer       string
	AddressLimit int // 0 means no truncation
}

var (
	black     = RGB{0, 0, 0}
	white     = RGB{255, 255, 255}
	grey      = RGB{128, 128, 128}
	lightGrey = RGB{211, 211, 211}
)

var classicStyle = Style{
	Key:             Classic,
	DisplayName:     "Template Klasik Profesional",
	Layout:          LayoutClassic,
	CompanyColor:    RGB{0, 0, 139},
	CompanySize:     28,
	Title:           "INVOICE",
	TitleColor:      RGB{139, 0, 0},
	TitleSize:       24,
	SectionFill:     RGB{240, 240, 240},
	SectionText:     black,
	BillToFill:      white,
	TableHeaderFill: grey,
	TableHeaderText: RGB{245, 245, 245},
	GridColor:       black,
	GridWidth:       0.3,
	TotalFill:       lightGrey,
	TotalText:       black,
	Footer:          "Thank you for your business!",
}

var modernStyle = Style{
	Key:             Modern,
	DisplayName:     "Template Modern Minimalis",
	Layout:          LayoutModern,
	CompanyColor:    RGB{0x2C, 0x3E, 0x50},
	CompanySize:     32,
	AccentColor:     RGB{0x34, 0x98, 0xDB},
	Title:           "INVOICE",
	TitleColor:      RGB{0xE7, 0x4C, 0x3C},
	TitleSize:       28,
	SectionFill:     RGB{0xEC, 0xF0, 0xF1},
	SectionText:     RGB{0x2C, 0x3E, 0x50},
	BillToFill:      RGB{0xEC, 0xF0, 0xF1},
	TableHeaderFill: RGB{0x34, 0x49, 0x5E},
	TableHeaderText: white,
	GridColor:       RGB{0xBD, 0xC3, 0xC7},
	GridWidth:       0.3,
	TotalFill:       RGB{0x34, 0x98, 0xDB},
	TotalText:       white,
}

var creativeStyle = Style{
	Key:             Creative,
	DisplayName:     "Template Kreatif & Colorful",
	Layout:          LayoutCreative,
	CompanyColor:    RGB{0x8E, 0x44, 0xAD},
	CompanySize:     30,
	AccentColor:     RGB{0xE6, 0x7E, 0x22},
	BoxFill:         RGB{0x34, 0x98, 0xDB},
	BoxText:         white,
	Title:           "* INVOICE *",
	TitleColor:      RGB{0xE7, 0x4C, 0x3C},
	TitleSize:       26,
	SectionFill:     RGB{0x9B, 0x59, 0xB6},
	SectionText:     white,
	BillToFill:      RGB{0xE6, 0x7E, 0x22},
	TableHeaderFill: RGB{0x8E, 0x44, 0xAD},
	TableHeaderText: white,
	GridColor:       RGB{0x9B, 0x59, 0xB6},
	GridWidth:       0.7,
	TotalFill:       RGB{0xE7, 0x4C, 0x3C},
	TotalText:       white,
	AddressLimit:    30,
}

func alias(base Style, key TemplateKey, displayName string) Style {
	base.Key = key
	base.DisplayName = displayName
	return base
}

// styles maps every key to its parameters. Aliased keys reuse a base layout
// and differ only in their display name.
var styles = map[TemplateKey]Style{
	Classic:   classicStyle,
	Modern:    modernStyle,
	Creative:  creativeStyle,
	Corporate: alias(classicStyle, Corporate, "Template Corporate Formal"),
	Tech:      alias(modernStyle, Tech, "Template Tech & Digital"),
	Retail:    alias(creativeStyle, Retail, "Template Retail & Fashion"),
	Food:      alias(creativeStyle, Food, "Template Food & Beverage"),
	Service:   alias(classicStyle, Service, "Template Jasa & Konsultasi"),
}

var orderedKeys = []TemplateKey{Classic, Modern, Creative, Corporate, Tech, Retail, Food, Service}

// Keys lists the template keys in catalog order.
func Keys() []TemplateKey {
	out := make([]TemplateKey, len(orderedKeys))
	copy(out, orderedKeys)
	return out
}

// ParseTemplateKey matches s case-insensitively against the known keys.
func ParseTemplateKey(s string) (TemplateKey, bool) {
	key := TemplateKey(strings.ToLower(strings.TrimSpace(s)))
	_, ok := styles[key]
	return key, ok
}

// ResolveStyle returns the style for s. Unknown or blank keys fall back to classic.
func ResolveStyle(s string) Style {
	if key, ok := ParseTemplateKey(s); ok {
		return styles[key]
	}
	return styles[Classic]
}

// DisplayName returns the human-readable name of k, or "" when k is unknown.
func (k TemplateKey) DisplayName() string {
	return styles[k].DisplayName
}
