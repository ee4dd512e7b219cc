// Package catalog defines the canonical product table produced by the
// reconciliation pipeline. A Table is an insertion-ordered collection of
// product records keyed by catalog code; ordering is preserved because
// variant grouping and parent selection must be deterministic for a given
// input order.
package catalog

import (
	"strings"

	"github.com/agentstation/utc"
	"github.com/shopspring/decimal"

	"github.com/gastroflow/gastroflow/pkg/constants"
)

// Attribute keys for extracted variant differences. These are the canonical
// taxonomy column names the downstream shop import expects.
const (
	AttrWidth   = "Šírka"
	AttrLength  = "Dĺžka"
	AttrHeight  = "Výška"
	AttrPower   = "Výkon"
	AttrVolume  = "Objem"
	AttrVariant = "Variant"
)

// AttributeKeys lists every extraction attribute in render order.
var AttributeKeys = []string{AttrWidth, AttrLength, AttrHeight, AttrPower, AttrVolume, AttrVariant}

// Product is a single catalog record. Code is the unique key within a
// Table. Price is kept as the raw source string; numeric comparisons go
// through DecimalPrice so formatting differences never count as changes.
type Product struct {
	Code         string            `yaml:"code"`
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description,omitempty"`
	Params       string            `yaml:"params,omitempty"`
	Category     string            `yaml:"defaultCategory,omitempty"`
	Price        string            `yaml:"price,omitempty"`
	Images       []string          `yaml:"images,omitempty"`
	Manufacturer string            `yaml:"manufacturer,omitempty"`
	ParentCode   string            `yaml:"parentCode,omitempty"`
	Source       string            `yaml:"source,omitempty"`
	LastUpdated  utc.Time          `yaml:"lastUpdated,omitempty"`
	Attributes   map[string]string `yaml:"attributes,omitempty"`
}

// ImageCount returns the number of non-empty image slots. Only the first
// MaxImageSlots entries count; anything past that is ignored by policy.
func (p *Product) ImageCount() int {
	count := 0
	for i, img := range p.Images {
		if i >= constants.MaxImageSlots {
			break
		}
		if strings.TrimSpace(img) != "" {
			count++
		}
	}
	return count
}

// DecimalPrice parses the raw price string. ok is false for blank or
// unparseable prices, which are sentinels and never compare equal or
// unequal to anything.
func (p *Product) DecimalPrice() (decimal.Decimal, bool) {
	raw := strings.TrimSpace(strings.ReplaceAll(p.Price, ",", "."))
	if raw == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// PriceEquals reports whether the other product carries the numerically
// same price. Two missing prices are equal; a missing price never equals a
// present one.
func (p *Product) PriceEquals(other *Product) bool {
	a, aok := p.DecimalPrice()
	b, bok := other.DecimalPrice()
	if aok != bok {
		return false
	}
	if !aok {
		return true
	}
	return a.Equal(b)
}

// SetAttribute records an extracted difference value, allocating the map on
// first use. Empty values are ignored.
func (p *Product) SetAttribute(key, value string) {
	if value == "" {
		return
	}
	if p.Attributes == nil {
		p.Attributes = make(map[string]string)
	}
	p.Attributes[key] = value
}

// Attribute returns the extracted value for key, or "".
func (p *Product) Attribute(key string) string {
	return p.Attributes[key]
}

// Clone returns a deep copy of the product.
func (p *Product) Clone() *Product {
	c := *p
	c.Images = append([]string(nil), p.Images...)
	if p.Attributes != nil {
		c.Attributes = make(map[string]string, len(p.Attributes))
		for k, v := range p.Attributes {
			c.Attributes[k] = v
		}
	}
	return &c
}
