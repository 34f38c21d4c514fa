package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jhardel/caskwatch/internal/rate"
)

// DropSource names a way a reward can be obtained and its drop rate. Rate
// keeps the catalog's original expression form ("1/128"); DecimalRate is the
// evaluated value, rounded to nine fractional digits at construction.
type DropSource struct {
	Name        string  `json:"name"`
	Rate        string  `json:"rate"`
	DecimalRate float64 `json:"decimal_rate"`
}

// NewDropSource evaluates rateExpr and returns the populated source.
func NewDropSource(name, rateExpr string) (DropSource, error) {
	decimal, err := rate.Evaluate(rateExpr)
	if err != nil {
		return DropSource{}, fmt.Errorf("drop source %q: %w", name, err)
	}
	return DropSource{Name: name, Rate: rateExpr, DecimalRate: decimal}, nil
}

// Equal reports value equality. DecimalRate is derived from Rate, so the
// (Name, Rate) pair is the whole identity.
func (d DropSource) Equal(other DropSource) bool {
	return d.Name == other.Name && d.Rate == other.Rate
}

func (d DropSource) String() string {
	return fmt.Sprintf("DropSource(name=%q, rate=%s)", d.Name, d.Rate)
}

// Quantity is an inclusive item-count range. Min <= Max is checked where
// quantities are parsed, not here; a constructed value holds whatever it was
// given.
type Quantity struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Modifier adjusts a reward under special conditions: an alternative
// quantity range and the sources it applies to, in catalog order.
type Modifier struct {
	Quantity Quantity     `json:"quantity"`
	Sources  []DropSource `json:"sources"`
}

// Equal reports value equality including source order.
func (m Modifier) Equal(other Modifier) bool {
	if m.Quantity != other.Quantity || len(m.Sources) != len(other.Sources) {
		return false
	}
	for i := range m.Sources {
		if !m.Sources[i].Equal(other.Sources[i]) {
			return false
		}
	}
	return true
}

// Item is one collectible reward entry.
type Item struct {
	DisplayName  string       `json:"display_name"`
	InternalName string       `json:"internal_name"`
	Quantity     Quantity     `json:"quantity"`
	IsUnique     bool         `json:"is_unique"`
	IsBroadcast  bool         `json:"is_broadcast"`
	Noted        bool         `json:"noted"`
	Sources      []DropSource `json:"sources"`
	DropTable    string       `json:"droptable"`
	Price        *int         `json:"price"`
	Modifiers    *Modifier    `json:"modifiers,omitempty"`
	ImageID      int          `json:"image_id"`
	Category     string       `json:"category"`
}

// InternalName derives the stable identifier used for price lookups and
// image URLs: spaces become underscores, everything is lowercased, then only
// the first rune is capitalized. "Ring of wealth" -> "Ring_of_wealth".
func InternalName(displayName string) string {
	s := strings.ToLower(strings.ReplaceAll(displayName, " ", "_"))
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + s[size:]
}

// ImageURL returns the wiki image location for the item.
func (i Item) ImageURL() string {
	return fmt.Sprintf("https://runescape.wiki/images/%s.png?%d", i.InternalName, i.ImageID)
}

// Equal reports full-value equality across every field. Ingestion-time
// dedup uses this strict key; persistence keys items by DisplayName alone
// (see the database package).
func (i Item) Equal(other Item) bool {
	if i.DisplayName != other.DisplayName ||
		i.InternalName != other.InternalName ||
		i.Quantity != other.Quantity ||
		i.IsUnique != other.IsUnique ||
		i.IsBroadcast != other.IsBroadcast ||
		i.Noted != other.Noted ||
		i.DropTable != other.DropTable ||
		i.ImageID != other.ImageID ||
		i.Category != other.Category {
		return false
	}
	if !intPtrEqual(i.Price, other.Price) {
		return false
	}
	if len(i.Sources) != len(other.Sources) {
		return false
	}
	for idx := range i.Sources {
		if !i.Sources[idx].Equal(other.Sources[idx]) {
			return false
		}
	}
	switch {
	case i.Modifiers == nil && other.Modifiers == nil:
		return true
	case i.Modifiers == nil || other.Modifiers == nil:
		return false
	default:
		return i.Modifiers.Equal(*other.Modifiers)
	}
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
