package document

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts, dates and labels for printed documents
type Formatter struct {
	printer *message.Printer
	title   cases.Caser
}

// NewFormatter creates a Formatter for tag
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{
		printer: message.NewPrinter(tag),
		title:   cases.Title(tag),
	}
}

// Money formats d with two decimals and locale digit grouping.
// The integer part is grouped by the printer; the fraction is never
// passed through float64.
func (f *Formatter) Money(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	whole := decimal.RequireFromString(intPart).IntPart()

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(f.printer.Sprintf("%d", whole))
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// Date formats t as a long date
func (f *Formatter) Date(t time.Time) string {
	return t.Format("2 January 2006")
}

// Label turns snake_case identifiers into title case words
func (f *Formatter) Label(s string) string {
	return f.title.String(strings.ReplaceAll(strings.ToLower(s), "_", " "))
}
