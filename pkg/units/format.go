// Package units formats real-world quantities for display and parses
// user-entered decimal numbers.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used when no locale is configured or the configured one
// cannot be parsed.
var DefaultLocale = language.BrazilianPortuguese

// Formatter renders meters, square meters and counts with two fraction
// digits using the number conventions of a locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter creates a formatter for the given locale tag
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

// ParseLocale returns a formatter for a BCP 47 string such as "pt-BR".
// Unknown or empty strings fall back to DefaultLocale.
func ParseLocale(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = DefaultLocale
	}
	return NewFormatter(tag)
}

// Locale returns the formatter's language tag
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// Number formats a value with exactly two fraction digits
func (f *Formatter) Number(value float64) string {
	return f.printer.Sprint(number.Decimal(value, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Meters formats a length, e.g. "3,50 m"
func (f *Formatter) Meters(value float64) string {
	return f.Number(value) + " m"
}

// SquareMeters formats an area, e.g. "12,00 m²"
func (f *Formatter) SquareMeters(value float64) string {
	return f.Number(value) + " m²"
}

// Count formats a unitless count, e.g. "4 un"
func (f *Formatter) Count(n int) string {
	return f.printer.Sprintf("%d un", n)
}

// ParseDecimal parses user input that may use either a decimal comma or
// a decimal point. Surrounding whitespace is ignored.
func ParseDecimal(input string) (float64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	s = strings.Replace(s, ",", ".", 1)

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number %q: %w", input, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("not a finite number %q", input)
	}
	return value, nil
}
