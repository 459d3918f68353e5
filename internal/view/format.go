package view

import (
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var supportedLocales = []language.Tag{
	language.AmericanEnglish,
	language.BritishEnglish,
	language.German,
	language.French,
	language.Japanese,
}

var timestampLayouts = map[language.Tag]string{
	language.AmericanEnglish: "1/2/2006, 3:04:05 PM",
	language.BritishEnglish:  "02/01/2006, 15:04:05",
	language.German:          "2.1.2006, 15:04:05",
	language.French:          "02/01/2006 15:04:05",
	language.Japanese:        "2006/1/2 15:04:05",
}

var localeMatcher = language.NewMatcher(supportedLocales)

// Formatter renders money and timestamps for one locale and time zone.
type Formatter struct {
	symbols  moneySymbols
	layout   string
	location *time.Location
	now      func() time.Time
}

// NewFormatter builds a Formatter for a BCP 47 locale such as "en-US".
// Unknown locales fall back to American English.
func NewFormatter(locale string, location *time.Location) *Formatter {
	requested, err := language.Parse(locale)
	if err != nil {
		requested = language.AmericanEnglish
	}
	_, index, _ := localeMatcher.Match(requested)
	tag := supportedLocales[index]

	if location == nil {
		location = time.Local
	}

	return &Formatter{
		symbols:  symbolsFor(message.NewPrinter(tag)),
		layout:   timestampLayouts[tag],
		location: location,
		now:      time.Now,
	}
}

// moneySymbols are the grouping and decimal separators of a locale.
type moneySymbols struct {
	group   string
	decimal string
}

// symbolsFor reads the separators off a sample number printed in the
// printer's locale.
func symbolsFor(printer *message.Printer) moneySymbols {
	sample := printer.Sprint(number.Decimal(1234567.5, number.MinFractionDigits(2), number.MaxFractionDigits(2)))

	var separators []string
	var current strings.Builder
	for _, r := range sample {
		if unicode.IsDigit(r) {
			if current.Len() > 0 {
				separators = append(separators, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteRune(r)
	}

	symbols := moneySymbols{group: ",", decimal: "."}
	switch n := len(separators); {
	case n == 1:
		symbols.group = ""
		symbols.decimal = separators[0]
	case n > 1:
		symbols.group = separators[0]
		symbols.decimal = separators[n-1]
	}
	return symbols
}

// Money formats an amount with exactly two fraction digits and locale
// grouping. Digits come from the decimal itself, so large balances stay exact.
func (f *Formatter) Money(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	whole, fraction, _ := strings.Cut(fixed, ".")
	return sign + groupDigits(whole, f.symbols.group) + f.symbols.decimal + fraction
}

func groupDigits(digits, separator string) string {
	if separator == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(separator)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// OptionalMoney formats amount, or returns "" when it is nil.
func (f *Formatter) OptionalMoney(amount *decimal.Decimal) string {
	if amount == nil {
		return ""
	}
	return f.Money(*amount)
}

func (f *Formatter) Timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.location).Format(f.layout)
}

// Age describes t relative to now, e.g. "3 hours ago".
func (f *Formatter) Age(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, f.now(), "ago", "from now")
}
