package helpers

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used when a configured locale cannot be parsed
const DefaultLocale = "en-IN"

func printer(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return message.NewPrinter(tag)
}

// FormatAmount renders amount with two decimals and the locale's digit grouping
func FormatAmount(amount decimal.Decimal, locale string) string {
	return printer(locale).Sprintf("%.2f", amount.Round(2).InexactFloat64())
}

// FormatINR renders amount with the rupee sign, e.g. "₹25,000.00"
func FormatINR(amount decimal.Decimal, locale string) string {
	return "₹" + FormatAmount(amount, locale)
}

// FormatINRCode renders amount with the ISO code, for output that cannot
// carry the rupee sign such as core PDF fonts
func FormatINRCode(amount decimal.Decimal, locale string) string {
	return "INR " + FormatAmount(amount, locale)
}
