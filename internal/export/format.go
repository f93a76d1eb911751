package export

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DisplayDate = "Jan 02, 2006"

var numPrinter = message.NewPrinter(language.English)

// Money: 1234.5 → "GH₵1,234.50".
func Money(amount decimal.Decimal, currency string) string {
	return currency + numPrinter.Sprintf("%.2f", amount.Round(2).InexactFloat64())
}

func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DisplayDate)
}

func DateTime(t time.Time) string { return t.Format("Jan 02, 2006 15:04") }

// StatusLabel: "not_started" → "Not Started". Caser с состоянием, на вызов свой.
func StatusLabel(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// FilterLabel: заголовок фильтра в отчёте.
func FilterLabel(f string) string {
	if f == "" || f == "all" {
		return "All"
	}
	return StatusLabel(f)
}
