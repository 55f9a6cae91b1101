package dashboard

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// numberFormatter renders calorie totals with grouping separators.
type numberFormatter struct {
	printer *message.Printer
}

func newNumberFormatter(tag language.Tag) numberFormatter {
	return numberFormatter{printer: message.NewPrinter(tag)}
}

func (f numberFormatter) Number(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

func (f numberFormatter) Calories(v float64) string {
	return f.Number(v) + " kcal"
}
