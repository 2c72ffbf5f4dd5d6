package httpserver

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// moneyFormatter renders amounts for display, e.g. ₹1,250.00.
type moneyFormatter struct {
	symbol  string
	printer *message.Printer
}

func newMoneyFormatter(symbol string) moneyFormatter {
	return moneyFormatter{symbol: symbol, printer: message.NewPrinter(language.English)}
}

func (m moneyFormatter) format(d decimal.Decimal) string {
	return m.symbol + m.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}
