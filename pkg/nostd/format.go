package nostd

import (
	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// FormatMoney 两位小数并带货币符号，不使用千位分隔符
func FormatMoney(v float64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency + " "
	}
	d := decimal.NewFromFloat(v).Round(2)
	if d.IsNegative() {
		return "-" + symbol + d.Abs().StringFixed(2)
	}
	return symbol + d.StringFixed(2)
}

// FormatRatio 风险回报比，例如 1 : 2.50
func FormatRatio(v float64) string {
	return "1 : " + decimal.NewFromFloat(v).StringFixed(2)
}

// FormatPercent 两位小数百分比，例如 55.56%
func FormatPercent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}
