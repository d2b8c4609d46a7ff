package catalog

import (
	"testing"

	"github.com/AntonioEsper/MarketLens/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	gold, ok := c.Asset("Gold")
	require.True(t, ok)
	assert.Equal(t, "GC=F", gold.Yahoo)
	assert.Equal(t, "088691", gold.Cot)

	btc, ok := c.Asset("BTC/USD")
	require.True(t, ok)
	assert.Equal(t, "BTCUSDT", btc.Binance)

	for _, a := range c.Tradable() {
		assert.NotEqual(t, CategoryReference, a.Category)
	}
	assert.Equal(t, "EUR", c.CurrencyOf("DAX"))
	assert.Equal(t, scoring.DefaultCurrency, c.CurrencyOf("Unknown"))

	unrate := c.IndicatorsFor("USD")
	require.NotEmpty(t, unrate)
	for _, i := range c.Indicators {
		if i.ID == "UNRATE" {
			assert.Equal(t, scoring.ImpactNegative, i.ImpactCurrency)
		}
	}
}

func TestParse_Duplicate(t *testing.T) {
	_, err := Parse([]byte("assets:\n  - {name: A}\n  - {name: A}\n"))
	assert.Error(t, err)
}
