package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flat(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestGlobalRiskGauge(t *testing.T) {
	dxyUp := append(flat(19, 100), 105)
	dxyDown := append(flat(19, 100), 95)

	tests := []struct {
		name   string
		vix    float64
		dxy    []float64
		score  float64
		regime Regime
	}{
		{"calm market weak dollar", 12, dxyDown, 2, RiskOn},
		{"low vix strong dollar", 16, dxyUp, 1, RiskNeutral},
		{"neutral vix weak dollar", 19, dxyDown, 0.5, RiskNeutral},
		{"elevated vix strong dollar", 22, dxyUp, -1.5, RiskOff},
		{"panic", 30, dxyUp, -2, RiskOff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := GlobalRiskGauge([]float64{tt.vix}, tt.dxy)
			assert.Equal(t, tt.score, g.Score)
			assert.Equal(t, tt.regime, g.Regime)
		})
	}

	assert.Equal(t, Undetermined, GlobalRiskGauge(nil, dxyUp).Regime)
	assert.Equal(t, Undetermined, GlobalRiskGauge([]float64{20}, flat(5, 100)).Regime)
}

func TestHeatmapRowFor(t *testing.T) {
	unemployment := Indicator{ID: "UNRATE", ImpactCurrency: ImpactNegative, ImpactStocks: ImpactNegative}

	row, ok := HeatmapRowFor(unemployment, trending(14, true))
	require.True(t, ok)
	assert.True(t, row.AboveAverage)
	assert.Equal(t, 110.0, row.Latest.Value)
	assert.Equal(t, 110.0, row.High12)
	assert.Equal(t, 100.0, row.Low12)
	assert.Equal(t, SignalBearish, row.CurrencyTrend)
	assert.Equal(t, SignalBearish, row.StocksTrend)

	cpi := Indicator{ID: "CPI", ImpactCurrency: ImpactPositive, ImpactStocks: ImpactNegative}
	row, ok = HeatmapRowFor(cpi, trending(12, false))
	require.True(t, ok)
	assert.Equal(t, SignalBearish, row.CurrencyTrend)
	assert.Equal(t, SignalBullish, row.StocksTrend)

	_, ok = HeatmapRowFor(cpi, trending(11, true))
	assert.False(t, ok)
}
