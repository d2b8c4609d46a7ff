package scoring

import "github.com/AntonioEsper/MarketLens/pkg/ta"

// Regime 全球风险偏好
type Regime string

const (
	RiskOn       Regime = "Risk-On"
	RiskNeutral  Regime = "Neutral"
	RiskOff      Regime = "Risk-Off"
	Undetermined Regime = "Undetermined"
)

// RiskGauge 基于 VIX 水平与 DXY 趋势的全球风险评分，范围 [-2, 2]
type RiskGauge struct {
	Score     float64 `json:"score"`
	Regime    Regime  `json:"regime"`
	VIX       float64 `json:"vix"`
	DXY       float64 `json:"dxy"`
	DXYSMA20  float64 `json:"dxy_sma20"`
	DXYRising bool    `json:"dxy_rising"`
}

const riskGaugeWindow = 20

// GlobalRiskGauge VIX 决定主方向，DXY 相对 20 期均线的趋势作为确认
func GlobalRiskGauge(vix, dxy []float64) RiskGauge {
	if len(vix) == 0 {
		return RiskGauge{Regime: Undetermined}
	}
	sma, ok := ta.SMALast(dxy, riskGaugeWindow)
	if !ok {
		return RiskGauge{Regime: Undetermined}
	}

	g := RiskGauge{VIX: ta.Last(vix, 0), DXY: ta.Last(dxy, 0), DXYSMA20: sma}
	g.DXYRising = g.DXY > sma

	switch {
	case g.VIX > 25:
		g.Score = -2
	case g.VIX > 20:
		g.Score = -1
	case g.VIX < 15:
		g.Score = 2
	case g.VIX < 18:
		g.Score = 1
	}

	if g.DXYRising && g.Score <= 0 {
		g.Score -= 0.5
	} else if !g.DXYRising && g.Score >= 0 {
		g.Score += 0.5
	}
	g.Score = max(-2, min(2, g.Score))

	switch {
	case g.Score >= 1.5:
		g.Regime = RiskOn
	case g.Score > -1.5:
		g.Regime = RiskNeutral
	default:
		g.Regime = RiskOff
	}
	return g
}

// HeatmapRow 单个经济指标的动量
type HeatmapRow struct {
	Indicator     Indicator   `json:"indicator"`
	Latest        Observation `json:"latest"`
	SMA12         float64     `json:"sma12"`
	High12        float64     `json:"high12"`
	Low12         float64     `json:"low12"`
	AboveAverage  bool        `json:"above_average"`
	CurrencyTrend Signal      `json:"currency_trend"`
	StocksTrend   Signal      `json:"stocks_trend"`
}

// HeatmapRowFor 计算指标动量，数据不足 12 期时返回 false
func HeatmapRowFor(indicator Indicator, observations []Observation) (HeatmapRow, bool) {
	values := observationValues(observations)
	sma, ok := ta.SMALast(values, economicWindow)
	if !ok {
		return HeatmapRow{}, false
	}
	latest := observations[0]
	for _, o := range observations[1:] {
		if !o.Date.Before(latest.Date) {
			latest = o
		}
	}

	row := HeatmapRow{
		Indicator:    indicator,
		Latest:       latest,
		SMA12:        sma,
		High12:       ta.Highest(values, economicWindow),
		Low12:        ta.Lowest(values, economicWindow),
		AboveAverage: latest.Value > sma,
	}
	row.CurrencyTrend = impactSignal(row.AboveAverage, indicator.ImpactCurrency)
	row.StocksTrend = impactSignal(row.AboveAverage, indicator.ImpactStocks)
	return row, true
}

func impactSignal(above bool, impact Impact) Signal {
	if impact == "" {
		impact = ImpactPositive
	}
	if above == (impact == ImpactPositive) {
		return SignalBullish
	}
	return SignalBearish
}
