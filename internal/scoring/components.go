package scoring

import (
	"context"
	"fmt"
	"slices"

	"github.com/AntonioEsper/MarketLens/pkg/ta"
	"github.com/shopspring/decimal"
)

const (
	economicWindow    = 12
	positioningWindow = 4
	seasonalityBand   = 0.5
)

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// IndicatorMomentum 最新值相对 12 期均线的方向，负向指标取反；数据不足 12 期时为 0
func IndicatorMomentum(observations []Observation, impact Impact) int {
	values := observationValues(observations)
	sma, ok := ta.SMALast(values, economicWindow)
	if !ok {
		return 0
	}
	latest := ta.Last(values, 0)
	score := 0
	switch {
	case latest > sma:
		score = 1
	case latest < sma:
		score = -1
	}
	if impact == ImpactNegative {
		score = -score
	}
	return score
}

// observationValues 按日期升序取值，不修改调用方的切片
func observationValues(observations []Observation) []float64 {
	ordered := slices.Clone(observations)
	slices.SortStableFunc(ordered, func(a, b Observation) int { return a.Date.Compare(b.Date) })
	values := make([]float64, len(ordered))
	for i, o := range ordered {
		values[i] = o.Value
	}
	return values
}

// currencyScore 货币下所有有数据的指标动量均值，没有任何指标有数据时返回 false
func (e *Engine) currencyScore(ctx context.Context, currency string) (float64, bool, error) {
	indicators, err := e.economic.Indicators(ctx, currency)
	if err != nil {
		return 0, false, err
	}
	var total, count int
	for _, indicator := range indicators {
		observations, err := e.economic.Observations(ctx, indicator.ID)
		if err != nil {
			return 0, false, err
		}
		if len(observations) == 0 {
			continue
		}
		total += IndicatorMomentum(observations, indicator.ImpactCurrency)
		count++
	}
	if count == 0 {
		return 0, false, nil
	}
	return float64(total) / float64(count), true, nil
}

func (e *Engine) scoreEconomic(ctx context.Context, asset string) Component {
	if e.economic == nil {
		return notApplicable(ComponentEconomic, "no economic source")
	}

	base, quote, isPair := SplitPair(asset)
	if !isPair {
		currency := e.currencyOf(asset)
		score, ok, err := e.currencyScore(ctx, currency)
		if err != nil {
			return notApplicable(ComponentEconomic, err.Error())
		}
		if !ok {
			return notApplicable(ComponentEconomic, fmt.Sprintf("no economic data for %s", currency))
		}
		return scored(ComponentEconomic, round2(score), fmt.Sprintf("%s %.2f", currency, score))
	}

	baseScore, baseOK, err := e.currencyScore(ctx, base)
	if err != nil {
		return notApplicable(ComponentEconomic, err.Error())
	}
	quoteScore, quoteOK, err := e.currencyScore(ctx, quote)
	if err != nil {
		return notApplicable(ComponentEconomic, err.Error())
	}
	if !baseOK && !quoteOK {
		return notApplicable(ComponentEconomic, fmt.Sprintf("no economic data for %s or %s", base, quote))
	}
	detail := fmt.Sprintf("%s %.2f vs %s %.2f", base, baseScore, quote, quoteScore)
	return scored(ComponentEconomic, round2(baseScore-quoteScore), detail)
}

func (e *Engine) scorePositioning(ctx context.Context, asset string) Component {
	if e.positioning == nil {
		return notApplicable(ComponentPositioning, "no positioning source")
	}
	reports, err := e.positioning.PositioningHistory(ctx, asset)
	if err != nil {
		return notApplicable(ComponentPositioning, err.Error())
	}
	if len(reports) == 0 {
		return notApplicable(ComponentPositioning, "no positioning series")
	}
	if len(reports) < positioningWindow {
		return notApplicable(ComponentPositioning, fmt.Sprintf("insufficient history: %d of %d reports", len(reports), positioningWindow))
	}

	ordered := slices.Clone(reports)
	slices.SortStableFunc(ordered, func(a, b PositioningReport) int { return a.Date.Compare(b.Date) })
	nets := make([]float64, len(ordered))
	for i, r := range ordered {
		nets[i] = r.Net()
	}

	latest := ordered[len(ordered)-1]
	net := latest.Net()
	avg, _ := ta.SMALast(nets, positioningWindow)

	score := 0.0
	switch {
	case net > 0 && net > avg:
		score = 1
	case net < 0 && net < avg:
		score = -1
	}
	detail := fmt.Sprintf("net %.0f vs 4w avg %.0f, long %.1f%%", net, avg, LongShare(latest))
	return scored(ComponentPositioning, score, detail)
}

// LongShare 多头占比（百分比），总持仓为 0 时为 0
func LongShare(r PositioningReport) float64 {
	total := r.Long + r.Short
	if total == 0 {
		return 0
	}
	return r.Long / total * 100
}

func (e *Engine) scoreSeasonality(ctx context.Context, asset string) Component {
	if e.seasonality == nil {
		return notApplicable(ComponentSeasonality, "no seasonality source")
	}
	table, err := e.seasonality.SeasonalityTable(ctx, asset)
	if err != nil {
		return notApplicable(ComponentSeasonality, err.Error())
	}
	if len(table) == 0 {
		return notApplicable(ComponentSeasonality, "no seasonality table")
	}

	month := e.now().Month()
	i := slices.IndexFunc(table, func(m MonthlyReturn) bool { return m.Month == month })
	if i < 0 {
		return notApplicable(ComponentSeasonality, fmt.Sprintf("no statistics for %s", month))
	}

	mean := table[i].MeanReturn
	score := 0.0
	switch {
	case mean > seasonalityBand:
		score = 1
	case mean < -seasonalityBand:
		score = -1
	}
	return scored(ComponentSeasonality, score, fmt.Sprintf("%s mean %.2f%%", month, mean))
}
