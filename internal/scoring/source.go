package scoring

import (
	"context"
	"time"
)

// PositioningReport 一期持仓报告（非商业头寸）
type PositioningReport struct {
	Date  time.Time `json:"date"`
	Long  float64   `json:"long"`
	Short float64   `json:"short"`
}

// Net 净持仓
func (r PositioningReport) Net() float64 {
	return r.Long - r.Short
}

// MonthlyReturn 某个日历月份的历史收益统计，单位为百分比
type MonthlyReturn struct {
	Month       time.Month `json:"month"`
	MeanReturn  float64    `json:"mean_return"`
	StdDev      float64    `json:"std_dev"`
	PositivePct float64    `json:"positive_pct"`
}

// Impact 指标上升对货币的影响方向
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
)

// Indicator 经济指标
type Indicator struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Currency       string `json:"currency" yaml:"currency"`
	ImpactCurrency Impact `json:"impact_currency" yaml:"impact_currency"`
	ImpactStocks   Impact `json:"impact_stocks" yaml:"impact_stocks"`
}

// Observation 经济指标的一个观测值
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// PositioningSource 持仓数据来源，资产没有对应持仓序列时返回空
type PositioningSource interface {
	PositioningHistory(ctx context.Context, asset string) ([]PositioningReport, error)
}

// SeasonalitySource 季节性统计来源
type SeasonalitySource interface {
	SeasonalityTable(ctx context.Context, asset string) ([]MonthlyReturn, error)
}

// EconomicSource 经济指标来源
type EconomicSource interface {
	Indicators(ctx context.Context, currency string) ([]Indicator, error)
	Observations(ctx context.Context, indicatorID string) ([]Observation, error)
}
