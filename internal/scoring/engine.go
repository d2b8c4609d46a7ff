package scoring

import (
	"context"
	"strings"
	"time"
)

// ComponentKind 评分分项
type ComponentKind string

const (
	ComponentEconomic    ComponentKind = "economic"
	ComponentPositioning ComponentKind = "positioning"
	ComponentSeasonality ComponentKind = "seasonality"
)

// Component 单项评分，Applicable 为 false 时不计入总分
type Component struct {
	Kind       ComponentKind `json:"kind"`
	Applicable bool          `json:"applicable"`
	Score      float64       `json:"score"`
	Signal     Signal        `json:"signal"`
	Detail     string        `json:"detail,omitempty"`
}

func scored(kind ComponentKind, score float64, detail string) Component {
	return Component{Kind: kind, Applicable: true, Score: score, Signal: signalOf(score), Detail: detail}
}

func notApplicable(kind ComponentKind, detail string) Component {
	return Component{Kind: kind, Signal: SignalNotApplicable, Detail: detail}
}

// Result 资产综合评分
type Result struct {
	Asset      string                      `json:"asset"`
	FinalScore float64                     `json:"final_score"`
	Verdict    Verdict                     `json:"verdict"`
	Components map[ComponentKind]Component `json:"components"`
	ScoredAt   time.Time                   `json:"scored_at"`
}

// Engine 综合市场评分引擎，本身不持有状态，数据全部来自注入的来源
type Engine struct {
	positioning PositioningSource
	seasonality SeasonalitySource
	economic    EconomicSource

	currencyOf func(asset string) string
	now        func() time.Time
}

type Option func(*Engine)

// WithClock 指定当前时间，用于确定季节性月份
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithCurrencyResolver 指定非货币对资产的计价货币，默认 USD
func WithCurrencyResolver(fn func(asset string) string) Option {
	return func(e *Engine) { e.currencyOf = fn }
}

func NewEngine(positioning PositioningSource, seasonality SeasonalitySource, economic EconomicSource, options ...Option) *Engine {
	e := &Engine{
		positioning: positioning,
		seasonality: seasonality,
		economic:    economic,
		currencyOf:  func(string) string { return DefaultCurrency },
		now:         time.Now,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

const DefaultCurrency = "USD"

// ScoreAsset 计算资产的综合评分，任一分项缺少数据只会使该分项不适用
func (e *Engine) ScoreAsset(ctx context.Context, asset string) Result {
	components := map[ComponentKind]Component{
		ComponentEconomic:    e.scoreEconomic(ctx, asset),
		ComponentPositioning: e.scorePositioning(ctx, asset),
		ComponentSeasonality: e.scoreSeasonality(ctx, asset),
	}

	var final float64
	for _, c := range components {
		if c.Applicable {
			final += c.Score
		}
	}
	final = round2(final)

	return Result{
		Asset:      asset,
		FinalScore: final,
		Verdict:    VerdictFor(final),
		Components: components,
		ScoredAt:   e.now(),
	}
}

// SplitPair 拆分 BASE/QUOTE 形式的货币对
func SplitPair(asset string) (base, quote string, ok bool) {
	base, quote, ok = strings.Cut(asset, "/")
	if !ok || base == "" || quote == "" || strings.Contains(quote, "/") {
		return "", "", false
	}
	return strings.ToUpper(strings.TrimSpace(base)), strings.ToUpper(strings.TrimSpace(quote)), true
}
