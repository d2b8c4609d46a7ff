package reporting

import "time"

// TradeResult 交易及其计算结果
type TradeResult struct {
	Trade   Trade   `json:"trade"`
	Outcome Outcome `json:"outcome"`
}

// EquityPoint 资金曲线上的一个点
type EquityPoint struct {
	Time    time.Time `json:"time"`
	TradeID string    `json:"trade_id"`
	PnL     float64   `json:"pnl"`
	Equity  float64   `json:"equity"`
}

// Bucket 按日历周期汇总的盈亏
type Bucket struct {
	Label  string    `json:"label"`
	Start  time.Time `json:"start"`
	PnL    float64   `json:"pnl"`
	Trades int       `json:"trades"`
}

// WeekdayPnL 单个星期几的盈亏
type WeekdayPnL struct {
	Weekday time.Weekday `json:"weekday"`
	Name    string       `json:"name"`
	PnL     float64      `json:"pnl"`
	Trades  int          `json:"trades"`
}

// WeekdaySummary 周一到周日的盈亏，Days 始终有 7 项
type WeekdaySummary struct {
	Days  []WeekdayPnL `json:"days"`
	Best  WeekdayPnL   `json:"best"`
	Worst WeekdayPnL   `json:"worst"`
}

// DaySummary 日度表现，BestDay 仅在盈利时有值，WorstDay 仅在亏损时有值
type DaySummary struct {
	AvgWinningDay float64 `json:"avg_winning_day"`
	AvgLosingDay  float64 `json:"avg_losing_day"`
	BestDay       *Bucket `json:"best_day"`
	WorstDay      *Bucket `json:"worst_day"`
}

// PeriodSummary 本周、本月、本年至今的盈亏
type PeriodSummary struct {
	WeekToDate  float64 `json:"week_to_date"`
	MonthToDate float64 `json:"month_to_date"`
	YearToDate  float64 `json:"year_to_date"`
}

// Quality 交易质量评分（0-100）
type Quality struct {
	WinRate      float64 `json:"win_rate"`
	WinLossRatio float64 `json:"win_loss_ratio"`
	ProfitFactor float64 `json:"profit_factor"`
	Score        float64 `json:"score"`
}

// Breakdown 按资产或策略分组的统计
type Breakdown struct {
	Key     string  `json:"key"`
	Trades  int     `json:"trades"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
	PnL     float64 `json:"pnl"`
}

// Report 业绩报告，HasData 为 false 时所有指标为 0、序列为空
type Report struct {
	HasData bool `json:"has_data"`

	TotalTrades   int     `json:"total_trades"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	TotalPnL      float64 `json:"total_pnl"`
	WinRate       float64 `json:"win_rate"`
	AvgWin        float64 `json:"avg_win"`
	AvgLoss       float64 `json:"avg_loss"` // 亏损均值的绝对值
	AvgRiskReward float64 `json:"avg_risk_reward"`
	Expectancy    float64 `json:"expectancy"`
	ProfitFactor  float64 `json:"profit_factor"`
	MaxDrawdown   float64 `json:"max_drawdown"`

	EquityCurve []EquityPoint `json:"equity_curve"`
	Daily       []Bucket      `json:"daily"`
	Weekly      []Bucket      `json:"weekly"`
	Monthly     []Bucket      `json:"monthly"`
	Yearly      []Bucket      `json:"yearly"`

	Weekdays WeekdaySummary `json:"weekdays"`
	Days     DaySummary     `json:"days"`
	Period   PeriodSummary  `json:"period"`
	Quality  Quality        `json:"quality"`

	Assets []Breakdown   `json:"assets"`
	Setups []Breakdown   `json:"setups"`
	Recent []TradeResult `json:"recent"`
}

// Options 报告参数
type Options struct {
	// Now 计算本周/本月/本年至今的参考时间，为空时取当前时间
	Now time.Time
	// Location 日历分组使用的时区，默认 UTC
	Location *time.Location
	// RecentLimit 最近交易条数，默认 5
	RecentLimit int
}

const DefaultRecentLimit = 5

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.RecentLimit <= 0 {
		o.RecentLimit = DefaultRecentLimit
	}
	return o
}

func emptyReport() Report {
	return Report{
		EquityCurve: []EquityPoint{},
		Daily:       []Bucket{},
		Weekly:      []Bucket{},
		Monthly:     []Bucket{},
		Yearly:      []Bucket{},
		Weekdays:    WeekdaySummary{Days: weekdayTemplate()},
		Assets:      []Breakdown{},
		Setups:      []Breakdown{},
		Recent:      []TradeResult{},
	}
}
