package reporting

import (
	"math"
	"time"
)

// Direction 交易方向
type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

// Status 交易状态
type Status string

const (
	StatusPending   Status = "pending"
	StatusOpen      Status = "open"
	StatusFinalized Status = "finalized"
)

// Trade 参与统计的交易记录，价格字段缺失时为 nil
type Trade struct {
	ID          string    `json:"id"`
	Asset       string    `json:"asset"`
	Direction   Direction `json:"direction"`
	Status      Status    `json:"status"`
	EntryPrice  *float64  `json:"entry_price"`
	StopPrice   *float64  `json:"stop_price"`
	TargetPrice *float64  `json:"target_price,omitempty"`
	ExitPrice   *float64  `json:"exit_price,omitempty"`
	RiskAmount  *float64  `json:"risk_amount,omitempty"`
	Currency    string    `json:"currency,omitempty"`
	Setup       string    `json:"setup,omitempty"`
	AccountIDs  []string  `json:"account_ids,omitempty"`
	TradedAt    time.Time `json:"traded_at"`
}

// Outcome 单笔交易的风险调整结果
type Outcome struct {
	StopDistance float64 `json:"stop_distance"`
	RawPoints    float64 `json:"raw_points"`
	RMultiple    float64 `json:"r_multiple"`
	PnL          float64 `json:"pnl"`
}

// Eligible 判断交易是否参与业绩统计
func Eligible(t Trade) bool {
	if t.Status != StatusFinalized {
		return false
	}
	if t.Direction != Long && t.Direction != Short {
		return false
	}
	if !finite(t.ExitPrice) || *t.ExitPrice <= 0 {
		return false
	}
	return finite(t.EntryPrice) && finite(t.StopPrice)
}

// ComputeOutcome 计算单笔已完成交易的 R 倍数与盈亏，不满足统计条件时返回 false
func ComputeOutcome(t Trade) (Outcome, bool) {
	if !Eligible(t) {
		return Outcome{}, false
	}
	entry, stop, exit := *t.EntryPrice, *t.StopPrice, *t.ExitPrice

	o := Outcome{StopDistance: math.Abs(entry - stop)}
	if t.Direction == Long {
		o.RawPoints = exit - entry
	} else {
		o.RawPoints = entry - exit
	}
	// 止损距离为 0 时 R 倍数按 0 处理
	if o.StopDistance > 0 {
		o.RMultiple = o.RawPoints / o.StopDistance
	}
	o.PnL = o.RMultiple * riskOf(t)
	return o, true
}

func riskOf(t Trade) float64 {
	if !finite(t.RiskAmount) {
		return 0
	}
	return *t.RiskAmount
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}
