package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Trade 交易日志记录
type Trade struct {
	ID          string                      `gorm:"primaryKey;type:varchar(26)" json:"id"`
	UserID      string                      `gorm:"type:varchar(128);not null;index" json:"user_id"`
	Asset       string                      `gorm:"type:varchar(32);not null;index" json:"asset"`   // 交易品种
	Direction   string                      `gorm:"type:varchar(10);not null" json:"direction"`     // long/short
	Status      string                      `gorm:"type:varchar(16);not null;index" json:"status"`  // pending/open/finalized
	EntryPrice  float64                     `gorm:"type:decimal(20,8);not null" json:"entry_price"` // 入场价
	StopPrice   *float64                    `gorm:"type:decimal(20,8)" json:"stop_price"`           // 止损价
	TargetPrice *float64                    `gorm:"type:decimal(20,8)" json:"target_price"`         // 目标价
	ExitPrice   *float64                    `gorm:"type:decimal(20,8)" json:"exit_price"`           // 出场价（仅完成时有值）
	RiskPercent float64                     `gorm:"type:decimal(10,4)" json:"risk_percent"`         // 风险百分比
	RiskAmount  float64                     `gorm:"type:decimal(20,8)" json:"risk_amount"`          // 风险金额（账户货币）
	Currency    string                      `gorm:"type:varchar(3)" json:"currency"`                // 账户货币
	AccountIDs  datatypes.JSONSlice[string] `json:"account_ids"`                                    // 关联账户
	Setup       string                      `gorm:"type:varchar(100);index" json:"setup"`           // 策略名称
	Notes       string                      `gorm:"type:text" json:"notes"`                         // 复盘笔记
	TradedAt    time.Time                   `gorm:"not null;index" json:"traded_at"`                // 交易时间
	CreatedAt   time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt              `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName 指定表名
func (Trade) TableName() string {
	return "trades"
}

const (
	DirectionLong  = "long"
	DirectionShort = "short"

	TradeStatusPending   = "pending"
	TradeStatusOpen      = "open"
	TradeStatusFinalized = "finalized"
)
