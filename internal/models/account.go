package models

import (
	"time"

	"gorm.io/gorm"
)

// TradingAccount 交易账户
type TradingAccount struct {
	ID             string         `gorm:"primaryKey;type:varchar(26)" json:"id"`
	UserID         string         `gorm:"type:varchar(128);not null;index" json:"user_id"`
	Name           string         `gorm:"type:varchar(100);not null" json:"name"`
	Type           string         `gorm:"type:varchar(20);not null" json:"type"`              // personal/prop_firm/demo
	InitialCapital float64        `gorm:"type:decimal(20,2);not null" json:"initial_capital"` // 初始资金
	Currency       string         `gorm:"type:varchar(3);not null" json:"currency"`           // USD/EUR/GBP/JPY
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName 指定表名
func (TradingAccount) TableName() string {
	return "trading_accounts"
}
