package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlaybookSetup 交易策略模板
type PlaybookSetup struct {
	ID         string                      `gorm:"primaryKey;type:varchar(26)" json:"id"`
	UserID     string                      `gorm:"type:varchar(128);not null;index" json:"user_id"`
	Name       string                      `gorm:"type:varchar(100);not null" json:"name"`
	Assets     datatypes.JSONSlice[string] `json:"assets"`                            // 适用品种
	Timeframe  string                      `gorm:"type:varchar(20)" json:"timeframe"` // 时间周期
	EntryRules string                      `gorm:"type:text" json:"entry_rules"`      // 入场规则
	ExitRules  string                      `gorm:"type:text" json:"exit_rules"`       // 出场规则
	Notes      string                      `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt              `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName 指定表名
func (PlaybookSetup) TableName() string {
	return "playbook_setups"
}
