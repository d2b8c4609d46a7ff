package models

import (
	"time"

	"gorm.io/datatypes"
)

// WeeklyPlan 周交易计划，Key 形如 2024-W10
type WeeklyPlan struct {
	ID          string                      `gorm:"primaryKey;type:varchar(26)" json:"id"`
	UserID      string                      `gorm:"type:varchar(128);not null;uniqueIndex:idx_weekly_plan_user_key" json:"user_id"`
	Key         string                      `gorm:"column:plan_key;type:varchar(10);not null;uniqueIndex:idx_weekly_plan_user_key" json:"key"`
	MacroBias   string                      `gorm:"type:text" json:"macro_bias"` // 宏观判断
	FocusAssets datatypes.JSONSlice[string] `json:"focus_assets"`                // 关注品种
	Goals       string                      `gorm:"type:text" json:"goals"`      // 本周目标
	Review      string                      `gorm:"type:text" json:"review"`     // 周末复盘
	CreatedAt   time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (WeeklyPlan) TableName() string {
	return "weekly_plans"
}

// ChecklistItem 检查项
type ChecklistItem struct {
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

// DailyChecklist 每日检查清单，Key 形如 2024-03-04
type DailyChecklist struct {
	ID        string                             `gorm:"primaryKey;type:varchar(26)" json:"id"`
	UserID    string                             `gorm:"type:varchar(128);not null;uniqueIndex:idx_daily_checklist_user_key" json:"user_id"`
	Key       string                             `gorm:"column:plan_key;type:varchar(10);not null;uniqueIndex:idx_daily_checklist_user_key" json:"key"`
	Items     datatypes.JSONSlice[ChecklistItem] `json:"items"`
	Mood      string                             `gorm:"type:varchar(20)" json:"mood"`
	Notes     string                             `gorm:"type:text" json:"notes"`
	CreatedAt time.Time                          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                          `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (DailyChecklist) TableName() string {
	return "daily_checklists"
}
