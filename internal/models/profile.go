package models

import "time"

// UserProfile 用户资料，ID 即身份提供方的用户ID
type UserProfile struct {
	ID           string    `gorm:"primaryKey;type:varchar(128)" json:"id"`
	DisplayName  string    `gorm:"type:varchar(100)" json:"display_name"`
	Timezone     string    `gorm:"type:varchar(64)" json:"timezone"`      // 报表时区
	BaseCurrency string    `gorm:"type:varchar(3)" json:"base_currency"`  // 默认货币
	TradingStyle string    `gorm:"type:varchar(50)" json:"trading_style"` // scalper/day/swing/position
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (UserProfile) TableName() string {
	return "user_profiles"
}
