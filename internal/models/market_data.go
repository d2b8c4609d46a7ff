package models

import "time"

// CotReport 持仓报告（CFTC 传统期货报告）
type CotReport struct {
	ID           string    `gorm:"primaryKey;type:varchar(26)" json:"id"`
	Asset        string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_cot_asset_date" json:"asset"`
	ContractCode string    `gorm:"type:varchar(10);not null" json:"contract_code"`
	ReportDate   time.Time `gorm:"not null;uniqueIndex:idx_cot_asset_date" json:"report_date"`
	NonCommLong  float64   `gorm:"type:decimal(20,2)" json:"noncomm_long"`  // 非商业多头
	NonCommShort float64   `gorm:"type:decimal(20,2)" json:"noncomm_short"` // 非商业空头
	CommLong     float64   `gorm:"type:decimal(20,2)" json:"comm_long"`
	CommShort    float64   `gorm:"type:decimal(20,2)" json:"comm_short"`
	OpenInterest float64   `gorm:"type:decimal(20,2)" json:"open_interest"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (CotReport) TableName() string {
	return "cot_reports"
}

// SeasonalityStat 某品种某月份的历史收益统计（百分比）
type SeasonalityStat struct {
	ID          string    `gorm:"primaryKey;type:varchar(26)" json:"id"`
	Asset       string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_seasonality_asset_month" json:"asset"`
	Month       int       `gorm:"not null;uniqueIndex:idx_seasonality_asset_month" json:"month"`
	MeanReturn  float64   `gorm:"type:decimal(12,6)" json:"mean_return"`
	StdDev      float64   `gorm:"type:decimal(12,6)" json:"std_dev"`
	PositivePct float64   `gorm:"type:decimal(8,4)" json:"positive_pct"`
	Samples     int       `json:"samples"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (SeasonalityStat) TableName() string {
	return "seasonality_stats"
}

// EconomicObservation 经济指标观测值
type EconomicObservation struct {
	ID        string    `gorm:"primaryKey;type:varchar(26)" json:"id"`
	SeriesID  string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_economic_series_date" json:"series_id"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_economic_series_date" json:"date"`
	Value     float64   `gorm:"type:decimal(20,6)" json:"value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (EconomicObservation) TableName() string {
	return "economic_observations"
}

// RefreshRun 数据任务执行记录
type RefreshRun struct {
	ID         string     `gorm:"primaryKey;type:varchar(26)" json:"id"`
	Job        string     `gorm:"type:varchar(20);not null;index" json:"job"` // cot/seasonality/economic
	Trigger    string     `gorm:"type:varchar(20);not null" json:"trigger"`   // cron/api/cli
	Status     string     `gorm:"type:varchar(20);not null" json:"status"`    // running/succeeded/failed
	Total      int        `json:"total"`
	Succeeded  int        `json:"succeeded"`
	Failed     int        `json:"failed"`
	Message    string     `gorm:"type:text" json:"message"`
	StartedAt  time.Time  `gorm:"not null;index" json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
}

// TableName 指定表名
func (RefreshRun) TableName() string {
	return "refresh_runs"
}

const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)
