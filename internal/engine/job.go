package engine

import (
	"context"
	"time"
)

const (
	JobCot         = "cot"
	JobSeasonality = "seasonality"
	JobEconomic    = "economic"
)

const (
	TriggerCron = "cron"
	TriggerAPI  = "api"
	TriggerCLI  = "cli"
)

// 进度级别
const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelDone  = "done"
)

// Progress 任务进度事件
type Progress struct {
	Job     string    `json:"job"`
	Step    int       `json:"step"`
	Total   int       `json:"total"`
	Message string    `json:"message"`
	Level   string    `json:"level"`
	Time    time.Time `json:"time"`
}

// Reporter 任务内部上报进度
type Reporter func(step, total int, level, message string)

// Stats 任务处理的条目数
type Stats struct {
	Total     int
	Succeeded int
	Failed    int
}

// Job 数据刷新任务，单个条目失败不应中断整个任务
type Job interface {
	Name() string
	// CachePrefix 任务成功后需要失效的缓存前缀
	CachePrefix() string
	Run(ctx context.Context, report Reporter) (Stats, error)
}
