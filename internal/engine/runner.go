package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/AntonioEsper/MarketLens/internal/repo"
	"github.com/AntonioEsper/MarketLens/internal/trace"
	"github.com/AntonioEsper/MarketLens/internal/xe"
	"github.com/oklog/ulid/v2"
	"github.com/valyala/fasttemplate"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Notifier 任务结束通知
type Notifier interface {
	Notify(msg string) error
}

// Invalidator 缓存失效
type Invalidator interface {
	Invalidate(prefix string) int
}

const notifyTemplate = `MarketLens data refresh
Job: {{job}} ({{trigger}})
Status: {{status}}
Processed: {{succeeded}}/{{total}}, failed {{failed}}
Duration: {{duration}}
{{message}}`

// Runner 执行数据任务并记录执行结果，同一任务同时只能运行一个
type Runner struct {
	logger *zap.Logger

	runs        *repo.RefreshRunRepo
	jobs        map[string]Job
	names       []string
	notifier    Notifier
	invalidator Invalidator
	tracer      *trace.Tracer

	mu      sync.Mutex
	running map[string]bool
}

// NewRunner 创建任务执行器，notifier 可以为 nil
func NewRunner(db *gorm.DB, jobs []Job, invalidator Invalidator, notifier Notifier, tracer *trace.Tracer, logger *zap.Logger) *Runner {
	r := &Runner{
		logger:      logger,
		runs:        repo.NewRefreshRunRepo(db),
		jobs:        make(map[string]Job, len(jobs)),
		notifier:    notifier,
		invalidator: invalidator,
		tracer:      tracer,
		running:     make(map[string]bool),
	}
	for _, job := range jobs {
		r.jobs[job.Name()] = job
		r.names = append(r.names, job.Name())
	}
	return r
}

// Jobs 已注册的任务名称
func (r *Runner) Jobs() []string {
	return r.names
}

func (r *Runner) Has(name string) bool {
	_, ok := r.jobs[name]
	return ok
}

func (r *Runner) acquire(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running[name] {
		return false
	}
	r.running[name] = true
	return true
}

func (r *Runner) release(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.running, name)
}

// Run 执行任务，progress 不为 nil 时推送进度事件，调用方负责关闭 progress
func (r *Runner) Run(ctx context.Context, name, trigger string, progress chan<- Progress) (*models.RefreshRun, error) {
	job, ok := r.jobs[name]
	if !ok {
		return nil, xe.ErrUnknownJob
	}
	if !r.acquire(name) {
		return nil, xe.ErrJobRunning
	}
	defer r.release(name)

	ctx, span := r.tracer.Start(ctx, "engine.run", attribute.String("job", name), attribute.String("trigger", trigger))
	defer span.End()

	run := &models.RefreshRun{
		ID:        ulid.Make().String(),
		Job:       name,
		Trigger:   trigger,
		Status:    models.RunStatusRunning,
		StartedAt: time.Now(),
	}
	if err := r.runs.Create(ctx, run); err != nil {
		return nil, err
	}

	emit := func(step, total int, level, message string) {
		r.log(name, level, message, step, total)
		if progress == nil {
			return
		}
		event := Progress{Job: name, Step: step, Total: total, Message: message, Level: level, Time: time.Now()}
		select {
		case progress <- event:
		case <-ctx.Done():
		}
	}

	emit(0, 0, LevelInfo, fmt.Sprintf("%s refresh started", name))
	stats, jobErr := job.Run(ctx, emit)

	run.Total = stats.Total
	run.Succeeded = stats.Succeeded
	run.Failed = stats.Failed

	status, message := models.RunStatusSucceeded, fmt.Sprintf("%d of %d items refreshed", stats.Succeeded, stats.Total)
	switch {
	case jobErr != nil:
		status, message = models.RunStatusFailed, jobErr.Error()
		span.RecordError(jobErr)
	case stats.Total > 0 && stats.Succeeded == 0:
		status = models.RunStatusFailed
	}

	if stats.Succeeded > 0 && r.invalidator != nil {
		r.invalidator.Invalidate(job.CachePrefix())
	}

	// 任务可能因 ctx 取消而结束，结果仍需落库
	if err := r.runs.Finish(context.WithoutCancel(ctx), run, status, message); err != nil {
		r.logger.Error("failed to save refresh run", zap.String("job", name), zap.Error(err))
	}

	level := LevelDone
	if status == models.RunStatusFailed {
		level = LevelError
	}
	emit(stats.Total, stats.Total, level, message)
	r.notify(run)

	return run, jobErr
}

func (r *Runner) log(job, level, message string, step, total int) {
	fields := []zap.Field{zap.String("job", job), zap.Int("step", step), zap.Int("total", total)}
	switch level {
	case LevelWarn:
		r.logger.Warn(message, fields...)
	case LevelError:
		r.logger.Error(message, fields...)
	default:
		r.logger.Info(message, fields...)
	}
}

func (r *Runner) notify(run *models.RefreshRun) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.Notify(FormatRun(run)); err != nil {
		r.logger.Warn("failed to send refresh notification", zap.String("job", run.Job), zap.Error(err))
	}
}

// FormatRun 任务结果通知文本
func FormatRun(run *models.RefreshRun) string {
	duration := "-"
	if run.FinishedAt != nil {
		duration = run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()
	}
	tmpl := fasttemplate.New(notifyTemplate, "{{", "}}")
	return strings.TrimSpace(tmpl.ExecuteString(map[string]interface{}{
		"job":       run.Job,
		"trigger":   run.Trigger,
		"status":    run.Status,
		"succeeded": fmt.Sprintf("%d", run.Succeeded),
		"total":     fmt.Sprintf("%d", run.Total),
		"failed":    fmt.Sprintf("%d", run.Failed),
		"duration":  duration,
		"message":   run.Message,
	}))
}

// Runs 最近的任务记录
func (r *Runner) Runs(ctx context.Context, job string, limit int) ([]models.RefreshRun, error) {
	if job != "" && !r.Has(job) {
		return nil, xe.ErrUnknownJob
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return r.runs.FindRecent(ctx, job, limit)
}

// Summary 每个任务最近一次执行情况
func (r *Runner) Summary(ctx context.Context) string {
	var sb strings.Builder
	for _, name := range r.names {
		runs, err := r.runs.FindRecent(ctx, name, 1)
		switch {
		case err != nil:
			fmt.Fprintf(&sb, "%s: %v\n", name, err)
		case len(runs) == 0:
			fmt.Fprintf(&sb, "%s: never run\n", name)
		default:
			run := runs[0]
			fmt.Fprintf(&sb, "%s: %s at %s (%d/%d)\n", name, run.Status,
				run.StartedAt.UTC().Format(time.DateTime), run.Succeeded, run.Total)
		}
	}
	return strings.TrimSpace(sb.String())
}
