package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonioEsper/MarketLens/internal/config"
	"github.com/AntonioEsper/MarketLens/internal/xe"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler 按 cron 表达式定时执行数据任务
type Scheduler struct {
	logger *zap.Logger
	runner *Runner
	conf   config.EngineConf

	cron *cron.Cron
}

func NewScheduler(runner *Runner, conf *config.Config, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		logger: logger,
		runner: runner,
		conf:   conf.Engine,
	}
}

// Specs 任务与 cron 表达式，表达式为空的任务不调度
func (s *Scheduler) Specs() map[string]string {
	return map[string]string{
		JobCot:         s.conf.CotCron,
		JobSeasonality: s.conf.SeasonalityCron,
		JobEconomic:    s.conf.EconomicCron,
	}
}

// Start 启动定时任务，未启用时不做任何事
func (s *Scheduler) Start() error {
	if !s.conf.Enabled {
		s.logger.Info("data engine scheduler disabled")
		return nil
	}
	if s.cron != nil {
		return fmt.Errorf("scheduler is already running")
	}

	c := cron.New()
	for job, spec := range s.Specs() {
		if spec == "" || !s.runner.Has(job) {
			continue
		}
		_, err := c.AddFunc(spec, func() {
			_, err := s.runner.Run(context.Background(), job, TriggerCron, nil)
			if errors.Is(err, xe.ErrJobRunning) {
				s.logger.Warn("skip scheduled refresh, job still running", zap.String("job", job))
			}
		})
		if err != nil {
			return fmt.Errorf("failed to add cron job %s: %w", job, err)
		}
		s.logger.Info("data engine job scheduled", zap.String("job", job), zap.String("cron_expression", spec))
	}

	s.cron = c
	s.cron.Start()
	return nil
}

// Running 调度器是否已启动
func (s *Scheduler) Running() bool {
	return s.cron != nil
}

// Stop 停止调度并等待正在执行的任务结束
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron = nil
	s.logger.Info("data engine scheduler stopped")
}
