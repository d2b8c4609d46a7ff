package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/AntonioEsper/MarketLens/internal/engine"
	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/AntonioEsper/MarketLens/internal/xe"
	"github.com/go-orz/orz"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// EngineHandler 数据任务接口
type EngineHandler struct {
	logger    *zap.Logger
	runner    *engine.Runner
	scheduler *engine.Scheduler
}

func NewEngineHandler(runner *engine.Runner, scheduler *engine.Scheduler, logger *zap.Logger) *EngineHandler {
	return &EngineHandler{logger: logger, runner: runner, scheduler: scheduler}
}

// Jobs GET /api/engine/jobs
func (h *EngineHandler) Jobs(c echo.Context) error {
	specs := h.scheduler.Specs()
	running := h.scheduler.Running()
	jobs := make([]orz.Map, 0, len(h.runner.Jobs()))
	for _, name := range h.runner.Jobs() {
		jobs = append(jobs, orz.Map{"name": name, "cron": specs[name], "scheduled": running && specs[name] != ""})
	}
	return c.JSON(http.StatusOK, jobs)
}

// Runs GET /api/engine/runs?job=&limit=
func (h *EngineHandler) Runs(c echo.Context) error {
	runs, err := h.runner.Runs(c.Request().Context(), c.QueryParam("job"), cast.ToInt(c.QueryParam("limit")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, runs)
}

type runResult struct {
	run *models.RefreshRun
	err error
}

// Run POST /api/engine/:job/run?trigger=cli
// 以 server-sent events 推送进度，最后发送 result 事件。客户端断开后任务继续执行
func (h *EngineHandler) Run(c echo.Context) error {
	job := c.Param("job")
	if !h.runner.Has(job) {
		return xe.ErrUnknownJob
	}

	trigger := engine.TriggerAPI
	if c.QueryParam("trigger") == engine.TriggerCLI {
		trigger = engine.TriggerCLI
	}

	progress := make(chan engine.Progress, 16)
	done := make(chan runResult, 1)
	go func() {
		run, err := h.runner.Run(context.WithoutCancel(c.Request().Context()), job, trigger, progress)
		close(progress)
		done <- runResult{run: run, err: err}
	}()

	stream := &eventStream{c: c}
	for p := range progress {
		stream.send("progress", p)
	}

	result := <-done
	if result.run == nil {
		// 任务未开始（例如正在运行），按普通错误返回
		if !stream.started {
			return result.err
		}
		stream.send("error", orz.Map{"message": result.err.Error()})
		return nil
	}
	if result.err != nil {
		h.logger.Warn("refresh job failed", zap.String("job", job), zap.Error(result.err))
	}
	stream.send("result", result.run)
	return nil
}

// eventStream server-sent events 输出，写入失败后静默丢弃后续事件
type eventStream struct {
	c       echo.Context
	started bool
	gone    bool
}

func (s *eventStream) send(event string, data interface{}) {
	if s.gone {
		return
	}
	w := s.c.Response()
	if !s.started {
		s.started = true
		w.Header().Set(echo.HeaderContentType, "text/event-stream")
		w.Header().Set(echo.HeaderCacheControl, "no-cache")
		w.Header().Set(echo.HeaderConnection, "keep-alive")
		w.WriteHeader(http.StatusOK)
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		s.gone = true
		return
	}
	w.Flush()
}

// RegisterRoutes 注册路由
func (h *EngineHandler) RegisterRoutes(g *echo.Group) {
	eng := g.Group("/engine")
	eng.GET("/jobs", h.Jobs)
	eng.GET("/runs", h.Runs)
	eng.POST("/:job/run", h.Run)
}
