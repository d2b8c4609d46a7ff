package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/config"
	"github.com/AntonioEsper/MarketLens/internal/engine"
	"github.com/AntonioEsper/MarketLens/internal/handler"
	mw "github.com/AntonioEsper/MarketLens/internal/middleware"
	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/AntonioEsper/MarketLens/internal/service"
	"github.com/AntonioEsper/MarketLens/internal/telegram"
	"github.com/AntonioEsper/MarketLens/internal/trace"
	"github.com/AntonioEsper/MarketLens/pkg/nostd"
	"github.com/go-orz/orz"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func Run(configPath string) error {
	app := &MarketLensApp{}

	framework, err := orz.NewFramework(
		orz.WithConfig(configPath),
		orz.WithLoggerFromConfig(),
		orz.WithDatabase(),
		orz.WithHTTP(),
		orz.WithApplication(app),
	)
	if err != nil {
		return err
	}

	runErr := framework.Run()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Shutdown(ctx); err != nil {
		return errors.Join(runErr, fmt.Errorf("shutdown: %w", err))
	}
	return runErr
}

var _ orz.Application = (*MarketLensApp)(nil)

type AppComponents struct {
	AccountHandler *handler.AccountHandler
	JournalHandler *handler.JournalHandler
	SetupHandler   *handler.SetupHandler
	PlanHandler    *handler.PlanHandler
	ProfileHandler *handler.ProfileHandler
	ReportHandler  *handler.ReportHandler
	MarketHandler  *handler.MarketHandler
	EngineHandler  *handler.EngineHandler

	AuthService *service.AuthService
	Runner      *engine.Runner
	Scheduler   *engine.Scheduler
	Tracer      *trace.Tracer

	// 未配置时为 nil
	Telegram *telegram.Telegram
}

type MarketLensApp struct {
	components *AppComponents
	conf       *config.Config
}

// GetComponents 获取应用组件
func (r *MarketLensApp) GetComponents() *AppComponents {
	return r.components
}

func (r *MarketLensApp) Configure(app *orz.App) error {
	logger := app.Logger()
	e := app.GetEcho()
	db := app.GetDatabase()

	var conf config.Config
	err := app.GetConfig().App.Unmarshal(&conf)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %v", err)
	}
	conf.ApplyEnv()

	components, err := InitializeApp(logger, db, &conf)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %v", err)
	}
	r.components = components
	r.conf = &conf

	if err := db.AutoMigrate(
		models.TradingAccount{}, models.Trade{}, models.PlaybookSetup{},
		models.WeeklyPlan{}, models.DailyChecklist{}, models.UserProfile{},
		models.CotReport{}, models.SeasonalityStat{}, models.EconomicObservation{}, models.RefreshRun{},
	); err != nil {
		logger.Fatal("database auto migrate failed", zap.Error(err))
	}

	if err := r.Init(logger); err != nil {
		logger.Fatal("app init failed", zap.Error(err))
	}

	e.HidePort = true
	e.HideBanner = true

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		// SSE 需要逐条刷新
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/api/engine/")
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		Skipper:      middleware.DefaultSkipper,
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			sugar := logger.Sugar()
			sugar.Error(fmt.Sprintf("[PANIC RECOVER] %v %s\n", err, stack))
			return err
		},
	}))
	e.Use(WithErrorHandler(logger))
	customValidator, err := nostd.NewValidator()
	if err != nil {
		logger.Fatal("failed to init custom validator", zap.Error(err))
	}
	e.Validator = customValidator

	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, orz.Map{"status": "ok"})
	})

	api := e.Group("/api", mw.JWTAuth(mw.JWTAuthConfig{
		AuthService: components.AuthService,
		Logger:      logger,
	}))
	{
		components.AccountHandler.RegisterRoutes(api)
		components.JournalHandler.RegisterRoutes(api)
		components.SetupHandler.RegisterRoutes(api)
		components.PlanHandler.RegisterRoutes(api)
		components.ProfileHandler.RegisterRoutes(api)
		components.ReportHandler.RegisterRoutes(api)
		components.MarketHandler.RegisterRoutes(api)
		components.EngineHandler.RegisterRoutes(api)
	}

	return nil
}

func (r *MarketLensApp) Init(logger *zap.Logger) error {
	logger.Info("=================================================")
	logger.Info("MarketLens Starting...")
	logger.Info("=================================================")

	components := r.GetComponents()
	if components == nil {
		return fmt.Errorf("components not initialized")
	}

	if err := components.Scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	if components.Telegram != nil {
		runner := components.Runner
		components.Telegram.SetStatus(func() string {
			return runner.Summary(context.Background())
		})
		components.Telegram.Start()
		logger.Info("telegram bot started")
	}
	return nil
}

// Shutdown 停止定时任务与 telegram 机器人，并刷新未导出的 trace
func (r *MarketLensApp) Shutdown(ctx context.Context) error {
	components := r.GetComponents()
	if components == nil {
		return nil
	}
	components.Scheduler.Stop()
	if components.Telegram != nil {
		components.Telegram.Stop()
	}
	return components.Tracer.Shutdown(ctx)
}
