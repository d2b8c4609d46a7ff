//go:build wireinject
// +build wireinject

package internal

import (
	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AntonioEsper/MarketLens/internal/config"
	"github.com/AntonioEsper/MarketLens/internal/engine"
	"github.com/AntonioEsper/MarketLens/internal/handler"
	"github.com/AntonioEsper/MarketLens/internal/service"
)

var (
	handlerSet = wire.NewSet(
		handler.NewAccountHandler,
		handler.NewJournalHandler,
		handler.NewSetupHandler,
		handler.NewPlanHandler,
		handler.NewProfileHandler,
		handler.NewReportHandler,
		handler.NewMarketHandler,
		handler.NewEngineHandler,
	)

	serviceSet = wire.NewSet(
		service.NewAuthService,
		service.NewAccountService,
		service.NewJournalService,
		service.NewSetupService,
		service.NewPlanService,
		service.NewProfileService,
		service.NewReportService,
		service.NewReviewService,
		service.NewPriceService,
		service.NewMarketService,
		provideCompleter,
	)

	feedSet = wire.NewSet(
		provideCatalog,
		provideTracer,
		provideJSONClient,
		provideYahooClient,
		provideCftcClient,
		provideFredClient,
		provideBinanceClient,
	)

	engineSet = wire.NewSet(
		provideJobs,
		provideInvalidator,
		provideNotifier,
		engine.NewRunner,
		engine.NewScheduler,
	)
)

// InitializeApp 初始化应用
func InitializeApp(logger *zap.Logger, db *gorm.DB, conf *config.Config) (*AppComponents, error) {
	wire.Build(
		handlerSet,
		serviceSet,
		feedSet,
		engineSet,
		provideTelegram,
		wire.Struct(new(AppComponents), "*"),
	)
	return nil, nil
}
