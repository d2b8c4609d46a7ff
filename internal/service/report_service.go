package service

import (
	"context"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/config"
	"github.com/AntonioEsper/MarketLens/internal/repo"
	"github.com/AntonioEsper/MarketLens/internal/reporting"
	"github.com/AntonioEsper/MarketLens/internal/trace"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReportService 业绩报表服务
type ReportService struct {
	logger *zap.Logger

	tradeRepo      *repo.TradeRepo
	profileService *ProfileService
	tracer         *trace.Tracer

	location    *time.Location
	recentLimit int
	now         func() time.Time
}

// NewReportService 创建报表服务，配置的时区无效时使用 UTC
func NewReportService(db *gorm.DB, profileService *ProfileService, tracer *trace.Tracer, conf *config.Config, logger *zap.Logger) *ReportService {
	location := time.UTC
	if tz := conf.Reporting.Timezone; tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			logger.Warn("invalid reporting timezone, falling back to UTC", zap.String("timezone", tz), zap.Error(err))
		} else {
			location = loc
		}
	}
	return &ReportService{
		logger:         logger,
		tradeRepo:      repo.NewTradeRepo(db),
		profileService: profileService,
		tracer:         tracer,
		location:       location,
		recentLimit:    conf.Reporting.RecentLimit,
		now:            time.Now,
	}
}

// Dashboard 按条件统计用户的交易业绩，时区优先使用用户资料中的设置
func (s *ReportService) Dashboard(ctx context.Context, userID string, filter repo.TradeFilter) (*reporting.Report, error) {
	ctx, span := s.tracer.Start(ctx, "report.dashboard", attribute.String("user_id", userID))
	defer span.End()

	trades, err := s.tradeRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	records := make([]reporting.Trade, 0, len(trades))
	for _, t := range trades {
		records = append(records, ToReporting(t))
	}

	location := s.location
	if loc := s.profileService.Location(ctx, userID); loc != nil {
		location = loc
	}

	report := reporting.Aggregate(records, reporting.Options{
		Now:         s.now(),
		Location:    location,
		RecentLimit: s.recentLimit,
	})
	span.SetAttributes(attribute.Int("trades", len(records)), attribute.Int("eligible", report.TotalTrades))

	fields := append([]zap.Field{
		zap.String("user_id", userID),
		zap.Int("records", len(records)),
		zap.Int("eligible", report.TotalTrades),
	}, trace.Fields(ctx)...)
	s.logger.Debug("dashboard report computed", fields...)
	return &report, nil
}
