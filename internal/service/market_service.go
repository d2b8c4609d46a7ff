package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/catalog"
	"github.com/AntonioEsper/MarketLens/internal/config"
	"github.com/AntonioEsper/MarketLens/internal/repo"
	"github.com/AntonioEsper/MarketLens/internal/scoring"
	"github.com/AntonioEsper/MarketLens/internal/trace"
	"github.com/AntonioEsper/MarketLens/internal/xe"
	"github.com/AntonioEsper/MarketLens/pkg/feed"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	defaultCacheTTL       = time.Hour
	defaultScannerWorkers = 4
	riskGaugeLookback     = 60 * 24 * time.Hour
)

// 缓存 key 前缀，数据任务完成后按前缀失效
const (
	CachePositioning = "positioning:"
	CacheSeasonality = "seasonality:"
	CacheEconomic    = "economic:"
	CachePrices      = "prices:"
)

// MarketService 市场背景数据服务，为评分引擎提供持仓、季节性与经济指标数据
type MarketService struct {
	logger *zap.Logger

	catalog *catalog.Catalog
	prices  *PriceService
	engine  *scoring.Engine
	tracer  *trace.Tracer
	workers int

	cotRepo         *repo.CotReportRepo
	seasonalityRepo *repo.SeasonalityStatRepo
	economicRepo    *repo.EconomicObservationRepo

	positioningCache *feed.Cache[[]scoring.PositioningReport]
	seasonalityCache *feed.Cache[[]scoring.MonthlyReturn]
	economicCache    *feed.Cache[[]scoring.Observation]
	priceCache       *feed.Cache[[]float64]
}

var (
	_ scoring.PositioningSource = (*MarketService)(nil)
	_ scoring.SeasonalitySource = (*MarketService)(nil)
	_ scoring.EconomicSource    = (*MarketService)(nil)
)

// NewMarketService 创建市场背景数据服务
func NewMarketService(db *gorm.DB, cat *catalog.Catalog, prices *PriceService, tracer *trace.Tracer, conf *config.Config, logger *zap.Logger) *MarketService {
	ttl := defaultCacheTTL
	if conf.Scoring.CacheTTLMinutes > 0 {
		ttl = time.Duration(conf.Scoring.CacheTTLMinutes) * time.Minute
	}
	workers := conf.Scoring.ScannerWorkers
	if workers <= 0 {
		workers = defaultScannerWorkers
	}

	s := &MarketService{
		logger:           logger,
		catalog:          cat,
		prices:           prices,
		tracer:           tracer,
		workers:          workers,
		cotRepo:          repo.NewCotReportRepo(db),
		seasonalityRepo:  repo.NewSeasonalityStatRepo(db),
		economicRepo:     repo.NewEconomicObservationRepo(db),
		positioningCache: feed.NewCache[[]scoring.PositioningReport](ttl),
		seasonalityCache: feed.NewCache[[]scoring.MonthlyReturn](ttl),
		economicCache:    feed.NewCache[[]scoring.Observation](ttl),
		priceCache:       feed.NewCache[[]float64](ttl),
	}
	s.engine = scoring.NewEngine(s, s, s, scoring.WithCurrencyResolver(cat.CurrencyOf))
	return s
}

// PositioningHistory 品种的 COT 非商业持仓，按报告日期升序
func (s *MarketService) PositioningHistory(ctx context.Context, asset string) ([]scoring.PositioningReport, error) {
	return s.positioningCache.GetOrLoad(ctx, CachePositioning+asset, func(ctx context.Context) ([]scoring.PositioningReport, error) {
		reports, err := s.cotRepo.FindByAsset(ctx, asset)
		if err != nil {
			return nil, err
		}
		history := make([]scoring.PositioningReport, 0, len(reports))
		for _, r := range reports {
			history = append(history, scoring.PositioningReport{
				Date:  r.ReportDate,
				Long:  r.NonCommLong,
				Short: r.NonCommShort,
			})
		}
		return history, nil
	})
}

func (s *MarketService) SeasonalityTable(ctx context.Context, asset string) ([]scoring.MonthlyReturn, error) {
	return s.seasonalityCache.GetOrLoad(ctx, CacheSeasonality+asset, func(ctx context.Context) ([]scoring.MonthlyReturn, error) {
		stats, err := s.seasonalityRepo.FindByAsset(ctx, asset)
		if err != nil {
			return nil, err
		}
		table := make([]scoring.MonthlyReturn, 0, len(stats))
		for _, st := range stats {
			table = append(table, scoring.MonthlyReturn{
				Month:       time.Month(st.Month),
				MeanReturn:  st.MeanReturn,
				StdDev:      st.StdDev,
				PositivePct: st.PositivePct,
			})
		}
		return table, nil
	})
}

func (s *MarketService) Indicators(_ context.Context, currency string) ([]scoring.Indicator, error) {
	return s.catalog.IndicatorsFor(currency), nil
}

func (s *MarketService) Observations(ctx context.Context, indicatorID string) ([]scoring.Observation, error) {
	return s.economicCache.GetOrLoad(ctx, CacheEconomic+indicatorID, func(ctx context.Context) ([]scoring.Observation, error) {
		rows, err := s.economicRepo.FindBySeries(ctx, indicatorID)
		if err != nil {
			return nil, err
		}
		observations := make([]scoring.Observation, 0, len(rows))
		for _, r := range rows {
			observations = append(observations, scoring.Observation{Date: r.Date, Value: r.Value})
		}
		return observations, nil
	})
}

// Invalidate 使指定前缀的缓存失效，prefix 为空时全部失效
func (s *MarketService) Invalidate(prefix string) int {
	removed := s.positioningCache.InvalidatePrefix(prefix) +
		s.seasonalityCache.InvalidatePrefix(prefix) +
		s.economicCache.InvalidatePrefix(prefix) +
		s.priceCache.InvalidatePrefix(prefix)
	s.logger.Debug("market cache invalidated", zap.String("prefix", prefix), zap.Int("removed", removed))
	return removed
}

// ScoreAsset 计算目录中某个品种的综合评分
func (s *MarketService) ScoreAsset(ctx context.Context, name string) (*scoring.Result, error) {
	if _, ok := s.catalog.Asset(name); !ok {
		return nil, xe.ErrNotFound
	}
	ctx, span := s.tracer.Start(ctx, "market.score", attribute.String("asset", name))
	defer span.End()

	result := s.engine.ScoreAsset(ctx, name)
	span.SetAttributes(attribute.Float64("final_score", result.FinalScore))
	return &result, nil
}

// Scanner 对目录中所有可交易品种评分，按总分降序，category 为空时不过滤
func (s *MarketService) Scanner(ctx context.Context, category string) ([]scoring.Result, error) {
	var assets []catalog.Asset
	for _, a := range s.catalog.Tradable() {
		if category == "" || a.Category == category {
			assets = append(assets, a)
		}
	}

	results := make([]scoring.Result, len(assets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, a := range assets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.engine.ScoreAsset(ctx, a.Name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(results, func(a, b scoring.Result) int {
		switch {
		case a.FinalScore > b.FinalScore:
			return -1
		case a.FinalScore < b.FinalScore:
			return 1
		}
		return 0
	})
	return results, nil
}

// RiskGauge 由 VIX 与 DXY 日线计算全球风险偏好，数据获取失败时为 Undetermined
func (s *MarketService) RiskGauge(ctx context.Context) scoring.RiskGauge {
	vix, vixErr := s.closes(ctx, "VIX")
	dxy, dxyErr := s.closes(ctx, "DXY")
	if err := errors.Join(vixErr, dxyErr); err != nil {
		s.logger.Warn("risk gauge data unavailable", zap.Error(err))
		return scoring.RiskGauge{Regime: scoring.Undetermined}
	}
	return scoring.GlobalRiskGauge(vix, dxy)
}

func (s *MarketService) closes(ctx context.Context, name string) ([]float64, error) {
	asset, ok := s.catalog.Asset(name)
	if !ok {
		return nil, xe.ErrNotFound
	}
	return s.priceCache.GetOrLoad(ctx, CachePrices+name, func(ctx context.Context) ([]float64, error) {
		points, err := s.prices.DailyCloses(ctx, asset, time.Now().Add(-riskGaugeLookback))
		if err != nil {
			return nil, err
		}
		values := make([]float64, 0, len(points))
		for _, p := range points {
			values = append(values, p.Close)
		}
		return values, nil
	})
}

// Heatmap 某个货币所有经济指标的动量，数据不足的指标不返回
func (s *MarketService) Heatmap(ctx context.Context, currency string) ([]scoring.HeatmapRow, error) {
	currency = strings.ToUpper(currency)
	indicators, err := s.Indicators(ctx, currency)
	if err != nil {
		return nil, err
	}
	if len(indicators) == 0 {
		return nil, xe.ErrNotFound
	}

	rows := make([]scoring.HeatmapRow, 0, len(indicators))
	for _, indicator := range indicators {
		observations, err := s.Observations(ctx, indicator.ID)
		if err != nil {
			return nil, err
		}
		if row, ok := scoring.HeatmapRowFor(indicator, observations); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
