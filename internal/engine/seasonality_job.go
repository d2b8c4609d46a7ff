package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/catalog"
	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/AntonioEsper/MarketLens/internal/service"
	"github.com/AntonioEsper/MarketLens/pkg/feed"
	"github.com/AntonioEsper/MarketLens/pkg/ta"
	"github.com/oklog/ulid/v2"
	"gonum.org/v1/gonum/stat"
)

const (
	// 约一个月的交易日
	seasonalityPeriod       = 21
	defaultSeasonalityYears = 15
)

// PriceHistory 日线收盘价来源
type PriceHistory interface {
	DailyCloses(ctx context.Context, asset catalog.Asset, from time.Time) ([]feed.PricePoint, error)
}

// SeasonalityStore 季节性统计存储
type SeasonalityStore interface {
	ReplaceAsset(ctx context.Context, asset string, stats []models.SeasonalityStat) error
}

// SeasonalityJob 由多年日线计算每个可交易品种各月份的收益分布
type SeasonalityJob struct {
	catalog *catalog.Catalog
	prices  PriceHistory
	store   SeasonalityStore
	years   int
	now     func() time.Time
}

func NewSeasonalityJob(cat *catalog.Catalog, prices PriceHistory, store SeasonalityStore, years int) *SeasonalityJob {
	if years <= 0 {
		years = defaultSeasonalityYears
	}
	return &SeasonalityJob{catalog: cat, prices: prices, store: store, years: years, now: time.Now}
}

func (j *SeasonalityJob) Name() string        { return JobSeasonality }
func (j *SeasonalityJob) CachePrefix() string { return service.CacheSeasonality }

// Run 参考序列（DXY、VIX 等）不参与统计
func (j *SeasonalityJob) Run(ctx context.Context, report Reporter) (Stats, error) {
	assets := j.catalog.Tradable()
	from := j.now().AddDate(-j.years, 0, 0)

	stats := Stats{Total: len(assets)}
	for i, asset := range assets {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		months, err := j.refresh(ctx, asset, from)
		if err != nil {
			stats.Failed++
			report(i+1, stats.Total, LevelWarn, fmt.Sprintf("%s: %v", asset.Name, err))
			continue
		}
		stats.Succeeded++
		report(i+1, stats.Total, LevelInfo, fmt.Sprintf("%s: %d months", asset.Name, months))
	}
	return stats, nil
}

func (j *SeasonalityJob) refresh(ctx context.Context, asset catalog.Asset, from time.Time) (int, error) {
	points, err := j.prices.DailyCloses(ctx, asset, from)
	if err != nil {
		return 0, err
	}
	table := BuildSeasonality(asset.Name, points)
	if len(table) == 0 {
		return 0, errors.New("not enough price history")
	}
	return len(table), j.store.ReplaceAsset(ctx, asset.Name, table)
}

// BuildSeasonality 计算 21 期百分比变化并按所在月份分组，得到均值、标准差与上涨占比
func BuildSeasonality(asset string, points []feed.PricePoint) []models.SeasonalityStat {
	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}
	changes := ta.PctChange(closes, seasonalityPeriod)

	byMonth := make(map[time.Month][]float64)
	for i := seasonalityPeriod; i < len(changes); i++ {
		if closes[i-seasonalityPeriod] == 0 || math.IsNaN(changes[i]) {
			continue
		}
		month := points[i].Time.Month()
		byMonth[month] = append(byMonth[month], changes[i])
	}

	var table []models.SeasonalityStat
	for month := time.January; month <= time.December; month++ {
		samples := byMonth[month]
		if len(samples) == 0 {
			continue
		}
		mean, std := stat.MeanStdDev(samples, nil)
		if math.IsNaN(std) {
			std = 0
		}
		positive := 0
		for _, v := range samples {
			if v > 0 {
				positive++
			}
		}
		table = append(table, models.SeasonalityStat{
			ID:          ulid.Make().String(),
			Asset:       asset,
			Month:       int(month),
			MeanReturn:  mean,
			StdDev:      std,
			PositivePct: float64(positive) / float64(len(samples)) * 100,
			Samples:     len(samples),
		})
	}
	return table
}
