package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonioEsper/MarketLens/internal/catalog"
	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/AntonioEsper/MarketLens/internal/service"
	"github.com/AntonioEsper/MarketLens/pkg/feed"
	"github.com/oklog/ulid/v2"
)

const cotReportLimit = 52

// CotSource CFTC 持仓报告来源
type CotSource interface {
	LegacyReports(ctx context.Context, contractCode string, limit int) ([]feed.CotRecord, error)
}

// CotStore 持仓报告存储
type CotStore interface {
	Upsert(ctx context.Context, reports []models.CotReport) error
}

// CotJob 拉取目录中有 CFTC 合约代码的品种最近一年的持仓报告
type CotJob struct {
	catalog *catalog.Catalog
	source  CotSource
	store   CotStore
}

func NewCotJob(cat *catalog.Catalog, source CotSource, store CotStore) *CotJob {
	return &CotJob{catalog: cat, source: source, store: store}
}

func (j *CotJob) Name() string        { return JobCot }
func (j *CotJob) CachePrefix() string { return service.CachePositioning }

func (j *CotJob) Run(ctx context.Context, report Reporter) (Stats, error) {
	var assets []catalog.Asset
	for _, a := range j.catalog.Assets {
		if a.Cot != "" {
			assets = append(assets, a)
		}
	}

	stats := Stats{Total: len(assets)}
	for i, asset := range assets {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		n, err := j.refresh(ctx, asset)
		if err != nil {
			stats.Failed++
			report(i+1, stats.Total, LevelWarn, fmt.Sprintf("%s: %v", asset.Name, err))
			continue
		}
		stats.Succeeded++
		report(i+1, stats.Total, LevelInfo, fmt.Sprintf("%s: %d reports", asset.Name, n))
	}
	return stats, nil
}

func (j *CotJob) refresh(ctx context.Context, asset catalog.Asset) (int, error) {
	records, err := j.source.LegacyReports(ctx, asset.Cot, cotReportLimit)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, errors.New("no reports returned")
	}
	reports := make([]models.CotReport, 0, len(records))
	for _, r := range records {
		reports = append(reports, models.CotReport{
			ID:           ulid.Make().String(),
			Asset:        asset.Name,
			ContractCode: asset.Cot,
			ReportDate:   r.ReportDate,
			NonCommLong:  r.NonCommLong,
			NonCommShort: r.NonCommShort,
			CommLong:     r.CommLong,
			CommShort:    r.CommShort,
			OpenInterest: r.OpenInterest,
		})
	}
	return len(reports), j.store.Upsert(ctx, reports)
}
