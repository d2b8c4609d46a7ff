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

// ObservationSource 经济指标来源
type ObservationSource interface {
	Observations(ctx context.Context, seriesID string) ([]feed.Observation, error)
}

// ObservationStore 经济指标存储
type ObservationStore interface {
	Upsert(ctx context.Context, observations []models.EconomicObservation) error
}

// EconomicJob 拉取目录中全部经济指标的历史数据
type EconomicJob struct {
	catalog *catalog.Catalog
	source  ObservationSource
	store   ObservationStore
	enabled bool
}

// NewEconomicJob enabled 为 false（未配置 FRED 密钥）时任务直接失败
func NewEconomicJob(cat *catalog.Catalog, source ObservationSource, store ObservationStore, enabled bool) *EconomicJob {
	return &EconomicJob{catalog: cat, source: source, store: store, enabled: enabled}
}

func (j *EconomicJob) Name() string        { return JobEconomic }
func (j *EconomicJob) CachePrefix() string { return service.CacheEconomic }

func (j *EconomicJob) Run(ctx context.Context, report Reporter) (Stats, error) {
	if !j.enabled {
		return Stats{}, errors.New("fred api key not configured")
	}

	stats := Stats{Total: len(j.catalog.Indicators)}
	for i, indicator := range j.catalog.Indicators {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		observations, err := j.source.Observations(ctx, indicator.ID)
		if err == nil && len(observations) == 0 {
			err = errors.New("no observations returned")
		}
		if err == nil {
			err = j.store.Upsert(ctx, toEconomicObservations(indicator.ID, observations))
		}
		if err != nil {
			stats.Failed++
			report(i+1, stats.Total, LevelWarn, fmt.Sprintf("%s: %v", indicator.ID, err))
			continue
		}
		stats.Succeeded++
		report(i+1, stats.Total, LevelInfo, fmt.Sprintf("%s: %d observations", indicator.ID, len(observations)))
	}
	return stats, nil
}

func toEconomicObservations(seriesID string, observations []feed.Observation) []models.EconomicObservation {
	rows := make([]models.EconomicObservation, 0, len(observations))
	for _, o := range observations {
		rows = append(rows, models.EconomicObservation{
			ID:       ulid.Make().String(),
			SeriesID: seriesID,
			Date:     o.Date,
			Value:    o.Value,
		})
	}
	return rows
}
