package repo

import (
	"context"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewCotReportRepo(db *gorm.DB) *CotReportRepo {
	return &CotReportRepo{
		Repository: orz.NewRepository[models.CotReport, string](db),
	}
}

type CotReportRepo struct {
	orz.Repository[models.CotReport, string]
}

// FindByAsset 获取品种的持仓报告，按报告日期升序
func (r CotReportRepo) FindByAsset(ctx context.Context, asset string) ([]models.CotReport, error) {
	var reports []models.CotReport
	err := r.GetDB(ctx).Where("asset = ?", asset).Order("report_date ASC").Find(&reports).Error
	return reports, err
}

// Upsert 按品种和报告日期写入，已存在时更新持仓数据
func (r CotReportRepo) Upsert(ctx context.Context, reports []models.CotReport) error {
	if len(reports) == 0 {
		return nil
	}
	return r.GetDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset"}, {Name: "report_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"contract_code", "non_comm_long", "non_comm_short", "comm_long", "comm_short", "open_interest"}),
	}).Create(&reports).Error
}

func NewSeasonalityStatRepo(db *gorm.DB) *SeasonalityStatRepo {
	return &SeasonalityStatRepo{
		Repository: orz.NewRepository[models.SeasonalityStat, string](db),
	}
}

type SeasonalityStatRepo struct {
	orz.Repository[models.SeasonalityStat, string]
}

// FindByAsset 获取品种的月度统计，按月份排序
func (r SeasonalityStatRepo) FindByAsset(ctx context.Context, asset string) ([]models.SeasonalityStat, error) {
	var stats []models.SeasonalityStat
	err := r.GetDB(ctx).Where("asset = ?", asset).Order("month ASC").Find(&stats).Error
	return stats, err
}

// ReplaceAsset 用新的统计替换品种的全部月度数据
func (r SeasonalityStatRepo) ReplaceAsset(ctx context.Context, asset string, stats []models.SeasonalityStat) error {
	return r.GetDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset = ?", asset).Delete(&models.SeasonalityStat{}).Error; err != nil {
			return err
		}
		if len(stats) == 0 {
			return nil
		}
		return tx.Create(&stats).Error
	})
}

func NewEconomicObservationRepo(db *gorm.DB) *EconomicObservationRepo {
	return &EconomicObservationRepo{
		Repository: orz.NewRepository[models.EconomicObservation, string](db),
	}
}

type EconomicObservationRepo struct {
	orz.Repository[models.EconomicObservation, string]
}

// FindBySeries 获取指标的全部观测值，按日期升序
func (r EconomicObservationRepo) FindBySeries(ctx context.Context, seriesID string) ([]models.EconomicObservation, error) {
	var observations []models.EconomicObservation
	err := r.GetDB(ctx).Where("series_id = ?", seriesID).Order("date ASC").Find(&observations).Error
	return observations, err
}

// Upsert 按指标和日期写入，已存在时更新数值
func (r EconomicObservationRepo) Upsert(ctx context.Context, observations []models.EconomicObservation) error {
	if len(observations) == 0 {
		return nil
	}
	return r.GetDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "series_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).CreateInBatches(&observations, 500).Error
}

func NewRefreshRunRepo(db *gorm.DB) *RefreshRunRepo {
	return &RefreshRunRepo{
		Repository: orz.NewRepository[models.RefreshRun, string](db),
	}
}

type RefreshRunRepo struct {
	orz.Repository[models.RefreshRun, string]
}

// FindRecent 获取最近的任务记录，job 为空时返回所有任务
func (r RefreshRunRepo) FindRecent(ctx context.Context, job string, limit int) ([]models.RefreshRun, error) {
	var runs []models.RefreshRun
	db := r.GetDB(ctx).Table(r.GetTableName())
	if job != "" {
		db = db.Where("job = ?", job)
	}
	err := db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// Finish 记录任务结束状态
func (r RefreshRunRepo) Finish(ctx context.Context, run *models.RefreshRun, status, message string) error {
	now := time.Now()
	run.Status = status
	run.Message = message
	run.FinishedAt = &now
	return r.Save(ctx, run)
}
