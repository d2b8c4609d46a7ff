package repo

import (
	"context"

	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
)

func NewWeeklyPlanRepo(db *gorm.DB) *WeeklyPlanRepo {
	return &WeeklyPlanRepo{
		Repository: orz.NewRepository[models.WeeklyPlan, string](db),
	}
}

type WeeklyPlanRepo struct {
	orz.Repository[models.WeeklyPlan, string]
}

// FindByUserAndKey 按周编号获取计划
func (r WeeklyPlanRepo) FindByUserAndKey(ctx context.Context, userID, key string) (m models.WeeklyPlan, err error) {
	err = r.GetDB(ctx).Where("user_id = ? AND plan_key = ?", userID, key).First(&m).Error
	return m, err
}

func NewDailyChecklistRepo(db *gorm.DB) *DailyChecklistRepo {
	return &DailyChecklistRepo{
		Repository: orz.NewRepository[models.DailyChecklist, string](db),
	}
}

type DailyChecklistRepo struct {
	orz.Repository[models.DailyChecklist, string]
}

// FindByUserAndKey 按日期获取检查清单
func (r DailyChecklistRepo) FindByUserAndKey(ctx context.Context, userID, key string) (m models.DailyChecklist, err error) {
	err = r.GetDB(ctx).Where("user_id = ? AND plan_key = ?", userID, key).First(&m).Error
	return m, err
}
