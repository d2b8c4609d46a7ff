package repo

import (
	"context"

	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
)

func NewPlaybookSetupRepo(db *gorm.DB) *PlaybookSetupRepo {
	return &PlaybookSetupRepo{
		Repository: orz.NewRepository[models.PlaybookSetup, string](db),
	}
}

type PlaybookSetupRepo struct {
	orz.Repository[models.PlaybookSetup, string]
}

func (r PlaybookSetupRepo) FindByUser(ctx context.Context, userID string) ([]models.PlaybookSetup, error) {
	var setups []models.PlaybookSetup
	err := r.GetDB(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&setups).Error
	return setups, err
}

func (r PlaybookSetupRepo) FindByUserAndID(ctx context.Context, userID, id string) (m models.PlaybookSetup, err error) {
	err = r.GetDB(ctx).Where("user_id = ? AND id = ?", userID, id).First(&m).Error
	return m, err
}
