package repo

import (
	"context"

	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
)

func NewTradingAccountRepo(db *gorm.DB) *TradingAccountRepo {
	return &TradingAccountRepo{
		Repository: orz.NewRepository[models.TradingAccount, string](db),
	}
}

type TradingAccountRepo struct {
	orz.Repository[models.TradingAccount, string]
}

// FindByUser 获取用户的所有账户
func (r TradingAccountRepo) FindByUser(ctx context.Context, userID string) ([]models.TradingAccount, error) {
	var accounts []models.TradingAccount
	err := r.GetDB(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&accounts).Error
	return accounts, err
}

// FindByUserAndIDs 获取用户指定的账户
func (r TradingAccountRepo) FindByUserAndIDs(ctx context.Context, userID string, ids []string) ([]models.TradingAccount, error) {
	var accounts []models.TradingAccount
	err := r.GetDB(ctx).Where("user_id = ? AND id IN ?", userID, ids).Find(&accounts).Error
	return accounts, err
}

// FindByUserAndID 获取属于用户的单个账户
func (r TradingAccountRepo) FindByUserAndID(ctx context.Context, userID, id string) (m models.TradingAccount, err error) {
	err = r.GetDB(ctx).Where("user_id = ? AND id = ?", userID, id).First(&m).Error
	return m, err
}
