package repo

import (
	"context"
	"slices"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/go-orz/orz"
	"gorm.io/gorm"
)

func NewTradeRepo(db *gorm.DB) *TradeRepo {
	return &TradeRepo{
		Repository: orz.NewRepository[models.Trade, string](db),
	}
}

type TradeRepo struct {
	orz.Repository[models.Trade, string]
}

// TradeFilter 交易查询条件，空值表示不过滤
type TradeFilter struct {
	AccountID string     `query:"account_id"`
	Asset     string     `query:"asset"`
	Setup     string     `query:"setup"`
	Status    string     `query:"status"`
	From      *time.Time `query:"from"`
	To        *time.Time `query:"to"`
}

// FindByUser 按条件查询用户的交易记录，按交易时间升序
func (r TradeRepo) FindByUser(ctx context.Context, userID string, filter TradeFilter) ([]models.Trade, error) {
	var trades []models.Trade
	db := r.GetDB(ctx).Table(r.GetTableName()).Where("user_id = ?", userID)
	if filter.Asset != "" {
		db = db.Where("asset = ?", filter.Asset)
	}
	if filter.Setup != "" {
		db = db.Where("setup = ?", filter.Setup)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		db = db.Where("traded_at >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("traded_at < ?", *filter.To)
	}
	err := db.Order("traded_at ASC").Find(&trades).Error
	if err != nil {
		return nil, err
	}
	// 账户存放在 JSON 列中，在内存中过滤
	if filter.AccountID != "" {
		trades = slices.DeleteFunc(trades, func(t models.Trade) bool {
			return !slices.Contains(t.AccountIDs, filter.AccountID)
		})
	}
	return trades, nil
}

// FindByUserAndID 获取属于用户的单条交易
func (r TradeRepo) FindByUserAndID(ctx context.Context, userID, id string) (m models.Trade, err error) {
	db := r.GetDB(ctx)
	err = db.Where("user_id = ? AND id = ?", userID, id).First(&m).Error
	return m, err
}
