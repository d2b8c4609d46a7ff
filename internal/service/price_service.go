package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/catalog"
	"github.com/AntonioEsper/MarketLens/pkg/feed"
)

// PriceService 按品种选择日线数据来源，加密货币走币安，其余走雅虎
type PriceService struct {
	yahoo   feed.PriceSource
	binance feed.PriceSource
}

func NewPriceService(yahoo *feed.YahooClient, binance *feed.BinanceClient) *PriceService {
	return &PriceService{yahoo: yahoo, binance: binance}
}

// DailyCloses 获取品种自 from 起的日线收盘价
func (s *PriceService) DailyCloses(ctx context.Context, asset catalog.Asset, from time.Time) ([]feed.PricePoint, error) {
	switch {
	case asset.Binance != "":
		return s.binance.DailyCloses(ctx, asset.Binance, from)
	case asset.Yahoo != "":
		return s.yahoo.DailyCloses(ctx, asset.Yahoo, from)
	default:
		return nil, fmt.Errorf("asset %s has no price source", asset.Name)
	}
}
