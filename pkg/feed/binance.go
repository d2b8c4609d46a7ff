package feed

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2/futures"
)

const binanceKlineLimit = 1500

// BinanceClient Binance 期货K线，用于加密货币的历史价格
type BinanceClient struct {
	client *futures.Client
}

// NewBinanceClient 行情接口不需要密钥，apiKey 可为空
func NewBinanceClient(apiKey, secretKey, proxyURL string) *BinanceClient {
	var client *futures.Client
	if proxyURL != "" {
		client = futures.NewProxiedClient(apiKey, secretKey, proxyURL)
	} else {
		client = futures.NewClient(apiKey, secretKey)
	}
	return &BinanceClient{client: client}
}

// Kline K线数据
type Kline struct {
	OpenTime  time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	CloseTime time.Time
}

// GetKlines 获取 startTime 起的K线
func (b *BinanceClient) GetKlines(ctx context.Context, symbol string, interval string, startTime time.Time, limit int) ([]*Kline, error) {
	klines, err := b.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		StartTime(startTime.UnixMilli()).
		Limit(limit).
		Do(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to get klines: %w", err)
	}

	result := make([]*Kline, 0, len(klines))
	for _, k := range klines {
		open, _ := strconv.ParseFloat(k.Open, 64)
		high, _ := strconv.ParseFloat(k.High, 64)
		low, _ := strconv.ParseFloat(k.Low, 64)
		close, _ := strconv.ParseFloat(k.Close, 64)
		volume, _ := strconv.ParseFloat(k.Volume, 64)

		result = append(result, &Kline{
			OpenTime:  time.UnixMilli(k.OpenTime).UTC(),
			Open:      open,
			High:      high,
			Low:       low,
			Close:     close,
			Volume:    volume,
			CloseTime: time.UnixMilli(k.CloseTime).UTC(),
		})
	}

	return result, nil
}

// DailyCloses 分页拉取 from 之后的日线收盘价
func (b *BinanceClient) DailyCloses(ctx context.Context, symbol string, from time.Time) ([]PricePoint, error) {
	var points []PricePoint
	start := from
	for {
		klines, err := b.GetKlines(ctx, symbol, "1d", start, binanceKlineLimit)
		if err != nil {
			return nil, err
		}
		for _, k := range klines {
			points = append(points, PricePoint{Time: k.OpenTime, Close: k.Close})
		}
		if len(klines) < binanceKlineLimit {
			return points, nil
		}
		start = klines[len(klines)-1].CloseTime.Add(time.Millisecond)
	}
}
