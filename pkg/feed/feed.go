package feed

import (
	"context"
	"time"
)

// PricePoint 日线收盘价
type PricePoint struct {
	Time  time.Time
	Close float64
}

// PriceSource 历史价格来源
type PriceSource interface {
	DailyCloses(ctx context.Context, ticker string, from time.Time) ([]PricePoint, error)
}

// Observation 经济指标观测值
type Observation struct {
	Date  time.Time
	Value float64
}

// CotRecord CFTC 传统期货报告中的一行
type CotRecord struct {
	ReportDate   time.Time
	ContractCode string
	MarketName   string
	NonCommLong  float64
	NonCommShort float64
	CommLong     float64
	CommShort    float64
	OpenInterest float64
}
