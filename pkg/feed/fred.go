package feed

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const fredBaseURL = "https://api.stlouisfed.org/fred/series/observations"

// FredClient 圣路易斯联储 FRED 数据接口
type FredClient struct {
	client  *JSONClient
	apiKey  string
	baseURL string
}

func NewFredClient(client *JSONClient, apiKey string) *FredClient {
	return &FredClient{client: client, apiKey: apiKey, baseURL: fredBaseURL}
}

type fredResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// Observations 获取指标全部历史观测值，缺失值（"."）被跳过
func (f *FredClient) Observations(ctx context.Context, seriesID string) ([]Observation, error) {
	if f.apiKey == "" {
		return nil, fmt.Errorf("fred api key not configured")
	}
	query := url.Values{}
	query.Set("series_id", seriesID)
	query.Set("api_key", f.apiKey)
	query.Set("file_type", "json")

	var resp fredResponse
	if err := f.client.GetJSON(ctx, f.baseURL, query, &resp); err != nil {
		return nil, fmt.Errorf("fred %s: %w", seriesID, err)
	}

	observations := make([]Observation, 0, len(resp.Observations))
	for _, o := range resp.Observations {
		value, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			continue
		}
		date, err := time.Parse(time.DateOnly, o.Date)
		if err != nil {
			continue
		}
		observations = append(observations, Observation{Date: date, Value: value})
	}
	return observations, nil
}
