package feed

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// YahooClient 雅虎财经日线数据
type YahooClient struct {
	client  *JSONClient
	baseURL string
}

func NewYahooClient(client *JSONClient) *YahooClient {
	return &YahooClient{client: client, baseURL: yahooChartURL}
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyCloses 获取 from 之后的日线收盘价，空值被跳过
func (y *YahooClient) DailyCloses(ctx context.Context, ticker string, from time.Time) ([]PricePoint, error) {
	query := url.Values{}
	query.Set("period1", strconv.FormatInt(from.Unix(), 10))
	query.Set("period2", strconv.FormatInt(time.Now().Unix(), 10))
	query.Set("interval", "1d")

	var resp yahooChartResponse
	if err := y.client.GetJSON(ctx, y.baseURL+url.PathEscape(ticker), query, &resp); err != nil {
		return nil, fmt.Errorf("yahoo %s: %w", ticker, err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo %s: %s", ticker, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := resp.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close
	points := make([]PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, PricePoint{Time: time.Unix(ts, 0).UTC(), Close: *closes[i]})
	}
	return points, nil
}
