package feed

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// 传统期货持仓报告（Legacy - Futures Only）
const cftcBaseURL = "https://publicreporting.cftc.gov/resource/6dca-aqww.json"

// CftcClient CFTC 公开报告接口
type CftcClient struct {
	client  *JSONClient
	baseURL string
}

func NewCftcClient(client *JSONClient) *CftcClient {
	return &CftcClient{client: client, baseURL: cftcBaseURL}
}

type cftcRow struct {
	ReportDate   string `json:"report_date_as_yyyy_mm_dd"`
	ContractCode string `json:"cftc_contract_market_code"`
	MarketName   string `json:"market_and_exchange_names"`
	NonCommLong  string `json:"noncomm_positions_long_all"`
	NonCommShort string `json:"noncomm_positions_short_all"`
	CommLong     string `json:"comm_positions_long_all"`
	CommShort    string `json:"comm_positions_short_all"`
	OpenInterest string `json:"open_interest_all"`
}

// LegacyReports 获取合约最近 limit 期报告，按日期升序
func (c *CftcClient) LegacyReports(ctx context.Context, contractCode string, limit int) ([]CotRecord, error) {
	query := url.Values{}
	query.Set("$where", fmt.Sprintf("cftc_contract_market_code='%s'", contractCode))
	query.Set("$order", "report_date_as_yyyy_mm_dd DESC")
	query.Set("$limit", strconv.Itoa(limit))

	var rows []cftcRow
	if err := c.client.GetJSON(ctx, c.baseURL, query, &rows); err != nil {
		return nil, fmt.Errorf("cftc %s: %w", contractCode, err)
	}

	records := make([]CotRecord, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		date, err := parseSocrataDate(row.ReportDate)
		if err != nil {
			continue
		}
		records = append(records, CotRecord{
			ReportDate:   date,
			ContractCode: row.ContractCode,
			MarketName:   row.MarketName,
			NonCommLong:  cast.ToFloat64(row.NonCommLong),
			NonCommShort: cast.ToFloat64(row.NonCommShort),
			CommLong:     cast.ToFloat64(row.CommLong),
			CommShort:    cast.ToFloat64(row.CommShort),
			OpenInterest: cast.ToFloat64(row.OpenInterest),
		})
	}
	return records, nil
}

// parseSocrataDate 形如 2024-03-05T00:00:00.000
func parseSocrataDate(s string) (time.Time, error) {
	if day, _, ok := strings.Cut(s, "T"); ok {
		s = day
	}
	return time.Parse(time.DateOnly, s)
}
