package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/AntonioEsper/MarketLens/internal/repo"
	"github.com/AntonioEsper/MarketLens/internal/xe"
	"github.com/gocarina/gocsv"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const csvAccountSeparator = ";"

// tradeCSVRow CSV 中的一行交易，数值列保留原始文本以便报告出错的行号
type tradeCSVRow struct {
	ID          string `csv:"id"`
	TradedAt    string `csv:"traded_at"`
	Asset       string `csv:"asset"`
	Direction   string `csv:"direction"`
	Status      string `csv:"status"`
	EntryPrice  string `csv:"entry_price"`
	StopPrice   string `csv:"stop_price"`
	TargetPrice string `csv:"target_price"`
	ExitPrice   string `csv:"exit_price"`
	RiskPercent string `csv:"risk_percent"`
	RiskAmount  string `csv:"risk_amount"`
	Currency    string `csv:"currency"`
	Accounts    string `csv:"accounts"`
	Setup       string `csv:"setup"`
	Notes       string `csv:"notes"`
	RMultiple   string `csv:"r_multiple"`
	PnL         string `csv:"pnl"`
}

// ImportResult CSV 导入结果
type ImportResult struct {
	Imported int `json:"imported"`
}

// ImportCSV 导入交易，任意一行无效时整体回滚。accounts 列为空时使用 defaultAccountIDs
func (s *JournalService) ImportCSV(ctx context.Context, userID string, defaultAccountIDs []string, data []byte) (*ImportResult, error) {
	var rows []tradeCSVRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", xe.ErrInvalidCSV, err)
	}

	requests := make([]TradeRequest, 0, len(rows))
	for i, row := range rows {
		// 第1行为表头
		req, err := row.toRequest(defaultAccountIDs)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", xe.ErrInvalidCSV, i+2, err)
		}
		// 与 API 请求使用同一套校验规则
		if err := s.validate.Validate(req); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", xe.ErrInvalidCSV, i+2, err)
		}
		requests = append(requests, req)
	}

	err := s.Transaction(ctx, func(ctx context.Context) error {
		for i, req := range requests {
			risk, err := s.CalculateRisk(ctx, userID, req.AccountIDs, req.RiskPercent)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+2, err)
			}
			trade := &models.Trade{ID: ulid.Make().String(), UserID: userID}
			applyTradeRequest(trade, req, risk)
			if err := s.tradeRepo.Create(ctx, trade); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("trades imported", zap.String("user_id", userID), zap.Int("count", len(requests)))
	return &ImportResult{Imported: len(requests)}, nil
}

func (row tradeCSVRow) toRequest(defaultAccountIDs []string) (TradeRequest, error) {
	req := TradeRequest{
		Asset:     strings.TrimSpace(row.Asset),
		Direction: strings.ToLower(strings.TrimSpace(row.Direction)),
		Status:    strings.ToLower(strings.TrimSpace(row.Status)),
		Setup:     strings.TrimSpace(row.Setup),
		Notes:     row.Notes,
	}
	if req.Asset == "" {
		return req, fmt.Errorf("asset is required")
	}
	if req.Direction != models.DirectionLong && req.Direction != models.DirectionShort {
		return req, fmt.Errorf("invalid direction %q", row.Direction)
	}
	switch req.Status {
	case "":
		req.Status = models.TradeStatusFinalized
	case models.TradeStatusPending, models.TradeStatusOpen, models.TradeStatusFinalized:
	default:
		return req, fmt.Errorf("invalid status %q", row.Status)
	}

	tradedAt, err := cast.ToTimeE(strings.TrimSpace(row.TradedAt))
	if err != nil {
		return req, fmt.Errorf("traded_at: %w", err)
	}
	req.TradedAt = tradedAt

	if req.EntryPrice, err = parseCSVNumber("entry_price", row.EntryPrice); err != nil {
		return req, err
	}
	riskPercent, err := parseOptionalCSVNumber("risk_percent", row.RiskPercent)
	if err != nil {
		return req, err
	}
	if riskPercent != nil {
		req.RiskPercent = *riskPercent
	}
	if req.StopPrice, err = parseOptionalCSVNumber("stop_price", row.StopPrice); err != nil {
		return req, err
	}
	if req.TargetPrice, err = parseOptionalCSVNumber("target_price", row.TargetPrice); err != nil {
		return req, err
	}
	if req.ExitPrice, err = parseOptionalCSVNumber("exit_price", row.ExitPrice); err != nil {
		return req, err
	}

	req.AccountIDs = defaultAccountIDs
	if accounts := strings.TrimSpace(row.Accounts); accounts != "" {
		req.AccountIDs = nil
		for _, id := range strings.Split(accounts, csvAccountSeparator) {
			if id = strings.TrimSpace(id); id != "" {
				req.AccountIDs = append(req.AccountIDs, id)
			}
		}
	}
	return req, nil
}

func parseCSVNumber(column, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%s is required", column)
	}
	v, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: %q is not a number", column, s)
	}
	return v, nil
}

func parseOptionalCSVNumber(column, s string) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := parseCSVNumber(column, s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ExportCSV 导出交易及其 R 倍数与盈亏
func (s *JournalService) ExportCSV(ctx context.Context, userID string, filter repo.TradeFilter) ([]byte, error) {
	views, err := s.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]tradeCSVRow, 0, len(views))
	for _, v := range views {
		row := tradeCSVRow{
			ID:          v.ID,
			TradedAt:    v.TradedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			Asset:       v.Asset,
			Direction:   v.Direction,
			Status:      v.Status,
			EntryPrice:  cast.ToString(v.EntryPrice),
			StopPrice:   optionalString(v.StopPrice),
			TargetPrice: optionalString(v.TargetPrice),
			ExitPrice:   optionalString(v.ExitPrice),
			RiskPercent: cast.ToString(v.RiskPercent),
			RiskAmount:  cast.ToString(v.RiskAmount),
			Currency:    v.Currency,
			Accounts:    strings.Join(v.AccountIDs, csvAccountSeparator),
			Setup:       v.Setup,
			Notes:       v.Notes,
		}
		if v.Outcome != nil {
			row.RMultiple = cast.ToString(v.Outcome.RMultiple)
			row.PnL = cast.ToString(v.Outcome.PnL)
		}
		rows = append(rows, row)
	}
	return gocsv.MarshalBytes(&rows)
}

func optionalString(v *float64) string {
	if v == nil {
		return ""
	}
	return cast.ToString(*v)
}
