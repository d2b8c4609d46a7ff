package service

import (
	"context"
	"slices"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/AntonioEsper/MarketLens/internal/repo"
	"github.com/AntonioEsper/MarketLens/internal/reporting"
	"github.com/AntonioEsper/MarketLens/internal/xe"
	"github.com/AntonioEsper/MarketLens/pkg/nostd"
	"github.com/go-orz/orz"
	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// JournalService 交易日志服务
type JournalService struct {
	logger   *zap.Logger
	validate *nostd.CustomValidator

	*orz.Service
	tradeRepo   *repo.TradeRepo
	accountRepo *repo.TradingAccountRepo
}

// NewJournalService 创建交易日志服务
func NewJournalService(db *gorm.DB, logger *zap.Logger) *JournalService {
	validate, err := nostd.NewValidator()
	if err != nil {
		// 翻译注册失败时退回原始校验错误
		logger.Warn("failed to init validator translations", zap.Error(err))
		validate = &nostd.CustomValidator{Validator: validator.New()}
	}
	return &JournalService{
		logger:      logger,
		validate:    validate,
		Service:     orz.NewService(db),
		tradeRepo:   repo.NewTradeRepo(db),
		accountRepo: repo.NewTradingAccountRepo(db),
	}
}

// TradeRequest 记录/修改交易参数
type TradeRequest struct {
	Asset       string    `json:"asset" validate:"required,max=32"`
	Direction   string    `json:"direction" validate:"required,oneof=long short"`
	Status      string    `json:"status" validate:"required,oneof=pending open finalized"`
	EntryPrice  float64   `json:"entry_price" validate:"gt=0"`
	StopPrice   *float64  `json:"stop_price" validate:"omitempty,gt=0"`
	TargetPrice *float64  `json:"target_price" validate:"omitempty,gt=0"`
	ExitPrice   *float64  `json:"exit_price" validate:"omitempty,gt=0"`
	RiskPercent float64   `json:"risk_percent" validate:"gte=0,lte=100"`
	AccountIDs  []string  `json:"account_ids" validate:"required,min=1"`
	Setup       string    `json:"setup" validate:"max=100"`
	Notes       string    `json:"notes"`
	TradedAt    time.Time `json:"traded_at" validate:"required"`
}

// TradeView 交易记录及其派生结果，未完成的交易 Outcome 为空
type TradeView struct {
	models.Trade
	Outcome *reporting.Outcome `json:"outcome"`
}

// RiskAllocation 所选账户的风险金额
type RiskAllocation struct {
	Amount   float64
	Currency string
}

// CalculateRisk 风险金额 = 所选账户初始资金之和 × 风险百分比 / 100，所选账户的货币必须一致
func (s *JournalService) CalculateRisk(ctx context.Context, userID string, accountIDs []string, riskPercent float64) (*RiskAllocation, error) {
	ids := slices.Compact(slices.Sorted(slices.Values(accountIDs)))
	if len(ids) == 0 {
		return nil, xe.ErrAccountRequired
	}
	accounts, err := s.accountRepo.FindByUserAndIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	if len(accounts) != len(ids) {
		return nil, xe.ErrNotFound
	}

	capital := decimal.Zero
	currency := accounts[0].Currency
	for _, account := range accounts {
		if account.Currency != currency {
			return nil, xe.ErrMixedCurrency
		}
		capital = capital.Add(decimal.NewFromFloat(account.InitialCapital))
	}
	amount := capital.Mul(decimal.NewFromFloat(riskPercent)).Div(decimal.NewFromInt(100)).Round(2)
	return &RiskAllocation{Amount: amount.InexactFloat64(), Currency: currency}, nil
}

func (s *JournalService) List(ctx context.Context, userID string, filter repo.TradeFilter) ([]TradeView, error) {
	trades, err := s.tradeRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	views := make([]TradeView, 0, len(trades))
	for _, t := range trades {
		views = append(views, viewOf(t))
	}
	return views, nil
}

func (s *JournalService) Get(ctx context.Context, userID, id string) (*TradeView, error) {
	trade, err := s.tradeRepo.FindByUserAndID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	view := viewOf(trade)
	return &view, nil
}

func (s *JournalService) Create(ctx context.Context, userID string, req TradeRequest) (*models.Trade, error) {
	risk, err := s.CalculateRisk(ctx, userID, req.AccountIDs, req.RiskPercent)
	if err != nil {
		return nil, err
	}
	trade := &models.Trade{
		ID:     ulid.Make().String(),
		UserID: userID,
	}
	applyTradeRequest(trade, req, risk)
	if err := s.tradeRepo.Create(ctx, trade); err != nil {
		return nil, err
	}
	s.logger.Info("trade recorded",
		zap.String("user_id", userID),
		zap.String("trade_id", trade.ID),
		zap.String("asset", trade.Asset),
		zap.Float64("risk_amount", trade.RiskAmount))
	return trade, nil
}

// Update 修改交易并重新计算风险金额
func (s *JournalService) Update(ctx context.Context, userID, id string, req TradeRequest) (*models.Trade, error) {
	trade, err := s.tradeRepo.FindByUserAndID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	risk, err := s.CalculateRisk(ctx, userID, req.AccountIDs, req.RiskPercent)
	if err != nil {
		return nil, err
	}
	applyTradeRequest(&trade, req, risk)
	if err := s.tradeRepo.Save(ctx, &trade); err != nil {
		return nil, err
	}
	return &trade, nil
}

func (s *JournalService) Delete(ctx context.Context, userID, id string) error {
	trade, err := s.tradeRepo.FindByUserAndID(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.tradeRepo.DeleteById(ctx, trade.ID)
}

func applyTradeRequest(trade *models.Trade, req TradeRequest, risk *RiskAllocation) {
	trade.Asset = req.Asset
	trade.Direction = req.Direction
	trade.Status = req.Status
	trade.EntryPrice = req.EntryPrice
	trade.StopPrice = req.StopPrice
	trade.TargetPrice = req.TargetPrice
	trade.ExitPrice = req.ExitPrice
	// 只有完成的交易才保留出场价
	if req.Status != models.TradeStatusFinalized {
		trade.ExitPrice = nil
	}
	trade.RiskPercent = req.RiskPercent
	trade.RiskAmount = risk.Amount
	trade.Currency = risk.Currency
	trade.AccountIDs = req.AccountIDs
	trade.Setup = req.Setup
	trade.Notes = req.Notes
	trade.TradedAt = req.TradedAt
}

// ToReporting 转换为统计引擎使用的交易记录
func ToReporting(t models.Trade) reporting.Trade {
	entry, risk := t.EntryPrice, t.RiskAmount
	return reporting.Trade{
		ID:          t.ID,
		Asset:       t.Asset,
		Direction:   reporting.Direction(t.Direction),
		Status:      reporting.Status(t.Status),
		EntryPrice:  &entry,
		StopPrice:   t.StopPrice,
		TargetPrice: t.TargetPrice,
		ExitPrice:   t.ExitPrice,
		RiskAmount:  &risk,
		Currency:    t.Currency,
		Setup:       t.Setup,
		AccountIDs:  t.AccountIDs,
		TradedAt:    t.TradedAt,
	}
}

func viewOf(t models.Trade) TradeView {
	view := TradeView{Trade: t}
	if o, ok := reporting.ComputeOutcome(ToReporting(t)); ok {
		view.Outcome = &o
	}
	return view
}
