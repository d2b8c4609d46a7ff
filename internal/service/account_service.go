package service

import (
	"context"

	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/AntonioEsper/MarketLens/internal/repo"
	"github.com/go-orz/orz"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	AccountTypePersonal = "personal"
	AccountTypePropFirm = "prop_firm"
	AccountTypeDemo     = "demo"
)

// AccountService 交易账户管理服务
type AccountService struct {
	logger *zap.Logger

	*orz.Service
	*repo.TradingAccountRepo
}

// NewAccountService 创建交易账户服务
func NewAccountService(db *gorm.DB, logger *zap.Logger) *AccountService {
	return &AccountService{
		logger:             logger,
		Service:            orz.NewService(db),
		TradingAccountRepo: repo.NewTradingAccountRepo(db),
	}
}

// AccountRequest 创建/修改账户参数
type AccountRequest struct {
	Name           string  `json:"name" validate:"required,max=100"`
	Type           string  `json:"type" validate:"required,oneof=personal prop_firm demo"`
	InitialCapital float64 `json:"initial_capital" validate:"gt=0"`
	Currency       string  `json:"currency" validate:"required,oneof=USD EUR GBP JPY"`
}

func (s *AccountService) List(ctx context.Context, userID string) ([]models.TradingAccount, error) {
	return s.TradingAccountRepo.FindByUser(ctx, userID)
}

func (s *AccountService) Get(ctx context.Context, userID, id string) (*models.TradingAccount, error) {
	account, err := s.TradingAccountRepo.FindByUserAndID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountService) Create(ctx context.Context, userID string, req AccountRequest) (*models.TradingAccount, error) {
	account := &models.TradingAccount{
		ID:             ulid.Make().String(),
		UserID:         userID,
		Name:           req.Name,
		Type:           req.Type,
		InitialCapital: req.InitialCapital,
		Currency:       req.Currency,
	}
	if err := s.TradingAccountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	s.logger.Info("trading account created",
		zap.String("user_id", userID),
		zap.String("account_id", account.ID),
		zap.String("currency", account.Currency))
	return account, nil
}

// Update 修改账户，已记录交易的风险金额不会重新计算
func (s *AccountService) Update(ctx context.Context, userID, id string, req AccountRequest) (*models.TradingAccount, error) {
	account, err := s.TradingAccountRepo.FindByUserAndID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	account.Name = req.Name
	account.Type = req.Type
	account.InitialCapital = req.InitialCapital
	account.Currency = req.Currency
	if err := s.TradingAccountRepo.Save(ctx, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountService) Delete(ctx context.Context, userID, id string) error {
	account, err := s.TradingAccountRepo.FindByUserAndID(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.TradingAccountRepo.DeleteById(ctx, account.ID)
}
