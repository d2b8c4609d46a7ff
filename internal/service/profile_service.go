package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/AntonioEsper/MarketLens/internal/repo"
	"github.com/AntonioEsper/MarketLens/internal/xe"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileService 用户资料
type ProfileService struct {
	logger *zap.Logger
	*repo.UserProfileRepo
}

func NewProfileService(db *gorm.DB, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		logger:          logger,
		UserProfileRepo: repo.NewUserProfileRepo(db),
	}
}

type ProfileRequest struct {
	DisplayName  string `json:"display_name" validate:"max=100"`
	Timezone     string `json:"timezone" validate:"max=64"`
	BaseCurrency string `json:"base_currency" validate:"omitempty,oneof=USD EUR GBP JPY"`
	TradingStyle string `json:"trading_style" validate:"omitempty,oneof=scalper day swing position"`
}

// Get 获取用户资料，不存在时返回空资料
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.FindById(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserProfile{ID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) Update(ctx context.Context, userID string, req ProfileRequest) (*models.UserProfile, error) {
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return nil, fmt.Errorf("%w: timezone %q", xe.ErrInvalidParams, req.Timezone)
		}
	}
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.DisplayName = req.DisplayName
	profile.Timezone = req.Timezone
	profile.BaseCurrency = req.BaseCurrency
	profile.TradingStyle = req.TradingStyle
	if err := s.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Location 用户报表时区，未设置或无法读取时返回 nil，调用方按 UTC 处理
func (s *ProfileService) Location(ctx context.Context, userID string) *time.Location {
	profile, err := s.FindById(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Warn("failed to load profile, falling back to UTC", zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	if profile.Timezone == "" {
		return nil
	}
	loc, err := time.LoadLocation(profile.Timezone)
	if err != nil {
		s.logger.Warn("invalid profile timezone, falling back to UTC",
			zap.String("user_id", userID), zap.String("timezone", profile.Timezone), zap.Error(err))
		return nil
	}
	return loc
}
