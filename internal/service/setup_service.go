package service

import (
	"context"

	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/AntonioEsper/MarketLens/internal/repo"
	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// SetupService 策略手册服务
type SetupService struct {
	*repo.PlaybookSetupRepo
}

func NewSetupService(db *gorm.DB) *SetupService {
	return &SetupService{
		PlaybookSetupRepo: repo.NewPlaybookSetupRepo(db),
	}
}

// SetupRequest 创建/修改策略参数
type SetupRequest struct {
	Name       string   `json:"name" validate:"required,max=100"`
	Assets     []string `json:"assets"`
	Timeframe  string   `json:"timeframe" validate:"max=20"`
	EntryRules string   `json:"entry_rules"`
	ExitRules  string   `json:"exit_rules"`
	Notes      string   `json:"notes"`
}

func (s *SetupService) List(ctx context.Context, userID string) ([]models.PlaybookSetup, error) {
	return s.FindByUser(ctx, userID)
}

func (s *SetupService) Create(ctx context.Context, userID string, req SetupRequest) (*models.PlaybookSetup, error) {
	setup := &models.PlaybookSetup{
		ID:     ulid.Make().String(),
		UserID: userID,
	}
	applySetupRequest(setup, req)
	if err := s.PlaybookSetupRepo.Create(ctx, setup); err != nil {
		return nil, err
	}
	return setup, nil
}

func (s *SetupService) Update(ctx context.Context, userID, id string, req SetupRequest) (*models.PlaybookSetup, error) {
	setup, err := s.FindByUserAndID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	applySetupRequest(&setup, req)
	if err := s.Save(ctx, &setup); err != nil {
		return nil, err
	}
	return &setup, nil
}

func (s *SetupService) Delete(ctx context.Context, userID, id string) error {
	setup, err := s.FindByUserAndID(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.DeleteById(ctx, setup.ID)
}

func applySetupRequest(setup *models.PlaybookSetup, req SetupRequest) {
	setup.Name = req.Name
	setup.Assets = req.Assets
	setup.Timeframe = req.Timeframe
	setup.EntryRules = req.EntryRules
	setup.ExitRules = req.ExitRules
	setup.Notes = req.Notes
}
