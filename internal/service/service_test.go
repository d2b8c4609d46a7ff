package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	_ "time/tzdata"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "service.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.TradingAccount{}, &models.Trade{}, &models.PlaybookSetup{},
		&models.WeeklyPlan{}, &models.DailyChecklist{}, &models.UserProfile{},
		&models.CotReport{}, &models.SeasonalityStat{}, &models.EconomicObservation{}, &models.RefreshRun{},
	))
	return db
}

func createAccount(t *testing.T, s *AccountService, userID, name string, capital float64, currency string) string {
	account, err := s.Create(context.Background(), userID, AccountRequest{
		Name:           name,
		Type:           "personal",
		InitialCapital: capital,
		Currency:       currency,
	})
	require.NoError(t, err)
	return account.ID
}

func ptr(v float64) *float64 { return &v }
