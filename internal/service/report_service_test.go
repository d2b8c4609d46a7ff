package service

import (
	"context"
	"testing"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/config"
	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/AntonioEsper/MarketLens/internal/repo"
	"github.com/AntonioEsper/MarketLens/internal/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type reportFixture struct {
	journal  *JournalService
	profiles *ProfileService
	reports  *ReportService
	account  string
}

func newReportFixture(t *testing.T, conf *config.Config) reportFixture {
	db := newTestDB(t)
	tracer, err := trace.New(false)
	require.NoError(t, err)

	profiles := NewProfileService(db, zap.NewNop())
	reports := NewReportService(db, profiles, tracer, conf, zap.NewNop())
	reports.now = func() time.Time { return time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC) }

	return reportFixture{
		journal:  NewJournalService(db, zap.NewNop()),
		profiles: profiles,
		reports:  reports,
		account:  createAccount(t, NewAccountService(db, zap.NewNop()), testUser, "Main", 10000, "USD"),
	}
}

func (f reportFixture) record(t *testing.T, asset, status string, entry, stop float64, exit *float64, at time.Time) {
	_, err := f.journal.Create(context.Background(), testUser, TradeRequest{
		Asset:       asset,
		Direction:   models.DirectionLong,
		Status:      status,
		EntryPrice:  entry,
		StopPrice:   &stop,
		ExitPrice:   exit,
		RiskPercent: 1,
		AccountIDs:  []string{f.account},
		Setup:       "Breakout",
		TradedAt:    at,
	})
	require.NoError(t, err)
}

func TestDashboard(t *testing.T) {
	f := newReportFixture(t, &config.Config{})
	ctx := context.Background()

	report, err := f.reports.Dashboard(ctx, testUser, repo.TradeFilter{})
	require.NoError(t, err)
	assert.False(t, report.HasData)
	assert.Len(t, report.Weekdays.Days, 7)

	f.record(t, "EUR/USD", models.TradeStatusFinalized, 100, 90, ptr(120), time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC))
	f.record(t, "Gold", models.TradeStatusFinalized, 100, 90, ptr(95), time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC))
	f.record(t, "Gold", models.TradeStatusOpen, 100, 90, nil, time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC))

	report, err = f.reports.Dashboard(ctx, testUser, repo.TradeFilter{})
	require.NoError(t, err)
	assert.True(t, report.HasData)
	assert.Equal(t, 2, report.TotalTrades)
	assert.Equal(t, 1, report.Wins)
	assert.Equal(t, 1, report.Losses)
	assert.InDelta(t, 150.0, report.TotalPnL, 1e-6)
	assert.InDelta(t, 150.0, report.Period.WeekToDate, 1e-6)
	require.Len(t, report.Daily, 2)
	assert.Equal(t, "2024-03-04", report.Daily[0].Label)

	filtered, err := f.reports.Dashboard(ctx, testUser, repo.TradeFilter{Asset: "Gold"})
	require.NoError(t, err)
	assert.Equal(t, 1, filtered.TotalTrades)
	assert.InDelta(t, -50.0, filtered.TotalPnL, 1e-6)
}

func TestDashboardUsesProfileTimezone(t *testing.T) {
	f := newReportFixture(t, &config.Config{Reporting: config.ReportingConf{Timezone: "America/New_York"}})
	ctx := context.Background()

	f.record(t, "EUR/USD", models.TradeStatusFinalized, 100, 90, ptr(120), time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC))

	report, err := f.reports.Dashboard(ctx, testUser, repo.TradeFilter{})
	require.NoError(t, err)
	require.Len(t, report.Daily, 1)
	assert.Equal(t, "2024-03-04", report.Daily[0].Label)

	_, err = f.profiles.Update(ctx, testUser, ProfileRequest{Timezone: "Asia/Tokyo"})
	require.NoError(t, err)

	report, err = f.reports.Dashboard(ctx, testUser, repo.TradeFilter{})
	require.NoError(t, err)
	require.Len(t, report.Daily, 1)
	assert.Equal(t, "2024-03-05", report.Daily[0].Label)
}

func TestProfileUpdate(t *testing.T) {
	s := NewProfileService(newTestDB(t), zap.NewNop())
	ctx := context.Background()

	profile, err := s.Get(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, testUser, profile.ID)
	assert.Nil(t, s.Location(ctx, testUser))

	_, err = s.Update(ctx, testUser, ProfileRequest{Timezone: "Mars/Olympus"})
	require.Error(t, err)

	updated, err := s.Update(ctx, testUser, ProfileRequest{DisplayName: "Ana", Timezone: "Europe/London", BaseCurrency: "GBP"})
	require.NoError(t, err)
	assert.Equal(t, "GBP", updated.BaseCurrency)

	loc := s.Location(ctx, testUser)
	require.NotNil(t, loc)
	assert.Equal(t, "Europe/London", loc.String())
}

func TestProfileLocationLogsFallback(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	db := newTestDB(t)
	s := NewProfileService(db, zap.New(core))
	ctx := context.Background()

	// 绕过 Update 的时区校验写入无效时区
	require.NoError(t, s.Save(ctx, &models.UserProfile{ID: testUser, Timezone: "Mars/Olympus"}))
	assert.Nil(t, s.Location(ctx, testUser))
	require.Equal(t, 1, logs.FilterMessage("invalid profile timezone, falling back to UTC").Len())

	assert.Nil(t, s.Location(ctx, "nobody"))
	assert.Equal(t, 1, logs.Len())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	assert.Nil(t, s.Location(ctx, testUser))
	entries := logs.FilterMessage("failed to load profile, falling back to UTC").All()
	require.Len(t, entries, 1)
	assert.Equal(t, testUser, entries[0].ContextMap()["user_id"])
}
