package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/AntonioEsper/MarketLens/internal/repo"
	"github.com/AntonioEsper/MarketLens/internal/xe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testUser = "user-1"

type journalFixture struct {
	journal *JournalService
	usdA    string
	usdB    string
	eur     string
}

func newJournalFixture(t *testing.T) journalFixture {
	db := newTestDB(t)
	accounts := NewAccountService(db, zap.NewNop())
	return journalFixture{
		journal: NewJournalService(db, zap.NewNop()),
		usdA:    createAccount(t, accounts, testUser, "Main", 10000, "USD"),
		usdB:    createAccount(t, accounts, testUser, "Prop", 5000, "USD"),
		eur:     createAccount(t, accounts, testUser, "Euro", 2000, "EUR"),
	}
}

func TestCalculateRisk(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	t.Run("sums capital of distinct accounts", func(t *testing.T) {
		risk, err := f.journal.CalculateRisk(ctx, testUser, []string{f.usdA, f.usdB, f.usdA}, 1)
		require.NoError(t, err)
		assert.Equal(t, 150.0, risk.Amount)
		assert.Equal(t, "USD", risk.Currency)
	})

	t.Run("rounds to cents", func(t *testing.T) {
		risk, err := f.journal.CalculateRisk(ctx, testUser, []string{f.eur}, 0.333)
		require.NoError(t, err)
		assert.Equal(t, 6.66, risk.Amount)
	})

	t.Run("mixed currencies", func(t *testing.T) {
		_, err := f.journal.CalculateRisk(ctx, testUser, []string{f.usdA, f.eur}, 1)
		assert.True(t, errors.Is(err, xe.ErrMixedCurrency))
	})

	t.Run("no account", func(t *testing.T) {
		_, err := f.journal.CalculateRisk(ctx, testUser, nil, 1)
		assert.True(t, errors.Is(err, xe.ErrAccountRequired))
	})

	t.Run("foreign account", func(t *testing.T) {
		_, err := f.journal.CalculateRisk(ctx, "someone-else", []string{f.usdA}, 1)
		assert.True(t, errors.Is(err, xe.ErrNotFound))
	})
}

func TestJournalCreateAndGet(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	closed, err := f.journal.Create(ctx, testUser, TradeRequest{
		Asset:       "EUR/USD",
		Direction:   models.DirectionLong,
		Status:      models.TradeStatusFinalized,
		EntryPrice:  1.1000,
		StopPrice:   ptr(1.0950),
		ExitPrice:   ptr(1.1100),
		RiskPercent: 1,
		AccountIDs:  []string{f.usdA},
		Setup:       "Breakout",
		TradedAt:    time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, closed.RiskAmount)
	assert.Equal(t, "USD", closed.Currency)

	view, err := f.journal.Get(ctx, testUser, closed.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Outcome)
	assert.InDelta(t, 2.0, view.Outcome.RMultiple, 1e-9)
	assert.InDelta(t, 200.0, view.Outcome.PnL, 1e-6)

	open, err := f.journal.Create(ctx, testUser, TradeRequest{
		Asset:      "XAU/USD",
		Direction:  models.DirectionShort,
		Status:     models.TradeStatusOpen,
		EntryPrice: 2300,
		StopPrice:  ptr(2320),
		ExitPrice:  ptr(2280),
		AccountIDs: []string{f.usdB},
		TradedAt:   time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Nil(t, open.ExitPrice)

	view, err = f.journal.Get(ctx, testUser, open.ID)
	require.NoError(t, err)
	assert.Nil(t, view.Outcome)

	_, err = f.journal.Get(ctx, "someone-else", open.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	views, err := f.journal.List(ctx, testUser, repo.TradeFilter{AccountID: f.usdB})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, open.ID, views[0].ID)

	require.NoError(t, f.journal.Delete(ctx, testUser, open.ID))
	views, err = f.journal.List(ctx, testUser, repo.TradeFilter{})
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

func TestJournalUpdateRecalculatesRisk(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	req := TradeRequest{
		Asset:       "GBP/USD",
		Direction:   models.DirectionLong,
		Status:      models.TradeStatusOpen,
		EntryPrice:  1.25,
		StopPrice:   ptr(1.24),
		RiskPercent: 1,
		AccountIDs:  []string{f.usdA},
		TradedAt:    time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC),
	}
	trade, err := f.journal.Create(ctx, testUser, req)
	require.NoError(t, err)

	req.AccountIDs = []string{f.usdA, f.usdB}
	req.Status = models.TradeStatusFinalized
	req.ExitPrice = ptr(1.23)
	updated, err := f.journal.Update(ctx, testUser, trade.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.RiskAmount)

	view, err := f.journal.Get(ctx, testUser, trade.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Outcome)
	assert.InDelta(t, -300.0, view.Outcome.PnL, 1e-6)
}

func TestImportCSV(t *testing.T) {
	f := newJournalFixture(t)
	ctx := context.Background()

	header := "traded_at,asset,direction,status,entry_price,stop_price,exit_price,risk_percent,accounts,setup\n"

	t.Run("invalid row rolls back everything", func(t *testing.T) {
		data := header +
			"2024-03-04T10:00:00Z,EUR/USD,long,finalized,1.1,1.095,1.11,1,,Breakout\n" +
			"2024-03-05T10:00:00Z,GBP/USD,short,finalized,1.25,1.26,1.24,1,,Reversal\n" +
			"2024-03-06T10:00:00Z,USD/JPY,long,finalized,abc,150,152,1,,Breakout\n"
		_, err := f.journal.ImportCSV(ctx, testUser, []string{f.usdA}, []byte(data))
		require.Error(t, err)
		assert.True(t, errors.Is(err, xe.ErrInvalidCSV))
		assert.Contains(t, err.Error(), "line 4")
		assert.Contains(t, err.Error(), "entry_price")

		views, err := f.journal.List(ctx, testUser, repo.TradeFilter{})
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("rows follow the same validation as the API", func(t *testing.T) {
		cases := []struct {
			name  string
			row   string
			field string
		}{
			{"negative entry", "2024-03-04T10:00:00Z,EUR/USD,long,finalized,-5,1.09,1.11,1,,Breakout\n", "EntryPrice"},
			{"negative stop", "2024-03-04T10:00:00Z,EUR/USD,long,finalized,1.1,-6,1.11,1,,Breakout\n", "StopPrice"},
			{"risk above 100", "2024-03-04T10:00:00Z,EUR/USD,long,finalized,1.1,1.09,1.11,500,,Breakout\n", "RiskPercent"},
			{"setup too long", "2024-03-04T10:00:00Z,EUR/USD,long,finalized,1.1,1.09,1.11,1,," + strings.Repeat("x", 101) + "\n", "Setup"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				data := header +
					"2024-03-01T10:00:00Z,GBP/USD,short,finalized,1.25,1.26,1.24,1,,Reversal\n" +
					tc.row
				_, err := f.journal.ImportCSV(ctx, testUser, []string{f.usdA}, []byte(data))
				require.Error(t, err)
				assert.True(t, errors.Is(err, xe.ErrInvalidCSV))
				assert.Contains(t, err.Error(), "line 3")
				assert.Contains(t, err.Error(), tc.field)

				views, err := f.journal.List(ctx, testUser, repo.TradeFilter{})
				require.NoError(t, err)
				assert.Empty(t, views)
			})
		}
	})

	t.Run("mixed currency rolls back inserted rows", func(t *testing.T) {
		data := header +
			"2024-03-04T10:00:00Z,EUR/USD,long,finalized,1.1,1.095,1.11,1,,Breakout\n" +
			"2024-03-05T10:00:00Z,GBP/USD,short,finalized,1.25,1.26,1.24,1," + f.usdA + ";" + f.eur + ",Reversal\n"
		_, err := f.journal.ImportCSV(ctx, testUser, []string{f.usdA}, []byte(data))
		require.Error(t, err)
		assert.True(t, errors.Is(err, xe.ErrMixedCurrency))

		views, err := f.journal.List(ctx, testUser, repo.TradeFilter{})
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("imports and exports", func(t *testing.T) {
		data := header +
			"2024-03-04T10:00:00Z,EUR/USD,long,,1.1,1.095,1.11,1,,Breakout\n" +
			"2024-03-05,GBP/USD,SHORT,finalized,1.25,1.26,1.24,2," + f.usdB + ",Reversal\n"
		result, err := f.journal.ImportCSV(ctx, testUser, []string{f.usdA}, []byte(data))
		require.NoError(t, err)
		assert.Equal(t, 2, result.Imported)

		views, err := f.journal.List(ctx, testUser, repo.TradeFilter{})
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, models.TradeStatusFinalized, views[0].Status)
		assert.Equal(t, 100.0, views[0].RiskAmount)
		assert.Equal(t, models.DirectionShort, views[1].Direction)
		assert.Equal(t, 100.0, views[1].RiskAmount)

		out, err := f.journal.ExportCSV(ctx, testUser, repo.TradeFilter{Asset: "GBP/USD"})
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(out)), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "id,traded_at,asset"))
		assert.Contains(t, lines[1], ",GBP/USD,short,finalized,")
		assert.Contains(t, lines[1], f.usdB)
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := f.journal.ImportCSV(ctx, testUser, nil, []byte("traded_at,asset\n\"unterminated"))
		assert.True(t, errors.Is(err, xe.ErrInvalidCSV))
	})
}
