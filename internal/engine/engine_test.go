package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/catalog"
	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/AntonioEsper/MarketLens/internal/trace"
	"github.com/AntonioEsper/MarketLens/internal/xe"
	"github.com/AntonioEsper/MarketLens/pkg/feed"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testCatalog = `
assets:
  - { name: Gold, category: commodity, yahoo: "GC=F", cot: "088691", currency: USD }
  - { name: EUR/USD, category: forex_major, yahoo: "EURUSD=X", cot: "099741", currency: USD }
  - { name: Apple, category: stock, yahoo: AAPL, currency: USD }
  - { name: VIX, category: reference, yahoo: "^VIX", currency: USD }
indicators:
  - { id: UNRATE, name: Unemployment Rate, currency: USD, impact_currency: negative, impact_stocks: negative }
  - { id: PAYEMS, name: Non-Farm Payrolls, currency: USD, impact_currency: positive, impact_stocks: positive }
`

func testCatalogOf(t *testing.T) *catalog.Catalog {
	c, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)
	return c
}

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "engine.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.RefreshRun{}))
	return db
}

func noopReport(int, int, string, string) {}

type fakeCotSource struct {
	records map[string][]feed.CotRecord
}

func (f fakeCotSource) LegacyReports(_ context.Context, code string, _ int) ([]feed.CotRecord, error) {
	records, ok := f.records[code]
	if !ok {
		return nil, errors.New("upstream unavailable")
	}
	return records, nil
}

type fakeCotStore struct {
	saved []models.CotReport
}

func (f *fakeCotStore) Upsert(_ context.Context, reports []models.CotReport) error {
	f.saved = append(f.saved, reports...)
	return nil
}

func TestCotJob_PartialFailure(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	source := fakeCotSource{records: map[string][]feed.CotRecord{
		"088691": {{ReportDate: date, NonCommLong: 300, NonCommShort: 100}},
	}}
	store := &fakeCotStore{}
	job := NewCotJob(testCatalogOf(t), source, store)

	var levels []string
	stats, err := job.Run(context.Background(), func(_, _ int, level, _ string) {
		levels = append(levels, level)
	})
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 2, Succeeded: 1, Failed: 1}, stats)
	assert.Equal(t, []string{LevelInfo, LevelWarn}, levels)

	require.Len(t, store.saved, 1)
	assert.Equal(t, "Gold", store.saved[0].Asset)
	assert.Equal(t, "088691", store.saved[0].ContractCode)
	assert.Equal(t, 300.0, store.saved[0].NonCommLong)
}

type fakeObservationSource map[string][]feed.Observation

func (f fakeObservationSource) Observations(_ context.Context, id string) ([]feed.Observation, error) {
	return f[id], nil
}

type fakeObservationStore struct {
	series map[string]int
}

func (f *fakeObservationStore) Upsert(_ context.Context, rows []models.EconomicObservation) error {
	for _, r := range rows {
		f.series[r.SeriesID]++
	}
	return nil
}

func TestEconomicJob(t *testing.T) {
	source := fakeObservationSource{
		"UNRATE": {{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Value: 3.7}},
	}
	store := &fakeObservationStore{series: map[string]int{}}

	stats, err := NewEconomicJob(testCatalogOf(t), source, store, true).Run(context.Background(), noopReport)
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 2, Succeeded: 1, Failed: 1}, stats)
	assert.Equal(t, 1, store.series["UNRATE"])

	_, err = NewEconomicJob(testCatalogOf(t), source, store, false).Run(context.Background(), noopReport)
	assert.Error(t, err)
}

// dailyPoints 生成从 start 起每天一个收盘价
func dailyPoints(start time.Time, closes []float64) []feed.PricePoint {
	points := make([]feed.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = feed.PricePoint{Time: start.AddDate(0, 0, i), Close: c}
	}
	return points
}

func TestBuildSeasonality(t *testing.T) {
	t.Run("insufficient history", func(t *testing.T) {
		points := dailyPoints(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), make([]float64, seasonalityPeriod))
		assert.Empty(t, BuildSeasonality("Gold", points))
	})

	t.Run("constant growth", func(t *testing.T) {
		closes := make([]float64, 60)
		for i := range closes {
			if i < seasonalityPeriod {
				closes[i] = 100
			} else {
				closes[i] = 110
			}
		}
		// 1月份的样本全部为 +10%
		points := dailyPoints(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), closes)
		table := BuildSeasonality("Gold", points)

		require.NotEmpty(t, table)
		jan := table[0]
		assert.Equal(t, int(time.January), jan.Month)
		assert.Equal(t, "Gold", jan.Asset)
		assert.Equal(t, 100.0, jan.PositivePct)
		assert.Greater(t, jan.MeanReturn, 0.0)
		total := 0
		for _, row := range table {
			total += row.Samples
		}
		assert.Equal(t, 60-seasonalityPeriod, total)
	})

	t.Run("mixed months", func(t *testing.T) {
		closes := make([]float64, 0, 90)
		for i := 0; i < 90; i++ {
			closes = append(closes, 100+float64(i%2))
		}
		points := dailyPoints(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), closes)
		table := BuildSeasonality("EUR/USD", points)
		for _, row := range table {
			assert.GreaterOrEqual(t, row.PositivePct, 0.0)
			assert.LessOrEqual(t, row.PositivePct, 100.0)
			assert.GreaterOrEqual(t, row.StdDev, 0.0)
		}
	})
}

type fakePrices struct {
	calls []string
}

func (f *fakePrices) DailyCloses(_ context.Context, asset catalog.Asset, from time.Time) ([]feed.PricePoint, error) {
	f.calls = append(f.calls, asset.Name)
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	return dailyPoints(from, closes), nil
}

type fakeSeasonalityStore map[string][]models.SeasonalityStat

func (f fakeSeasonalityStore) ReplaceAsset(_ context.Context, asset string, stats []models.SeasonalityStat) error {
	f[asset] = stats
	return nil
}

func TestSeasonalityJob_SkipsReferenceSeries(t *testing.T) {
	prices := &fakePrices{}
	store := fakeSeasonalityStore{}
	job := NewSeasonalityJob(testCatalogOf(t), prices, store, 1)
	job.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	stats, err := job.Run(context.Background(), noopReport)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 3, stats.Succeeded)
	assert.NotContains(t, prices.calls, "VIX")
	assert.Contains(t, store, "Gold")
}

type stubJob struct {
	name  string
	stats Stats
	err   error
	block chan struct{}
}

func (j *stubJob) Name() string        { return j.name }
func (j *stubJob) CachePrefix() string { return j.name + ":" }

func (j *stubJob) Run(ctx context.Context, report Reporter) (Stats, error) {
	if j.block != nil {
		<-j.block
	}
	for i := 1; i <= j.stats.Total; i++ {
		report(i, j.stats.Total, LevelInfo, "step")
	}
	return j.stats, j.err
}

type recordingInvalidator struct {
	prefixes []string
}

func (r *recordingInvalidator) Invalidate(prefix string) int {
	r.prefixes = append(r.prefixes, prefix)
	return 1
}

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(msg string) error {
	r.messages = append(r.messages, msg)
	return nil
}

func newTestRunner(t *testing.T, jobs ...Job) (*Runner, *recordingInvalidator, *recordingNotifier) {
	tracer, err := trace.New(false)
	require.NoError(t, err)
	invalidator := &recordingInvalidator{}
	notifier := &recordingNotifier{}
	return NewRunner(newTestDB(t), jobs, invalidator, notifier, tracer, zap.NewNop()), invalidator, notifier
}

func TestRunner_Run(t *testing.T) {
	runner, invalidator, notifier := newTestRunner(t, &stubJob{name: JobCot, stats: Stats{Total: 2, Succeeded: 2}})

	progress := make(chan Progress, 16)
	run, err := runner.Run(context.Background(), JobCot, TriggerAPI, progress)
	close(progress)
	require.NoError(t, err)

	assert.Equal(t, models.RunStatusSucceeded, run.Status)
	assert.Equal(t, 2, run.Succeeded)
	require.NotNil(t, run.FinishedAt)

	var events []Progress
	for p := range progress {
		events = append(events, p)
	}
	require.Len(t, events, 4)
	assert.Equal(t, LevelInfo, events[0].Level)
	assert.Equal(t, LevelDone, events[len(events)-1].Level)
	for _, e := range events {
		assert.Equal(t, JobCot, e.Job)
	}

	assert.Equal(t, []string{"cot:"}, invalidator.prefixes)
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "Status: succeeded")

	runs, err := runner.Runs(context.Background(), JobCot, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, TriggerAPI, runs[0].Trigger)
	assert.Contains(t, runner.Summary(context.Background()), "cot: succeeded")
}

func TestRunner_Failures(t *testing.T) {
	failing := &stubJob{name: JobEconomic, err: errors.New("fred api key not configured")}
	empty := &stubJob{name: JobSeasonality, stats: Stats{Total: 1, Failed: 1}}
	runner, invalidator, _ := newTestRunner(t, failing, empty)

	run, err := runner.Run(context.Background(), JobEconomic, TriggerCLI, nil)
	assert.Error(t, err)
	assert.Equal(t, models.RunStatusFailed, run.Status)
	assert.Equal(t, "fred api key not configured", run.Message)

	run, err = runner.Run(context.Background(), JobSeasonality, TriggerCLI, nil)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusFailed, run.Status)
	assert.Empty(t, invalidator.prefixes)

	_, err = runner.Run(context.Background(), "unknown", TriggerCLI, nil)
	assert.ErrorIs(t, err, xe.ErrUnknownJob)
	_, err = runner.Runs(context.Background(), "unknown", 10)
	assert.ErrorIs(t, err, xe.ErrUnknownJob)
}

func TestRunner_RejectsConcurrentRun(t *testing.T) {
	job := &stubJob{name: JobCot, block: make(chan struct{})}
	runner, _, _ := newTestRunner(t, job)

	done := make(chan error, 1)
	go func() {
		_, err := runner.Run(context.Background(), JobCot, TriggerAPI, nil)
		done <- err
	}()

	require.Eventually(t, func() bool {
		runner.mu.Lock()
		defer runner.mu.Unlock()
		return runner.running[JobCot]
	}, time.Second, 5*time.Millisecond)

	_, err := runner.Run(context.Background(), JobCot, TriggerAPI, nil)
	assert.ErrorIs(t, err, xe.ErrJobRunning)

	close(job.block)
	require.NoError(t, <-done)
}
