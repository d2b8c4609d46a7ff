package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day int, hour int) time.Time {
	return time.Date(2024, time.March, day, hour, 0, 0, 0, time.UTC)
}

// tradeWithPnL 构造 R=1 的多头交易，使 pnl 等于 risk
func tradeWithPnL(id string, pnl float64, when time.Time) Trade {
	t := finalized(Long, 100, 99, 101, pnl)
	if pnl < 0 {
		t = finalized(Long, 100, 99, 99, -pnl)
	}
	t.ID = id
	t.TradedAt = when
	return t
}

func TestAggregate_Empty(t *testing.T) {
	report := Aggregate(nil, Options{})

	assert.False(t, report.HasData)
	assert.Zero(t, report.TotalTrades)
	assert.Zero(t, report.TotalPnL)
	assert.Zero(t, report.WinRate)
	assert.Zero(t, report.Expectancy)
	assert.NotNil(t, report.EquityCurve)
	assert.Empty(t, report.EquityCurve)
	assert.Empty(t, report.Daily)
	assert.Empty(t, report.Recent)
	assert.Len(t, report.Weekdays.Days, 7)
	assert.Nil(t, report.Days.BestDay)
}

func TestAggregate_OnlyIneligible(t *testing.T) {
	pending := finalized(Long, 100, 95, 110, 50)
	pending.Status = StatusPending
	noExit := finalized(Long, 100, 95, 110, 50)
	noExit.ExitPrice = nil

	report := Aggregate([]Trade{pending, noExit}, Options{})
	assert.False(t, report.HasData)
	assert.Zero(t, report.TotalTrades)
}

func TestAggregate_WinLossScenario(t *testing.T) {
	trades := []Trade{
		tradeWithPnL("a", 100, at(4, 10)),
		tradeWithPnL("b", -40, at(5, 10)),
	}

	report := Aggregate(trades, Options{Now: at(8, 0)})

	require.True(t, report.HasData)
	assert.Equal(t, 2, report.TotalTrades)
	assert.InDelta(t, 50.0, report.WinRate, 1e-9)
	assert.InDelta(t, 100.0, report.AvgWin, 1e-9)
	assert.InDelta(t, 40.0, report.AvgLoss, 1e-9)
	assert.InDelta(t, 60.0, report.TotalPnL, 1e-9)
	assert.InDelta(t, 30.0, report.Expectancy, 1e-9)
	assert.InDelta(t, 2.5, report.ProfitFactor, 1e-9)
	// 平均盈利 100 / 平均风险 (100+40)/2
	assert.InDelta(t, 100.0/70.0, report.AvgRiskReward, 1e-9)
	assert.InDelta(t, 40.0, report.MaxDrawdown, 1e-9)
}

func TestAggregate_ExcludesIneligibleAndKeepsOthers(t *testing.T) {
	broken := finalized(Long, 100, 95, 110, 50)
	broken.EntryPrice = nil
	open := finalized(Long, 100, 95, 110, 50)
	open.Status = StatusOpen

	trades := []Trade{tradeWithPnL("a", 25, at(4, 9)), broken, open, tradeWithPnL("b", 75, at(6, 9))}
	report := Aggregate(trades, Options{})

	eligible := 0
	for _, tr := range trades {
		if Eligible(tr) {
			eligible++
		}
	}
	assert.LessOrEqual(t, report.TotalTrades, eligible)
	assert.Equal(t, 2, report.TotalTrades)
	assert.InDelta(t, 100.0, report.TotalPnL, 1e-9)
}

func TestAggregate_EquityCurve(t *testing.T) {
	trades := []Trade{
		tradeWithPnL("late", 30, at(7, 10)),
		tradeWithPnL("first", -10, at(4, 10)),
		tradeWithPnL("tie-1", 5, at(5, 10)),
		tradeWithPnL("tie-2", 7, at(5, 10)),
	}

	report := Aggregate(trades, Options{})
	require.Len(t, report.EquityCurve, 4)

	ids := make([]string, 0, 4)
	for _, p := range report.EquityCurve {
		ids = append(ids, p.TradeID)
	}
	assert.Equal(t, []string{"first", "tie-1", "tie-2", "late"}, ids)
	assert.InDelta(t, report.TotalPnL, report.EquityCurve[len(report.EquityCurve)-1].Equity, 1e-9)
	assert.InDelta(t, -10.0, report.EquityCurve[0].Equity, 1e-9)
	assert.InDelta(t, 10.0, report.MaxDrawdown, 1e-9)
}

func TestAggregate_Idempotent(t *testing.T) {
	trades := []Trade{
		tradeWithPnL("a", 100, at(4, 10)),
		tradeWithPnL("b", -40, at(5, 10)),
		tradeWithPnL("c", 15, at(12, 10)),
	}
	opts := Options{Now: at(20, 0)}

	assert.Equal(t, Aggregate(trades, opts), Aggregate(trades, opts))
}

func TestAggregate_ZeroStopDistanceCountsButAddsNothing(t *testing.T) {
	flat := finalized(Long, 100, 100, 120, 50)
	report := Aggregate([]Trade{flat, tradeWithPnL("b", 20, at(5, 10))}, Options{})

	assert.Equal(t, 2, report.TotalTrades)
	assert.InDelta(t, 20.0, report.TotalPnL, 1e-9)
	assert.InDelta(t, 50.0, report.WinRate, 1e-9)
}

func TestAggregate_CalendarBuckets(t *testing.T) {
	trades := []Trade{
		tradeWithPnL("a", 10, at(4, 9)),  // 周一
		tradeWithPnL("b", 20, at(4, 15)), // 周一
		tradeWithPnL("c", -5, at(6, 9)),  // 周三
		tradeWithPnL("d", 40, at(11, 9)), // 下周一
		tradeWithPnL("e", 8, time.Date(2023, time.December, 29, 9, 0, 0, 0, time.UTC)),
	}

	report := Aggregate(trades, Options{})

	require.Len(t, report.Daily, 4)
	assert.Equal(t, "2023-12-29", report.Daily[0].Label)
	assert.Equal(t, "2024-03-04", report.Daily[1].Label)
	assert.InDelta(t, 30.0, report.Daily[1].PnL, 1e-9)
	assert.Equal(t, 2, report.Daily[1].Trades)

	require.Len(t, report.Weekly, 3)
	assert.Equal(t, "2024-W10", report.Weekly[1].Label)
	assert.InDelta(t, 25.0, report.Weekly[1].PnL, 1e-9)
	assert.Equal(t, time.Monday, report.Weekly[1].Start.Weekday())

	require.Len(t, report.Monthly, 2)
	assert.Equal(t, "2024-03", report.Monthly[1].Label)
	assert.InDelta(t, 65.0, report.Monthly[1].PnL, 1e-9)

	require.Len(t, report.Yearly, 2)
	assert.Equal(t, "2023", report.Yearly[0].Label)
	assert.InDelta(t, 8.0, report.Yearly[0].PnL, 1e-9)
}

func TestAggregate_BucketsRespectLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	// UTC 周二 02:00 在 UTC-5 为周一
	trade := tradeWithPnL("a", 10, time.Date(2024, time.March, 5, 2, 0, 0, 0, time.UTC))

	report := Aggregate([]Trade{trade}, Options{Location: loc})
	require.Len(t, report.Daily, 1)
	assert.Equal(t, "2024-03-04", report.Daily[0].Label)
	assert.InDelta(t, 10.0, report.Weekdays.Days[0].PnL, 1e-9)
}

func TestAggregate_WeekdaySummary(t *testing.T) {
	trades := []Trade{
		tradeWithPnL("a", 10, at(5, 9)),  // 周二
		tradeWithPnL("b", -30, at(7, 9)), // 周四
	}

	report := Aggregate(trades, Options{})
	days := report.Weekdays.Days

	require.Len(t, days, 7)
	assert.Equal(t, "Monday", days[0].Name)
	assert.Equal(t, "Sunday", days[6].Name)
	assert.Zero(t, days[0].PnL)
	assert.InDelta(t, 10.0, days[1].PnL, 1e-9)
	assert.InDelta(t, -30.0, days[3].PnL, 1e-9)
	assert.Equal(t, time.Tuesday, report.Weekdays.Best.Weekday)
	assert.Equal(t, time.Thursday, report.Weekdays.Worst.Weekday)
}

func TestAggregate_DayAndPeriodSummary(t *testing.T) {
	trades := []Trade{
		tradeWithPnL("a", 50, at(4, 9)),
		tradeWithPnL("b", 30, at(5, 9)),
		tradeWithPnL("c", -20, at(6, 9)),
		tradeWithPnL("d", 12, time.Date(2024, time.February, 20, 9, 0, 0, 0, time.UTC)),
		tradeWithPnL("e", 100, time.Date(2023, time.June, 1, 9, 0, 0, 0, time.UTC)),
	}
	// 2024-03-06 是周三
	report := Aggregate(trades, Options{Now: at(6, 18)})

	require.NotNil(t, report.Days.BestDay)
	assert.Equal(t, "2023-06-01", report.Days.BestDay.Label)
	require.NotNil(t, report.Days.WorstDay)
	assert.Equal(t, "2024-03-06", report.Days.WorstDay.Label)
	assert.InDelta(t, (50.0+30+12+100)/4, report.Days.AvgWinningDay, 1e-9)
	assert.InDelta(t, -20.0, report.Days.AvgLosingDay, 1e-9)

	assert.InDelta(t, 60.0, report.Period.WeekToDate, 1e-9)
	assert.InDelta(t, 60.0, report.Period.MonthToDate, 1e-9)
	assert.InDelta(t, 72.0, report.Period.YearToDate, 1e-9)
}

func TestAggregate_Quality(t *testing.T) {
	trades := []Trade{
		tradeWithPnL("a", 100, at(4, 10)),
		tradeWithPnL("b", -40, at(5, 10)),
	}
	q := Aggregate(trades, Options{}).Quality

	assert.InDelta(t, 2.5, q.WinLossRatio, 1e-9)
	assert.InDelta(t, 2.5, q.ProfitFactor, 1e-9)
	want := (50 + 2.5/3*100 + 2.5/3*100) / 3
	assert.InDelta(t, want, q.Score, 1e-9)
}

func TestAggregate_QualityWithoutLossesCapsRatios(t *testing.T) {
	q := Aggregate([]Trade{tradeWithPnL("a", 80, at(4, 10))}, Options{}).Quality

	assert.InDelta(t, 80.0, q.WinLossRatio, 1e-9)
	assert.InDelta(t, 80.0, q.ProfitFactor, 1e-9)
	assert.InDelta(t, 100.0, q.Score, 1e-9)
}

func TestAggregate_Breakdowns(t *testing.T) {
	a := tradeWithPnL("a", 10, at(4, 10))
	a.Asset, a.Setup = "XAU/USD", "breakout"
	b := tradeWithPnL("b", -5, at(5, 10))
	b.Asset, b.Setup = "EUR/USD", "breakout"
	c := tradeWithPnL("c", 7, at(6, 10))
	c.Asset = "EUR/USD"

	report := Aggregate([]Trade{a, b, c}, Options{})

	require.Len(t, report.Assets, 2)
	assert.Equal(t, "EUR/USD", report.Assets[0].Key)
	assert.Equal(t, 2, report.Assets[0].Trades)
	assert.InDelta(t, 50.0, report.Assets[0].WinRate, 1e-9)

	require.Len(t, report.Setups, 1)
	assert.Equal(t, "breakout", report.Setups[0].Key)
	assert.InDelta(t, 5.0, report.Setups[0].PnL, 1e-9)
}

func TestAggregate_Recent(t *testing.T) {
	var trades []Trade
	for day := 1; day <= 8; day++ {
		trades = append(trades, tradeWithPnL(time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC).Format("02"), 1, at(day, 10)))
	}

	report := Aggregate(trades, Options{RecentLimit: 3})
	require.Len(t, report.Recent, 3)
	assert.Equal(t, "08", report.Recent[0].Trade.ID)
	assert.Equal(t, "06", report.Recent[2].Trade.ID)
	for i := 1; i < len(report.Recent); i++ {
		assert.False(t, report.Recent[i].Trade.TradedAt.After(report.Recent[i-1].Trade.TradedAt))
	}

	assert.Len(t, Aggregate(trades, Options{}).Recent, DefaultRecentLimit)
}
