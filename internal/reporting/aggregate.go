package reporting

import (
	"cmp"
	"math"
	"slices"
	"time"
)

// Aggregate 将交易集合汇总为业绩报告，不满足统计条件的交易被忽略
func Aggregate(trades []Trade, opts Options) Report {
	opts = opts.withDefaults()

	results := make([]TradeResult, 0, len(trades))
	for _, t := range trades {
		if o, ok := ComputeOutcome(t); ok {
			results = append(results, TradeResult{Trade: t, Outcome: o})
		}
	}

	report := emptyReport()
	if len(results) == 0 {
		return report
	}
	report.HasData = true
	report.fillKPIs(results)

	// 按成交时间升序，时间相同保持原顺序
	ordered := slices.Clone(results)
	slices.SortStableFunc(ordered, func(a, b TradeResult) int {
		return a.Trade.TradedAt.Compare(b.Trade.TradedAt)
	})

	report.EquityCurve, report.MaxDrawdown = equityCurve(ordered)
	report.Daily = calendarBuckets(ordered, opts.Location, startOfDay, dayLabel)
	report.Weekly = calendarBuckets(ordered, opts.Location, startOfWeek, weekLabel)
	report.Monthly = calendarBuckets(ordered, opts.Location, startOfMonth, monthLabel)
	report.Yearly = calendarBuckets(ordered, opts.Location, startOfYear, yearLabel)
	report.Weekdays = weekdaySummary(results, opts.Location)
	report.Days = daySummary(report.Daily)
	report.Period = periodSummary(results, opts)
	report.Quality = tradeQuality(report)
	report.Assets = breakdown(results, func(r TradeResult) string { return r.Trade.Asset })
	report.Setups = breakdown(results, func(r TradeResult) string { return r.Trade.Setup })
	report.Recent = recentTrades(ordered, opts.RecentLimit)
	return report
}

func (r *Report) fillKPIs(results []TradeResult) {
	var grossProfit, grossLoss, riskSum float64
	var riskCount int
	for _, res := range results {
		pnl := res.Outcome.PnL
		r.TotalPnL += pnl
		switch {
		case pnl > 0:
			r.Wins++
			grossProfit += pnl
		case pnl < 0:
			r.Losses++
			grossLoss -= pnl
		}
		if risk := riskOf(res.Trade); risk > 0 {
			riskSum += risk
			riskCount++
		}
	}

	r.TotalTrades = len(results)
	r.WinRate = float64(r.Wins) / float64(r.TotalTrades) * 100
	if r.Wins > 0 {
		r.AvgWin = grossProfit / float64(r.Wins)
	}
	if r.Losses > 0 {
		r.AvgLoss = grossLoss / float64(r.Losses)
	}
	if riskCount > 0 {
		r.AvgRiskReward = r.AvgWin / (riskSum / float64(riskCount))
	}

	winFraction := r.WinRate / 100
	r.Expectancy = winFraction*r.AvgWin - (1-winFraction)*r.AvgLoss

	if grossLoss > 0 {
		r.ProfitFactor = grossProfit / grossLoss
	} else {
		r.ProfitFactor = grossProfit
	}
}

// equityCurve 累计盈亏曲线及最大回撤（从 0 起算）
func equityCurve(ordered []TradeResult) ([]EquityPoint, float64) {
	curve := make([]EquityPoint, 0, len(ordered))
	var equity, peak, maxDrawdown float64
	for _, res := range ordered {
		equity += res.Outcome.PnL
		curve = append(curve, EquityPoint{
			Time:    res.Trade.TradedAt,
			TradeID: res.Trade.ID,
			PnL:     res.Outcome.PnL,
			Equity:  equity,
		})
		peak = math.Max(peak, equity)
		maxDrawdown = math.Max(maxDrawdown, peak-equity)
	}
	return curve, maxDrawdown
}

func calendarBuckets(ordered []TradeResult, loc *time.Location, truncate func(time.Time) time.Time, label func(time.Time) string) []Bucket {
	index := make(map[int64]int)
	buckets := make([]Bucket, 0)
	for _, res := range ordered {
		start := truncate(res.Trade.TradedAt.In(loc))
		i, ok := index[start.Unix()]
		if !ok {
			i = len(buckets)
			index[start.Unix()] = i
			buckets = append(buckets, Bucket{Label: label(start), Start: start})
		}
		buckets[i].PnL += res.Outcome.PnL
		buckets[i].Trades++
	}
	slices.SortFunc(buckets, func(a, b Bucket) int { return a.Start.Compare(b.Start) })
	return buckets
}

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

func weekdayTemplate() []WeekdayPnL {
	days := make([]WeekdayPnL, len(weekdayOrder))
	for i, wd := range weekdayOrder {
		days[i] = WeekdayPnL{Weekday: wd, Name: wd.String()}
	}
	return days
}

// mondayIndex 周一为 0，周日为 6
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func weekdaySummary(results []TradeResult, loc *time.Location) WeekdaySummary {
	days := weekdayTemplate()
	for _, res := range results {
		i := mondayIndex(res.Trade.TradedAt.In(loc).Weekday())
		days[i].PnL += res.Outcome.PnL
		days[i].Trades++
	}
	best, worst := days[0], days[0]
	for _, d := range days[1:] {
		if d.PnL > best.PnL {
			best = d
		}
		if d.PnL < worst.PnL {
			worst = d
		}
	}
	return WeekdaySummary{Days: days, Best: best, Worst: worst}
}

func daySummary(daily []Bucket) DaySummary {
	var summary DaySummary
	var winSum, lossSum float64
	var winDays, lossDays int
	for i := range daily {
		d := daily[i]
		switch {
		case d.PnL > 0:
			winSum += d.PnL
			winDays++
		case d.PnL < 0:
			lossSum += d.PnL
			lossDays++
		}
		if d.PnL > 0 && (summary.BestDay == nil || d.PnL > summary.BestDay.PnL) {
			summary.BestDay = &daily[i]
		}
		if d.PnL < 0 && (summary.WorstDay == nil || d.PnL < summary.WorstDay.PnL) {
			summary.WorstDay = &daily[i]
		}
	}
	if winDays > 0 {
		summary.AvgWinningDay = winSum / float64(winDays)
	}
	if lossDays > 0 {
		summary.AvgLosingDay = lossSum / float64(lossDays)
	}
	return summary
}

func periodSummary(results []TradeResult, opts Options) PeriodSummary {
	now := opts.Now.In(opts.Location)
	weekStart, monthStart, yearStart := startOfWeek(now), startOfMonth(now), startOfYear(now)

	var summary PeriodSummary
	for _, res := range results {
		at := res.Trade.TradedAt
		if !at.Before(yearStart) {
			summary.YearToDate += res.Outcome.PnL
		}
		if !at.Before(monthStart) {
			summary.MonthToDate += res.Outcome.PnL
		}
		if !at.Before(weekStart) {
			summary.WeekToDate += res.Outcome.PnL
		}
	}
	return summary
}

// tradeQuality 胜率、盈亏比（上限 3）、盈利因子（上限 3）三项各折算为百分制后取平均
func tradeQuality(r Report) Quality {
	q := Quality{WinRate: r.WinRate, ProfitFactor: r.ProfitFactor}
	if r.AvgLoss > 0 {
		q.WinLossRatio = r.AvgWin / r.AvgLoss
	} else {
		q.WinLossRatio = r.AvgWin
	}
	ratioScore := math.Min(q.WinLossRatio, 3) / 3 * 100
	factorScore := math.Min(q.ProfitFactor, 3) / 3 * 100
	q.Score = (q.WinRate + ratioScore + factorScore) / 3
	return q
}

func breakdown(results []TradeResult, key func(TradeResult) string) []Breakdown {
	index := make(map[string]int)
	rows := make([]Breakdown, 0)
	for _, res := range results {
		k := key(res)
		if k == "" {
			continue
		}
		i, ok := index[k]
		if !ok {
			i = len(rows)
			index[k] = i
			rows = append(rows, Breakdown{Key: k})
		}
		rows[i].Trades++
		rows[i].PnL += res.Outcome.PnL
		if res.Outcome.PnL > 0 {
			rows[i].Wins++
		}
	}
	for i := range rows {
		rows[i].WinRate = float64(rows[i].Wins) / float64(rows[i].Trades) * 100
	}
	slices.SortStableFunc(rows, func(a, b Breakdown) int {
		if c := cmp.Compare(b.Trades, a.Trades); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return rows
}

func recentTrades(ordered []TradeResult, limit int) []TradeResult {
	n := min(limit, len(ordered))
	recent := make([]TradeResult, 0, n)
	for i := len(ordered) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, ordered[i])
	}
	return recent
}
