package scoring

// Verdict 综合评分结论
type Verdict string

const (
	VeryBullish Verdict = "Very Bullish"
	Bullish     Verdict = "Bullish"
	Neutral     Verdict = "Neutral"
	Bearish     Verdict = "Bearish"
	VeryBearish Verdict = "Very Bearish"
)

// VerdictFor 将综合评分映射为结论，边界对称
func VerdictFor(score float64) Verdict {
	switch {
	case score >= 1.5:
		return VeryBullish
	case score >= 0.5:
		return Bullish
	case score > -0.5:
		return Neutral
	case score > -1.5:
		return Bearish
	default:
		return VeryBearish
	}
}

// Signal 单项评分的方向标签
type Signal string

const (
	SignalBullish       Signal = "Bullish"
	SignalBearish       Signal = "Bearish"
	SignalNeutral       Signal = "Neutral"
	SignalNotApplicable Signal = "N/A"
)

func signalOf(score float64) Signal {
	switch {
	case score > 0:
		return SignalBullish
	case score < 0:
		return SignalBearish
	default:
		return SignalNeutral
	}
}
