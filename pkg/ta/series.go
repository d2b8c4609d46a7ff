package ta

import "github.com/markcheno/go-talib"

func Last(s []float64, position int) float64 {
	return s[len(s)-1-position]
}

func LastValues(s []float64, size int) []float64 {
	if l := len(s); l > size {
		return s[l-size:]
	}
	return s
}

// Mean 算术平均，空序列返回 0
func Mean(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}

// SMALast 最近 period 个值（含最新值）的简单均值，数据不足时返回 false
func SMALast(s []float64, period int) (float64, bool) {
	if period <= 0 || len(s) < period {
		return 0, false
	}
	return Mean(LastValues(s, period)), true
}

// PctChange period 期百分比变化，前 period 个值无意义
func PctChange(s []float64, period int) []float64 {
	if len(s) <= period {
		return make([]float64, len(s))
	}
	return talib.Roc(s, period)
}

// Lowest 最近 n 个值中的最小值
func Lowest(low []float64, period int) float64 {
	arr := LastValues(low, period)
	minVal := arr[0]

	for _, value := range arr {
		if value < minVal {
			minVal = value
		}
	}
	return minVal
}

// Highest 最近 n 个值中的最大值
func Highest(high []float64, period int) float64 {
	arr := LastValues(high, period)
	maxVal := arr[0]

	for _, value := range arr {
		if value > maxVal {
			maxVal = value
		}
	}
	return maxVal
}
