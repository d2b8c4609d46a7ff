package nostd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$100.00", FormatMoney(100, "USD"))
	assert.Equal(t, "-€40.13", FormatMoney(-40.125, "EUR"))
	assert.Equal(t, "CHF 3.10", FormatMoney(3.1, "CHF"))
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "1 : 1.43", FormatRatio(100.0/70.0))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "55.56%", FormatPercent(55.5555))
	assert.Equal(t, "0.00%", FormatPercent(0))
}
