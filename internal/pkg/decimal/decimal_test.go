package decimal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := map[string]Decimal{
		"45":     4500,
		"45.5":   4550,
		"45.50":  4550,
		"0.07":   7,
		"-3.25":  -325,
		"+12.00": 1200,
	}
	for in, want := range cases {
		got, err := Parse(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", ".", "45.123", "abc", "1,5"} {
		_, err := Parse(bad)
		assert.Error(t, err, bad)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "45.00", FromInt(45).String())
	assert.Equal(t, "0.07", Decimal(7).String())
	assert.Equal(t, "-3.25", Decimal(-325).String())
}

func TestPercent(t *testing.T) {
	// 3 occupied nights out of 30 room-nights -> 10.00%
	assert.Equal(t, "10.00", PercentOfCount(3, 30).String())
	// zero denominator -> 0
	assert.Equal(t, Decimal(0), PercentOfCount(5, 0))
	assert.Equal(t, Decimal(0), Percent(FromInt(300), 0))
	// 300 revenue of 3525 max -> 8.51%
	assert.Equal(t, "8.51", Percent(FromInt(300), FromInt(3525)).String())
}

func TestJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(FromInt(45))
	assert.NoError(t, err)
	assert.Equal(t, "45.00", string(b))

	var d Decimal
	assert.NoError(t, json.Unmarshal([]byte("75.5"), &d))
	assert.Equal(t, Decimal(7550), d)

	assert.NoError(t, json.Unmarshal([]byte(`"150.00"`), &d))
	assert.Equal(t, FromInt(150), d)
}

func TestDivInt(t *testing.T) {
	// mean of 45.00, 75.00, 95.00 -> 71.67 (half away from zero)
	sum := FromInt(45).Add(FromInt(75)).Add(FromInt(95))
	assert.Equal(t, "71.67", sum.DivInt(3).String())
	assert.Equal(t, Decimal(0), sum.DivInt(0))
}
