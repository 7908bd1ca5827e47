package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("19.99")
	require.NoError(t, err)
	assert.Equal(t, "19.99", m.String())

	_, err = NewMoneyFromString("not-a-number")
	assert.Error(t, err)
}

func TestMoney_Arithmetic(t *testing.T) {
	a, _ := NewMoneyFromString("10.50")
	b, _ := NewMoneyFromString("0.25")

	assert.Equal(t, "10.75", a.Add(b).String())
	assert.Equal(t, "10.25", a.Sub(b).String())
	assert.Equal(t, "31.50", a.MulInt(3).String())
}

func TestMoney_NoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 is exactly 0.3 in fixed-point decimal
	a, _ := NewMoneyFromString("0.10")
	b, _ := NewMoneyFromString("0.20")
	c, _ := NewMoneyFromString("0.30")
	assert.True(t, a.Add(b).Equals(c))

	// summing 0.01 a hundred times is exactly 1.00
	cent, _ := NewMoneyFromString("0.01")
	sum := Zero()
	for i := 0; i < 100; i++ {
		sum = sum.Add(cent)
	}
	assert.Equal(t, "1.00", sum.String())
}

func TestMoney_MulRateRounding(t *testing.T) {
	rate := decimal.RequireFromString("0.19")

	cases := []struct {
		amount string
		want   string
	}{
		{"30.00", "5.70"},
		{"39.99", "7.60"},  // 7.5981 rounds up
		{"0.01", "0.00"},   // 0.0019 rounds down
		{"10.55", "2.00"},  // 2.0045 rounds half away
		{"100.00", "19.00"},
	}
	for _, tc := range cases {
		m, err := NewMoneyFromString(tc.amount)
		require.NoError(t, err)
		assert.Equal(t, tc.want, m.MulRate(rate).Round().String(), "amount %s", tc.amount)
	}
}

func TestMoney_Comparisons(t *testing.T) {
	a, _ := NewMoneyFromString("1.00")
	b, _ := NewMoneyFromString("2.00")

	assert.True(t, a.LessThan(b))
	assert.False(t, b.LessThan(a))
	assert.True(t, Zero().IsZero())
	assert.True(t, Zero().Sub(a).IsNegative())
}

func TestMoney_JSON(t *testing.T) {
	m, _ := NewMoneyFromString("19.90")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"19.90"`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_SQLRoundTrip(t *testing.T) {
	m, _ := NewMoneyFromString("12.34")

	v, err := m.Value()
	require.NoError(t, err)

	var scanned Money
	require.NoError(t, scanned.Scan(v))
	assert.True(t, m.Equals(scanned))
}
