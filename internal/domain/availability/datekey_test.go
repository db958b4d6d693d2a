package availability

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elinspetor87/ai-vision-studio-sub000/internal/httperr"
)

func TestParseDateKey(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"date only", "2024-06-01", "2024-06-01"},
		{"padded", "  2024-06-01 ", "2024-06-01"},
		{"utc timestamp", "2024-06-01T15:04:05Z", "2024-06-01"},
		{"negative offset late evening", "2024-06-01T23:30:00-03:00", "2024-06-01"},
		{"positive offset early morning", "2024-06-01T00:30:00+09:00", "2024-06-01"},
		{"nanos", "2024-06-01T10:00:00.123456789Z", "2024-06-01"},
		{"no zone", "2024-06-01T10:00:00", "2024-06-01"},
		{"space separated", "2024-06-01 10:00:00", "2024-06-01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k, err := ParseDateKey(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, k.String())

			tm := k.Time()
			assert.Equal(t, time.UTC, tm.Location())
			assert.Zero(t, tm.Hour())
			assert.Zero(t, tm.Minute())
			assert.Zero(t, tm.Second())
			assert.Zero(t, tm.Nanosecond())
		})
	}
}

func TestParseDateKeyInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not-a-date", "2024-13-01", "2024-02-30", "01/06/2024"} {
		_, err := ParseDateKey(input)
		require.Error(t, err, input)
		assert.True(t, httperr.IsBusiness(err, CodeInvalidDate), input)
	}
}

func TestDateKeyFromTimeIgnoresServerZone(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*3600)
	tokyo := time.FixedZone("JST", 9*3600)

	a := DateKeyFromTime(time.Date(2024, 6, 1, 23, 59, 0, 0, saoPaulo))
	b := DateKeyFromTime(time.Date(2024, 6, 1, 0, 1, 0, 0, tokyo))
	c, err := ParseDateKey("2024-06-01")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(c))
	assert.Equal(t, c, a)
}

func TestDateKeyOrderingAndArithmetic(t *testing.T) {
	k, err := ParseDateKey("2024-02-28")
	require.NoError(t, err)

	next := k.AddDays(1)
	assert.Equal(t, "2024-02-29", next.String())
	assert.Equal(t, "2024-03-01", next.AddDays(1).String())
	assert.True(t, k.Before(next))
	assert.True(t, next.After(k))
	assert.False(t, k.IsZero())
	assert.True(t, DateKey{}.IsZero())
}

func TestDateKeyJSON(t *testing.T) {
	k, err := ParseDateKey("2024-12-25T08:00:00Z")
	require.NoError(t, err)

	b, err := json.Marshal(k)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-12-25"`, string(b))

	var back DateKey
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, k.Equal(back))

	assert.Error(t, json.Unmarshal([]byte(`"christmas"`), &back))
}

func TestParseDateKeyRejectsZeroDate(t *testing.T) {
	for _, in := range []string{"0001-01-01", "0001-01-01T10:00:00+05:00"} {
		k, err := ParseDateKey(in)
		assert.True(t, httperr.IsBusiness(err, CodeInvalidDate), in)
		assert.True(t, k.IsZero(), in)
	}

	k, err := ParseDateKey("0001-01-02")
	require.NoError(t, err)
	assert.Equal(t, "0001-01-02", k.String())
}
