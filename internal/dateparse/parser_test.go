package dateparse

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUTC(t *testing.T, value string) time.Time {
	t.Helper()
	tm, err := time.Parse(time.RFC3339Nano, value)
	require.NoError(t, err)
	return tm.UTC()
}

func TestParse_Tiers(t *testing.T) {
	tests := []struct {
		input string
		want  string
		tier  Tier
	}{
		{"1614938400", "2021-03-05T10:00:00Z", TierUnix},
		{"1614938400123", "2021-03-05T10:00:00.123Z", TierUnix},
		{"1614938400123456789", "2021-03-05T10:00:00.123456789Z", TierUnix},
		{"2021-03-05T10:00:00Z", "2021-03-05T10:00:00Z", TierRFC3339},
		{"2021-03-05T10:00:00.5+02:00", "2021-03-05T08:00:00.5Z", TierRFC3339},
		{"Fri, 05 Mar 2021 10:00:00 +0000", "2021-03-05T10:00:00Z", TierRFC2822},
		{"5 Mar 2021 10:00:00 -0500", "2021-03-05T15:00:00Z", TierRFC2822},
		{"Fri, 05 Mar 2021 10:00:00 EST", "2021-03-05T15:00:00Z", TierRFC2822},
		{"5 Mar 2021 10:00:00 CST", "2021-03-05T16:00:00Z", TierRFC2822},
		{"Fri, 05 Mar 2021 10:00:00 PDT", "2021-03-05T17:00:00Z", TierRFC2822},
		{"Fri, 05 Mar 2021 10:00:00 GMT", "2021-03-05T10:00:00Z", TierRFC2822},
		{"Fri, 05 Mar 2021 10:00:00 UT", "2021-03-05T10:00:00Z", TierRFC2822},
		{"Fri, 05 Mar 2021 10:00 edt", "2021-03-05T14:00:00Z", TierRFC2822},
		{"2021-03-05 10:00:00 +0000", "2021-03-05T10:00:00Z", TierOffset},
		{"2021-03-05 10:00:00 -07:00", "2021-03-05T17:00:00Z", TierOffset},
		{"2021-03-05T10:00:00+0100", "2021-03-05T09:00:00Z", TierOffset},
		{"2021-03-05 10:00:00", "2021-03-05T10:00:00Z", TierNaive},
		{"2021-03-05 10:00", "2021-03-05T10:00:00Z", TierNaive},
		{"2021/03/05 10:00:00", "2021-03-05T10:00:00Z", TierNaive},
		{"03/05/2021 10:00", "2021-03-05T10:00:00Z", TierNaive},
		{"3/5/21 10:00:00", "2021-03-05T10:00:00Z", TierNaive},
		{"3/5/69 10:00", "2069-03-05T10:00:00Z", TierNaive},
		{"3/5/2021 10:00 PM", "2021-03-05T22:00:00Z", TierNaive},
		{"Mar 5 2021 10:00:00", "2021-03-05T10:00:00Z", TierNaive},
		{"Fri Mar 5 10:00:00 2021", "2021-03-05T10:00:00Z", TierNaive},
		{"2021年3月5日 10时0分0秒", "2021-03-05T10:00:00Z", TierNaive},
		{"March 5, 2021 10:00:00", "2021-03-05T10:00:00Z", TierNaiveComma},
		{"Friday, March 5, 2021 10:00:00", "2021-03-05T10:00:00Z", TierNaiveComma},
		{"March 5, 2021 10:30 PM", "2021-03-05T22:30:00Z", TierNaiveComma},
		{"2021-03-05", "2021-03-05T00:00:00Z", TierDate},
		{"2021/03/05", "2021-03-05T00:00:00Z", TierDate},
		{"20210305", "2021-03-05T00:00:00Z", TierDate},
		{"3/5/2021", "2021-03-05T00:00:00Z", TierDate},
		{"3/5/69", "2069-03-05T00:00:00Z", TierDate},
		{"3/5/70", "1970-03-05T00:00:00Z", TierDate},
		{"3/5/1969", "1969-03-05T00:00:00Z", TierDate},
		{"5 Mar 2021", "2021-03-05T00:00:00Z", TierDate},
		{"March 3, 2021", "2021-03-03T00:00:00Z", TierDateComma},
		{"Wednesday, March 3, 2021", "2021-03-03T00:00:00Z", TierDateComma},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.tier, got.Tier, "tier for %q", tt.input)
			assert.True(t, got.Time.Equal(mustUTC(t, tt.want)), "got %s want %s", got.Time, tt.want)
			assert.Equal(t, time.UTC, got.Time.Location())
		})
	}
}

func TestParse_Failure(t *testing.T) {
	for _, input := range []string{"", "not a date", "13/45/2021", "tomorrow-ish", "12345",
		"Fri, 05 Mar 2021 10:00:00 XYZ", "5 Mar 2021 10:00:00 CEST"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParseFailure), "got %v", err)
		})
	}
}

func TestParse_SecondsAndMillisAgree(t *testing.T) {
	for _, secs := range []int64{1000000000, 1614938400, 1999999999} {
		s := fmt.Sprintf("%d", secs)
		ms := fmt.Sprintf("%d", secs*1000)
		require.Len(t, s, 10)
		require.Len(t, ms, 13)

		fromSecs, err := Parse(s)
		require.NoError(t, err)
		fromMillis, err := Parse(ms)
		require.NoError(t, err)

		assert.Equal(t, secs, fromSecs.Time.Unix())
		assert.Equal(t, fromSecs.Time.Unix()*1000, fromMillis.Time.UnixMilli())
		assert.True(t, fromSecs.Time.Equal(fromMillis.Time))
	}
}

func TestParseUnix_Widths(t *testing.T) {
	_, err := parseUnix("12345678901")
	assert.ErrorIs(t, err, errUnsupportedWidth)

	_, err = parseUnix("2021-03-05")
	assert.ErrorIs(t, err, ErrInvalidInteger)

	got, err := parseUnix("0000000001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Unix())
}

func TestParse_InvalidIntegerFallsThrough(t *testing.T) {
	// Ten characters wide, so the unix tier tries and fails on the digits.
	got, err := Parse("2021-03-05")
	require.NoError(t, err)
	assert.Equal(t, TierDate, got.Tier)
}

func TestParse_OffsetMatchesRFC3339(t *testing.T) {
	a, err := Parse("2021-03-05 10:00:00 +0000")
	require.NoError(t, err)
	b, err := Parse("2021-03-05T10:00:00Z")
	require.NoError(t, err)

	assert.Equal(t, TierOffset, a.Tier)
	assert.Equal(t, TierRFC3339, b.Tier)
	assert.True(t, a.Time.Equal(b.Time))
}

func TestParse_RFC3339RoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Date(2021, 3, 5, 10, 0, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2038, 1, 19, 3, 14, 8, 0, time.FixedZone("x", 5*3600)),
	}
	for _, want := range instants {
		got, err := Parse(want.Format(time.RFC3339))
		require.NoError(t, err)
		assert.Equal(t, TierRFC3339, got.Tier)
		assert.True(t, got.Time.Equal(want))

		nano := want.Add(123456789 * time.Nanosecond)
		got, err = Parse(nano.Format(time.RFC3339Nano))
		require.NoError(t, err)
		assert.True(t, got.Time.Equal(nano))
	}
}

func TestParse_Idempotent(t *testing.T) {
	for _, input := range []string{"March 5, 2021 10:00:00", "1614938400", "2021-03-05"} {
		first, err := Parse(input)
		require.NoError(t, err)
		second, err := Parse(input)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestParse_Concurrent(t *testing.T) {
	want, err := Parse("March 5, 2021 10:00:00")
	require.NoError(t, err)

	done := make(chan Result)
	for i := 0; i < 8; i++ {
		go func() {
			r, _ := Parse("March 5, 2021 10:00:00")
			done <- r
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, want, <-done)
	}
}

func TestNormalizeCommas(t *testing.T) {
	assert.Equal(t, "March 3 2021", normalizeCommas("March 3, 2021"))
	assert.Equal(t, "no commas", normalizeCommas("no commas"))
}

func TestTier_String(t *testing.T) {
	assert.Equal(t, "unix", TierUnix.String())
	assert.Equal(t, "date-comma", TierDateComma.String())
	assert.Equal(t, "unknown", Tier(0).String())
}
