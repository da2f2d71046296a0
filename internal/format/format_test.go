package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateLocales(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw   string
		lang  string
		style Style
		want  string
	}{
		{"2025-10-15", "id", Long, "15 Oktober 2025"},
		{"2025-10-15", "id", Short, "15 Okt 2025"},
		{"2024-08-01", "id-ID", Short, "1 Agu 2024"},
		{"2025-10-15", "en", Long, "October 15, 2025"},
		{"2025-10-15", "en-US", Short, "Oct 15, 2025"},
		{"2024-05-03T10:20:30Z", "id", Long, "3 Mei 2024"},
		{"2024/12/31", "id", Short, "31 Des 2024"},
		{"2024-1-2", "en", Short, "Jan 2, 2024"},
		{"2024-02-29", "fr", Long, "29 Februari 2024"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Date(tc.raw, tc.lang, tc.style), tc.raw+" "+tc.lang)
	}
}

func TestDateReturnsInputWhenUnparseable(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "soon", "2024-13-40", "Q3 2024"} {
		require.Equal(t, raw, Date(raw, "id", Long))
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	got, ok := ParseDate(" 2023-07-09 ")
	require.True(t, ok)
	require.Equal(t, time.Date(2023, 7, 9, 0, 0, 0, 0, time.UTC), got)

	_, ok = ParseDate("nope")
	require.False(t, ok)
}
