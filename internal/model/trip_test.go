package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeatNumbers(t *testing.T) {
	seats := SeatNumbers(DefaultTotalSeats)
	require.Len(t, seats, 20)
	require.Equal(t, "1A", seats[0])
	require.Equal(t, "1B", seats[1])
	require.Equal(t, "2A", seats[2])
	require.Equal(t, "10B", seats[19])

	require.Nil(t, SeatNumbers(0))
	require.Nil(t, SeatNumbers(-4))
	// odd capacity rounds down to full rows
	require.Len(t, SeatNumbers(5), 4)
}

func TestNormalizeSeat(t *testing.T) {
	require.Equal(t, "1A", NormalizeSeat(" 1a "))
	require.Equal(t, "10B", NormalizeSeat("10b"))
	require.Equal(t, "", NormalizeSeat("   "))

	// aliases of a real seat collapse to the canonical label, so the
	// unique index sees one string per physical seat
	require.Equal(t, "1A", NormalizeSeat("01a"))
	require.Equal(t, "1B", NormalizeSeat("001B"))
	require.Equal(t, "10A", NormalizeSeat("010a"))

	// labels that are not seats pass through untouched for ValidSeat
	// to reject
	require.Equal(t, "+1A", NormalizeSeat("+1a"))
	require.Equal(t, "-1A", NormalizeSeat("-1A"))
	require.Equal(t, "X", NormalizeSeat("x"))
}

func TestValidSeat(t *testing.T) {
	cases := []struct {
		seat  string
		total int
		want  bool
	}{
		{"1A", 20, true},
		{"1B", 20, true},
		{"10A", 20, true},
		{"10B", 20, true},
		{"11A", 20, false},
		{"0A", 20, false},
		{"5C", 20, false},
		{"A1", 20, false},
		{"", 20, false},
		{"A", 20, false},
		{"-1A", 20, false},
		// non-canonical spellings of real seats must not validate;
		// they would insert as distinct active_seat strings and dodge
		// the uniqueness index
		{"01A", 20, false},
		{"001B", 20, false},
		{"+1A", 20, false},
		{"010A", 20, false},
		{"3A", 4, false},
		{"2B", 4, true},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ValidSeat(tc.seat, tc.total), "seat %q total %d", tc.seat, tc.total)
	}
}
