package dbm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tauzero/tbamon/dbm"
)

func TestBound_Less(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b dbm.Bound
		want bool
	}{
		{"lower value wins", dbm.LE(1), dbm.LE(2), true},
		{"strict tighter than non-strict at equal value", dbm.LT(2), dbm.LE(2), true},
		{"non-strict not tighter than strict", dbm.LE(2), dbm.LT(2), false},
		{"equal bounds", dbm.LE(2), dbm.LE(2), false},
		{"finite beats infinite", dbm.LE(100), dbm.InfBound(), true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.a.Less(tc.b))
		})
	}
}

func TestBound_Add(t *testing.T) {
	t.Parallel()

	assert.Equal(t, dbm.LE(5), dbm.Add(dbm.LE(2), dbm.LE(3)))
	assert.Equal(t, dbm.LT(5), dbm.Add(dbm.LT(2), dbm.LE(3)), "either strict makes the sum strict")
	assert.True(t, dbm.Add(dbm.LE(2), dbm.InfBound()).IsInf(), "infinity absorbs")
}

func TestBound_Min(t *testing.T) {
	t.Parallel()

	assert.Equal(t, dbm.LT(2), dbm.Min(dbm.LT(2), dbm.LE(2)))
	assert.Equal(t, dbm.LE(1), dbm.Min(dbm.LE(1), dbm.LE(2)))
}
