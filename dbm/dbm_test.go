package dbm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tauzero/tbamon/dbm"
)

// clock indices for a 2-clock TA: 0 = zero clock, 1 = x, 2 = y.
const (
	zero = 0
	x    = 1
	y    = 2
)

func TestZero_IsOrigin(t *testing.T) {
	t.Parallel()

	d, err := dbm.Zero(3)
	require.NoError(t, err)
	require.False(t, d.IsEmpty())

	sat, err := d.IsSatisfying(dbm.UpperNonStrict(x, 0))
	require.NoError(t, err)
	assert.True(t, sat, "origin satisfies x ≤ 0")

	sat, err = d.IsSatisfying(dbm.LowerStrict(x, 0))
	require.NoError(t, err)
	assert.False(t, sat, "origin does not satisfy x > 0")
}

func TestUnconstrained_AllowsFuture(t *testing.T) {
	t.Parallel()

	d, err := dbm.Unconstrained(2)
	require.NoError(t, err)

	sat, err := d.IsSatisfying(dbm.LowerNonStrict(x, 1000))
	require.NoError(t, err)
	assert.True(t, sat)
}

func TestRestrict_ClosesTransitively(t *testing.T) {
	t.Parallel()

	d, err := dbm.Unconstrained(3)
	require.NoError(t, err)

	_, err = d.Restrict(dbm.DiffUpperNonStrict(x, y, 5))
	require.NoError(t, err)
	_, err = d.Restrict(dbm.DiffUpperNonStrict(y, zero, 3))
	require.NoError(t, err)

	// x - y <= 5 and y <= 3 must imply x <= 8 via closure.
	sat, err := d.IsSatisfying(dbm.LowerStrict(x, 8))
	require.NoError(t, err)
	assert.False(t, sat, "x <= 8 is implied, so x > 8 must be unsatisfiable")

	sat, err = d.IsSatisfying(dbm.UpperNonStrict(x, 8))
	require.NoError(t, err)
	assert.True(t, sat)
}

func TestRestrict_CanMakeEmpty(t *testing.T) {
	t.Parallel()

	d, err := dbm.Zero(2)
	require.NoError(t, err)

	_, err = d.Restrict(dbm.LowerStrict(x, 0))
	require.NoError(t, err)
	assert.True(t, d.IsEmpty(), "origin cannot satisfy x > 0")
}

func TestReset_ClearsClock(t *testing.T) {
	t.Parallel()

	d, err := dbm.Unconstrained(2)
	require.NoError(t, err)
	_, err = d.Restrict(dbm.LowerNonStrict(x, 5))
	require.NoError(t, err)

	r, err := d.Reset(x)
	require.NoError(t, err)

	sat, err := r.IsSatisfying(dbm.UpperNonStrict(x, 0))
	require.NoError(t, err)
	assert.True(t, sat, "reset clock is pinned to 0")
}

func TestFuture_DropsUpperBounds(t *testing.T) {
	t.Parallel()

	d, err := dbm.Zero(2)
	require.NoError(t, err)

	f := d.Future()
	sat, err := f.IsSatisfying(dbm.LowerNonStrict(x, 1_000_000))
	require.NoError(t, err)
	assert.True(t, sat, "delay admits arbitrarily large values")
}

func TestFuture_Roundtrip_AdmitsOriginal(t *testing.T) {
	t.Parallel()

	// Invariant 3 of spec.md §8: every v in F admits some delay landing
	// back in future(F); trivially true for v already in F since Δ=0.
	d, err := dbm.Zero(2)
	require.NoError(t, err)
	_, err = d.Restrict(dbm.UpperNonStrict(x, 10))
	require.NoError(t, err)

	f := d.Future()
	sub, err := d.Subset(f)
	require.NoError(t, err)
	assert.True(t, sub, "future never shrinks the original zone")
}

func TestPast_DropsLowerBounds(t *testing.T) {
	t.Parallel()

	d, err := dbm.Unconstrained(2)
	require.NoError(t, err)
	_, err = d.Restrict(dbm.LowerNonStrict(x, 5))
	require.NoError(t, err)

	p := d.Past()
	sat, err := p.IsSatisfying(dbm.UpperNonStrict(x, 0))
	require.NoError(t, err)
	assert.True(t, sat, "past admits valuations before the lower bound held")
}

func TestIntersection_CommutativeAndAssociative(t *testing.T) {
	t.Parallel()

	a, err := dbm.Unconstrained(2)
	require.NoError(t, err)
	_, err = a.Restrict(dbm.UpperNonStrict(x, 10))
	require.NoError(t, err)

	b, err := dbm.Unconstrained(2)
	require.NoError(t, err)
	_, err = b.Restrict(dbm.LowerNonStrict(x, 2))
	require.NoError(t, err)

	c, err := dbm.Unconstrained(2)
	require.NoError(t, err)
	_, err = c.Restrict(dbm.DiffUpperNonStrict(x, zero, 7))
	require.NoError(t, err)

	ab, err := a.Intersection(b)
	require.NoError(t, err)
	ba, err := b.Intersection(a)
	require.NoError(t, err)
	eq, err := ab.Equal(ba)
	require.NoError(t, err)
	assert.True(t, eq, "intersection must be commutative")

	abc1, err := mustIntersect(t, a, b, c)
	require.NoError(t, err)
	abc2, err := mustIntersect(t, c, a, b)
	require.NoError(t, err)
	eq, err = abc1.Equal(abc2)
	require.NoError(t, err)
	assert.True(t, eq, "intersection must be associative up to equality")
}

func mustIntersect(t *testing.T, ds ...*dbm.DBM) (*dbm.DBM, error) {
	t.Helper()
	acc := ds[0]
	var err error
	for _, d := range ds[1:] {
		acc, err = acc.Intersection(d)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func TestSubset_EmptyIsSubsetOfAnything(t *testing.T) {
	t.Parallel()

	empty, err := dbm.Zero(2)
	require.NoError(t, err)
	_, err = empty.Restrict(dbm.LowerStrict(x, 0))
	require.NoError(t, err)
	require.True(t, empty.IsEmpty())

	other, err := dbm.Unconstrained(2)
	require.NoError(t, err)

	sub, err := empty.Subset(other)
	require.NoError(t, err)
	assert.True(t, sub)

	sub, err = other.Subset(empty)
	require.NoError(t, err)
	assert.False(t, sub)
}

func TestClose_Idempotent(t *testing.T) {
	t.Parallel()

	d, err := dbm.Unconstrained(3)
	require.NoError(t, err)
	_, err = d.Restrict(dbm.DiffUpperNonStrict(x, y, 4))
	require.NoError(t, err)

	once := d.Clone()
	twice, err := once.Intersection(once) // re-closes without changing denotation
	require.NoError(t, err)

	eq, err := once.Equal(twice)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestDimensionMismatch(t *testing.T) {
	t.Parallel()

	a, err := dbm.Zero(2)
	require.NoError(t, err)
	b, err := dbm.Zero(3)
	require.NoError(t, err)

	_, err = a.Intersection(b)
	require.ErrorIs(t, err, dbm.ErrDimensionMismatch)

	_, err = a.Subset(b)
	require.ErrorIs(t, err, dbm.ErrDimensionMismatch)
}

func TestInvalidDimension(t *testing.T) {
	t.Parallel()

	_, err := dbm.Zero(0)
	require.ErrorIs(t, err, dbm.ErrInvalidDimension)
}

func TestClockOutOfRange(t *testing.T) {
	t.Parallel()

	d, err := dbm.Zero(2)
	require.NoError(t, err)

	_, err = d.Reset(5)
	require.ErrorIs(t, err, dbm.ErrClockOutOfRange)
}
