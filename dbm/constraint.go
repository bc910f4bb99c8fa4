package dbm

// Constraint is a single difference-bound constraint x_i − x_j ⋈ Bound.
// Index 0 is the zero clock, so single-variable bounds on a real clock x
// are expressed against it: (0, x, b) bounds −x, (x, 0, b) bounds x.
type Constraint struct {
	I, J  int
	Bound Bound
}

// LowerStrict builds the constraint "x > c" as x_0 − x_x < −c.
func LowerStrict(x int, c int64) Constraint {
	return Constraint{I: 0, J: x, Bound: LT(-c)}
}

// LowerNonStrict builds the constraint "x ≥ c" as x_0 − x_x ≤ −c.
func LowerNonStrict(x int, c int64) Constraint {
	return Constraint{I: 0, J: x, Bound: LE(-c)}
}

// UpperStrict builds the constraint "x < c" as x_x − x_0 < c.
func UpperStrict(x int, c int64) Constraint {
	return Constraint{I: x, J: 0, Bound: LT(c)}
}

// UpperNonStrict builds the constraint "x ≤ c" as x_x − x_0 ≤ c.
func UpperNonStrict(x int, c int64) Constraint {
	return Constraint{I: x, J: 0, Bound: LE(c)}
}

// DiffUpperNonStrict builds the general two-clock constraint "x_i − x_j ≤ c".
func DiffUpperNonStrict(i, j int, c int64) Constraint {
	return Constraint{I: i, J: j, Bound: LE(c)}
}

// DiffUpperStrict builds the general two-clock constraint "x_i − x_j < c".
func DiffUpperStrict(i, j int, c int64) Constraint {
	return Constraint{I: i, J: j, Bound: LT(c)}
}
