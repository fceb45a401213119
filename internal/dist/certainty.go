package dist

// DefaultCertaintyTolerance is the default slack when deciding whether a
// probability counts as certain. Accumulated probabilities rarely reach
// exactly 1 in floating point.
const DefaultCertaintyTolerance = 1e-6

// EffectivelyCertain reports whether p is near enough to 1 to be treated
// as certain. A negative tolerance is treated as zero.
func EffectivelyCertain(p, tolerance float64) bool {
	if tolerance < 0 {
		tolerance = 0
	}
	return p >= 1-tolerance
}

// ClampCertain snaps an effectively-certain probability to exactly 1 and
// leaves any other probability unchanged.
func ClampCertain(p, tolerance float64) float64 {
	if EffectivelyCertain(p, tolerance) {
		return 1
	}
	return p
}
