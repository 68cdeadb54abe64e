package model

import "math"

// DeriveLevel inverts the cumulative experience curve 50·L·(L+1).
// The result is truncated toward zero; UntilNextLevel relies on that.
func DeriveLevel(experience int) int {
	return int((math.Sqrt(float64(2500+200*int64(experience))) - 50) / 100)
}

// DeriveUntilNextLevel returns the experience missing to reach level+1.
// level must be the value DeriveLevel returned for the same experience.
func DeriveUntilNextLevel(experience, level int) int {
	return 50*(level+1)*(level+2) - experience
}
