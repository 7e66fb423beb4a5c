// Package attendance projects how many classes a student can still miss,
// or must still attend, to stay at or above a target attendance percentage.
package attendance

import (
	"math"
	"math/big"
)

const (
	// targetScale is the resolution of targets: millionths of a percent.
	targetScale = 1_000_000
	fullScale   = 100 * targetScale

	// MaxClasses caps CanSkip and MustAttend when the exact answer is larger,
	// e.g. for targets a hair above 0% or below 100%.
	MaxClasses = math.MaxInt32
)

// Projection is the outcome of projecting future classes against a target.
type Projection struct {
	// CanSkip is the largest number of further classes that can be missed
	// while the ratio stays at or above the target.
	CanSkip int `json:"canSkip"`

	// MustAttend is the smallest number of further consecutive classes that
	// must be attended to bring the ratio back up to the target.
	MustAttend int `json:"mustAttend"`

	// SkipUnbounded is set for a 0% target: no number of misses drops below it.
	SkipUnbounded bool `json:"skipUnbounded,omitempty"`

	// Unattainable is set for a 100% target once a class has been missed.
	Unattainable bool `json:"unattainable,omitempty"`
}

// Project computes the slack and deficit recovery for the given counts.
// attended and total are expected non-negative with attended <= total;
// targetPercent is clamped into [0, 100].
func Project(attended, total int, targetPercent float64) Projection {
	if total <= 0 {
		return Projection{}
	}
	if attended < 0 {
		attended = 0
	}
	if attended > total {
		attended = total
	}
	target := scaledTarget(targetPercent)

	return Projection{
		CanSkip:       slack(int64(attended), int64(total), target),
		MustAttend:    deficit(int64(attended), int64(total), target),
		SkipUnbounded: target == 0,
		Unattainable:  target == fullScale && attended < total,
	}
}

// ClampTarget maps any target (NaN included) into [0, 100].
func ClampTarget(targetPercent float64) float64 {
	switch {
	case math.IsNaN(targetPercent), targetPercent < 0:
		return 0
	case targetPercent > 100:
		return 100
	default:
		return targetPercent
	}
}

// scaledTarget clamps targetPercent and converts it to millionths of a percent.
// Targets strictly between 0 and 100 never round onto either bound.
func scaledTarget(targetPercent float64) int64 {
	target := ClampTarget(targetPercent)
	s := int64(math.Round(target * targetScale))
	switch {
	case target > 0 && s == 0:
		return 1
	case target < 100 && s == fullScale:
		return fullScale - 1
	default:
		return s
	}
}

func mul(a, b int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
}

// meetsScaled reports whether attended/total >= target/fullScale, exactly.
func meetsScaled(attended, total, target int64) bool {
	return mul(attended, fullScale).Cmp(mul(target, total)) >= 0
}

// meets reports whether attended/total >= target%.
func meets(attended, total int, targetPercent float64) bool {
	return meetsScaled(int64(attended), int64(total), scaledTarget(targetPercent))
}

// saturate converts a non-negative count to int, capped at MaxClasses.
func saturate(n *big.Int) int {
	switch {
	case n.Sign() <= 0:
		return 0
	case !n.IsInt64() || n.Int64() > MaxClasses:
		return MaxClasses
	default:
		return int(n.Int64())
	}
}

// slack is the largest k >= 0 with attended/(total+k) >= r:
// floor(attended/r - total), computed on integers, then checked by substitution.
func slack(attended, total, target int64) int {
	if target == 0 {
		return 0 // unbounded, reported through SkipUnbounded
	}
	if !meetsScaled(attended, total, target) {
		return 0
	}
	q := new(big.Int).Quo(mul(attended, fullScale), big.NewInt(target))
	k := int64(saturate(q.Sub(q, big.NewInt(total))))
	if k > 0 && !meetsScaled(attended, total+k, target) {
		k--
	}
	if k < MaxClasses && meetsScaled(attended, total+k+1, target) {
		k++
	}
	return int(k)
}

// deficit is the smallest m >= 0 with (attended+m)/(total+m) >= r:
// ceil((r*total - attended)/(1 - r)), computed on integers, then checked by substitution.
func deficit(attended, total, target int64) int {
	if meetsScaled(attended, total, target) {
		return 0
	}
	if target == fullScale {
		return 0 // unattainable, reported through Unattainable
	}
	num := new(big.Int).Sub(mul(target, total), mul(attended, fullScale))
	den := big.NewInt(fullScale - target)
	num.Add(num, den).Sub(num, big.NewInt(1))
	m := int64(saturate(num.Quo(num, den)))
	if m < MaxClasses && !meetsScaled(attended+m, total+m, target) {
		m++
	}
	if m > 0 && meetsScaled(attended+m-1, total+m-1, target) {
		m--
	}
	return int(m)
}

// Percentage is attended/total as a percent, 0 when no class was held.
func Percentage(attended, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(attended) / float64(total) * 100
}

// BelowTarget reports whether the current ratio is under the target.
// With no class held the ratio is 0, so any positive target counts as below.
func BelowTarget(attended, total int, targetPercent float64) bool {
	if total <= 0 {
		return ClampTarget(targetPercent) > 0
	}
	return !meets(attended, total, targetPercent)
}
