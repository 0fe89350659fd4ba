package stats

import (
	"math"
	"testing"
)

func TestSampleSizeTTest_MatchesTextbookValue(t *testing.T) {
	// d=0.5, power 0.80, alpha 0.05 is the canonical example: 63 per group
	// under the normal approximation (64 with the exact non-central t).
	pa := NewPowerAnalysis()
	got := pa.SampleSizeTTest(0.5, 0.80, 0.05)
	if got < 62 || got > 64 {
		t.Errorf("per-group size = %d, want ~63", got)
	}
}

func TestSampleSizeTTest_ShrinksWithEffectSize(t *testing.T) {
	pa := NewPowerAnalysis()
	small := pa.SampleSizeTTest(0.2, 0.80, 0.05)
	large := pa.SampleSizeTTest(0.8, 0.80, 0.05)
	if small <= large {
		t.Errorf("sample sizes %d (d=0.2) and %d (d=0.8) are not ordered", small, large)
	}
	if pa.SampleSizeTTest(0, 0.80, 0.05) != 0 {
		t.Error("zero effect size should return 0, not a finite sample size")
	}
}

func TestTTestPower_RoundTripsSampleSize(t *testing.T) {
	pa := NewPowerAnalysis()
	n := pa.SampleSizeTTest(0.5, 0.80, 0.05)
	power := pa.TTestPower(0.5, 0.05, n, n)
	if math.Abs(power-0.80) > 0.02 {
		t.Errorf("power at the computed sample size = %g, want ~0.80", power)
	}
}

func TestTTestPower_Degenerate(t *testing.T) {
	pa := NewPowerAnalysis()
	if got := pa.TTestPower(0.5, 0.05, 0, 10); got != 0 {
		t.Errorf("power with an empty group = %g, want 0", got)
	}
	if got := pa.TTestPower(0, 0.05, 100, 100); got >= 0.05 {
		t.Errorf("power at zero effect = %g, want at most alpha/2", got)
	}
}

func TestUnequalGroupsTotal(t *testing.T) {
	pa := NewPowerAnalysis()

	// At f=0.5 the groups are balanced and the total is simply 2n.
	if got := pa.UnequalGroupsTotal(63, 0.5); got != 126 {
		t.Errorf("balanced total = %d, want 126", got)
	}

	// Rarer carriers inflate the total: n/(2 f (1-f)) grows as f leaves 0.5.
	balanced := pa.UnequalGroupsTotal(63, 0.5)
	skewed := pa.UnequalGroupsTotal(63, 0.1)
	if skewed <= balanced {
		t.Errorf("skewed total %d not above balanced total %d", skewed, balanced)
	}
	want := int(math.Ceil(63.0 / (2 * 0.1 * 0.9)))
	if skewed != want {
		t.Errorf("skewed total = %d, want %d", skewed, want)
	}

	if pa.UnequalGroupsTotal(0, 0.5) != 0 {
		t.Error("non-positive per-group size should return 0")
	}
	if pa.UnequalGroupsTotal(63, 0) != 0 || pa.UnequalGroupsTotal(63, 1) != 0 {
		t.Error("degenerate carrier frequency should return 0")
	}
}
