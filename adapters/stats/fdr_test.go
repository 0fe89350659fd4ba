package stats

import (
	"math"
	"testing"
)

func TestAdjustBH_KnownVectors(t *testing.T) {
	cases := []struct {
		name string
		p    []float64
		want []float64
	}{
		{
			// Equally spaced p-values collapse to a single q under BH.
			name: "uniform ladder",
			p:    []float64{0.01, 0.02, 0.03, 0.04, 0.05},
			want: []float64{0.05, 0.05, 0.05, 0.05, 0.05},
		},
		{
			name: "mixed vector",
			p:    []float64{0.005, 0.01, 0.1, 0.5},
			want: []float64{0.02, 0.02, 0.4 / 3, 0.5},
		},
		{
			name: "single value",
			p:    []float64{0.2},
			want: []float64{0.2},
		},
		{
			name: "clamped at one",
			p:    []float64{0.9, 0.95},
			want: []float64{0.95, 0.95},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AdjustBH(tc.p)
			if len(got) != len(tc.want) {
				t.Fatalf("length = %d, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if math.Abs(got[i]-tc.want[i]) > 1e-12 {
					t.Errorf("q[%d] = %g, want %g", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestAdjustBH_PreservesInputOrder(t *testing.T) {
	p := []float64{0.5, 0.005, 0.1, 0.01}
	got := AdjustBH(p)

	// The smallest p-value must map to the smallest q-value at the same index.
	if got[1] > got[0] || got[1] > got[2] || got[1] > got[3] {
		t.Errorf("q-values %v do not preserve the order of p-values %v", got, p)
	}
}

func TestAdjustBH_MonotoneInPRank(t *testing.T) {
	p := []float64{0.001, 0.2, 0.013, 0.8, 0.04, 0.04, 0.6, 0.09}
	q := AdjustBH(p)

	// Sort pairs by p and check q never decreases with p.
	for i := range p {
		for j := range p {
			if p[i] < p[j] && q[i] > q[j]+1e-15 {
				t.Errorf("q not monotone: p=%g has q=%g while p=%g has q=%g", p[i], q[i], p[j], q[j])
			}
		}
	}

	for i, v := range q {
		if v < 0 || v > 1 {
			t.Errorf("q[%d] = %g outside [0,1]", i, v)
		}
	}
}

func TestAdjustBH_Empty(t *testing.T) {
	if got := AdjustBH(nil); got != nil {
		t.Errorf("AdjustBH(nil) = %v, want nil", got)
	}
}

func TestCountBelow(t *testing.T) {
	values := []float64{0.01, 0.5, 0.04, 0.9}

	if got := CountBelow(values, 0.05, -1); got != 2 {
		t.Errorf("full count = %d, want 2", got)
	}
	if got := CountBelow(values, 0.05, 2); got != 1 {
		t.Errorf("limited count = %d, want 1", got)
	}
	if got := CountBelow(values, 0.05, 100); got != 2 {
		t.Errorf("overlong limit count = %d, want 2", got)
	}
	// Strictly below: a value equal to the threshold does not count.
	if got := CountBelow([]float64{0.05}, 0.05, -1); got != 0 {
		t.Errorf("boundary count = %d, want 0", got)
	}
}
