package inference

import "testing"

func TestParseSalary(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw     string
		wantMin float64
		wantMax float64
		wantNil bool
	}{
		{"KES 80,000 - 120,000", 80000, 120000, false},
		{"KES 50,000", 50000, 50000, false},
		{"Competitive", 0, 0, true},
		{"", 0, 0, true},
		{"Ksh 45,000 per month", 45000, 45000, false},
	}

	for _, tc := range cases {
		min, max := ParseSalary(tc.raw)
		if tc.wantNil {
			if min != nil || max != nil {
				t.Errorf("ParseSalary(%q) = (%v, %v), want (nil, nil)", tc.raw, min, max)
			}
			continue
		}
		if min == nil || max == nil {
			t.Errorf("ParseSalary(%q) returned nil, want (%v, %v)", tc.raw, tc.wantMin, tc.wantMax)
			continue
		}
		if *min != tc.wantMin || *max != tc.wantMax {
			t.Errorf("ParseSalary(%q) = (%v, %v), want (%v, %v)", tc.raw, *min, *max, tc.wantMin, tc.wantMax)
		}
	}
}
