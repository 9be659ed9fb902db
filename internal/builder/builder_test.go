package builder

import (
	"math"
	"testing"
)

func TestPlanSegment(t *testing.T) {
	tests := []struct {
		name        string
		source      float64
		startOffset float64
		clipSeconds float64
		wantStart   float64
		wantLen     float64
		wantErr     bool
	}{
		{"full clip fits", 240, 0, 60, 0, 60, false},
		{"offset applied", 240, 30, 60, 30, 60, false},
		{"short source contributes what it has", 20, 0, 60, 0, 20, false},
		{"offset clamps into source", 50, 120, 60, 49.99, 0.01, false},
		{"negative offset clamps to zero", 240, -5, 60, 0, 60, false},
		{"tail shorter than clip", 90, 60, 60, 60, 30, false},
		{"zero duration errors", 0, 0, 60, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, segLen, err := PlanSegment(tt.source, tt.startOffset, tt.clipSeconds)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("PlanSegment() error = %v", err)
			}
			if math.Abs(start-tt.wantStart) > 1e-9 {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if math.Abs(segLen-tt.wantLen) > 1e-9 {
				t.Errorf("segLen = %v, want %v", segLen, tt.wantLen)
			}
		})
	}
}
