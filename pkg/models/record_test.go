package models

import "testing"

func TestRiskFor(t *testing.T) {
	tests := []struct {
		complexity int
		want       RiskLevel
	}{
		{1, RiskLow},
		{10, RiskLow},
		{11, RiskModerate},
		{20, RiskModerate},
		{21, RiskHigh},
		{50, RiskHigh},
		{51, RiskVeryHigh},
		{500, RiskVeryHigh},
	}

	for _, tt := range tests {
		if got := RiskFor(tt.complexity); got != tt.want {
			t.Errorf("RiskFor(%d) = %q, want %q", tt.complexity, got, tt.want)
		}
	}
}

func TestComplexityFinalize(t *testing.T) {
	tests := []struct {
		name           string
		decisionPoints int
		functions      int
		wantComplexity int
		wantRisk       RiskLevel
		wantAvg        float64
	}{
		{
			name:           "No decision points",
			decisionPoints: 0,
			functions:      0,
			wantComplexity: 1,
			wantRisk:       RiskLow,
			wantAvg:        0,
		},
		{
			name:           "Two decisions one function",
			decisionPoints: 2,
			functions:      1,
			wantComplexity: 3,
			wantRisk:       RiskLow,
			wantAvg:        3,
		},
		{
			name:           "Averaged over functions",
			decisionPoints: 10,
			functions:      4,
			wantComplexity: 11,
			wantRisk:       RiskModerate,
			wantAvg:        2.75,
		},
		{
			name:           "Unclamped above very high",
			decisionPoints: 99,
			functions:      3,
			wantComplexity: 100,
			wantRisk:       RiskVeryHigh,
			wantAvg:        33.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ComplexityMetrics{DecisionPoints: tt.decisionPoints}
			c.Finalize(tt.functions)

			if c.Complexity != tt.wantComplexity {
				t.Errorf("Complexity = %d, want %d", c.Complexity, tt.wantComplexity)
			}
			if c.Risk != tt.wantRisk {
				t.Errorf("Risk = %q, want %q", c.Risk, tt.wantRisk)
			}
			if c.AverageComplexity != tt.wantAvg {
				t.Errorf("AverageComplexity = %v, want %v", c.AverageComplexity, tt.wantAvg)
			}
		})
	}
}

func TestSkippedLint(t *testing.T) {
	s := SkippedLint("linter not found")
	if !s.Skipped {
		t.Error("Skipped = false, want true")
	}
	if s.Note != "linter not found" {
		t.Errorf("Note = %q", s.Note)
	}
	if s.TotalIssues != 0 || s.Errors != 0 || s.Warnings != 0 {
		t.Error("skipped summary should carry no issue counts")
	}
}
