package models

import "math"

// SizeMetrics holds physical line counts for one file. The comment and
// logical scans are independent of each other: a continuation line inside a
// block comment can count for both, so they are not a partition of
// SourceLines. BlankLines is always TotalLines - SourceLines.
type SizeMetrics struct {
	TotalLines   int `json:"total_lines"`
	SourceLines  int `json:"source_lines"`
	CommentLines int `json:"comment_lines"`
	BlankLines   int `json:"blank_lines"`
	LogicalLines int `json:"logical_lines"`
}

// StructuralMetrics holds structural composition counters.
// TotalFunctions is always the sum of the three function sub-categories.
type StructuralMetrics struct {
	TotalFunctions     int `json:"total_functions"`
	NamedFunctions     int `json:"named_functions"`
	AnonymousFunctions int `json:"anonymous_functions"`
	ArrowFunctions     int `json:"arrow_functions"`
	Methods            int `json:"methods"`
	Classes            int `json:"classes"`
	Variables          int `json:"variables"`
	Constants          int `json:"constants"`
	Imports            int `json:"imports"`
	Exports            int `json:"exports"`
	Conditionals       int `json:"conditionals"`
	Loops              int `json:"loops"`
	ASTNodes           int `json:"ast_nodes"`
}

// RiskLevel is an ordinal category derived from cyclomatic complexity.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
)

// RiskFor maps a cyclomatic complexity value to its risk level.
// Thresholds are closed and inclusive: <=10 low, <=20 moderate, <=50 high.
func RiskFor(complexity int) RiskLevel {
	switch {
	case complexity <= 10:
		return RiskLow
	case complexity <= 20:
		return RiskModerate
	case complexity <= 50:
		return RiskHigh
	default:
		return RiskVeryHigh
	}
}

// ComplexityMetrics holds McCabe-style complexity measures for one file.
type ComplexityMetrics struct {
	DecisionPoints    int       `json:"decision_points"`
	Complexity        int       `json:"complexity"`
	MaxNestingDepth   int       `json:"max_nesting_depth"`
	AverageComplexity float64   `json:"average_complexity"`
	Risk              RiskLevel `json:"risk"`
}

// Finalize derives complexity and risk from the raw decision-point count.
// Complexity is 1 + decision points, never below 1 and never clamped above.
func (c *ComplexityMetrics) Finalize(functionCount int) {
	c.Complexity = 1 + c.DecisionPoints
	c.Risk = RiskFor(c.Complexity)
	if functionCount > 0 {
		c.AverageComplexity = Round2(float64(c.Complexity) / float64(functionCount))
	} else {
		c.AverageComplexity = 0
	}
}

// HalsteadRaw retains the unrounded derived values for downstream
// recomputation that needs full precision.
type HalsteadRaw struct {
	CalculatedLength float64
	Volume           float64
	Difficulty       float64
	Effort           float64
	Time             float64
	Defects          float64
}

// HalsteadMetrics holds software-science measures built from the operator and
// operand multisets observed during traversal. Reported values are rounded at
// the finalization boundary (2 decimals, defects 4); Raw keeps full precision.
type HalsteadMetrics struct {
	OperatorsUnique  uint32      `json:"operators_unique"` // n1
	OperandsUnique   uint32      `json:"operands_unique"`  // n2
	OperatorsTotal   uint32      `json:"operators_total"`  // N1
	OperandsTotal    uint32      `json:"operands_total"`   // N2
	Vocabulary       uint32      `json:"vocabulary"`       // n1 + n2
	Length           uint32      `json:"length"`           // N1 + N2
	CalculatedLength float64     `json:"calculated_length"`
	Volume           float64     `json:"volume"`
	Difficulty       float64     `json:"difficulty"`
	Effort           float64     `json:"effort"`
	Time             float64     `json:"time"`
	Defects          float64     `json:"defects"`
	Raw              HalsteadRaw `json:"-"`
}

// NewHalsteadMetrics computes all derived Halstead values from base counts.
//
// Edge-case policies:
//   - calculated length substitutes 1 as the log argument for a zero base,
//     term by term, so a single empty category never poisons the other term
//   - difficulty is defined as 0 when there are no operands
//   - volume is defined as 0 when the vocabulary is empty
//
// All results are finite for any input, including all-zero counts.
func NewHalsteadMetrics(operatorsUnique, operandsUnique, operatorsTotal, operandsTotal uint32) *HalsteadMetrics {
	h := &HalsteadMetrics{
		OperatorsUnique: operatorsUnique,
		OperandsUnique:  operandsUnique,
		OperatorsTotal:  operatorsTotal,
		OperandsTotal:   operandsTotal,
	}

	n1 := float64(operatorsUnique)
	n2 := float64(operandsUnique)
	h.Vocabulary = operatorsUnique + operandsUnique
	h.Length = operatorsTotal + operandsTotal

	h.Raw.CalculatedLength = n1*log2(orOne(n1)) + n2*log2(orOne(n2))

	if h.Vocabulary > 0 {
		h.Raw.Volume = float64(h.Length) * log2(float64(h.Vocabulary))
	}

	if operandsUnique > 0 {
		h.Raw.Difficulty = (n1 / 2.0) * (float64(operandsTotal) / n2)
	}

	h.Raw.Effort = h.Raw.Difficulty * h.Raw.Volume
	h.Raw.Time = h.Raw.Effort / 18.0
	h.Raw.Defects = h.Raw.Volume / 3000.0

	h.CalculatedLength = Round2(h.Raw.CalculatedLength)
	h.Volume = Round2(h.Raw.Volume)
	h.Difficulty = Round2(h.Raw.Difficulty)
	h.Effort = Round2(h.Raw.Effort)
	h.Time = Round2(h.Raw.Time)
	h.Defects = Round4(h.Raw.Defects)

	return h
}

// orOne substitutes 1 for a zero log base.
func orOne(x float64) float64 {
	if x == 0 {
		return 1
	}
	return x
}

func log2(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Log2(x)
}

// Round2 rounds to 2 decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Round4 rounds to 4 decimal places.
func Round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

// LintIssue is one issue reported by the external lint collaborator.
type LintIssue struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Rule     string `json:"rule"`
	Severity string `json:"severity"` // "error" or "warning"
	Message  string `json:"message"`
}

// LintSummary aggregates the lint collaborator output for one file.
// It is opaque to the metrics core; nothing else in the record depends on it.
type LintSummary struct {
	TotalIssues int         `json:"total_issues"`
	Errors      int         `json:"errors"`
	Warnings    int         `json:"warnings"`
	Issues      []LintIssue `json:"issues,omitempty"`
	Skipped     bool        `json:"skipped,omitempty"`
	Note        string      `json:"note,omitempty"`
}

// SkippedLint returns a summary marked as skipped with an explanatory note.
func SkippedLint(note string) LintSummary {
	return LintSummary{Skipped: true, Note: note}
}

// MetricsRecord is the complete per-file analysis result. One record is
// created per file, populated during the traversal, finalized once, and not
// mutated afterwards. It carries no timestamps so identical source always
// yields an identical record.
type MetricsRecord struct {
	Path       string            `json:"path"`
	Language   string            `json:"language"`
	Size       SizeMetrics       `json:"size"`
	Structure  StructuralMetrics `json:"structure"`
	Complexity ComplexityMetrics `json:"complexity"`
	Halstead   *HalsteadMetrics  `json:"halstead,omitempty"`
	Lint       LintSummary       `json:"lint"`
	Fallback   bool              `json:"fallback,omitempty"`
}
