package metrics

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sondelabs/sonde/pkg/parser"
)

// Synthetic Halstead operator tokens for constructs without a literal symbol.
const (
	opCall   = "()"
	opMember = "."
)

// reservedWords are the identifier spellings excluded from the Halstead
// operand set: language keywords plus boolean/null literals when they appear
// as identifiers. Resolved once, never re-tested as substrings.
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "enum": true,
	"export": true, "extends": true, "finally": true, "for": true,
	"function": true, "if": true, "implements": true, "import": true,
	"in": true, "instanceof": true, "interface": true, "let": true,
	"new": true, "of": true, "package": true, "private": true,
	"protected": true, "public": true, "return": true, "static": true,
	"super": true, "switch": true, "this": true, "throw": true,
	"try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "yield": true, "async": true,
	"await": true, "true": true, "false": true, "null": true,
	"undefined": true,
}

// complexityAccumulator maintains the McCabe decision-point count and the
// Halstead operator/operand multisets during a single traversal. The maps
// track multiplicity: unique membership gives the eta counts, summed values
// give the N counts.
type complexityAccumulator struct {
	decisionPoints int
	operators      map[string]int
	operands       map[string]int
}

func newComplexityAccumulator() *complexityAccumulator {
	return &complexityAccumulator{
		operators: make(map[string]int),
		operands:  make(map[string]int),
	}
}

// visit dispatches one node on traversal entry. Each decision point counts
// once per occurrence regardless of nesting.
func (c *complexityAccumulator) visit(node *sitter.Node, kind NodeKind, source []byte) {
	switch kind {
	case KindIf, KindTernary, KindForLoop, KindForInLoop,
		KindWhileLoop, KindDoWhileLoop, KindSwitchCase, KindCatch:
		c.decisionPoints++
	}

	switch kind {
	case KindBinaryExpr:
		op := parser.OperatorText(node, source)
		if op != "" {
			c.operators[op]++
		}
		if op == "&&" || op == "||" {
			c.decisionPoints++
		}
	case KindUnaryExpr, KindUpdateExpr, KindAssignExpr, KindAugmentedAssignExpr:
		if op := parser.OperatorText(node, source); op != "" {
			c.operators[op]++
		}
	case KindCall:
		c.operators[opCall]++
	case KindMember:
		c.operators[opMember]++
	case KindIdentifier, KindPropertyIdentifier:
		name := parser.GetNodeText(node, source)
		if name != "" && !reservedWords[name] {
			c.operands[name]++
		}
	case KindNumberLiteral, KindStringLiteral, KindTemplateString,
		KindRegexLiteral, KindTrueLiteral, KindFalseLiteral:
		if text := parser.GetNodeText(node, source); text != "" {
			c.operands[text]++
		}
	case KindNullLiteral:
		// Normalized so every null spelling lands on the same operand.
		c.operands["null"]++
	}
}

// counts returns (n1, n2, N1, N2).
func (c *complexityAccumulator) counts() (uint32, uint32, uint32, uint32) {
	var totalOps, totalOperands int
	for _, n := range c.operators {
		totalOps += n
	}
	for _, n := range c.operands {
		totalOperands += n
	}
	return uint32(len(c.operators)), uint32(len(c.operands)),
		uint32(totalOps), uint32(totalOperands)
}
