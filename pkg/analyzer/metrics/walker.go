package metrics

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sondelabs/sonde/pkg/models"
	"github.com/sondelabs/sonde/pkg/parser"
)

// depthCounter tracks the running nesting depth and its peak. Enter returns
// a guard that must run on scope exit, keeping increments and decrements
// paired even if the walk is restructured later.
type depthCounter struct {
	depth int
	max   int
}

func (d *depthCounter) Enter() func() {
	d.depth++
	if d.depth > d.max {
		d.max = d.depth
	}
	return func() { d.depth-- }
}

// walkOutcome carries everything one traversal produces.
type walkOutcome struct {
	structure  models.StructuralMetrics
	complexity *complexityAccumulator
	maxDepth   int
}

// walkTree performs the single pre/post-order traversal over the syntax
// tree, dispatching each node to the structural classifier and the
// complexity accumulator and maintaining the nesting-depth counter.
//
// The depth counter must return to exactly 0 after the full walk; a non-zero
// final depth is a classifier bug and is reported as a structure error, never
// as a metric.
func walkTree(root *sitter.Node, source []byte) (*walkOutcome, error) {
	out := &walkOutcome{complexity: newComplexityAccumulator()}

	var depth depthCounter
	guards := make([]func(), 0, 32)

	enter := func(node *sitter.Node, nodeType string, src []byte) bool {
		out.structure.ASTNodes++

		kind := kindOf(nodeType)
		if nestingKinds[kind] {
			guards = append(guards, depth.Enter())
		} else {
			guards = append(guards, nil)
		}

		classifyStructure(&out.structure, node, kind, src)
		out.complexity.visit(node, kind, src)
		return true
	}

	exit := func(node *sitter.Node, nodeType string, src []byte) {
		n := len(guards) - 1
		if n < 0 {
			return
		}
		if g := guards[n]; g != nil {
			g()
		}
		guards = guards[:n]
	}

	parser.Walk(root, source, enter, exit)

	if depth.depth != 0 {
		return nil, fmt.Errorf("%w: nesting depth %d after traversal",
			parser.ErrParseStructure, depth.depth)
	}

	out.maxDepth = depth.max
	return out, nil
}
