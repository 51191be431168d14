package metrics

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sondelabs/sonde/pkg/models"
	"github.com/sondelabs/sonde/pkg/parser"
)

// NodeKind is the closed taxonomy of syntax-tree node kinds the engine cares
// about. Every tree-sitter node type maps to exactly one kind (KindOther for
// everything outside the taxonomy), so classification stays exhaustive and
// stable across grammar revisions that only add node types.
type NodeKind int

const (
	KindOther NodeKind = iota

	// Declarations
	KindNamedFunction
	KindAnonymousFunction
	KindArrowFunction
	KindMethod
	KindClass
	KindVariableDeclaration
	KindVariableDeclarator
	KindImport
	KindExport

	// Control flow
	KindIf
	KindSwitch
	KindSwitchCase
	KindSwitchDefault
	KindForLoop
	KindForInLoop
	KindWhileLoop
	KindDoWhileLoop
	KindTry
	KindCatch
	KindBlock

	// Expressions
	KindTernary
	KindBinaryExpr
	KindUnaryExpr
	KindUpdateExpr
	KindAssignExpr
	KindAugmentedAssignExpr
	KindCall
	KindMember
	KindSubscript

	// Terminals
	KindIdentifier
	KindPropertyIdentifier
	KindNumberLiteral
	KindStringLiteral
	KindTemplateString
	KindRegexLiteral
	KindTrueLiteral
	KindFalseLiteral
	KindNullLiteral
	KindUndefined
)

// kindTable maps tree-sitter node types (javascript, typescript and tsx
// grammars) onto the closed taxonomy. Built once; lookups are O(1).
var kindTable = map[string]NodeKind{
	"function_declaration":           KindNamedFunction,
	"generator_function_declaration": KindNamedFunction,
	"function":                       KindAnonymousFunction,
	"function_expression":            KindAnonymousFunction,
	"generator_function":             KindAnonymousFunction,
	"arrow_function":                 KindArrowFunction,
	"method_definition":              KindMethod,
	"class_declaration":              KindClass,
	"abstract_class_declaration":     KindClass,
	"class":                          KindClass,
	"variable_declaration":           KindVariableDeclaration,
	"lexical_declaration":            KindVariableDeclaration,
	"variable_declarator":            KindVariableDeclarator,
	"import_statement":               KindImport,
	"export_statement":               KindExport,

	"if_statement":     KindIf,
	"switch_statement": KindSwitch,
	"switch_case":      KindSwitchCase,
	"switch_default":   KindSwitchDefault,
	"for_statement":    KindForLoop,
	"for_in_statement": KindForInLoop,
	"while_statement":  KindWhileLoop,
	"do_statement":     KindDoWhileLoop,
	"try_statement":    KindTry,
	"catch_clause":     KindCatch,
	"statement_block":  KindBlock,

	"ternary_expression":              KindTernary,
	"binary_expression":               KindBinaryExpr,
	"unary_expression":                KindUnaryExpr,
	"update_expression":               KindUpdateExpr,
	"assignment_expression":           KindAssignExpr,
	"augmented_assignment_expression": KindAugmentedAssignExpr,
	"call_expression":                 KindCall,
	"member_expression":               KindMember,
	"subscript_expression":            KindSubscript,

	"identifier":                            KindIdentifier,
	"property_identifier":                   KindPropertyIdentifier,
	"shorthand_property_identifier":         KindPropertyIdentifier,
	"shorthand_property_identifier_pattern": KindPropertyIdentifier,
	"number":                                KindNumberLiteral,
	"string":                                KindStringLiteral,
	"template_string":                       KindTemplateString,
	"regex":                                 KindRegexLiteral,
	"true":                                  KindTrueLiteral,
	"false":                                 KindFalseLiteral,
	"null":                                  KindNullLiteral,
	"undefined":                             KindUndefined,
}

// kindOf resolves a tree-sitter node type to its NodeKind.
func kindOf(nodeType string) NodeKind {
	if k, ok := kindTable[nodeType]; ok {
		return k
	}
	return KindOther
}

// nestingKinds are the constructs that open a lexical/control scope for
// nesting-depth bookkeeping. Function bodies nest through their statement
// block, so function kinds themselves are deliberately absent.
var nestingKinds = map[NodeKind]bool{
	KindBlock:       true,
	KindIf:          true,
	KindForLoop:     true,
	KindForInLoop:   true,
	KindWhileLoop:   true,
	KindDoWhileLoop: true,
	KindSwitch:      true,
	KindTry:         true,
	KindCatch:       true,
}

// classifyStructure maps one node onto structural counter increments.
//
// Counting asymmetry, preserved on purpose: declarations count once per bound
// name (each variable_declarator), while import/export statements count once
// per statement no matter how many names they bind. Downstream consumers
// calibrate against these totals, so the asymmetry is not "fixed" here.
func classifyStructure(s *models.StructuralMetrics, node *sitter.Node, kind NodeKind, source []byte) {
	switch kind {
	case KindNamedFunction:
		s.NamedFunctions++
		s.TotalFunctions++
	case KindAnonymousFunction:
		s.AnonymousFunctions++
		s.TotalFunctions++
	case KindArrowFunction:
		s.ArrowFunctions++
		s.TotalFunctions++
	case KindMethod:
		s.Methods++
	case KindClass:
		s.Classes++
	case KindVariableDeclarator:
		if isConstDeclarator(node, source) {
			s.Constants++
		} else {
			s.Variables++
		}
	case KindImport:
		s.Imports++
	case KindExport:
		s.Exports++
	case KindIf, KindTernary, KindSwitch:
		s.Conditionals++
	case KindForLoop, KindForInLoop, KindWhileLoop, KindDoWhileLoop:
		s.Loops++
	}
}

// isConstDeclarator reports whether a variable_declarator belongs to a const
// declaration. The declaration keyword is the first token of the parent.
func isConstDeclarator(node *sitter.Node, source []byte) bool {
	decl := node.Parent()
	if decl == nil {
		return false
	}
	kw := decl.Child(0)
	return parser.GetNodeText(kw, source) == "const"
}
