package parser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language represents a supported source language.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangUnknown    Language = "unknown"
)

// ErrParseStructure indicates the syntax tree could not be built or is not
// structurally sound (ERROR/MISSING nodes, nil root). Callers are expected to
// degrade to line-based analysis rather than abort the batch.
var ErrParseStructure = errors.New("parse structure error")

// Parser wraps tree-sitter for ECMAScript-family parsing.
type Parser struct {
	parser *sitter.Parser
}

// ParseResult contains the parsed AST and metadata.
type ParseResult struct {
	Tree     *sitter.Tree
	Language Language
	Source   []byte
	Path     string
}

// New creates a new parser instance.
func New() *Parser {
	return &Parser{
		parser: sitter.NewParser(),
	}
}

// ParseFile reads and parses a source file.
func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	lang := DetectLanguage(path)
	if lang == LangUnknown {
		return nil, fmt.Errorf("unsupported language for file: %s", path)
	}

	return p.Parse(source, lang, path)
}

// Parse parses source code with a specified language.
// Returns ErrParseStructure (wrapped) when the resulting tree is malformed.
func (p *Parser) Parse(source []byte, lang Language, path string) (*ParseResult, error) {
	tsLang, err := GetTreeSitterLanguage(lang)
	if err != nil {
		return nil, err
	}

	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseStructure, err)
	}

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("%w: no root node for %s", ErrParseStructure, path)
	}
	if root.HasError() {
		return nil, fmt.Errorf("%w: syntax errors in %s", ErrParseStructure, path)
	}

	return &ParseResult{
		Tree:     tree,
		Language: lang,
		Source:   source,
		Path:     path,
	}, nil
}

// GetTreeSitterLanguage returns the tree-sitter grammar for a Language.
func GetTreeSitterLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// Extensions is the fixed allow-list of analyzable file extensions.
var Extensions = []string{".js", ".mjs", ".cjs", ".jsx", ".ts", ".tsx"}

// DetectLanguage determines the language from a file path.
func DetectLanguage(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs", ".cjs":
		return LangJavaScript
	case ".jsx":
		return LangTSX // TSX grammar handles plain JSX
	case ".ts":
		return LangTypeScript
	case ".tsx":
		return LangTSX
	default:
		return LangUnknown
	}
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// Visitor receives a node on entry (pre-order). Returning false prunes the
// subtree; the exit callback still fires for the pruned node itself.
type Visitor func(node *sitter.Node, nodeType string, source []byte) bool

// ExitFunc receives a node on exit (post-order).
type ExitFunc func(node *sitter.Node, nodeType string, source []byte)

// Walk traverses the AST depth-first, parent before children, siblings in
// source order. enter fires pre-order, exit post-order; each node is visited
// exactly once by each. Node types are cached to limit CGO calls.
func Walk(node *sitter.Node, source []byte, enter Visitor, exit ExitFunc) {
	if node == nil {
		return
	}

	nodeType := node.Type()
	descend := true
	if enter != nil {
		descend = enter(node, nodeType, source)
	}

	if descend {
		for i := range int(node.ChildCount()) {
			Walk(node.Child(i), source, enter, exit)
		}
	}

	if exit != nil {
		exit(node, nodeType, source)
	}
}

// GetNodeText extracts the source text for a node.
// Returns empty string if node is nil or byte offsets are out of bounds.
func GetNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > end || end > uint32(len(source)) {
		return ""
	}
	return string(source[start:end])
}

// OperatorText returns the operator symbol of an expression node, or ""
// when the node carries no operator field.
func OperatorText(node *sitter.Node, source []byte) string {
	if op := node.ChildByFieldName("operator"); op != nil {
		return GetNodeText(op, source)
	}
	// Older grammars expose the operator as an anonymous token child.
	for i := range int(node.ChildCount()) {
		child := node.Child(i)
		if !child.IsNamed() {
			return GetNodeText(child, source)
		}
	}
	return ""
}
