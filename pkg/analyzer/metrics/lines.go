package metrics

import (
	"strings"

	"github.com/sondelabs/sonde/pkg/models"
)

// ScanLines classifies physical lines directly from source text, independent
// of the syntax tree. It never fails.
//
// The comment check is line-granular, not token-aware: a line is counted as a
// comment when its trimmed form starts with a line-comment marker, a
// block-comment opener, an asterisk continuation, or ends with a block
// closer. Strings containing comment-like substrings can be misclassified;
// that imprecision is accepted and shared by the fallback path.
func ScanLines(source []byte) models.SizeMetrics {
	var size models.SizeMetrics
	if len(source) == 0 {
		return size
	}

	lines := strings.Split(string(source), "\n")
	// A trailing terminator produces one empty tail element, not a line.
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for _, line := range lines {
		size.TotalLines++
		trimmed := strings.TrimSpace(strings.TrimSuffix(line, "\r"))

		if trimmed == "" {
			size.BlankLines++
			continue
		}
		size.SourceLines++

		if isCommentLine(trimmed) {
			size.CommentLines++
			continue
		}
		if !isLoneBrace(trimmed) {
			size.LogicalLines++
		}
	}

	return size
}

func isCommentLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*") ||
		strings.HasSuffix(trimmed, "*/")
}

func isLoneBrace(trimmed string) bool {
	switch trimmed {
	case "{", "}", "};":
		return true
	}
	return false
}
