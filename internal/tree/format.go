package tree

import "strings"

const (
	// IndentUnit is repeated once per depth level in front of every connector.
	IndentUnit = "│   "
	// BranchConnector marks a non-final sibling entry.
	BranchConnector = "├── "
	// TerminatorConnector marks the final file of a directory.
	TerminatorConnector = "└── "
	// DirectorySuffix is appended to directory names.
	DirectorySuffix = "/"
	// LineBreak terminates every rendered line.
	LineBreak = "\n"
)

// Indent returns depth repetitions of IndentUnit.
func Indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(IndentUnit, depth)
}

// DirectoryLine formats a directory header. The traversal root (depth 0) is
// rendered as its bare name with the directory suffix.
func DirectoryLine(name string, depth int) string {
	directoryName := strings.TrimSuffix(name, DirectorySuffix) + DirectorySuffix
	if depth == 0 {
		return directoryName + LineBreak
	}
	return Indent(depth) + BranchConnector + directoryName + LineBreak
}

// FileLine formats a file entry of a directory at directoryDepth. Files sit one
// indentation level deeper than their directory's header.
func FileLine(name string, directoryDepth int, last bool) string {
	connector := BranchConnector
	if last {
		connector = TerminatorConnector
	}
	return Indent(directoryDepth+1) + connector + name + LineBreak
}
