// Package postype holds the position, pretype, and resolved-type
// algebras shared by the type checker, evaluator, and code generator.
// It is split out from the root package the same way the teacher
// repo splits its terminal-color theme into the ascii package: every
// downstream component imports it, but it depends on nothing above
// it in the tree.
package postype

import "fmt"

// Position is the file name, a main line/column, and the (start,end)
// byte span it was parsed from. It is attached to every pretype and
// tree node and never mutated after construction.
type Position struct {
	File        string
	Line, Col   int
	Start, End  int
}

func NewPosition(file string, line, col, start, end int) Position {
	return Position{File: file, Line: line, Col: col, Start: start, End: end}
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// LineIndex converts byte offsets into line/column pairs. Construction
// is O(n) over the input; lookups are O(log lines) via binary search
// over cached line-start offsets.
type LineIndex struct {
	input     []byte
	lineStart []int
}

func NewLineIndex(input []byte) *LineIndex {
	lineStart := make([]int, 1, 64)
	lineStart[0] = 0
	for i, b := range input {
		if b == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &LineIndex{input: input, lineStart: lineStart}
}

// LineCol returns the 1-based line and column for a byte offset.
func (li *LineIndex) LineCol(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(li.input) {
		offset = len(li.input)
	}
	lo, hi := 0, len(li.lineStart)
	for lo < hi {
		mid := (lo + hi) / 2
		if li.lineStart[mid] > offset {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	lineIdx := lo - 1
	if lineIdx < 0 {
		lineIdx = 0
	}
	return lineIdx + 1, offset - li.lineStart[lineIdx] + 1
}

// Position builds a Position for a (start,end) byte span, filling in
// the main line/column from the span's start.
func (li *LineIndex) Position(file string, start, end int) Position {
	line, col := li.LineCol(start)
	return NewPosition(file, line, col, start, end)
}
