// Package check compares generated MoonBit against files already on disk and
// renders line diffs for stale outputs.
package check

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a diff line.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

// Line is one line of a line-level diff.
type Line struct {
	Op   Op
	Text string
}

// Lines computes a line-level diff turning want into got.
func Lines(want, got string) []Line {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = Insert
		case diffmatchpatch.DiffDelete:
			op = Delete
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			out = append(out, Line{Op: op, Text: strings.TrimSuffix(l, "\n")})
		}
	}
	return out
}

// Changed reports whether the texts differ.
func Changed(want, got string) bool {
	return want != got
}

// Unified renders the diff of want (on disk) and got (generated) with
// context lines around each change. Identical inputs render "".
func Unified(path, want, got string, context int) string {
	if !Changed(want, got) {
		return ""
	}
	lines := Lines(want, got)
	keep := make([]bool, len(lines))
	for i, l := range lines {
		if l.Op == Equal {
			continue
		}
		for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
			keep[j] = true
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s (on disk)\n+++ %s (generated)\n", path, path)
	gap := false
	for i, l := range lines {
		if !keep[i] {
			gap = true
			continue
		}
		if gap {
			b.WriteString("@@\n")
			gap = false
		}
		switch l.Op {
		case Insert:
			b.WriteString("+" + l.Text + "\n")
		case Delete:
			b.WriteString("-" + l.Text + "\n")
		default:
			b.WriteString(" " + l.Text + "\n")
		}
	}
	return b.String()
}

var (
	addColor    = color.New(color.FgGreen)
	removeColor = color.New(color.FgRed)
	metaColor   = color.New(color.FgCyan)
)

// Print writes a unified diff to w, coloring additions, removals and
// headers. Only the first two lines are file headers; later lines starting
// with --- or +++ are changes. Color is suppressed when color.NoColor is set.
func Print(w io.Writer, diff string) {
	for i, l := range strings.SplitAfter(diff, "\n") {
		if l == "" {
			continue
		}
		switch {
		case i < 2 && (strings.HasPrefix(l, "---") || strings.HasPrefix(l, "+++")), strings.HasPrefix(l, "@@"):
			metaColor.Fprint(w, l)
		case strings.HasPrefix(l, "+"):
			addColor.Fprint(w, l)
		case strings.HasPrefix(l, "-"):
			removeColor.Fprint(w, l)
		default:
			fmt.Fprint(w, l)
		}
	}
}
