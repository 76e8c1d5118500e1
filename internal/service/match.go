package service

import (
	"strings"

	"golang.org/x/text/cases"
)

// folder compares identifiers and search terms without regard to case,
// using Unicode case folding rather than ASCII lowering.
type folder struct {
	caser cases.Caser
}

func newFolder() *folder {
	return &folder{caser: cases.Fold()}
}

func (f *folder) fold(s string) string {
	return f.caser.String(s)
}

// equal reports whether a and b are equal under case folding
func (f *folder) equal(a, b string) bool {
	return f.fold(a) == f.fold(b)
}

// contains reports whether needle (already folded) occurs in s
func (f *folder) contains(s, foldedNeedle string) bool {
	return strings.Contains(f.fold(s), foldedNeedle)
}
