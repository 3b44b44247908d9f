// Package collation orders user-visible strings the way a Swedish reader
// expects (å, ä and ö after z).
package collation

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator compares strings. It is not safe for concurrent use; create one
// per sort.
type Collator struct {
	c *collate.Collator
}

// New returns a Swedish collator that orders case differences as ties
// broken last.
func New() *Collator {
	return &Collator{c: collate.New(language.Swedish)}
}

// NewCaseInsensitive returns a Swedish collator that ignores case.
func NewCaseInsensitive() *Collator {
	return &Collator{c: collate.New(language.Swedish, collate.IgnoreCase)}
}

// Compare returns -1, 0 or 1.
func (c *Collator) Compare(a, b string) int {
	return c.c.CompareString(a, b)
}
