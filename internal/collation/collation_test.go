package collation

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare_SwedishLettersAfterZ(t *testing.T) {
	names := []string{"Örjan", "Anna", "Åsa", "Zlatan", "Ärla"}
	c := New()
	slices.SortFunc(names, c.Compare)
	assert.Equal(t, []string{"Anna", "Zlatan", "Åsa", "Ärla", "Örjan"}, names)
}

func TestCompareCaseInsensitive(t *testing.T) {
	c := NewCaseInsensitive()
	assert.Equal(t, 0, c.Compare("eva", "EVA"))
	assert.Equal(t, -1, c.Compare("adam", "Bertil"))
}
