package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off`, EscapeLike("50% off"))
	assert.Equal(t, `snake\_case`, EscapeLike("snake_case"))
	assert.Equal(t, `a\\b`, EscapeLike(`a\b`))
	assert.Equal(t, "%pizza%", ContainsPattern("pizza"))
}

func TestWhereBuilder(t *testing.T) {
	var w WhereBuilder
	assert.Equal(t, "", w.SQL())
	assert.Empty(t, w.Args())

	w.Add("p.place_name ILIKE ?", "%pão%")
	w.Add("p.category_id = ?", "cat-1")

	assert.Equal(t, " WHERE p.place_name ILIKE $1 AND p.category_id = $2", w.SQL())
	assert.Equal(t, []any{"%pão%", "cat-1"}, w.Args())
}
