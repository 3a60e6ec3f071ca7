package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	var f filter
	assert.Equal(t, "", f.where())

	f.add("t.department_id = ?", "d1")
	f.add("(t.full_name ILIKE ? OR t.code ILIKE ?)", "%an%", "%an%")

	assert.Equal(t, " WHERE t.department_id = $1 AND (t.full_name ILIKE $2 OR t.code ILIKE $3)", f.where())

	clause, args := f.page(20, 40)
	assert.Equal(t, " LIMIT $4 OFFSET $5", clause)
	assert.Equal(t, []interface{}{"d1", "%an%", "%an%", 20, 40}, args)
	assert.Len(t, f.args, 3)
}
