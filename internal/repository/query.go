package repository

import (
	"strconv"
	"strings"
)

// filter accumulates WHERE conditions with positional arguments.
type filter struct {
	conds []string
	args  []interface{}
}

// add appends a condition. Each "?" in cond is replaced by the next
// positional placeholder.
func (f *filter) add(cond string, args ...interface{}) {
	for _, a := range args {
		f.args = append(f.args, a)
		cond = strings.Replace(cond, "?", "$"+strconv.Itoa(len(f.args)), 1)
	}
	f.conds = append(f.conds, cond)
}

func (f *filter) where() string {
	if len(f.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conds, " AND ")
}

// page appends LIMIT and OFFSET placeholders and returns the clause with
// the full argument list.
func (f *filter) page(limit, offset int) (string, []interface{}) {
	n := len(f.args)
	args := append(append([]interface{}{}, f.args...), limit, offset)
	return ` LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2), args
}
