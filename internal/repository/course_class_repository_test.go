package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassCodeAndName(t *testing.T) {
	assert.Equal(t, "LHP0012N03", ClassCode("HP0012", 3))
	assert.Equal(t, "LHP0001N10", ClassCode("HP0001", 10))
	assert.Equal(t, "Giải tích 1 (N07)", ClassName("Giải tích 1", 7))
}
