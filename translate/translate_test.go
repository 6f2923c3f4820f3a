package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("line 3 'HLT' bad", From("line %d '%v' %v", 3, "HLT", "bad"))
	assert.Equal("plain", From("plain"))
}
