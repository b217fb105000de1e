package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("group none", From("group none"))
	assert.Equal("cycle 7: stalled", From("cycle %d: %v", 7, "stalled"))
}
