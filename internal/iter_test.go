package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]string{"A": "1"}
	b := map[string]string{"B": "2", "C": "3"}

	got := maps.Collect(IterSeq2Concat(maps.All(a), maps.All(b)))
	assert.Equal(map[string]string{"A": "1", "B": "2", "C": "3"}, got)

	// Early stop must not panic.
	for range IterSeq2Concat(maps.All(a), maps.All(b)) {
		break
	}
}

func TestSortedDefines(t *testing.T) {
	assert := assert.New(t)

	var keys []string
	for key := range SortedDefines(map[string]string{"SR": "0x11", "NPC": "0x10", "EVBAR": "0xb"}) {
		keys = append(keys, key)
	}
	assert.Equal([]string{"EVBAR", "NPC", "SR"}, keys)
}
