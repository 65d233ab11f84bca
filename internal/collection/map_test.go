package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncMap(t *testing.T) {
	m := NewSyncMap[string, int]()
	m.Put("b", 1)
	m.Put("a", 2)
	m.Put("b", 3)
	m.Delete("missing")

	var keys []string
	var values []int
	m.Range(func(key string, value int) bool {
		keys = append(keys, key)
		values = append(values, value)
		return true
	})
	assert.Equal(t, []string{"b", "a"}, keys)
	assert.Equal(t, []int{3, 2}, values)

	m.Delete("b")
	_, ok := m.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}
