package indexset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vassreach/vassreach/indexset"
)

func TestIndexMapBasics(t *testing.T) {
	m := indexset.New[indexset.NodeIndex, string](2)
	m.Insert(indexset.NodeIndex(0), "a")
	m.Insert(indexset.NodeIndex(5), "f")

	assert.Equal(t, "a", m.Get(indexset.NodeIndex(0)))
	assert.Equal(t, "f", m.Get(indexset.NodeIndex(5)))
	assert.Equal(t, "", m.Get(indexset.NodeIndex(1)))

	v, ok := m.GetOption(indexset.NodeIndex(1))
	assert.False(t, ok)
	assert.Equal(t, "", v)

	m.Delete(indexset.NodeIndex(0))
	_, ok = m.GetOption(indexset.NodeIndex(0))
	assert.False(t, ok)

	var seen []int
	m.Iter(func(idx int, value string) { seen = append(seen, idx) })
	assert.Equal(t, []int{5}, seen)
}

func TestIndexSet(t *testing.T) {
	s := indexset.NewSet[indexset.NodeIndex](0)
	assert.True(t, s.Add(indexset.NodeIndex(3)))
	assert.False(t, s.Add(indexset.NodeIndex(3)))
	assert.True(t, s.Contains(indexset.NodeIndex(3)))
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.Remove(indexset.NodeIndex(3)))
	assert.False(t, s.Contains(indexset.NodeIndex(3)))
	assert.Equal(t, 0, s.Len())
}
