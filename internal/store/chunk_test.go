package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	chunks := Chunk(items, 3)

	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}, {7}}, chunks)
}

func TestChunk_ExactMultiple(t *testing.T) {
	chunks := Chunk([]int{1, 2, 3, 4}, 2)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}}, chunks)
}

func TestChunk_SmallerThanSize(t *testing.T) {
	chunks := Chunk([]string{"a"}, 30)
	assert.Equal(t, [][]string{{"a"}}, chunks)
}

func TestChunk_Empty(t *testing.T) {
	assert.Nil(t, Chunk([]int{}, 3))
	assert.Nil(t, Chunk([]int{1}, 0))
}
