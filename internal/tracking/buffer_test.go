package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_Track(t *testing.T) {
	buf := NewBuffer()
	assert.Equal(t, 0, buf.Len())

	buf.Track("ItemQueryTool", "SELECT * FROM items", "Some item information.")
	buf.Track("ItemQueryTool", "SELECT title FROM items", "Some item information.")

	require.Equal(t, 2, buf.Len())
	entries := buf.Entries()
	assert.Equal(t, "SELECT * FROM items", entries[0].Query)
	assert.Equal(t, "ItemQueryTool", entries[1].ToolName)
	assert.Equal(t, "Some item information.", entries[1].Summary)
}

func TestBuffer_EntriesSnapshot(t *testing.T) {
	buf := NewBuffer()
	buf.Track("tool", "q1", "s")

	snapshot := buf.Entries()
	buf.Track("tool", "q2", "s")

	assert.Len(t, snapshot, 1)
	assert.Equal(t, 2, buf.Len())
}
