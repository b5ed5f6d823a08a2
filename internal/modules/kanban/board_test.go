package kanban

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func tasks(n int) []Task {
	out := make([]Task, n)
	for i := range out {
		out[i] = Task{ID: uuid.New(), Column: ColumnTodo, Position: i}
	}
	return out
}

func ids(list []Task) []uuid.UUID {
	out := make([]uuid.UUID, len(list))
	for i, t := range list {
		out[i] = t.ID
	}
	return out
}

func TestInsertAtClamps(t *testing.T) {
	list := tasks(2)
	x := Task{ID: uuid.New()}

	assert.Equal(t, x.ID, insertAt(list, x, -5)[0].ID)
	assert.Equal(t, x.ID, insertAt(list, x, 99)[2].ID)
	mid := insertAt(list, x, 1)
	assert.Equal(t, []uuid.UUID{list[0].ID, x.ID, list[1].ID}, ids(mid))
	assert.Len(t, list, 2)
}

func TestRenumberReportsChanges(t *testing.T) {
	list := tasks(3)
	assert.Empty(t, renumber(list, ColumnTodo))

	rest := without(list, list[0])
	changed := renumber(rest, ColumnTodo)
	assert.Len(t, changed, 2)
	assert.Equal(t, 0, rest[0].Position)
	assert.Equal(t, 1, rest[1].Position)

	moved := renumber(rest, ColumnDone)
	assert.Len(t, moved, 2)
	assert.Equal(t, ColumnDone, rest[1].Column)
}

func TestValidColumn(t *testing.T) {
	for _, c := range Columns {
		assert.True(t, ValidColumn(c))
	}
	assert.False(t, ValidColumn("In Progress"))
	assert.False(t, ValidColumn(""))
}
