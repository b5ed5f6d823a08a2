package kanban

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ColumnTodo       = "todo"
	ColumnInProgress = "in-progress"
	ColumnDone       = "done"
)

// Columns in board order.
var Columns = []string{ColumnTodo, ColumnInProgress, ColumnDone}

// Task positions are contiguous 0..n-1 within one (user, column).
type Task struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Column    string    `gorm:"column:board_column;size:20;not null;index:idx_task_board" json:"column"`
	Position  int       `gorm:"not null;index:idx_task_board" json:"position"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_task_board" json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Board is the client view: every column key is always present.
type Board map[string][]Task

// --- DTOs ---

type CreateTaskRequest struct {
	Content string `json:"content"`
	Column  string `json:"column"`
}

// UpdateTaskRequest edits content and/or moves the task. A move happens
// when Column or Position is set.
type UpdateTaskRequest struct {
	Content  *string `json:"content"`
	Column   *string `json:"column"`
	Position *int    `json:"position"`
}

type CompleteDayResponse struct {
	Message string `json:"message"`
	Cleared int    `json:"cleared"`
}
