package kanban

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/bizops-backend/internal/notify"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound  = apperr.NotFound("task not found")
	ErrInvalidColumn = apperr.Validation("column must be one of %s", strings.Join(Columns, ", "))
)

type TaskService struct {
	db       *gorm.DB
	notifier notify.Notifier
}

func NewTaskService(db *gorm.DB, notifier notify.Notifier) *TaskService {
	return &TaskService{db: db, notifier: notifier}
}

// List returns the caller's board, each column ordered by position.
func (s *TaskService) List(ctx context.Context, userID uuid.UUID) (Board, error) {
	var tasks []Task
	err := s.db.WithContext(ctx).Scopes(identity.OwnedBy(userID)).
		Order("position ASC").Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	board := make(Board, len(Columns))
	for _, col := range Columns {
		board[col] = []Task{}
	}
	for _, t := range tasks {
		board[t.Column] = append(board[t.Column], t)
	}
	return board, nil
}

// Create appends a task to the end of its column.
func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, req CreateTaskRequest) (*Task, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperr.Validation("content is required")
	}
	col := strings.TrimSpace(req.Column)
	if col == "" {
		col = ColumnTodo
	}
	if !ValidColumn(col) {
		return nil, ErrInvalidColumn
	}

	t := Task{Content: content, Column: col, UserID: userID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Task{}).Scopes(identity.OwnedBy(userID)).
			Where("board_column = ?", col).Count(&count).Error; err != nil {
			return err
		}
		t.Position = int(count)
		return tx.Create(&t).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &t, nil
}

// Update edits content and, when a column or position is given, moves the task.
func (s *TaskService) Update(ctx context.Context, userID, id uuid.UUID, req UpdateTaskRequest) (*Task, error) {
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return nil, apperr.Validation("content cannot be empty")
	}
	if req.Column != nil && !ValidColumn(*req.Column) {
		return nil, ErrInvalidColumn
	}

	var out *Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := findTask(tx, userID, id)
		if err != nil {
			return err
		}
		if req.Content != nil {
			t.Content = strings.TrimSpace(*req.Content)
			if err := tx.Model(t).Update("content", t.Content).Error; err != nil {
				return err
			}
		}
		if req.Column != nil || req.Position != nil {
			col := t.Column
			if req.Column != nil {
				col = *req.Column
			}
			index := -1
			if req.Position != nil {
				index = *req.Position
			}
			if t, err = move(tx, t, col, index); err != nil {
				return err
			}
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, wrap(err, "failed to update task")
	}
	return out, nil
}

// Move places the task at index within column, renumbering the source and
// destination columns in one transaction. A negative index appends.
func (s *TaskService) Move(ctx context.Context, userID, id uuid.UUID, column string, index int) (*Task, error) {
	if !ValidColumn(column) {
		return nil, ErrInvalidColumn
	}
	var out *Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := findTask(tx, userID, id)
		if err != nil {
			return err
		}
		out, err = move(tx, t, column, index)
		return err
	})
	if err != nil {
		return nil, wrap(err, "failed to move task")
	}
	return out, nil
}

// Delete removes the task and closes the gap in its column.
func (s *TaskService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := findTask(tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&Task{}, "id = ?", t.ID).Error; err != nil {
			return err
		}
		rest, err := columnTasks(tx, userID, t.Column)
		if err != nil {
			return err
		}
		return persist(tx, renumber(rest, t.Column))
	})
	return wrap(err, "failed to delete task")
}

// CompleteDay clears the caller's done column. The notification goes out
// first and is best effort; the delete is all or nothing and only removes
// tasks that are still done when it runs.
func (s *TaskService) CompleteDay(ctx context.Context, user *models.User) (int, error) {
	done, err := columnTasks(s.db.WithContext(ctx), user.ID, ColumnDone)
	if err != nil {
		return 0, fmt.Errorf("failed to load done tasks: %w", err)
	}
	if len(done) == 0 {
		return 0, nil
	}

	lines := make([]string, len(done))
	ids := make([]uuid.UUID, len(done))
	for i, t := range done {
		lines[i] = "- " + t.Content
		ids[i] = t.ID
	}
	msg := notify.Message{
		Kind:    "tasks_completed",
		To:      user.Email,
		Subject: "Your Completed Tasks",
		Body:    "You've completed these tasks:\n\n" + strings.Join(lines, "\n"),
	}
	if err := s.notifier.Notify(ctx, msg); err != nil {
		slog.Warn("completion notification failed", "user_id", user.ID.String(), "error", err.Error())
	}

	var cleared int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Scopes(identity.OwnedBy(user.ID)).
			Where("id IN ? AND board_column = ?", ids, ColumnDone).
			Delete(&Task{})
		if res.Error != nil {
			return res.Error
		}
		cleared = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to clear done tasks: %w", err)
	}

	metrics.RecordTasksCleared(int(cleared))
	slog.Info("tasks cleared", "user_id", user.ID.String(), "count", cleared)
	return int(cleared), nil
}

func move(tx *gorm.DB, t *Task, column string, index int) (*Task, error) {
	source, err := columnTasks(tx, t.UserID, t.Column)
	if err != nil {
		return nil, err
	}
	source = without(source, *t)

	dest := source
	if column != t.Column {
		if dest, err = columnTasks(tx, t.UserID, column); err != nil {
			return nil, err
		}
	}
	if index < 0 {
		index = len(dest)
	}
	dest = insertAt(dest, *t, index)

	changed := renumber(dest, column)
	if column != t.Column {
		changed = append(changed, renumber(source, t.Column)...)
	}
	if err := persist(tx, changed); err != nil {
		return nil, err
	}

	for _, x := range dest {
		if x.ID == t.ID {
			return &x, nil
		}
	}
	return t, nil
}

func persist(tx *gorm.DB, changed []Task) error {
	for _, t := range changed {
		err := tx.Model(&Task{}).Where("id = ?", t.ID).
			Updates(map[string]interface{}{"board_column": t.Column, "position": t.Position}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func findTask(tx *gorm.DB, userID, id uuid.UUID) (*Task, error) {
	var t Task
	if err := tx.Scopes(identity.OwnedBy(userID)).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func columnTasks(tx *gorm.DB, userID uuid.UUID, column string) ([]Task, error) {
	var tasks []Task
	err := tx.Scopes(identity.OwnedBy(userID)).
		Where("board_column = ?", column).
		Order("position ASC").Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

// wrap leaves client-facing errors untouched and annotates the rest.
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
