package board

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"taskboard/internal/model"
)

// column is the board-owned state of one column. order is the
// authoritative task ordering and is replaced, never edited in place, so a
// slice handed out by an earlier snapshot can't change underneath a reader.
type column struct {
	id       string
	title    string
	color    string
	capacity *int
	order    []string
}

// Board owns the placement of every task. Only the Coordinator mutates it.
type Board struct {
	mu      sync.RWMutex
	columns []*column
	byID    map[string]*column
	tasks   map[string]model.Task
	index   map[string]string // task id -> column id
	version uint64
}

// New builds a board from stored columns and tasks. Columns are ordered by
// Position, tasks within a column by Position (stable on ties).
func New(columns []model.Column, tasks []model.Task) (*Board, error) {
	b := &Board{
		byID:  make(map[string]*column, len(columns)),
		tasks: make(map[string]model.Task, len(tasks)),
		index: make(map[string]string, len(tasks)),
	}

	cols := append([]model.Column(nil), columns...)
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Position < cols[j].Position })

	for _, c := range cols {
		if !model.Status(c.ID).Valid() {
			return nil, fmt.Errorf("%w: %q is not a known status", ErrInvalidColumn, c.ID)
		}
		if _, dup := b.byID[c.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.ID)
		}
		if c.Capacity != nil && *c.Capacity <= 0 {
			return nil, fmt.Errorf("%w: %q capacity must be positive", ErrInvalidColumn, c.ID)
		}
		col := &column{
			id:       c.ID,
			title:    c.Title,
			color:    c.Color,
			capacity: copyInt(c.Capacity),
		}
		b.columns = append(b.columns, col)
		b.byID[c.ID] = col
	}

	placed := append([]model.Task(nil), tasks...)
	sort.SliceStable(placed, func(i, j int) bool { return placed[i].Position < placed[j].Position })

	for _, t := range placed {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: empty id", ErrInvalidTask)
		}
		if _, dup := b.tasks[t.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTask, t.ID)
		}
		col, ok := b.byID[t.ColumnID]
		if !ok {
			return nil, fmt.Errorf("%w: task %q references column %q", ErrColumnNotFound, t.ID, t.ColumnID)
		}
		if t.Progress < 0 || t.Progress > 100 {
			return nil, fmt.Errorf("%w: task %q progress %d out of range", ErrInvalidTask, t.ID, t.Progress)
		}
		if t.Priority == "" {
			t.Priority = model.PriorityMedium
		}
		if !t.Priority.Valid() {
			return nil, fmt.Errorf("%w: task %q priority %q", ErrInvalidTask, t.ID, t.Priority)
		}

		col.order = append(col.order, t.ID)
		b.index[t.ID] = col.id

		// Placement lives in the column orders from here on.
		t.ColumnID = ""
		t.Position = 0
		b.tasks[t.ID] = t
	}

	return b, nil
}

// FindColumnOf reports which column currently holds the task.
func (b *Board) FindColumnOf(taskID string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	id, ok := b.index[taskID]
	return id, ok
}

// Snapshot returns a deep copy of the board. It never observes a
// half-applied move.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

func (b *Board) snapshotLocked() Snapshot {
	s := Snapshot{
		Version: b.version,
		Columns: make([]ColumnSnapshot, len(b.columns)),
	}
	for i, col := range b.columns {
		cs := ColumnSnapshot{
			ID:       col.id,
			Title:    col.title,
			Color:    col.color,
			Capacity: copyInt(col.capacity),
			Tasks:    make([]TaskSnapshot, len(col.order)),
		}
		for j, id := range col.order {
			cs.Tasks[j] = newTaskSnapshot(b.tasks[id], col.id)
		}
		s.Columns[i] = cs
	}
	return s
}

// locate returns the column holding the task and the task's index in it.
func (b *Board) locate(taskID string) (*column, int, bool) {
	colID, ok := b.index[taskID]
	if !ok {
		return nil, 0, false
	}
	col := b.byID[colID]
	for i, id := range col.order {
		if id == taskID {
			return col, i, true
		}
	}
	return col, -1, false
}

// verify checks that every task sits in exactly one column and that the
// index agrees with the column orders.
func (b *Board) verify() error {
	seen := make(map[string]string, len(b.tasks))
	for _, col := range b.columns {
		for _, id := range col.order {
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("task %q present in %q and %q", id, prev, col.id)
			}
			seen[id] = col.id
			if _, ok := b.tasks[id]; !ok {
				return fmt.Errorf("column %q holds unknown task %q", col.id, id)
			}
			if b.index[id] != col.id {
				return fmt.Errorf("task %q indexed under %q but held by %q", id, b.index[id], col.id)
			}
		}
	}
	if len(seen) != len(b.tasks) || len(b.index) != len(b.tasks) {
		return fmt.Errorf("placed %d of %d tasks (index %d)", len(seen), len(b.tasks), len(b.index))
	}
	return nil
}

// Snapshot is an immutable, point-in-time read of the board.
type Snapshot struct {
	Version uint64           `json:"version"`
	Columns []ColumnSnapshot `json:"columns"`
}

type ColumnSnapshot struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Color    string         `json:"color,omitempty"`
	Capacity *int           `json:"capacity,omitempty"`
	Tasks    []TaskSnapshot `json:"tasks"`
}

type TaskSnapshot struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Priority    model.Priority `json:"priority"`
	Status      model.Status   `json:"status"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	Assignees   []string       `json:"assignees"`
	Progress    int            `json:"progress"`
}

// Column returns the column with the given id.
func (s Snapshot) Column(id string) (ColumnSnapshot, bool) {
	for _, c := range s.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return ColumnSnapshot{}, false
}

// TaskIDs returns the ordered task ids of a column, nil if it doesn't exist.
func (s Snapshot) TaskIDs(columnID string) []string {
	c, ok := s.Column(columnID)
	if !ok {
		return nil
	}
	ids := make([]string, len(c.Tasks))
	for i, t := range c.Tasks {
		ids[i] = t.ID
	}
	return ids
}

func newTaskSnapshot(t model.Task, columnID string) TaskSnapshot {
	ts := TaskSnapshot{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      model.Status(columnID),
		Assignees:   append([]string{}, t.Assignees...),
		Progress:    t.Progress,
	}
	if t.DueDate != nil {
		due := *t.DueDate
		ts.DueDate = &due
	}
	return ts
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
