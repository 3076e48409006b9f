// Package seed provides the initial board layout, either from a YAML file
// or the built-in demo board.
package seed

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"taskboard/internal/model"
)

// File is the on-disk layout of a board seed. Tasks are listed under the
// column holding them, in display order.
type File struct {
	Columns []FileColumn `yaml:"columns"`
}

type FileColumn struct {
	ID       string       `yaml:"id"`
	Title    string       `yaml:"title"`
	Color    string       `yaml:"color"`
	Capacity *int         `yaml:"capacity"`
	Tasks    []model.Task `yaml:"tasks"`
}

// Load reads a YAML seed file.
func Load(path string) ([]model.Column, []model.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML seed. Positions come from list order; tasks without
// an id get a generated one.
func Parse(data []byte) ([]model.Column, []model.Task, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("parse seed: %w", err)
	}
	if len(f.Columns) == 0 {
		return nil, nil, fmt.Errorf("parse seed: no columns")
	}

	var (
		columns []model.Column
		tasks   []model.Task
	)
	for i, fc := range f.Columns {
		columns = append(columns, model.Column{
			ID:       fc.ID,
			Title:    fc.Title,
			Color:    fc.Color,
			Capacity: fc.Capacity,
			Position: i,
		})
		for j, t := range fc.Tasks {
			if t.ID == "" {
				t.ID = uuid.NewString()
			}
			t.ColumnID = fc.ID
			t.Position = j
			tasks = append(tasks, t)
		}
	}
	return columns, tasks, nil
}

// Default returns the demo board shown by the dashboard.
func Default(now time.Time) ([]model.Column, []model.Task) {
	day := 24 * time.Hour
	due := func(d time.Duration) *time.Time {
		t := now.Add(d).Truncate(day)
		return &t
	}
	limit := func(n int) *int { return &n }

	columns := []model.Column{
		{ID: string(model.StatusTodo), Title: "To Do", Color: "#64748b", Position: 0},
		{ID: string(model.StatusInProgress), Title: "In Progress", Color: "#3b82f6", Capacity: limit(3), Position: 1},
		{ID: string(model.StatusReview), Title: "Review", Color: "#f59e0b", Capacity: limit(2), Position: 2},
		{ID: string(model.StatusDone), Title: "Done", Color: "#22c55e", Position: 3},
	}

	tasks := []model.Task{
		{ID: "task-1", ColumnID: "todo", Position: 0, Title: "Design landing page", Description: "Hero, pricing and footer sections", Priority: model.PriorityHigh, DueDate: due(3 * day), Assignees: []string{"olivia", "liam"}, Progress: 0},
		{ID: "task-2", ColumnID: "todo", Position: 1, Title: "Set up analytics", Priority: model.PriorityMedium, DueDate: due(-2 * day), Assignees: []string{"noah"}, Progress: 10},
		{ID: "task-3", ColumnID: "todo", Position: 2, Title: "Update onboarding emails", Priority: model.PriorityLow, DueDate: due(10 * day), Assignees: []string{"emma"}},
		{ID: "task-4", ColumnID: "in_progress", Position: 0, Title: "Checkout flow refactor", Description: "Split payment step into its own page", Priority: model.PriorityUrgent, DueDate: due(day), Assignees: []string{"ava", "liam"}, Progress: 60},
		{ID: "task-5", ColumnID: "in_progress", Position: 1, Title: "CRM contact import", Priority: model.PriorityMedium, DueDate: due(5 * day), Assignees: []string{"mia"}, Progress: 35},
		{ID: "task-6", ColumnID: "review", Position: 0, Title: "Support ticket SLA report", Priority: model.PriorityHigh, DueDate: due(-day), Assignees: []string{"noah", "emma"}, Progress: 90},
		{ID: "task-7", ColumnID: "done", Position: 0, Title: "Course catalog filters", Priority: model.PriorityMedium, DueDate: due(-7 * day), Assignees: []string{"olivia"}, Progress: 100},
		{ID: "task-8", ColumnID: "done", Position: 1, Title: "Calendar event colors", Priority: model.PriorityLow, Assignees: []string{"mia"}, Progress: 100},
	}

	return columns, tasks
}
