package board

import "time"

type ColumnView struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Color          string `json:"color,omitempty"`
	Count          int    `json:"count"`
	Capacity       *int   `json:"capacity,omitempty"`
	UtilizationPct *int   `json:"utilization_pct,omitempty"`
	AtCapacity     bool   `json:"at_capacity"`
	OverdueCount   int    `json:"overdue_count"`
}

// View is the render-ready summary of a snapshot.
type View struct {
	Version      uint64       `json:"version"`
	PerColumn    []ColumnView `json:"per_column"`
	TaskCount    int          `json:"task_count"`
	OverdueCount int          `json:"overdue_count"`
}

// Projector derives a View from a Snapshot. It keeps no state besides the
// clock.
type Projector struct {
	now func() time.Time
}

func NewProjector(now func() time.Time) *Projector {
	if now == nil {
		now = time.Now
	}
	return &Projector{now: now}
}

func (p *Projector) Project(s Snapshot) View {
	now := p.now()
	v := View{
		Version:   s.Version,
		PerColumn: make([]ColumnView, len(s.Columns)),
	}
	for i, c := range s.Columns {
		cv := ColumnView{
			ID:       c.ID,
			Title:    c.Title,
			Color:    c.Color,
			Count:    len(c.Tasks),
			Capacity: copyInt(c.Capacity),
		}
		if c.Capacity != nil && *c.Capacity > 0 {
			pct := cv.Count * 100 / *c.Capacity
			cv.UtilizationPct = &pct
			cv.AtCapacity = cv.Count >= *c.Capacity
		}
		for _, t := range c.Tasks {
			if IsOverdue(t, now) {
				cv.OverdueCount++
			}
		}
		v.PerColumn[i] = cv
		v.TaskCount += cv.Count
		v.OverdueCount += cv.OverdueCount
	}
	return v
}

// IsOverdue reports whether the task's due date is strictly before now.
// Tasks without a due date are never overdue.
func IsOverdue(t TaskSnapshot, now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now)
}
