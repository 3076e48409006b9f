package model

// Status is the workflow state a column represents. A column's ID is
// also the status of every task it holds.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

type Column struct {
	ID       string `gorm:"type:text;primaryKey" yaml:"id"`
	Title    string `gorm:"not null" yaml:"title"`
	Color    string `yaml:"color"`
	Capacity *int   `yaml:"capacity"`
	Position int    `gorm:"not null" yaml:"position"`
}

func (Column) TableName() string {
	return "board_columns"
}
