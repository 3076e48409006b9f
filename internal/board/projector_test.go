package board_test

import (
	"testing"
	"time"

	"taskboard/internal/board"
	"taskboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjector_Project(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	exact := now

	b, err := board.New(
		[]model.Column{
			{ID: "todo", Title: "To Do", Position: 0},
			{ID: "in_progress", Title: "In Progress", Capacity: limit(4), Position: 1},
			{ID: "review", Title: "Review", Capacity: limit(1), Position: 2},
		},
		[]model.Task{
			{ID: "t1", ColumnID: "todo", DueDate: &past},
			{ID: "t2", ColumnID: "todo", DueDate: &future},
			{ID: "t3", ColumnID: "todo"},
			{ID: "p1", ColumnID: "in_progress", DueDate: &past},
			{ID: "r1", ColumnID: "review", DueDate: &exact},
		},
	)
	require.NoError(t, err)

	view := board.NewProjector(func() time.Time { return now }).Project(b.Snapshot())

	require.Len(t, view.PerColumn, 3)

	todo := view.PerColumn[0]
	assert.Equal(t, "todo", todo.ID)
	assert.Equal(t, "To Do", todo.Title)
	assert.Equal(t, 3, todo.Count)
	assert.Nil(t, todo.Capacity)
	assert.Nil(t, todo.UtilizationPct)
	assert.False(t, todo.AtCapacity)
	assert.Equal(t, 1, todo.OverdueCount)

	ip := view.PerColumn[1]
	assert.Equal(t, 1, ip.Count)
	require.NotNil(t, ip.UtilizationPct)
	assert.Equal(t, 25, *ip.UtilizationPct)
	assert.False(t, ip.AtCapacity)
	assert.Equal(t, 1, ip.OverdueCount)

	review := view.PerColumn[2]
	require.NotNil(t, review.UtilizationPct)
	assert.Equal(t, 100, *review.UtilizationPct)
	assert.True(t, review.AtCapacity)
	assert.Equal(t, 0, review.OverdueCount, "due exactly now is not overdue")

	assert.Equal(t, 5, view.TaskCount)
	assert.Equal(t, 2, view.OverdueCount)
}

func TestProjector_RecomputesOverdueEachTime(t *testing.T) {
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	b, err := board.New(
		[]model.Column{{ID: "todo"}},
		[]model.Task{{ID: "t1", ColumnID: "todo", DueDate: &due}},
	)
	require.NoError(t, err)

	clock := due.Add(-time.Minute)
	p := board.NewProjector(func() time.Time { return clock })
	snap := b.Snapshot()

	assert.Equal(t, 0, p.Project(snap).OverdueCount)

	clock = due.Add(time.Minute)
	assert.Equal(t, 1, p.Project(snap).OverdueCount)
}

func TestProjector_OverCapacityUtilization(t *testing.T) {
	b := build(t, col("review", limit(2), "a", "b", "c"))

	view := board.NewProjector(nil).Project(b.Snapshot())

	require.NotNil(t, view.PerColumn[0].UtilizationPct)
	assert.Equal(t, 150, *view.PerColumn[0].UtilizationPct)
	assert.True(t, view.PerColumn[0].AtCapacity)
}

func TestProjector_FollowsMoves(t *testing.T) {
	b := build(t, col("todo", nil, "T1", "T2"), col("in_progress", limit(2), "T3"))
	c := newCoordinator(b)
	p := board.NewProjector(nil)

	res := move(t, c, "T1", "in_progress", 0)
	require.True(t, res.Applied())

	view := p.Project(*res.Snapshot)
	assert.Equal(t, 1, view.PerColumn[0].Count)
	assert.Equal(t, 2, view.PerColumn[1].Count)
	assert.True(t, view.PerColumn[1].AtCapacity)
	assert.Equal(t, uint64(1), view.Version)
}
