package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskboard/internal/board"
	"taskboard/internal/model"
)

// LoadTasks returns all tasks ordered by column and position
func (r *BoardRepository) LoadTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).Order("column_id").Order("position").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// ResetPositions rewrites every task row to the placement in the snapshot,
// leaving positions dense (0..n-1) per column.
func (r *BoardRepository) ResetPositions(ctx context.Context, s board.Snapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range s.Columns {
			for i, t := range c.Tasks {
				if err := tx.Model(&model.Task{}).
					Where("id = ?", t.ID).
					Updates(map[string]interface{}{"column_id": c.ID, "position": i}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// ApplyMove persists a move in a single transaction: close the gap in the
// source column, open one in the destination, then place the task.
func (r *BoardRepository) ApplyMove(ctx context.Context, m board.Move) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task model.Task
		if err := tx.Select("id", "column_id", "position").First(&task, "id = ?", m.TaskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		if task.ColumnID != m.FromColumn || task.Position != m.FromIndex {
			return fmt.Errorf("%w: task %q stored at %s[%d], expected %s[%d]",
				ErrPlacementMismatch, m.TaskID, task.ColumnID, task.Position, m.FromColumn, m.FromIndex)
		}

		if m.FromColumn != m.ToColumn {
			// Tasks after the old slot move up by one
			if err := tx.Model(&model.Task{}).
				Where("column_id = ? AND position > ?", m.FromColumn, m.FromIndex).
				Update("position", gorm.Expr("position - 1")).Error; err != nil {
				return err
			}

			// Tasks at or after the target slot move down by one
			if err := tx.Model(&model.Task{}).
				Where("column_id = ? AND position >= ?", m.ToColumn, m.ToIndex).
				Update("position", gorm.Expr("position + 1")).Error; err != nil {
				return err
			}
		} else if m.FromIndex < m.ToIndex {
			if err := tx.Model(&model.Task{}).
				Where("column_id = ? AND position > ? AND position <= ?", m.ToColumn, m.FromIndex, m.ToIndex).
				Update("position", gorm.Expr("position - 1")).Error; err != nil {
				return err
			}
		} else if m.FromIndex > m.ToIndex {
			if err := tx.Model(&model.Task{}).
				Where("column_id = ? AND position >= ? AND position < ?", m.ToColumn, m.ToIndex, m.FromIndex).
				Update("position", gorm.Expr("position + 1")).Error; err != nil {
				return err
			}
		}

		return tx.Model(&model.Task{}).
			Where("id = ?", m.TaskID).
			Updates(map[string]interface{}{"column_id": m.ToColumn, "position": m.ToIndex}).Error
	})
}
