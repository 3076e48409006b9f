package repository

import (
	"context"

	"gorm.io/gorm"

	"taskboard/internal/board"
	"taskboard/internal/model"
)

// BoardRepository stores the single board: its columns and the placement
// of every task.
type BoardRepository struct {
	db *gorm.DB
}

var _ board.Store = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// AutoMigrate creates or updates the board tables
func (r *BoardRepository) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&model.Column{}, &model.Task{})
}

// LoadColumns returns all columns ordered by position
func (r *BoardRepository) LoadColumns(ctx context.Context) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).Order("position").Find(&columns).Error
	return columns, err
}

// IsEmpty reports whether no columns have been stored yet
func (r *BoardRepository) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Column{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// Seed inserts a whole board in one transaction
func (r *BoardRepository) Seed(ctx context.Context, columns []model.Column, tasks []model.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(columns) > 0 {
			if err := tx.Create(&columns).Error; err != nil {
				return err
			}
		}
		if len(tasks) > 0 {
			if err := tx.Create(&tasks).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
