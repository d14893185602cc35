package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockParent takes a row lock on the parent so concurrent appends to the same
// parent are serialized. sqlite has no row locks and ignores the clause; its
// single writer gives the same effect.
func lockParent(tx *gorm.DB, model interface{}, id string) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", id).
		Take(model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrParentNotFound
	}
	return err
}

// nextOrder returns max(order)+1 among the siblings under parentID, or 0 when
// there are none.
func nextOrder(tx *gorm.DB, siblings interface{}, parentColumn, parentID string) (int, error) {
	var maxOrder int
	err := tx.Model(siblings).
		Where(parentColumn+" = ?", parentID).
		Select("COALESCE(MAX(sort_order), -1)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

const listOrder = "sort_order ASC, created_at ASC, id ASC"
