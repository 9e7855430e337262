package database

import (
	"gorm.io/gorm"
)

// OwnedBy restricts a task query to rows belonging to userID.
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// OwnedTask restricts a task query to the row with taskID owned by userID.
func OwnedTask(taskID, userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ? AND user_id = ?", taskID, userID)
	}
}
