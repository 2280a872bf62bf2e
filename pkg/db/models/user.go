package models

import (
	"time"

	"github.com/fieldopshq/fieldops-backend/pkg/enums"
)

type User struct {
	ID           int64             `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string            `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string            `gorm:"column:password_hash;not null"`
	IsAdmin      bool              `gorm:"column:is_admin;not null;default:false"`
	Deleted      enums.DeletedFlag `gorm:"column:deleted;type:varchar(3);not null;default:'No'"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
