package models

import (
	"time"

	"github.com/fieldopshq/fieldops-backend/pkg/enums"
)

type SalesRep struct {
	ID        int64             `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName string            `gorm:"column:first_name;not null"`
	LastName  string            `gorm:"column:last_name;not null"`
	UserID    *int64            `gorm:"column:user_id"`
	Deleted   enums.DeletedFlag `gorm:"column:deleted;type:varchar(3);not null;default:'No'"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
