package models

import (
	"time"

	"github.com/fieldopshq/fieldops-backend/pkg/enums"
)

type Customer struct {
	ID        int64             `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName string            `gorm:"column:first_name;not null"`
	LastName  string            `gorm:"column:last_name;not null"`
	Address   string            `gorm:"column:address;not null"`
	Phone     string            `gorm:"column:phone;not null"`
	Deleted   enums.DeletedFlag `gorm:"column:deleted;type:varchar(3);not null;default:'No'"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
