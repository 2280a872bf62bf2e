package models

import (
	"time"

	"github.com/fieldopshq/fieldops-backend/pkg/enums"
)

// WorkOrder is a customer job owning a set of reservations. DateAssigned is
// stamped when a technician is attached, DateCompleted when the job closes.
type WorkOrder struct {
	ID            int64             `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID    int64             `gorm:"column:customer_id;not null"`
	SalesRepID    int64             `gorm:"column:sales_rep_id;not null"`
	TechnicianID  *int64            `gorm:"column:technician_id"`
	DateCreated   time.Time         `gorm:"column:date_created;not null"`
	DateAssigned  *time.Time        `gorm:"column:date_assigned"`
	DateCompleted *time.Time        `gorm:"column:date_completed"`
	LastModified  time.Time         `gorm:"column:last_modified;not null"`
	Deleted       enums.DeletedFlag `gorm:"column:deleted;type:varchar(3);not null;default:'No'"`

	Reservations []OrderReservation `gorm:"foreignKey:OrderID"`
}
