package techassign

import (
	"time"

	"github.com/fieldopshq/fieldops-backend/internal/ledger"
)

// AssignmentDTO joins an assignment with its item metadata for listings.
type AssignmentDTO struct {
	SKU          string    `json:"skuNumber"`
	TechnicianID int64     `json:"techId"`
	Quantity     int       `json:"qty"`
	ItemName     string    `json:"name"`
	Description  string    `json:"description"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AssignInput captures a request to hand stock to a technician.
type AssignInput struct {
	SKU          string
	TechnicianID int64
	Qty          int
}

// AssignResultDTO reports the branch taken and the assignment's new total.
type AssignResultDTO struct {
	Outcome  ledger.Outcome `json:"outcome"`
	NewTotal int            `json:"newTotal"`
}

// AdjustInput captures a partial rewrite of an assignment.
type AdjustInput struct {
	Qty             *int
	NewTechnicianID *int64
}

// ReleaseResultDTO reports how many units flowed back to the pool.
type ReleaseResultDTO struct {
	ReturnedQty int `json:"returnedQty"`
}
