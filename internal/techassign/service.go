package techassign

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldopshq/fieldops-backend/internal/ledger"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type assignmentReader interface {
	List(ctx context.Context) ([]AssignmentDTO, error)
	ListByTechnician(ctx context.Context, techID int64) ([]AssignmentDTO, error)
}

// Service moves stock between the pool and technicians.
type Service interface {
	List(ctx context.Context) ([]AssignmentDTO, error)
	ListByTechnician(ctx context.Context, techID int64) ([]AssignmentDTO, error)
	Assign(ctx context.Context, input AssignInput) (*AssignResultDTO, error)
	Adjust(ctx context.Context, sku string, techID int64, input AdjustInput) error
	Release(ctx context.Context, sku string, techID int64) (*ReleaseResultDTO, error)
}

type service struct {
	tx   txRunner
	repo assignmentReader
}

// NewService builds a technician assignment service.
func NewService(tx txRunner, repo assignmentReader) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("assignment repository required")
	}
	return &service{tx: tx, repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]AssignmentDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tech assignments")
	}
	return rows, nil
}

func (s *service) ListByTechnician(ctx context.Context, techID int64) ([]AssignmentDTO, error) {
	if techID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "techId is required")
	}
	rows, err := s.repo.ListByTechnician(ctx, techID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tech assignments")
	}
	return rows, nil
}

func (s *service) Assign(ctx context.Context, input AssignInput) (*AssignResultDTO, error) {
	input.SKU = strings.TrimSpace(input.SKU)

	var result *AssignResultDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		res, err := ledger.Assign(ctx, tx, ledger.AssignRequest{
			Kind:    ledger.KindTechnician,
			SKU:     input.SKU,
			OwnerID: input.TechnicianID,
			Qty:     input.Qty,
		})
		if err != nil {
			return err
		}
		result = &AssignResultDTO{Outcome: res.Outcome, NewTotal: res.NewTotal}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Adjust(ctx context.Context, sku string, techID int64, input AdjustInput) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return ledger.Adjust(ctx, tx, ledger.AdjustRequest{
			Kind:       ledger.KindTechnician,
			SKU:        strings.TrimSpace(sku),
			OwnerID:    techID,
			NewQty:     input.Qty,
			NewOwnerID: input.NewTechnicianID,
		})
	})
}

func (s *service) Release(ctx context.Context, sku string, techID int64) (*ReleaseResultDTO, error) {
	var result *ReleaseResultDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		res, err := ledger.Release(ctx, tx, ledger.ReleaseRequest{
			Kind:    ledger.KindTechnician,
			SKU:     strings.TrimSpace(sku),
			OwnerID: techID,
		})
		if err != nil {
			return err
		}
		result = &ReleaseResultDTO{ReturnedQty: res.ReturnedQty}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
