// Package organization implements the laboratory registration workflow:
// organization CRUD, the ten step updates, the completion checklist and
// the submission gate.
package organization

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"p9e.in/lms/models"
	"p9e.in/lms/pkg/apperr"
	"p9e.in/lms/pkg/logger"
	"p9e.in/lms/utils"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create registers a new draft organization from the laboratory basics.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Organization, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	org := &models.Organization{
		LabName:     req.LabName,
		LabAddress:  req.LabAddress,
		LabCountry:  models.DefaultCountry,
		LabState:    req.LabState,
		LabDistrict: req.LabDistrict,
		LabCity:     req.LabCity,
		LabPinCode:  req.LabPinCode,
		Status:      models.StatusDraft,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(org).Error; err != nil {
		return nil, apperr.Internal(err, "create organization")
	}

	logger.Infof(ctx, "organization %s created for %s", org.ID, org.LabName)
	return s.Get(ctx, org.ID)
}

// Get loads the organization with every section, ordered collections
// sorted by their order index.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	err := preloadAggregate(s.db.WithContext(ctx)).Take(&org, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("organization with ID %s not found", id)
	}
	if err != nil {
		return nil, apperr.Internal(err, "load organization")
	}
	return &org, nil
}

// List pages through organizations in creation order.
func (s *Service) List(ctx context.Context, skip, limit int) ([]models.Organization, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	var orgs []models.Organization
	err := preloadAggregate(s.db.WithContext(ctx)).
		Order("created_at ASC").
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&orgs).Error
	if err != nil {
		return nil, apperr.Internal(err, "list organizations")
	}
	return orgs, nil
}

// Count returns the number of registered organizations.
func (s *Service) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Organization{}).Count(&n).Error; err != nil {
		return 0, apperr.Internal(err, "count organizations")
	}
	return n, nil
}

// Delete removes the organization and every section it owns.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockOrganization(tx, id); err != nil {
			return err
		}
		for _, table := range models.Children() {
			if err := tx.Where("organization_id = ?", id).Delete(table).Error; err != nil {
				return fmt.Errorf("delete %T: %w", table, err)
			}
		}
		return tx.Delete(&models.Organization{}, "id = ?", id).Error
	})
	if err != nil {
		return wrapTxError(err, "delete organization")
	}

	logger.Infof(ctx, "organization %s deleted", id)
	return nil
}

// Purge deletes every organization and all of their sections in one
// transaction and reports how many organizations were removed.
func (s *Service) Purge(ctx context.Context) (int64, error) {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range models.Children() {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
				return fmt.Errorf("clear %T: %w", table, err)
			}
		}
		res := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Organization{})
		removed = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, wrapTxError(err, "purge organizations")
	}

	logger.Warnf(ctx, "purged %d organizations", removed)
	return removed, nil
}

// Recent returns the n most recently created organizations without their
// sections.
func (s *Service) Recent(ctx context.Context, n int) ([]models.Organization, error) {
	var orgs []models.Organization
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(n).
		Find(&orgs).Error
	if err != nil {
		return nil, apperr.Internal(err, "recent organizations")
	}
	return orgs, nil
}

// lockOrganization loads the root row inside a transaction. Postgres takes
// a row lock; other dialects ignore the clause.
func lockOrganization(tx *gorm.DB, id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := q.Take(&org, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("organization with ID %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load organization: %w", err)
	}
	return &org, nil
}

func touch(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&models.Organization{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", time.Now().UTC()).Error
}

// wrapTxError keeps classified errors and marks everything else internal.
func wrapTxError(err error, msg string) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperr.Internal(err, "%s", msg)
}

func preloadAggregate(db *gorm.DB) *gorm.DB {
	byOrder := func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }
	return db.
		Preload("RegisteredOffice").
		Preload("TopManagement", byOrder).
		Preload("ParentOrganization").
		Preload("BankDetails").
		Preload("WorkingSchedule").
		Preload("ShiftTimings", byOrder).
		Preload("ComplianceDocuments").
		Preload("PolicyDocuments").
		Preload("Infrastructure").
		Preload("AccreditationDocuments").
		Preload("OtherDetails").
		Preload("QualityManual").
		Preload("SOPs", byOrder).
		Preload("QualityFormats", byOrder).
		Preload("QualityProcedures", byOrder)
}
