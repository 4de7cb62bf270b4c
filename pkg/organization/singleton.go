package organization

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type singletonState int

const (
	singletonAbsent singletonState = iota
	singletonPresent
)

// sectionPtr is satisfied by pointers to every organization owned table.
type sectionPtr[T any] interface {
	*T
	SetOrganizationID(uuid.UUID)
}

// loadSingleton fetches the single row of T owned by orgID.
func loadSingleton[T any](tx *gorm.DB, orgID uuid.UUID) (*T, singletonState, error) {
	var row T
	err := tx.Where("organization_id = ?", orgID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, singletonAbsent, nil
	}
	if err != nil {
		return nil, singletonAbsent, err
	}
	return &row, singletonPresent, nil
}

// upsertSingleton patches the existing row of T, or builds one from
// defaults and the same patch when the organization has none yet.
func upsertSingleton[T any, PT sectionPtr[T]](tx *gorm.DB, orgID uuid.UUID, defaults func() PT, patch func(PT)) (PT, error) {
	row, state, err := loadSingleton[T](tx, orgID)
	if err != nil {
		return nil, fmt.Errorf("load %T: %w", row, err)
	}

	switch state {
	case singletonPresent:
		p := PT(row)
		patch(p)
		if err := tx.Save(p).Error; err != nil {
			return nil, fmt.Errorf("update %T: %w", p, err)
		}
		return p, nil
	default:
		p := defaults()
		p.SetOrganizationID(orgID)
		patch(p)
		if err := tx.Create(p).Error; err != nil {
			return nil, fmt.Errorf("create %T: %w", p, err)
		}
		return p, nil
	}
}

// set overwrites *dst when src was supplied.
func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// setPtr is set for nullable columns.
func setPtr[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
