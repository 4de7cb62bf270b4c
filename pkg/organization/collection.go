package organization

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderedPtr[T any] interface {
	sectionPtr[T]
	SetOrderIndex(int)
}

// replaceCollection swaps every row of T owned by orgID for rows. Rows left
// out of the new list are gone afterwards.
func replaceCollection[T any, PT sectionPtr[T]](tx *gorm.DB, orgID uuid.UUID, rows []T) error {
	if err := tx.Where("organization_id = ?", orgID).Delete(new(T)).Error; err != nil {
		return fmt.Errorf("clear %T: %w", new(T), err)
	}
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		PT(&rows[i]).SetOrganizationID(orgID)
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("insert %T: %w", new(T), err)
	}
	return nil
}

// replaceOrderedCollection is replaceCollection with order_index taken
// from each row's position in the list.
func replaceOrderedCollection[T any, PT orderedPtr[T]](tx *gorm.DB, orgID uuid.UUID, rows []T) error {
	for i := range rows {
		PT(&rows[i]).SetOrderIndex(i)
	}
	return replaceCollection[T, PT](tx, orgID, rows)
}
