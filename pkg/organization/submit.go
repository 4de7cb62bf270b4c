package organization

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"p9e.in/lms/models"
	"p9e.in/lms/pkg/apperr"
	"p9e.in/lms/pkg/logger"
)

// Submit moves a draft organization to submitted once every checklist step
// is complete. An incomplete organization is left untouched.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockOrganization(tx, id); err != nil {
			return err
		}

		var org models.Organization
		if err := preloadAggregate(tx).Take(&org, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("organization with ID %s not found", id)
			}
			return fmt.Errorf("load organization: %w", err)
		}

		if org.Status != models.StatusDraft {
			return apperr.BadRequest("organization is already %s", org.Status)
		}

		checklist := Evaluate(&org)
		if !checklist.IsReadyForSubmission {
			e := apperr.BadRequest("Organization is not complete. Please fill all required fields.")
			e.Fields = missingByStep(checklist)
			return e
		}

		return tx.Model(&models.Organization{}).
			Where("id = ?", id).
			Update("status", models.StatusSubmitted).Error
	})
	observeSubmission(err)
	if err != nil {
		return nil, wrapTxError(err, "submit organization")
	}

	logger.Infof(ctx, "organization %s submitted", id)
	return s.Get(ctx, id)
}

func missingByStep(c Checklist) map[string]string {
	out := make(map[string]string)
	for _, step := range c.Steps {
		if !step.IsCompleted {
			out[step.StepName] = strings.Join(step.MissingFields, ", ")
		}
	}
	return out
}
