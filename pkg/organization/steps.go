package organization

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"p9e.in/lms/models"
	"p9e.in/lms/pkg/apperr"
	"p9e.in/lms/pkg/logger"
	"p9e.in/lms/utils"
)

// Step names used for logging and metrics.
const (
	StepLaboratoryDetails   = "laboratory-details"
	StepRegisteredOffice    = "registered-office"
	StepParentOrganization  = "parent-organization"
	StepBankDetails         = "bank-details"
	StepWorkingSchedule     = "working-schedule"
	StepComplianceDocuments = "compliance-documents"
	StepPolicyDocuments     = "policy-documents"
	StepInfrastructure      = "infrastructure"
	StepAccreditation       = "accreditation"
	StepOtherDetails        = "other-details"
	StepQualityManual       = "quality-manual"
	StepQualityFormats      = "quality-formats"
)

// runStep validates req, then runs apply in one transaction that also
// refreshes the organization's updated_at. The reloaded aggregate is
// returned on success.
func (s *Service) runStep(ctx context.Context, step string, id uuid.UUID, req any, apply func(tx *gorm.DB, org *models.Organization) error) (*models.Organization, error) {
	if req != nil {
		if err := utils.ValidateStruct(req); err != nil {
			observeStep(step, err)
			return nil, err
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		org, err := lockOrganization(tx, id)
		if err != nil {
			return err
		}
		if err := apply(tx, org); err != nil {
			return err
		}
		return touch(tx, id)
	})
	if err != nil {
		err = wrapTxError(err, "update "+step)
		observeStep(step, err)
		if apperr.KindOf(err) == apperr.KindInternal {
			logger.Errorf(ctx, "step %s for organization %s failed: %v", step, id, err)
		}
		return nil, err
	}

	observeStep(step, nil)
	logger.Infof(ctx, "organization %s step %s saved", id, step)
	return s.Get(ctx, id)
}

// UpdateLaboratoryDetails overwrites the root laboratory fields.
func (s *Service) UpdateLaboratoryDetails(ctx context.Context, id uuid.UUID, req LaboratoryDetailsRequest) (*models.Organization, error) {
	return s.runStep(ctx, StepLaboratoryDetails, id, req, func(tx *gorm.DB, org *models.Organization) error {
		org.LabName = req.LabName
		org.LabAddress = req.LabAddress
		set(&org.LabCountry, req.LabCountry)
		org.LabState = req.LabState
		org.LabDistrict = req.LabDistrict
		org.LabCity = req.LabCity
		org.LabPinCode = req.LabPinCode
		setPtr(&org.LabLogoURL, req.LabLogoURL)
		proof := req.LabProofOfAddress
		org.LabProofOfAddress = &proof
		setPtr(&org.LabProofOfAddressOther, req.LabProofOfAddressOther)
		setPtr(&org.LabDocumentID, req.LabDocumentID)
		setPtr(&org.LabAddressProofURL, req.LabAddressProofURL)
		return tx.Omit(clause.Associations).Save(org).Error
	})
}

// UpdateRegisteredOffice upserts the registered office and replaces the
// top management list.
func (s *Service) UpdateRegisteredOffice(ctx context.Context, id uuid.UUID, req RegisteredOfficeRequest) (*models.Organization, error) {
	return s.runStep(ctx, StepRegisteredOffice, id, req, func(tx *gorm.DB, _ *models.Organization) error {
		_, err := upsertSingleton(tx, id,
			func() *models.RegisteredOffice {
				return &models.RegisteredOffice{Country: models.DefaultCountry}
			},
			func(o *models.RegisteredOffice) {
				set(&o.SameAsLabAddress, req.SameAsLabAddress)
				setPtr(&o.Address, req.Address)
				set(&o.Country, req.Country)
				setPtr(&o.State, req.State)
				setPtr(&o.District, req.District)
				setPtr(&o.City, req.City)
				setPtr(&o.PinCode, req.PinCode)
				setPtr(&o.Mobile, req.Mobile)
				setPtr(&o.Telephone, req.Telephone)
				setPtr(&o.Fax, req.Fax)
				setPtr(&o.TopManagementDocumentURL, req.TopManagementDocumentURL)
			})
		if err != nil {
			return err
		}

		rows := make([]models.TopManagement, len(req.TopManagement))
		for i, item := range req.TopManagement {
			rows[i] = models.TopManagement{
				Name:        item.Name,
				Designation: item.Designation,
				Mobile:      item.Mobile,
				Telephone:   item.Telephone,
				Fax:         item.Fax,
			}
		}
		return replaceOrderedCollection(tx, id, rows)
	})
}

func (s *Service) UpdateParentOrganization(ctx context.Context, id uuid.UUID, req ParentOrganizationRequest) (*models.Organization, error) {
	return s.runStep(ctx, StepParentOrganization, id, req, func(tx *gorm.DB, _ *models.Organization) error {
		_, err := upsertSingleton(tx, id,
			func() *models.ParentOrganization {
				return &models.ParentOrganization{Country: models.DefaultCountry}
			},
			func(p *models.ParentOrganization) {
				set(&p.SameAsLaboratory, req.SameAsLaboratory)
				setPtr(&p.Name, req.Name)
				setPtr(&p.Address, req.Address)
				set(&p.Country, req.Country)
				setPtr(&p.State, req.State)
				setPtr(&p.District, req.District)
				setPtr(&p.City, req.City)
				setPtr(&p.PinCode, req.PinCode)
			})
		return err
	})
}

func (s *Service) UpdateBankDetails(ctx context.Context, id uuid.UUID, req BankDetailsRequest) (*models.Organization, error) {
	return s.runStep(ctx, StepBankDetails, id, req, func(tx *gorm.DB, _ *models.Organization) error {
		_, err := upsertSingleton(tx, id,
			func() *models.BankDetails { return &models.BankDetails{} },
			func(b *models.BankDetails) {
				setPtr(&b.AccountHolderName, req.AccountHolderName)
				setPtr(&b.AccountNumber, req.AccountNumber)
				setPtr(&b.IFSCCode, upper(req.IFSCCode))
				setPtr(&b.BranchName, req.BranchName)
				setPtr(&b.GSTNumber, upper(req.GSTNumber))
				setPtr(&b.CancelledChequeURL, req.CancelledChequeURL)
			})
		return err
	})
}

// UpdateWorkingSchedule upserts the schedule and replaces the shift list.
// Shift times must be "HH:MM".
func (s *Service) UpdateWorkingSchedule(ctx context.Context, id uuid.UUID, req WorkingScheduleRequest) (*models.Organization, error) {
	shifts := make([]models.ShiftTiming, len(req.ShiftTimings))
	for i, item := range req.ShiftTimings {
		from, err := utils.ParseShiftTime("shift_timings.shift_from", item.ShiftFrom)
		if err != nil {
			observeStep(StepWorkingSchedule, err)
			return nil, err
		}
		to, err := utils.ParseShiftTime("shift_timings.shift_to", item.ShiftTo)
		if err != nil {
			observeStep(StepWorkingSchedule, err)
			return nil, err
		}
		shifts[i] = models.ShiftTiming{ShiftFrom: models.TimeOfDay(from), ShiftTo: models.TimeOfDay(to)}
	}

	return s.runStep(ctx, StepWorkingSchedule, id, req, func(tx *gorm.DB, _ *models.Organization) error {
		_, err := upsertSingleton(tx, id,
			func() *models.WorkingSchedule {
				return &models.WorkingSchedule{WorkingDays: pq.StringArray{}}
			},
			func(w *models.WorkingSchedule) {
				if req.WorkingDays != nil {
					w.WorkingDays = pq.StringArray(req.WorkingDays)
				}
				setPtr(&w.OrganizationType, req.OrganizationType)
				setPtr(&w.OrganizationTypeOther, req.OrganizationTypeOther)
				setPtr(&w.ProofOfLegalIdentity, req.ProofOfLegalIdentity)
				setPtr(&w.ProofOfLegalIdentityOther, req.ProofOfLegalIdentityOther)
				setPtr(&w.LegalIdentityDocumentID, req.LegalIdentityDocumentID)
				setPtr(&w.LegalIdentityDocumentURL, req.LegalIdentityDocumentURL)
			})
		if err != nil {
			return err
		}
		return replaceOrderedCollection(tx, id, shifts)
	})
}

func (s *Service) UpdateComplianceDocuments(ctx context.Context, id uuid.UUID, req ComplianceDocumentsRequest) (*models.Organization, error) {
	return s.runStep(ctx, StepComplianceDocuments, id, req, func(tx *gorm.DB, _ *models.Organization) error {
		rows := make([]models.ComplianceDocument, len(req.ComplianceDocuments))
		for i, item := range req.ComplianceDocuments {
			rows[i] = models.ComplianceDocument{
				DocumentType:      item.DocumentType,
				DocumentTypeOther: item.DocumentTypeOther,
				DocumentID:        item.DocumentID,
				FileURL:           item.FileURL,
			}
		}
		return replaceCollection(tx, id, rows)
	})
}

func (s *Service) UpdatePolicyDocuments(ctx context.Context, id uuid.UUID, req PolicyDocumentsRequest) (*models.Organization, error) {
	return s.runStep(ctx, StepPolicyDocuments, id, req, func(tx *gorm.DB, _ *models.Organization) error {
		_, err := upsertSingleton(tx, id,
			func() *models.PolicyDocuments { return &models.PolicyDocuments{} },
			func(p *models.PolicyDocuments) {
				setPtr(&p.ImpartialityDocumentURL, req.ImpartialityDocumentURL)
				setPtr(&p.TermsConditionsDocumentURL, req.TermsConditionsDocumentURL)
				setPtr(&p.CodeOfEthicsDocumentURL, req.CodeOfEthicsDocumentURL)
				setPtr(&p.TestingChargesPolicyDocumentURL, req.TestingChargesPolicyDocumentURL)
			})
		return err
	})
}

func (s *Service) UpdateInfrastructure(ctx context.Context, id uuid.UUID, req InfrastructureRequest) (*models.Organization, error) {
	return s.runStep(ctx, StepInfrastructure, id, req, func(tx *gorm.DB, _ *models.Organization) error {
		_, err := upsertSingleton(tx, id,
			func() *models.InfrastructureDetails { return &models.InfrastructureDetails{} },
			func(d *models.InfrastructureDetails) {
				setPtr(&d.AdequacySanctionedLoad, req.AdequacySanctionedLoad)
				set(&d.AvailabilityUninterruptedPower, req.AvailabilityUninterruptedPower)
				set(&d.StabilityOfSupply, req.StabilityOfSupply)
				setPtr(&d.WaterSource, req.WaterSource)
			})
		return err
	})
}

func (s *Service) UpdateAccreditation(ctx context.Context, id uuid.UUID, req AccreditationRequest) (*models.Organization, error) {
	return s.runStep(ctx, StepAccreditation, id, req, func(tx *gorm.DB, _ *models.Organization) error {
		rows := make([]models.AccreditationDocument, len(req.AccreditationDocuments))
		for i, item := range req.AccreditationDocuments {
			rows[i] = models.AccreditationDocument{
				CertificationType:      item.CertificationType,
				CertificationTypeOther: item.CertificationTypeOther,
				CertificateNo:          item.CertificateNo,
				CertificateFileURL:     item.CertificateFileURL,
				ScopeFileURL:           item.ScopeFileURL,
			}
		}
		return replaceCollection(tx, id, rows)
	})
}

// UpdateOtherDetails upserts the other lab details. When either GPS value
// is sent both must be valid; two blank values clear the location.
func (s *Service) UpdateOtherDetails(ctx context.Context, id uuid.UUID, req OtherDetailsRequest) (*models.Organization, error) {
	var lat, lon *float64
	clearGPS := false
	switch {
	case req.GPSLatitude == nil && req.GPSLongitude == nil:
	case req.GPSLatitude != nil && req.GPSLongitude != nil && isBlank(req.GPSLatitude) && isBlank(req.GPSLongitude):
		clearGPS = true
	default:
		p, err := utils.ValidateCoordinates(req.GPSLatitude, req.GPSLongitude)
		if err != nil {
			observeStep(StepOtherDetails, err)
			return nil, err
		}
		la, lo := p.Lat(), p.Lon()
		lat, lon = &la, &lo
	}

	return s.runStep(ctx, StepOtherDetails, id, req, func(tx *gorm.DB, _ *models.Organization) error {
		_, err := upsertSingleton(tx, id,
			func() *models.OtherLabDetails { return &models.OtherLabDetails{} },
			func(d *models.OtherLabDetails) {
				setPtr(&d.OtherDetails, req.OtherDetails)
				setPtr(&d.OtherDetailsDocumentURL, req.OtherDetailsDocumentURL)
				setPtr(&d.LayoutLabPremisesURL, req.LayoutLabPremisesURL)
				setPtr(&d.OrganizationChartURL, req.OrganizationChartURL)
				if clearGPS {
					d.GPSLatitude, d.GPSLongitude = nil, nil
				}
				setPtr(&d.GPSLatitude, lat)
				setPtr(&d.GPSLongitude, lon)
			})
		return err
	})
}

// UpdateQualityManual upserts the quality manual and replaces the SOP list.
func (s *Service) UpdateQualityManual(ctx context.Context, id uuid.UUID, req QualityManualRequest) (*models.Organization, error) {
	issueDate, err := utils.ParseDate("issue_date", req.IssueDate)
	if err != nil {
		observeStep(StepQualityManual, err)
		return nil, err
	}
	sops := make([]models.SOP, len(req.SOPs))
	for i, item := range req.SOPs {
		doc, err := toDocument("sops.issue_date", item)
		if err != nil {
			observeStep(StepQualityManual, err)
			return nil, err
		}
		sops[i] = models.SOP{Document: doc}
	}

	return s.runStep(ctx, StepQualityManual, id, req, func(tx *gorm.DB, _ *models.Organization) error {
		_, err := upsertSingleton(tx, id,
			func() *models.QualityManual { return &models.QualityManual{} },
			func(m *models.QualityManual) {
				setPtr(&m.Title, req.Title)
				setPtr(&m.IssueNumber, req.IssueNumber)
				if issueDate != nil {
					m.IssueDate = (*models.Date)(issueDate)
				}
				setPtr(&m.Amendments, req.Amendments)
				setPtr(&m.DocumentURL, req.DocumentURL)
			})
		if err != nil {
			return err
		}
		return replaceOrderedCollection(tx, id, sops)
	})
}

// UpdateQualityFormats replaces both the quality format and the quality
// procedure lists.
func (s *Service) UpdateQualityFormats(ctx context.Context, id uuid.UUID, req QualityFormatsRequest) (*models.Organization, error) {
	formats := make([]models.QualityFormat, len(req.QualityFormats))
	for i, item := range req.QualityFormats {
		doc, err := toDocument("quality_formats.issue_date", item)
		if err != nil {
			observeStep(StepQualityFormats, err)
			return nil, err
		}
		formats[i] = models.QualityFormat{Document: doc}
	}
	procedures := make([]models.QualityProcedure, len(req.QualityProcedures))
	for i, item := range req.QualityProcedures {
		doc, err := toDocument("quality_procedures.issue_date", item.DocumentItem)
		if err != nil {
			observeStep(StepQualityFormats, err)
			return nil, err
		}
		procedures[i] = models.QualityProcedure{Document: doc, FileURL: item.FileURL}
	}

	return s.runStep(ctx, StepQualityFormats, id, req, func(tx *gorm.DB, _ *models.Organization) error {
		if err := replaceOrderedCollection(tx, id, formats); err != nil {
			return err
		}
		return replaceOrderedCollection(tx, id, procedures)
	})
}

func toDocument(field string, item DocumentItem) (models.Document, error) {
	issueDate, err := utils.ParseDate(field, item.IssueDate)
	if err != nil {
		return models.Document{}, err
	}
	return models.Document{
		Title:       item.Title,
		Number:      item.Number,
		IssueNumber: item.IssueNumber,
		IssueDate:   (*models.Date)(issueDate),
		Amendments:  item.Amendments,
	}, nil
}

func upper(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToUpper(strings.TrimSpace(*s))
	return &v
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

