package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizationStatus is the registration lifecycle state.
type OrganizationStatus string

const (
	StatusDraft     OrganizationStatus = "draft"
	StatusSubmitted OrganizationStatus = "submitted"
	StatusApproved  OrganizationStatus = "approved"
	StatusRejected  OrganizationStatus = "rejected"
)

const DefaultCountry = "India"

// Organization is the root of a laboratory registration. Every section of
// the multi-step form hangs off it and is removed with it.
type Organization struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// Step 1: laboratory details
	LabName                string  `gorm:"size:255;not null;index" json:"lab_name"`
	LabAddress             string  `gorm:"type:text;not null" json:"lab_address"`
	LabCountry             string  `gorm:"size:100;default:'India'" json:"lab_country"`
	LabState               string  `gorm:"size:100;not null" json:"lab_state"`
	LabDistrict            string  `gorm:"size:100;not null" json:"lab_district"`
	LabCity                string  `gorm:"size:100;not null" json:"lab_city"`
	LabPinCode             string  `gorm:"size:10;not null" json:"lab_pin_code"`
	LabLogoURL             *string `gorm:"size:500" json:"lab_logo_url"`
	LabProofOfAddress      *string `gorm:"size:100" json:"lab_proof_of_address"`
	LabProofOfAddressOther *string `gorm:"size:255" json:"lab_proof_of_address_other"`
	LabDocumentID          *string `gorm:"size:100" json:"lab_document_id"`
	LabAddressProofURL     *string `gorm:"size:500" json:"lab_address_proof_url"`

	Status    OrganizationStatus `gorm:"size:20;not null;default:'draft';index" json:"status"`
	CreatedAt time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time           `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	RegisteredOffice       *RegisteredOffice       `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"registered_office"`
	TopManagement          []TopManagement         `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"top_management"`
	ParentOrganization     *ParentOrganization     `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"parent_organization"`
	BankDetails            *BankDetails            `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"bank_details"`
	WorkingSchedule        *WorkingSchedule        `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"working_schedule"`
	ShiftTimings           []ShiftTiming           `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"shift_timings"`
	ComplianceDocuments    []ComplianceDocument    `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"compliance_documents"`
	PolicyDocuments        *PolicyDocuments        `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"policy_documents"`
	Infrastructure         *InfrastructureDetails  `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"infrastructure"`
	AccreditationDocuments []AccreditationDocument `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"accreditation_documents"`
	OtherDetails           *OtherLabDetails        `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"other_details"`
	QualityManual          *QualityManual          `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"quality_manual"`
	SOPs                   []SOP                   `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"sops"`
	QualityFormats         []QualityFormat         `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"quality_formats"`
	QualityProcedures      []QualityProcedure      `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"quality_procedures"`
}

func (Organization) TableName() string { return "organizations" }

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = StatusDraft
	}
	if o.LabCountry == "" {
		o.LabCountry = DefaultCountry
	}
	return nil
}

// All returns every registration table in dependency order, parents first.
func All() []interface{} {
	return []interface{}{
		&Organization{},
		&RegisteredOffice{},
		&TopManagement{},
		&ParentOrganization{},
		&BankDetails{},
		&WorkingSchedule{},
		&ShiftTiming{},
		&ComplianceDocument{},
		&PolicyDocuments{},
		&InfrastructureDetails{},
		&AccreditationDocument{},
		&OtherLabDetails{},
		&QualityManual{},
		&SOP{},
		&QualityFormat{},
		&QualityProcedure{},
	}
}

// Children returns the tables owned by an organization in the order they
// must be cleared, most dependent first.
func Children() []interface{} {
	all := All()
	out := make([]interface{}, 0, len(all)-1)
	for i := len(all) - 1; i > 0; i-- {
		out = append(out, all[i])
	}
	return out
}
