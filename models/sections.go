package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Section is embedded by every table owned by an organization.
type Section struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
}

func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *Section) SetOrganizationID(id uuid.UUID) { s.OrganizationID = id }

// Ordered is embedded by collections whose order follows the submitted list.
type Ordered struct {
	OrderIndex int `gorm:"not null;default:0" json:"order_index"`
}

func (o *Ordered) SetOrderIndex(i int) { o.OrderIndex = i }

// ---- Step 2 ----

type RegisteredOffice struct {
	Section
	SameAsLabAddress         bool    `gorm:"not null;default:false" json:"same_as_lab_address"`
	Address                  *string `gorm:"type:text" json:"address"`
	Country                  string  `gorm:"size:100;default:'India'" json:"country"`
	State                    *string `gorm:"size:100" json:"state"`
	District                 *string `gorm:"size:100" json:"district"`
	City                     *string `gorm:"size:100" json:"city"`
	PinCode                  *string `gorm:"size:10" json:"pin_code"`
	Mobile                   *string `gorm:"size:20" json:"mobile"`
	Telephone                *string `gorm:"size:20" json:"telephone"`
	Fax                      *string `gorm:"size:20" json:"fax"`
	TopManagementDocumentURL *string `gorm:"size:500" json:"top_management_document_url"`
}

func (RegisteredOffice) TableName() string { return "registered_offices" }

type TopManagement struct {
	Section
	Name        string  `gorm:"size:255;not null" json:"name"`
	Designation string  `gorm:"size:255;not null" json:"designation"`
	Mobile      string  `gorm:"size:20;not null" json:"mobile"`
	Telephone   *string `gorm:"size:20" json:"telephone"`
	Fax         *string `gorm:"size:20" json:"fax"`
	Ordered
}

func (TopManagement) TableName() string { return "top_management" }

// ---- Step 3 ----

type ParentOrganization struct {
	Section
	SameAsLaboratory bool    `gorm:"not null;default:false" json:"same_as_laboratory"`
	Name             *string `gorm:"size:255" json:"name"`
	Address          *string `gorm:"type:text" json:"address"`
	Country          string  `gorm:"size:100;default:'India'" json:"country"`
	State            *string `gorm:"size:100" json:"state"`
	District         *string `gorm:"size:100" json:"district"`
	City             *string `gorm:"size:100" json:"city"`
	PinCode          *string `gorm:"size:10" json:"pin_code"`
}

func (ParentOrganization) TableName() string { return "parent_organizations" }

type BankDetails struct {
	Section
	AccountHolderName  *string `gorm:"size:255" json:"account_holder_name"`
	AccountNumber      *string `gorm:"size:50" json:"account_number"`
	IFSCCode           *string `gorm:"column:ifsc_code;size:20" json:"ifsc_code"`
	BranchName         *string `gorm:"size:255" json:"branch_name"`
	GSTNumber          *string `gorm:"column:gst_number;size:20" json:"gst_number"`
	CancelledChequeURL *string `gorm:"size:500" json:"cancelled_cheque_url"`
}

func (BankDetails) TableName() string { return "bank_details" }

// ---- Step 4 ----

type WorkingSchedule struct {
	Section
	WorkingDays               pq.StringArray `gorm:"type:text[]" json:"working_days"`
	OrganizationType          *string        `gorm:"size:100" json:"organization_type"`
	OrganizationTypeOther     *string        `gorm:"size:255" json:"organization_type_other"`
	ProofOfLegalIdentity      *string        `gorm:"size:100" json:"proof_of_legal_identity"`
	ProofOfLegalIdentityOther *string        `gorm:"size:255" json:"proof_of_legal_identity_other"`
	LegalIdentityDocumentID   *string        `gorm:"size:100" json:"legal_identity_document_id"`
	LegalIdentityDocumentURL  *string        `gorm:"size:500" json:"legal_identity_document_url"`
}

func (WorkingSchedule) TableName() string { return "working_schedules" }

type ShiftTiming struct {
	Section
	ShiftFrom TimeOfDay `gorm:"not null" json:"shift_from"`
	ShiftTo   TimeOfDay `gorm:"not null" json:"shift_to"`
	Ordered
}

func (ShiftTiming) TableName() string { return "shift_timings" }

// ---- Step 5 ----

type ComplianceDocument struct {
	Section
	DocumentType      string  `gorm:"size:100;not null" json:"document_type"`
	DocumentTypeOther *string `gorm:"size:255" json:"document_type_other"`
	DocumentID        *string `gorm:"size:100" json:"document_id"`
	FileURL           *string `gorm:"size:500" json:"file_url"`
}

func (ComplianceDocument) TableName() string { return "compliance_documents" }

// ---- Step 6 ----

type PolicyDocuments struct {
	Section
	ImpartialityDocumentURL         *string `gorm:"size:500" json:"impartiality_document_url"`
	TermsConditionsDocumentURL      *string `gorm:"size:500" json:"terms_conditions_document_url"`
	CodeOfEthicsDocumentURL         *string `gorm:"size:500" json:"code_of_ethics_document_url"`
	TestingChargesPolicyDocumentURL *string `gorm:"size:500" json:"testing_charges_policy_document_url"`
}

func (PolicyDocuments) TableName() string { return "policy_documents" }

// ---- Step 7 ----

type InfrastructureDetails struct {
	Section
	AdequacySanctionedLoad         *string `gorm:"size:255" json:"adequacy_sanctioned_load"`
	AvailabilityUninterruptedPower bool    `gorm:"not null;default:false" json:"availability_uninterrupted_power"`
	StabilityOfSupply              bool    `gorm:"not null;default:false" json:"stability_of_supply"`
	WaterSource                    *string `gorm:"size:255" json:"water_source"`
}

func (InfrastructureDetails) TableName() string { return "infrastructure_details" }

// ---- Step 8 ----

type AccreditationDocument struct {
	Section
	CertificationType      string  `gorm:"size:100;not null" json:"certification_type"`
	CertificationTypeOther *string `gorm:"size:255" json:"certification_type_other"`
	CertificateNo          *string `gorm:"size:100" json:"certificate_no"`
	CertificateFileURL     *string `gorm:"size:500" json:"certificate_file_url"`
	ScopeFileURL           *string `gorm:"size:500" json:"scope_file_url"`
}

func (AccreditationDocument) TableName() string { return "accreditation_documents" }

type OtherLabDetails struct {
	Section
	OtherDetails            *string  `gorm:"type:text" json:"other_details"`
	OtherDetailsDocumentURL *string  `gorm:"size:500" json:"other_details_document_url"`
	LayoutLabPremisesURL    *string  `gorm:"size:500" json:"layout_lab_premises_url"`
	OrganizationChartURL    *string  `gorm:"size:500" json:"organization_chart_url"`
	GPSLatitude             *float64 `gorm:"column:gps_latitude" json:"gps_latitude"`
	GPSLongitude            *float64 `gorm:"column:gps_longitude" json:"gps_longitude"`
}

func (OtherLabDetails) TableName() string { return "other_lab_details" }

// ---- Step 9 ----

type QualityManual struct {
	Section
	Title       *string `gorm:"size:255" json:"title"`
	IssueNumber *string `gorm:"size:50" json:"issue_number"`
	IssueDate   *Date   `json:"issue_date"`
	Amendments  *string `gorm:"type:text" json:"amendments"`
	DocumentURL *string `gorm:"size:500" json:"document_url"`
}

func (QualityManual) TableName() string { return "quality_manuals" }

// Document is the shared shape of controlled quality documents.
type Document struct {
	Title       *string `gorm:"size:255" json:"title"`
	Number      *string `gorm:"size:100" json:"number"`
	IssueNumber *string `gorm:"size:50" json:"issue_number"`
	IssueDate   *Date   `json:"issue_date"`
	Amendments  *string `gorm:"type:text" json:"amendments"`
}

type SOP struct {
	Section
	Document
	Ordered
}

func (SOP) TableName() string { return "sops" }

// ---- Step 10 ----

type QualityFormat struct {
	Section
	Document
	Ordered
}

func (QualityFormat) TableName() string { return "quality_formats" }

type QualityProcedure struct {
	Section
	Document
	FileURL *string `gorm:"size:500" json:"file_url"`
	Ordered
}

func (QualityProcedure) TableName() string { return "quality_procedures" }
