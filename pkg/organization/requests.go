package organization

// Request payloads for the registration steps. Pointer fields distinguish
// "not sent" (nil) from an explicit value so singleton sections are only
// patched with what the client supplied.

type CreateRequest struct {
	LabName     string `json:"lab_name" validate:"required,max=255"`
	LabAddress  string `json:"lab_address" validate:"required"`
	LabState    string `json:"lab_state" validate:"required,max=100"`
	LabDistrict string `json:"lab_district" validate:"required,max=100"`
	LabCity     string `json:"lab_city" validate:"required,max=100"`
	LabPinCode  string `json:"lab_pin_code" validate:"required,pincode"`
}

// Step 1
type LaboratoryDetailsRequest struct {
	LabName                string  `json:"lab_name" validate:"required,max=255"`
	LabAddress             string  `json:"lab_address" validate:"required"`
	LabCountry             *string `json:"lab_country" validate:"omitempty,max=100"`
	LabState               string  `json:"lab_state" validate:"required,max=100"`
	LabDistrict            string  `json:"lab_district" validate:"required,max=100"`
	LabCity                string  `json:"lab_city" validate:"required,max=100"`
	LabPinCode             string  `json:"lab_pin_code" validate:"required,pincode"`
	LabLogoURL             *string `json:"lab_logo_url" validate:"omitempty,max=500"`
	LabProofOfAddress      string  `json:"lab_proof_of_address" validate:"required,max=100"`
	LabProofOfAddressOther *string `json:"lab_proof_of_address_other" validate:"omitempty,max=255"`
	LabDocumentID          *string `json:"lab_document_id" validate:"omitempty,max=100"`
	LabAddressProofURL     *string `json:"lab_address_proof_url" validate:"omitempty,max=500"`
}

// Step 2
type TopManagementItem struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Designation string  `json:"designation" validate:"required,max=255"`
	Mobile      string  `json:"mobile" validate:"required,mobile"`
	Telephone   *string `json:"telephone" validate:"omitempty,max=20"`
	Fax         *string `json:"fax" validate:"omitempty,max=20"`
}

type RegisteredOfficeRequest struct {
	SameAsLabAddress         *bool               `json:"same_as_lab_address"`
	Address                  *string             `json:"address"`
	Country                  *string             `json:"country" validate:"omitempty,max=100"`
	State                    *string             `json:"state" validate:"omitempty,max=100"`
	District                 *string             `json:"district" validate:"omitempty,max=100"`
	City                     *string             `json:"city" validate:"omitempty,max=100"`
	PinCode                  *string             `json:"pin_code" validate:"omitempty,pincode"`
	Mobile                   *string             `json:"mobile" validate:"omitempty,mobile"`
	Telephone                *string             `json:"telephone" validate:"omitempty,max=20"`
	Fax                      *string             `json:"fax" validate:"omitempty,max=20"`
	TopManagementDocumentURL *string             `json:"top_management_document_url" validate:"omitempty,max=500"`
	TopManagement            []TopManagementItem `json:"top_management" validate:"dive"`
}

// Step 3
type ParentOrganizationRequest struct {
	SameAsLaboratory *bool   `json:"same_as_laboratory"`
	Name             *string `json:"name" validate:"omitempty,max=255"`
	Address          *string `json:"address"`
	Country          *string `json:"country" validate:"omitempty,max=100"`
	State            *string `json:"state" validate:"omitempty,max=100"`
	District         *string `json:"district" validate:"omitempty,max=100"`
	City             *string `json:"city" validate:"omitempty,max=100"`
	PinCode          *string `json:"pin_code" validate:"omitempty,pincode"`
}

type BankDetailsRequest struct {
	AccountHolderName  *string `json:"account_holder_name" validate:"omitempty,max=255"`
	AccountNumber      *string `json:"account_number" validate:"omitempty,max=50"`
	IFSCCode           *string `json:"ifsc_code" validate:"omitempty,ifsc"`
	BranchName         *string `json:"branch_name" validate:"omitempty,max=255"`
	GSTNumber          *string `json:"gst_number" validate:"omitempty,gst"`
	CancelledChequeURL *string `json:"cancelled_cheque_url" validate:"omitempty,max=500"`
}

// Step 4
type ShiftTimingItem struct {
	ShiftFrom string `json:"shift_from"`
	ShiftTo   string `json:"shift_to"`
}

type WorkingScheduleRequest struct {
	WorkingDays               []string          `json:"working_days"`
	OrganizationType          *string           `json:"organization_type" validate:"omitempty,max=100"`
	OrganizationTypeOther     *string           `json:"organization_type_other" validate:"omitempty,max=255"`
	ProofOfLegalIdentity      *string           `json:"proof_of_legal_identity" validate:"omitempty,max=100"`
	ProofOfLegalIdentityOther *string           `json:"proof_of_legal_identity_other" validate:"omitempty,max=255"`
	LegalIdentityDocumentID   *string           `json:"legal_identity_document_id" validate:"omitempty,max=100"`
	LegalIdentityDocumentURL  *string           `json:"legal_identity_document_url" validate:"omitempty,max=500"`
	ShiftTimings              []ShiftTimingItem `json:"shift_timings"`
}

// Step 5
type ComplianceDocumentItem struct {
	DocumentType      string  `json:"document_type" validate:"required,max=100"`
	DocumentTypeOther *string `json:"document_type_other" validate:"omitempty,max=255"`
	DocumentID        *string `json:"document_id" validate:"omitempty,max=100"`
	FileURL           *string `json:"file_url" validate:"omitempty,max=500"`
}

type ComplianceDocumentsRequest struct {
	ComplianceDocuments []ComplianceDocumentItem `json:"compliance_documents" validate:"dive"`
}

// Step 6
type PolicyDocumentsRequest struct {
	ImpartialityDocumentURL         *string `json:"impartiality_document_url" validate:"omitempty,max=500"`
	TermsConditionsDocumentURL      *string `json:"terms_conditions_document_url" validate:"omitempty,max=500"`
	CodeOfEthicsDocumentURL         *string `json:"code_of_ethics_document_url" validate:"omitempty,max=500"`
	TestingChargesPolicyDocumentURL *string `json:"testing_charges_policy_document_url" validate:"omitempty,max=500"`
}

// Step 7
type InfrastructureRequest struct {
	AdequacySanctionedLoad         *string `json:"adequacy_sanctioned_load" validate:"omitempty,max=255"`
	AvailabilityUninterruptedPower *bool   `json:"availability_uninterrupted_power"`
	StabilityOfSupply              *bool   `json:"stability_of_supply"`
	WaterSource                    *string `json:"water_source" validate:"omitempty,max=255"`
}

// Step 8
type AccreditationDocumentItem struct {
	CertificationType      string  `json:"certification_type" validate:"required,max=100"`
	CertificationTypeOther *string `json:"certification_type_other" validate:"omitempty,max=255"`
	CertificateNo          *string `json:"certificate_no" validate:"omitempty,max=100"`
	CertificateFileURL     *string `json:"certificate_file_url" validate:"omitempty,max=500"`
	ScopeFileURL           *string `json:"scope_file_url" validate:"omitempty,max=500"`
}

type AccreditationRequest struct {
	AccreditationDocuments []AccreditationDocumentItem `json:"accreditation_documents" validate:"dive"`
}

// GPS values arrive as text and are stored as floats.
type OtherDetailsRequest struct {
	OtherDetails            *string `json:"other_details"`
	OtherDetailsDocumentURL *string `json:"other_details_document_url" validate:"omitempty,max=500"`
	LayoutLabPremisesURL    *string `json:"layout_lab_premises_url" validate:"omitempty,max=500"`
	OrganizationChartURL    *string `json:"organization_chart_url" validate:"omitempty,max=500"`
	GPSLatitude             *string `json:"gps_latitude"`
	GPSLongitude            *string `json:"gps_longitude"`
}

// Step 9
type DocumentItem struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Number      *string `json:"number" validate:"omitempty,max=100"`
	IssueNumber *string `json:"issue_number" validate:"omitempty,max=50"`
	IssueDate   *string `json:"issue_date"`
	Amendments  *string `json:"amendments"`
}

type QualityManualRequest struct {
	Title       *string        `json:"title" validate:"omitempty,max=255"`
	IssueNumber *string        `json:"issue_number" validate:"omitempty,max=50"`
	IssueDate   *string        `json:"issue_date"`
	Amendments  *string        `json:"amendments"`
	DocumentURL *string        `json:"document_url" validate:"omitempty,max=500"`
	SOPs        []DocumentItem `json:"sops" validate:"dive"`
}

// Step 10
type QualityProcedureItem struct {
	DocumentItem
	FileURL *string `json:"file_url" validate:"omitempty,max=500"`
}

type QualityFormatsRequest struct {
	QualityFormats    []DocumentItem         `json:"quality_formats" validate:"dive"`
	QualityProcedures []QualityProcedureItem `json:"quality_procedures" validate:"dive"`
}
