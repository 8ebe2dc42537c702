package domain

import (
	"time"

	enrich "shipping-analytics/internal/features/enrich/domain"
)

// UploadMeta records what was uploaded for a company and when.
type UploadMeta struct {
	Filename    string    `json:"filename"`
	UploadedAt  time.Time `json:"uploaded_at"`
	RowCount    int       `json:"row_count"`
	Fingerprint string    `json:"fingerprint"`
}

// CompanyData is everything a session holds for one courier: the enriched
// dataset, the SLA table fingerprint and the upload audit trail.
type CompanyData struct {
	Dataset *enrich.Dataset `json:"dataset"`

	// SLATargets is persisted separately from the dataset because the
	// dataset's SLA pointer is not serialized.
	SLATargets map[string]int `json:"sla_targets,omitempty"`

	// Branches maps tracking references to branch names so assignments
	// survive a shipment re-upload.
	Branches map[string]string `json:"branches,omitempty"`

	ShipmentUpload *UploadMeta `json:"shipment_upload,omitempty"`
	SLAUpload      *UploadMeta `json:"sla_upload,omitempty"`
}

// CompanyStatus is the lightweight readiness view of one courier's data,
// used by the company listing endpoint.
type CompanyStatus struct {
	Company      string      `json:"company"`
	HasShipments bool        `json:"has_shipments"`
	HasSLA       bool        `json:"has_sla"`
	RecordCount  int         `json:"record_count"`
	Shipments    *UploadMeta `json:"shipments,omitempty"`
	SLA          *UploadMeta `json:"sla,omitempty"`
}
