package adapters

import (
	"strings"

	datasets "shipping-analytics/internal/features/datasets/domain"
	"shipping-analytics/internal/features/enrich/domain"
)

// SMSAProfile covers SMSA Express operations files. Statuses there are
// free-form phrases, so matching is substring-based rather than exact.
type SMSAProfile struct {
	statusSets domain.StatusSets
}

// NewSMSAProfile creates the SMSA courier profile.
func NewSMSAProfile() *SMSAProfile {
	return &SMSAProfile{
		statusSets: domain.StatusSets{
			Mode: domain.MatchContains,
			Delivered: []string{
				"DELIVERED", "RECEIVED", "COMPLETE", "تم التسليم", "مستلم", "استلم",
			},
			InTransit: []string{
				"OUT FOR DELIVERY", "TRANSIT", "PENDING", "PROCESS", "HOLD",
				"ATTEMPT", "SCHEDULED", "ARRIVED", "SHIPPED", "CREATED",
				"قيد التوصيل", "جاري",
			},
			Returned: []string{
				"RETURN", "REJECT", "REFUSED", "FAIL", "CANCEL",
				"مرتجع", "رجع", "ارجاع",
			},
			Lost: []string{"LOST", "مفقود"},
		},
	}
}

// Company returns the courier identifier.
func (p *SMSAProfile) Company() string { return "smsa" }

// ColumnKeywords returns header keywords per canonical field.
func (p *SMSAProfile) ColumnKeywords() map[datasets.Field][]string {
	return map[datasets.Field][]string{
		datasets.FieldTrackingID:         {"awb", "reference", "tracking"},
		datasets.FieldCarrierStatus:      {"status"},
		datasets.FieldDestinationCity:    {"consignee city", "city"},
		datasets.FieldDestinationCountry: {"country"},
		datasets.FieldCreationDate:       {"creation date"},
		datasets.FieldPickupDate:         {"pickup date"},
		datasets.FieldFirstAttemptDate:   {"first attempt"},
		datasets.FieldDeliveryDate:       {"delivery date"},
		datasets.FieldTotalAttempts:      {"attempts"},
		datasets.FieldWeight:             {"weight"},
		datasets.FieldCODAmount:          {"cod"},
		datasets.FieldRegion:             {"region"},
	}
}

// PositionalOrder returns the expected column order of an SMSA file.
func (p *SMSAProfile) PositionalOrder() []datasets.Field {
	return []datasets.Field{
		datasets.FieldTrackingID, datasets.FieldDestinationCity,
		datasets.FieldCarrierStatus, datasets.FieldCreationDate,
		datasets.FieldPickupDate, datasets.FieldFirstAttemptDate,
		datasets.FieldDeliveryDate, datasets.FieldCODAmount,
		datasets.FieldWeight, datasets.FieldRegion,
	}
}

// ClassifyStatus maps a normalized status onto a delivery outcome.
func (p *SMSAProfile) ClassifyStatus(statusUpper string) domain.DeliveryStatus {
	return p.statusSets.Classify(statusUpper)
}

// Excluded flags picked-up-only records: SMSA reports warehouse pickups in
// the same feed, and those must not dilute delivery rates.
func (p *SMSAProfile) Excluded(statusUpper, reference string) bool {
	return strings.Contains(statusUpper, "PICKED UP") ||
		strings.Contains(statusUpper, "PICKUP") ||
		strings.Contains(statusUpper, "التقاط")
}

// FDSRule returns the canonical same-day rule; SMSA carries attempt dates.
func (p *SMSAProfile) FDSRule() domain.FDSRule { return domain.FDSRuleSameDay }

// DayFirst reports the date convention of SMSA files (dd/mm/yyyy).
func (p *SMSAProfile) DayFirst() bool { return true }
