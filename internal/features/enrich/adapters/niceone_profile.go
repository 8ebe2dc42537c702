package adapters

import (
	"strings"

	datasets "shipping-analytics/internal/features/datasets/domain"
	"shipping-analytics/internal/features/enrich/domain"
)

// NiceOneProfile covers NiceOne operations files. The feed has no attempt
// date columns, so first-attempt success falls back to the single-attempt
// proxy, and "delivered" requires both the Delivered and Confirmed markers.
type NiceOneProfile struct {
	statusSets domain.StatusSets
}

// NewNiceOneProfile creates the NiceOne courier profile.
func NewNiceOneProfile() *NiceOneProfile {
	return &NiceOneProfile{
		statusSets: domain.StatusSets{
			Mode: domain.MatchContains,
			InTransit: []string{
				"IN PROGRESS", "OUT FOR DELIVERY", "ASSIGNED", "ACCEPTED", "PICKED",
			},
			Returned: []string{
				"FAILED", "RETURN", "REJECTED", "CANCEL",
			},
			Lost: []string{"LOST"},
		},
	}
}

// Company returns the courier identifier.
func (p *NiceOneProfile) Company() string { return "niceone" }

// ColumnKeywords returns header keywords per canonical field.
func (p *NiceOneProfile) ColumnKeywords() map[datasets.Field][]string {
	return map[datasets.Field][]string{
		datasets.FieldTrackingID:      {"رقم التتبع", "tracking"},
		datasets.FieldReference:       {"رقم الطلب", "order"},
		datasets.FieldCarrierStatus:   {"حالة الطلب", "status"},
		datasets.FieldDestinationCity: {"موقع العميل", "city", "location"},
		datasets.FieldCODAmount:       {"المطلوب تحصيله", "cod", "collect"},
		datasets.FieldPickupDate:      {"تاريخ استلام الشحنة", "receive"},
		datasets.FieldDeliveryDate:    {"تاريخ الشحن", "ship date", "delivery"},
		datasets.FieldTotalAttempts:   {"محاول", "attempt"},
		datasets.FieldRegion:          {"اسم المندوب", "driver"},
	}
}

// PositionalOrder returns the expected column order of a NiceOne file.
func (p *NiceOneProfile) PositionalOrder() []datasets.Field {
	return []datasets.Field{
		datasets.FieldReference, datasets.FieldTrackingID,
		datasets.FieldDestinationCity, datasets.FieldCODAmount,
		datasets.FieldCarrierStatus, datasets.FieldPickupDate,
		datasets.FieldDeliveryDate,
	}
}

// ClassifyStatus maps a normalized status onto a delivery outcome.
// Delivery needs both markers: "Delivered" alone means the driver reported
// it, "Confirmed" means the customer did too.
func (p *NiceOneProfile) ClassifyStatus(statusUpper string) domain.DeliveryStatus {
	if strings.Contains(statusUpper, "DELIVERED") && strings.Contains(statusUpper, "CONFIRMED") {
		return domain.StatusDelivered
	}
	return p.statusSets.Classify(statusUpper)
}

// Excluded reports no exclusions: NiceOne feeds carry deliveries only.
func (p *NiceOneProfile) Excluded(statusUpper, reference string) bool {
	return false
}

// FDSRule returns the single-attempt proxy; the feed has no attempt dates.
func (p *NiceOneProfile) FDSRule() domain.FDSRule { return domain.FDSRuleSingleAttempt }

// DayFirst reports the date convention of NiceOne files (dd/mm/yyyy).
func (p *NiceOneProfile) DayFirst() bool { return true }
