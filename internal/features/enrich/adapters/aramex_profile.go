package adapters

import (
	"strings"

	datasets "shipping-analytics/internal/features/datasets/domain"
	"shipping-analytics/internal/features/enrich/domain"
)

// AramexProfile covers Aramex export files. The feed uses a stable header
// vocabulary and a large but closed set of free-text statuses, so matching
// is exact membership on the normalized status.
type AramexProfile struct {
	statusSets domain.StatusSets
}

// NewAramexProfile creates the Aramex courier profile.
func NewAramexProfile() *AramexProfile {
	return &AramexProfile{
		statusSets: domain.StatusSets{
			Mode: domain.MatchExact,
			Delivered: []string{
				"DELIVERED", "SHIPMENT DELIVERED", "PAID", "SHIPMENT DELIVERED OK",
			},
			InTransit: []string{
				"EXCEPTION", "FORWARD TO DELIVERY WAREHOUSE", "HAL", "HELD AT CUSTOMS",
				"HELD FOR PICKUP", "IN PROGRESS", "OUT FOR DELIVERY", "SHIPMENT OUT FOR DELIVERY",
				"SORTING", "TRANSIT", "PENDING", "PROCESSING", "IN TRANSIT", "DEPOSITED",
				"EXPIRED", "RECEIVED-INBOUND TEAM", "LOCKED", "NOT-DELIVERED", "NOT-DEPOSITED",
				"R-WAITING", "R-DEPOSITED", "IN-TRANSIT-R", "PICKED UP", "AWAITING CONSIGNEE FOR COLLECTION",
				"NO RESPONSE", "INCORRECT PHONE", "AT DESTINATION FACILITY", "LEFT ORIGIN",
				"STILL AT ORIGIN", "AT HUB FACILITY", "INCORRECT ADDRESS", "SHIPMENT STORED AT WAREHOUSE",
				"SHIPMENT CONFISCATED", "CUSTOMER NOT AVAILABLE", "CUSTOMER CONTACT ATTEMPTS COMPLETED",
				"ATTEMPTED TO DELIVER", "REDIRECT UNDER A NEW SHIPMENT", "UNDER DELIVERY",
				"ADDRESS INFORMATION NEEDED, CONTACT DHL", "ARRIVED AT DELIVERY FACILITY",
				"AWAITING COLLECTION BY RECIPIENT AS REQUESTED", "CLEARANCE DELAY CD",
				"CLEARANCE PROCESSING COMPLETE", "CLOSED SHIPMENT", "CUSTOMS STATUS UPDATED",
				"DELIVERY ARRANGED, NO DETAILS EXPECTED", "DEPARTED FACILITY",
				"FORWARDED FOR DELIVERY – DETAILS EXPECTED", "PROCESSED AT DHL LOCATION",
				"RECIPIENT REFUSED DELIVERY", "SCHEDULED FOR DELIVERY AS AGREED",
				"SCHEDULED FOR DELIVERY ND", "SHIPMENT HELD – AVAILABLE UPON RECEIPT OF PAYMENT",
				"SHIPMENT ON HOLD", "WITH DELIVERY COURIER", "DATA RECEIVED", "ARRIVED", "SHIPPED",
				"ADDRESS ACQUIRED", "CUSTOMER NOT ANSWERING",
			},
			Returned: []string{
				"RETURN TO SHIPPER", "RETURNED", "REFUSED", "OTHER FINAL STATUS",
				"CANCELLED", "CANCELED", "NOTRECEIVED", "SHIPMENT REFUSED",
				"CUSTOMER HAS REFUSED THE SHIPMENT", "CUSTOMER REFUSED DELIVERY",
				"RETURNED TO SHIPPER SHIPMENT NOT DELIVERED",
				"UNABLE TO LOCATE", "TO BE RETURN TO SHIPPER", "SKELETON RECORD TERMINATED",
				"TERMINATED",
			},
			Lost: []string{"LOST", "PICKUP"},
		},
	}
}

// Company returns the courier identifier.
func (p *AramexProfile) Company() string { return "aramex" }

// ColumnKeywords returns header keywords per canonical field.
func (p *AramexProfile) ColumnKeywords() map[datasets.Field][]string {
	return map[datasets.Field][]string{
		datasets.FieldTrackingID:         {"awb", "tracking", "waybill"},
		datasets.FieldCarrierStatus:      {"status", "الحالة"},
		datasets.FieldDestinationCity:    {"destination city", "city", "مدينة"},
		datasets.FieldDestinationCountry: {"destination country", "country", "الدولة"},
		datasets.FieldPickupDate:         {"pickup date", "creation date", "الاستلام"},
		datasets.FieldFirstAttemptDate:   {"first out for delivery", "first attempt", "المحاولة الأولى"},
		datasets.FieldDeliveryDate:       {"delivery date", "تاريخ التسليم"},
		datasets.FieldTotalAttempts:      {"total delivery attempts", "attempts", "المحاولات"},
		datasets.FieldWeight:             {"weight", "الوزن"},
		datasets.FieldCODAmount:          {"cod", "المبلغ"},
		datasets.FieldReference:          {"consignee reference", "reference", "المرجع"},
	}
}

// PositionalOrder returns the expected column order of an Aramex export.
func (p *AramexProfile) PositionalOrder() []datasets.Field {
	return []datasets.Field{
		datasets.FieldTrackingID, datasets.FieldCarrierStatus,
		datasets.FieldDestinationCity, datasets.FieldDestinationCountry,
		datasets.FieldPickupDate, datasets.FieldFirstAttemptDate,
		datasets.FieldDeliveryDate, datasets.FieldTotalAttempts,
		datasets.FieldWeight, datasets.FieldCODAmount, datasets.FieldReference,
	}
}

// ClassifyStatus maps a normalized status onto a delivery outcome.
func (p *AramexProfile) ClassifyStatus(statusUpper string) domain.DeliveryStatus {
	return p.statusSets.Classify(statusUpper)
}

// Excluded flags returns-by-reference: merchants mark pre-agreed returns by
// suffixing the consignee reference with a return marker.
func (p *AramexProfile) Excluded(statusUpper, reference string) bool {
	return strings.Contains(strings.ToLower(reference), "_return")
}

// FDSRule returns the canonical same-day rule; Aramex carries attempt dates.
func (p *AramexProfile) FDSRule() domain.FDSRule { return domain.FDSRuleSameDay }

// DayFirst reports the date convention of Aramex exports.
func (p *AramexProfile) DayFirst() bool { return false }
