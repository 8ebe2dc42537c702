package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shipping-analytics/internal/features/enrich/domain"
)

// TestAramexProfile_ClassifyStatus verifies the exact-match outcome sets.
func TestAramexProfile_ClassifyStatus(t *testing.T) {
	p := NewAramexProfile()

	assert.Equal(t, domain.StatusDelivered, p.ClassifyStatus("DELIVERED"))
	assert.Equal(t, domain.StatusDelivered, p.ClassifyStatus("SHIPMENT DELIVERED OK"))
	assert.Equal(t, domain.StatusInTransit, p.ClassifyStatus("OUT FOR DELIVERY"))
	assert.Equal(t, domain.StatusInTransit, p.ClassifyStatus("CUSTOMER NOT AVAILABLE"))
	assert.Equal(t, domain.StatusReturned, p.ClassifyStatus("RETURN TO SHIPPER"))
	assert.Equal(t, domain.StatusLost, p.ClassifyStatus("LOST"))
	// Exact mode: unknown phrasing falls through to Other.
	assert.Equal(t, domain.StatusOther, p.ClassifyStatus("DELIVERED TO NEIGHBOR"))
}

// TestAramexProfile_Excluded verifies the return-by-reference marker.
func TestAramexProfile_Excluded(t *testing.T) {
	p := NewAramexProfile()

	assert.True(t, p.Excluded("DELIVERED", "ORD-123_RETURN"))
	assert.True(t, p.Excluded("DELIVERED", "ord-123_return_x"))
	assert.False(t, p.Excluded("DELIVERED", "ORD-123"))
	assert.False(t, p.Excluded("PICKED UP", "ORD-123"))
}

// TestSMSAProfile_ClassifyStatus verifies the substring outcome sets,
// Arabic statuses included.
func TestSMSAProfile_ClassifyStatus(t *testing.T) {
	p := NewSMSAProfile()

	assert.Equal(t, domain.StatusDelivered, p.ClassifyStatus("SHIPMENT DELIVERED TO CONSIGNEE"))
	assert.Equal(t, domain.StatusDelivered, p.ClassifyStatus("تم التسليم"))
	assert.Equal(t, domain.StatusInTransit, p.ClassifyStatus("OUT FOR DELIVERY - RIYADH"))
	assert.Equal(t, domain.StatusReturned, p.ClassifyStatus("RETURNED TO SHIPPER"))
	assert.Equal(t, domain.StatusReturned, p.ClassifyStatus("DELIVERY FAILED"))
	assert.Equal(t, domain.StatusOther, p.ClassifyStatus("SOMETHING UNKNOWN"))
}

// TestSMSAProfile_Excluded verifies picked-up-only records are excluded.
func TestSMSAProfile_Excluded(t *testing.T) {
	p := NewSMSAProfile()

	assert.True(t, p.Excluded("PICKED UP FROM WAREHOUSE", ""))
	assert.True(t, p.Excluded("PICKUP COMPLETE", ""))
	assert.False(t, p.Excluded("DELIVERED", ""))
}

// TestNiceOneProfile_ClassifyStatus verifies delivery requires both the
// Delivered and Confirmed markers.
func TestNiceOneProfile_ClassifyStatus(t *testing.T) {
	p := NewNiceOneProfile()

	assert.Equal(t, domain.StatusDelivered, p.ClassifyStatus("DELIVERED CONFIRMED"))
	assert.Equal(t, domain.StatusDelivered, p.ClassifyStatus("CONFIRMED AND DELIVERED"))
	// Driver-reported only: still moving.
	assert.NotEqual(t, domain.StatusDelivered, p.ClassifyStatus("DELIVERED"))
	assert.Equal(t, domain.StatusReturned, p.ClassifyStatus("FAILED DELIVERY"))
	assert.Equal(t, domain.StatusInTransit, p.ClassifyStatus("OUT FOR DELIVERY"))
}

// TestProfiles_FDSRules verifies each feed's first-attempt rule.
func TestProfiles_FDSRules(t *testing.T) {
	assert.Equal(t, domain.FDSRuleSameDay, NewAramexProfile().FDSRule())
	assert.Equal(t, domain.FDSRuleSameDay, NewSMSAProfile().FDSRule())
	assert.Equal(t, domain.FDSRuleSingleAttempt, NewNiceOneProfile().FDSRule())
}

// TestProfiles_Companies verifies the registered identifiers.
func TestProfiles_Companies(t *testing.T) {
	assert.Equal(t, "aramex", NewAramexProfile().Company())
	assert.Equal(t, "smsa", NewSMSAProfile().Company())
	assert.Equal(t, "niceone", NewNiceOneProfile().Company())
}
