package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNormalizeCityKey verifies case, whitespace and width folding.
func TestNormalizeCityKey(t *testing.T) {
	assert.Equal(t, "riyadh", NormalizeCityKey("  Riyadh "))
	assert.Equal(t, "jeddah", NormalizeCityKey("JEDDAH"))
	// NFKC folds full-width Latin into ASCII.
	assert.Equal(t, "abc", NormalizeCityKey("ＡＢＣ"))
	assert.Equal(t, NormalizeCityKey("الرياض"), NormalizeCityKey(" الرياض "))
}

// TestBuildSLATable_KeywordColumns verifies city and days columns are found
// by header keywords.
func TestBuildSLATable_KeywordColumns(t *testing.T) {
	table := &RawTable{
		Headers: []string{"Destination City", "Target Days", "Notes"},
		Rows: [][]string{
			{"Riyadh", "2", ""},
			{"Jeddah", "3", ""},
		},
	}

	sla := BuildSLATable(table)

	require.NotNil(t, sla)
	assert.Equal(t, 2, sla.Len())

	days, ok := sla.TargetFor("riyadh")
	require.True(t, ok)
	assert.Equal(t, 2, days)
}

// TestBuildSLATable_FirstTwoColumnsFallback verifies the fallback when no
// header matches.
func TestBuildSLATable_FirstTwoColumnsFallback(t *testing.T) {
	table := &RawTable{
		Headers: []string{"A", "B"},
		Rows: [][]string{
			{"Dammam", "4"},
		},
	}

	sla := BuildSLATable(table)

	require.NotNil(t, sla)
	days, ok := sla.TargetFor("Dammam")
	require.True(t, ok)
	assert.Equal(t, 4, days)
}

// TestBuildSLATable_CleansInvalidRows verifies blank cities, non-numeric and
// non-positive targets are dropped, and duplicates resolve last-wins.
func TestBuildSLATable_CleansInvalidRows(t *testing.T) {
	table := &RawTable{
		Headers: []string{"City", "Days"},
		Rows: [][]string{
			{"", "2"},
			{"Riyadh", "abc"},
			{"Riyadh", "0"},
			{"Riyadh", "-1"},
			{"Riyadh", "2"},
			{"Riyadh", "3.0"},
		},
	}

	sla := BuildSLATable(table)

	require.NotNil(t, sla)
	assert.Equal(t, 1, sla.Len())
	days, _ := sla.TargetFor("Riyadh")
	assert.Equal(t, 3, days)
}

// TestBuildSLATable_NoValidRows verifies nil is returned when nothing
// survives cleaning.
func TestBuildSLATable_NoValidRows(t *testing.T) {
	table := &RawTable{
		Headers: []string{"City", "Days"},
		Rows:    [][]string{{"Riyadh", "zero"}},
	}

	assert.Nil(t, BuildSLATable(table))
}

// TestSLATable_TargetFor_NilTable verifies nil-safe lookups.
func TestSLATable_TargetFor_NilTable(t *testing.T) {
	var sla *SLATable
	_, ok := sla.TargetFor("Riyadh")
	assert.False(t, ok)
	assert.Equal(t, 0, sla.Len())
	assert.Equal(t, "none", sla.Fingerprint())
}

// TestSLATable_Fingerprint_OrderIndependent verifies map iteration order
// does not change the hash.
func TestSLATable_Fingerprint_OrderIndependent(t *testing.T) {
	a := &SLATable{Targets: map[string]int{"riyadh": 2, "jeddah": 3}}
	b := &SLATable{Targets: map[string]int{"jeddah": 3, "riyadh": 2}}
	c := &SLATable{Targets: map[string]int{"jeddah": 3, "riyadh": 4}}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
