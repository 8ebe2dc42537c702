package domain

import (
	"sort"
	"strings"
)

// Field identifies a canonical shipment column that the pipeline understands.
// Courier files use wildly different headers; the normalizer maps whatever is
// uploaded onto these names.
type Field string

const (
	FieldTrackingID         Field = "tracking_id"
	FieldCarrierStatus      Field = "carrier_status"
	FieldDestinationCity    Field = "destination_city"
	FieldDestinationCountry Field = "destination_country"
	FieldCreationDate       Field = "creation_date"
	FieldPickupDate         Field = "pickup_date"
	FieldFirstAttemptDate   Field = "first_attempt_date"
	FieldDeliveryDate       Field = "delivery_date"
	FieldTotalAttempts      Field = "total_attempts"
	FieldWeight             Field = "weight"
	FieldCODAmount          Field = "cod_amount"
	FieldReference          Field = "reference"
	FieldRegion             Field = "region"
)

// MappingConfidence indicates how a column mapping was produced.
type MappingConfidence string

const (
	// ConfidenceKeyword means headers were resolved by keyword matching.
	ConfidenceKeyword MappingConfidence = "keyword"
	// ConfidencePositional means no header matched and the mapping fell back
	// to column position. Best effort; callers should surface this.
	ConfidencePositional MappingConfidence = "positional"
)

// ColumnMapping binds canonical fields to column indexes of a RawTable.
type ColumnMapping struct {
	// Columns maps each resolved field to its column index.
	Columns map[Field]int `json:"columns"`
	// Unmapped lists raw headers that resolved to no canonical field.
	Unmapped []string `json:"unmapped"`
	// Confidence reports whether the mapping came from keywords or position.
	Confidence MappingConfidence `json:"confidence"`
}

// Has reports whether the field resolved to a column.
func (m ColumnMapping) Has(f Field) bool {
	_, ok := m.Columns[f]
	return ok
}

// Value returns the cell for the given field on the given row.
// The second return is false when the field never resolved.
func (m ColumnMapping) Value(t *RawTable, row int, f Field) (string, bool) {
	col, ok := m.Columns[f]
	if !ok {
		return "", false
	}
	return strings.TrimSpace(t.Cell(row, col)), true
}

// ResolveColumns maps raw headers onto canonical fields by keyword search.
//
// For each field, headers are scanned in column order and the first header
// whose lowercased text contains one of the field's keywords wins. A column
// already claimed by an earlier field is skipped. If not a single field
// resolves, the mapping falls back to positional order and is flagged
// accordingly. This never fails: unresolved columns simply stay unmapped and
// downstream stages treat their fields as absent.
func ResolveColumns(t *RawTable, keywords map[Field][]string, order []Field) ColumnMapping {
	mapping := ColumnMapping{
		Columns:    make(map[Field]int),
		Confidence: ConfidenceKeyword,
	}

	claimed := make(map[int]bool)

	resolve := func(field Field) {
		for col, header := range t.Headers {
			if claimed[col] {
				continue
			}
			if headerMatches(header, keywords[field]) {
				mapping.Columns[field] = col
				claimed[col] = true
				return
			}
		}
	}

	inOrder := make(map[Field]bool, len(order))
	for _, field := range order {
		inOrder[field] = true
		resolve(field)
	}

	// Keyword-only fields, resolved after the ordered ones so the ordered
	// fields get first claim. Sorted for deterministic column claims.
	rest := make([]Field, 0, len(keywords))
	for field := range keywords {
		if !inOrder[field] {
			rest = append(rest, field)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	for _, field := range rest {
		resolve(field)
	}

	if len(mapping.Columns) == 0 {
		// Positional fallback: Nth column -> Nth expected field.
		mapping.Confidence = ConfidencePositional
		for i, field := range order {
			if i >= len(t.Headers) {
				break
			}
			mapping.Columns[field] = i
			claimed[i] = true
		}
	}

	for col, header := range t.Headers {
		if !claimed[col] {
			mapping.Unmapped = append(mapping.Unmapped, header)
		}
	}

	return mapping
}

func headerMatches(header string, keywords []string) bool {
	lower := strings.ToLower(header)
	for _, keyword := range keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
