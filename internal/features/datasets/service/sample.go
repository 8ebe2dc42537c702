package service

import (
	"fmt"
	"math/rand"
	"time"

	"shipping-analytics/internal/features/datasets/domain"
)

// sample data pools, loosely modeled on real Saudi delivery traffic.
var (
	sampleCities   = []string{"Riyadh", "Jeddah", "Dammam", "Makkah", "Madinah"}
	sampleBranches = []string{"WH", "Aqiq", "Labn", "Naseem", "Tabuk"}
	sampleStatuses = []string{"DELIVERED", "OUT FOR DELIVERY", "RETURN TO SHIPPER", "CUSTOMER NOT AVAILABLE"}
)

// SampleTable builds a deterministic demo table so the dashboard works before
// any real file is uploaded. The seed is fixed: the same call always yields
// the same table (and therefore the same fingerprint).
func SampleTable(rows int, today time.Time) *domain.RawTable {
	rng := rand.New(rand.NewSource(42))

	table := &domain.RawTable{
		Headers: []string{
			"AWB", "Status", "Destination City", "Destination Country",
			"Pickup Date (Creation Date)", "First Out For Delivery",
			"Delivery Date", "Total Delivery Attempts", "Weight", "COD Value",
			"Consignee Reference 1",
		},
	}

	base := today.AddDate(0, 0, -30)

	for i := 0; i < rows; i++ {
		pickup := base.AddDate(0, 0, rng.Intn(30))
		attemptDelay := rng.Intn(4)
		firstAttempt := pickup.AddDate(0, 0, attemptDelay)

		status := sampleStatuses[rng.Intn(len(sampleStatuses))]
		if rng.Float64() < 0.7 {
			status = "DELIVERED"
		}

		delivery := ""
		attempts := 1 + rng.Intn(3)
		if status == "DELIVERED" {
			deliveryDate := firstAttempt
			if attempts > 1 {
				deliveryDate = firstAttempt.AddDate(0, 0, attempts-1)
			}
			delivery = deliveryDate.Format("2006-01-02")
		}

		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("27319%03d", i),
			status,
			sampleCities[rng.Intn(len(sampleCities))],
			"Saudi Arabia",
			pickup.Format("2006-01-02"),
			firstAttempt.Format("2006-01-02"),
			delivery,
			fmt.Sprintf("%d", attempts),
			fmt.Sprintf("%.2f", 0.5+rng.Float64()*9.5),
			fmt.Sprintf("%.2f", 50+rng.Float64()*750),
			fmt.Sprintf("REF-%06d", 640000+i),
		})
	}

	return table
}

// SampleBranchAssignments pairs sample tracking ids with branches, for demo
// sessions that want the branch breakdown populated.
func SampleBranchAssignments(table *domain.RawTable, today time.Time) map[string]BranchAssignment {
	rng := rand.New(rand.NewSource(7))
	assignments := make(map[string]BranchAssignment, len(table.Rows))
	for row := range table.Rows {
		ref := table.Cell(row, 0)
		assignments[ref] = BranchAssignment{
			Branch: sampleBranches[rng.Intn(len(sampleBranches))],
			Date:   today.AddDate(0, 0, -rng.Intn(10)),
		}
	}
	return assignments
}
