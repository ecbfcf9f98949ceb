// Package metrics derives dashboard KPIs from a campaign snapshot.
package metrics

import (
	"fmt"
	"math"

	"github.com/autoneura/console/internal/api"
)

// KPIs are the aggregate numbers shown at the top of the dashboard.
type KPIs struct {
	Prospects int
	Leads     int
	// Rate is leads/prospects as a percentage, rounded to one decimal.
	// Zero when there are no prospects; that is a defined value, not an error.
	Rate float64
}

// Aggregate computes KPIs over a snapshot in a single pass. Summation is
// commutative, so the result is independent of snapshot order.
func Aggregate(campaigns []api.CampaignSummary) KPIs {
	var k KPIs
	for _, c := range campaigns {
		k.Prospects += c.Prospects
		k.Leads += c.Leads
	}
	if k.Prospects > 0 {
		k.Rate = math.Round(float64(k.Leads)/float64(k.Prospects)*1000) / 10
	}
	return k
}

// FormatRate renders the conversion rate the way the dashboard displays it.
func (k KPIs) FormatRate() string {
	return fmt.Sprintf("%.1f%%", k.Rate)
}
