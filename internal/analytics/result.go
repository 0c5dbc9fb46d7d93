// Package analytics turns a normalized donation ledger into the report
// numbers: lifetime totals, per-period aggregates with growth and retention,
// and an RFM donor segmentation. Every computation here is a pure function
// of the ledger; nothing logs, retries or touches I/O.
package analytics

import "doacoes/internal/core"

// OverallMetrics are lifetime aggregates over the full ledger.
type OverallMetrics struct {
	TotalRaised    core.Money `json:"total_raised"`
	TotalRefunded  core.Money `json:"total_refunded"`
	UniqueDonors   int        `json:"unique_donors"`
	TotalDonations int        `json:"total_donations"`
	AvgTicket      float64    `json:"avg_ticket"`
	LTV            float64    `json:"ltv"`
}

// MonthlyBucket aggregates one observed (year, month) period.
// RetentionRate and MovingAvg are nil when mathematically undefined.
type MonthlyBucket struct {
	Year          int        `json:"year"`
	Month         int        `json:"month"`
	Total         core.Money `json:"total"`
	UniqueDonors  int        `json:"unique_donors"`
	AvgTicket     float64    `json:"avg_ticket"`
	NewDonors     int        `json:"new_donors"`
	ChurnedDonors int        `json:"churned_donors"`
	RetentionRate *float64   `json:"retention_rate,omitempty"`
	MovingAvg     *float64   `json:"moving_avg,omitempty"`
}

// AnnualBucket aggregates one observed year.
// GrowthRate is nil for the first bucket and whenever the prior year's
// total is zero; it is never coerced to a number in those cases.
type AnnualBucket struct {
	Year          int        `json:"year"`
	Total         core.Money `json:"total"`
	UniqueDonors  int        `json:"unique_donors"`
	AvgTicket     float64    `json:"avg_ticket"`
	NewDonors     int        `json:"new_donors"`
	ChurnedDonors int        `json:"churned_donors"`
	RetentionRate *float64   `json:"retention_rate,omitempty"`
	GrowthRate    *float64   `json:"growth_rate,omitempty"`
}

// SegmentSummary describes the donors assigned to one RFM segment.
type SegmentSummary struct {
	Segment      string  `json:"segment"`
	Count        int     `json:"count"`
	AvgRecency   float64 `json:"avg_recency"`
	AvgFrequency float64 `json:"avg_frequency"`
	AvgMonetary  float64 `json:"avg_monetary"`
}

// TopDonor is one entry of the largest-lifetime-total ranking.
type TopDonor struct {
	DonorID   string     `json:"donor_id"`
	Total     core.Money `json:"total"`
	Donations int        `json:"donations"`
}

// RecentDonation is one entry of the most-recent-donations list.
type RecentDonation struct {
	DonorID string     `json:"donor_id"`
	Amount  core.Money `json:"amount"`
	Date    core.Date  `json:"date"`
}

// Result is the aggregate output of one analytics run. Slices are always
// non-nil so an empty ledger serializes to empty arrays, not null.
type Result struct {
	Overall         OverallMetrics   `json:"overall_metrics"`
	Monthly         []MonthlyBucket  `json:"monthly_metrics"`
	Annual          []AnnualBucket   `json:"annual_metrics"`
	Segments        []SegmentSummary `json:"rfm_analysis"`
	TopDonors       []TopDonor       `json:"top_donors"`
	RecentDonations []RecentDonation `json:"recent_donations"`
}
