package domain

import (
	"math"
	"time"
)

// DonationGoal is the fundraising target the progress bar is measured against.
const DonationGoal = 2000.0

// Donation represents a single simulated contribution.
type Donation struct {
	ID       string    `json:"id"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
}

// DonationStats holds the aggregates shown above the donation list.
type DonationStats struct {
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
	Average  float64 `json:"average"`
	Progress int     `json:"progress"`
}

// SummarizeDonations recomputes every aggregate from the full list.
func SummarizeDonations(donations []Donation) DonationStats {
	var stats DonationStats
	for _, d := range donations {
		stats.Total += d.Amount
	}
	stats.Count = len(donations)
	if stats.Count > 0 {
		stats.Average = stats.Total / float64(stats.Count)
	}
	stats.Progress = int(math.Min(100, math.Round(stats.Total/DonationGoal*100)))
	return stats
}
