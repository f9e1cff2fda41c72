package model

import "time"

// SummaryStats holds the top-level aggregate across expenses in a range.
type SummaryStats struct {
	TotalExpenses int
	TotalSpent    float64
	ActiveDays    int
	LargestAmount float64
	AveragePerDay float64 // per active day
	AverageAmount float64
}

// DailyStats holds spending for a single calendar day.
type DailyStats struct {
	Date     time.Time
	Expenses int
	Amount   float64
}

// CategoryStats holds spending for a single category.
type CategoryStats struct {
	Category     Category
	Expenses     int
	Amount       float64
	SharePercent float64
}
