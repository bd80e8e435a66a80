package domain

import "time"

// BookingStats aggregate totals over all bookings
type BookingStats struct {
	TotalBookings    int64
	TotalRevenue     float64 // sum of totalPayments
	TotalOutstanding float64 // sum of remaining
}

// ReportPeriod optional payment date range
type ReportPeriod struct {
	From *time.Time
	To   *time.Time
}

// MethodTotal payments grouped by method
type MethodTotal struct {
	Method PaymentMethod
	Total  float64
	Count  int64
}

// MonthlyTotal payments grouped by year and month
type MonthlyTotal struct {
	Year  int
	Month int
	Total float64
	Count int64
}
