package core

import "github.com/shopspring/decimal"

// Totals is the whole-ledger income, expense and net profit.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// Bucket holds the sums for one period key (YYYY-MM or YYYY).
type Bucket struct {
	Key     string          `json:"key"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Net returns income minus expense for the bucket.
func (b Bucket) Net() decimal.Decimal {
	return b.Income.Sub(b.Expense)
}

// Summary is an ordered set of buckets, first-seen key first.
type Summary []Bucket

// Get returns the bucket for key.
func (s Summary) Get(key string) (Bucket, bool) {
	for _, b := range s {
		if b.Key == key {
			return b, true
		}
	}
	return Bucket{}, false
}

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryTotals is ordered by first appearance of each category.
type CategoryTotals []CategoryAmount

// Get returns the total for a category.
func (c CategoryTotals) Get(name string) (decimal.Decimal, bool) {
	for _, ca := range c {
		if ca.Name == name {
			return ca.Amount, true
		}
	}
	return decimal.Zero, false
}

// ChartSeries feeds the two-bar income versus expense comparison.
type ChartSeries struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}
