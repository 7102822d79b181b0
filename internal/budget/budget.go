// Package budget keeps the expense list and its category breakdown
package budget

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category is an expense bucket
type Category string

const (
	Food      Category = "Food"
	Rent      Category = "Rent"
	Transport Category = "Transport"
	Shopping  Category = "Shopping"
	Bills     Category = "Bills"
)

// Categories lists the buckets in menu order
var Categories = []Category{Food, Rent, Transport, Shopping, Bills}

// ParseCategory matches a bucket name case-insensitively
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown expense category %q", s)
}

// Expense is one spend entry
type Expense struct {
	ID       string          `json:"id"`
	Category Category        `json:"category"`
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"`
}

// CategoryTotal is the sum spent in one bucket
type CategoryTotal struct {
	Category Category        `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// Summary is the spend breakdown shown next to the list
type Summary struct {
	TotalSpent decimal.Decimal `json:"total_spent"`
	ByCategory []CategoryTotal `json:"by_category"`
	Count      int             `json:"count"`
}

// Summarize totals expenses; categories keep first-seen order
func Summarize(expenses []Expense) Summary {
	s := Summary{TotalSpent: decimal.Zero, ByCategory: []CategoryTotal{}, Count: len(expenses)}
	index := make(map[Category]int)
	for _, e := range expenses {
		s.TotalSpent = s.TotalSpent.Add(e.Amount)
		if i, ok := index[e.Category]; ok {
			s.ByCategory[i].Total = s.ByCategory[i].Total.Add(e.Amount)
			continue
		}
		index[e.Category] = len(s.ByCategory)
		s.ByCategory = append(s.ByCategory, CategoryTotal{Category: e.Category, Total: e.Amount})
	}
	return s
}

// Seed returns the starter expenses a new workspace opens with
func Seed() []Expense {
	return []Expense{
		{ID: "1", Category: Food, Title: "Groceries", Amount: decimal.NewFromInt(5000), Date: "2023-10-01"},
		{ID: "2", Category: Rent, Title: "Apartment Rent", Amount: decimal.NewFromInt(15000), Date: "2023-10-05"},
		{ID: "3", Category: Transport, Title: "Metro & Cab", Amount: decimal.NewFromInt(2000), Date: "2023-10-10"},
	}
}

// Remove returns expenses without the entry id; ok is false if id was absent
func Remove(expenses []Expense, id string) ([]Expense, bool) {
	out := make([]Expense, 0, len(expenses))
	found := false
	for _, e := range expenses {
		if e.ID == id {
			found = true
			continue
		}
		out = append(out, e)
	}
	return out, found
}

// Newest returns expenses latest-first, the order the list renders in
func Newest(expenses []Expense) []Expense {
	out := make([]Expense, len(expenses))
	for i, e := range expenses {
		out[len(expenses)-1-i] = e
	}
	return out
}
