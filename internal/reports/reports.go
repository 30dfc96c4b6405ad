// internal/reports/reports.go
package reports

import (
	"sort"
	"strings"

	"jgpos/internal/sales"
)

// topSellerLimit caps the ranking shown on the daily report.
const topSellerLimit = 5

// ItemSales aggregates one item's quantity and revenue across today's sales.
type ItemSales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// DailyStats is the reports screen summary for a single day.
type DailyStats struct {
	TotalSales        float64
	TotalItems        int
	AverageOrderValue float64
	Transactions      int
	TopSellingItems   []ItemSales
}

// ComputeDailyStats reduces the full sales history to the given day's totals.
// A sale counts as "today" when its timestamp has the ISO date as a literal
// string prefix. Rankings aggregate by item name, order descending by
// quantity, break ties by first appearance, and keep the top five.
func ComputeDailyStats(history []sales.Sale, today string) DailyStats {
	var stats DailyStats

	itemIndex := make(map[string]int)
	var items []ItemSales

	for _, sale := range history {
		if !strings.HasPrefix(sale.Date, today) {
			continue
		}
		stats.Transactions++
		stats.TotalSales += sale.Total

		for _, item := range sale.Items {
			stats.TotalItems += item.Quantity

			idx, seen := itemIndex[item.Name]
			if !seen {
				itemIndex[item.Name] = len(items)
				items = append(items, ItemSales{Name: item.Name})
				idx = len(items) - 1
			}
			items[idx].Quantity += item.Quantity
			items[idx].Total += item.Price * float64(item.Quantity)
		}
	}

	if stats.Transactions > 0 {
		stats.AverageOrderValue = stats.TotalSales / float64(stats.Transactions)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Quantity > items[j].Quantity
	})
	if len(items) > topSellerLimit {
		items = items[:topSellerLimit]
	}
	stats.TopSellingItems = items

	return stats
}

// FilterToday returns the sales recorded on the given ISO date.
func FilterToday(history []sales.Sale, today string) []sales.Sale {
	var matched []sales.Sale
	for _, sale := range history {
		if strings.HasPrefix(sale.Date, today) {
			matched = append(matched, sale)
		}
	}
	return matched
}
