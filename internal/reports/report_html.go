// internal/reports/report_html.go
package reports

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"jgpos/internal/config"
	"jgpos/internal/receipt"
	"jgpos/internal/sales"
)

var dailyReportTemplate = template.Must(template.New("dailyReport").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; padding: 20px; }
      h1 { text-align: center; }
      table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
      th, td { padding: 8px; border-bottom: 1px solid #ddd; text-align: left; }
      .amount { text-align: right; }
    </style>
  </head>
  <body>
    <h1>Daily Sales Report</h1>
    <p>{{.StoreName}}</p>
    <p>Date: {{.Date}}</p>
    <hr/>
    <h2>Summary</h2>
    <table>
      <tr><td>Total Sales</td><td class="amount">{{.TotalSales}}</td></tr>
      <tr><td>Items Sold</td><td class="amount">{{.TotalItems}}</td></tr>
      <tr><td>Average Order</td><td class="amount">{{.AverageOrder}}</td></tr>
      <tr><td>Transactions</td><td class="amount">{{.Transactions}}</td></tr>
    </table>
    <h2>Top Selling Items</h2>
    <table>
      <tr><th>Item</th><th>Qty</th><th>Revenue</th></tr>
      {{range .TopItems}}
      <tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td class="amount">{{.Revenue}}</td></tr>
      {{end}}
    </table>
    <h2>Transactions</h2>
    <table>
      <tr><th>Time</th><th>Items</th><th>Total</th></tr>
      {{range .Sales}}
      <tr><td>{{.Time}}</td><td>{{.Summary}}</td><td class="amount">{{.Total}}</td></tr>
      {{end}}
    </table>
    <p>Register: {{.RegisterID}}</p>
  </body>
</html>
`))

type reportTopItem struct {
	Name     string
	Quantity int
	Revenue  string
}

type reportSale struct {
	Time    string
	Summary string
	Total   string
}

type reportData struct {
	StoreName    string
	Date         string
	TotalSales   string
	TotalItems   int
	AverageOrder string
	Transactions int
	TopItems     []reportTopItem
	Sales        []reportSale
	RegisterID   string
}

// DailyReportHTML renders the printable end-of-day report for the given ISO
// date from precomputed stats and the full sales history.
func DailyReportHTML(stats DailyStats, history []sales.Sale, today, registerID string) (string, error) {
	data := reportData{
		StoreName:    config.StoreName,
		Date:         today,
		TotalSales:   receipt.FormatCurrency(stats.TotalSales),
		TotalItems:   stats.TotalItems,
		AverageOrder: receipt.FormatCurrency(stats.AverageOrderValue),
		Transactions: stats.Transactions,
		RegisterID:   registerID,
	}

	for _, item := range stats.TopSellingItems {
		data.TopItems = append(data.TopItems, reportTopItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Revenue:  receipt.FormatCurrency(item.Total),
		})
	}

	for _, sale := range FilterToday(history, today) {
		data.Sales = append(data.Sales, reportSale{
			Time:    saleTime(sale.Date),
			Summary: saleSummary(sale),
			Total:   receipt.FormatCurrency(sale.Total),
		})
	}

	var b strings.Builder
	if err := dailyReportTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render daily report: %w", err)
	}
	return b.String(), nil
}

// saleSummary compresses a sale's lines into "2x Coffee, 1x Nails" form.
func saleSummary(sale sales.Sale) string {
	parts := make([]string, 0, len(sale.Items))
	for _, item := range sale.Items {
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
	}
	return strings.Join(parts, ", ")
}

func saleTime(date string) string {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return date
	}
	return t.Format("03:04:05 PM")
}
