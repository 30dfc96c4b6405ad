// internal/receipt/customer.go
package receipt

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"jgpos/internal/sales"
)

// CustomerSale is the richer sale shape the customer receipt expects: a tax
// breakdown and tendered/change amounts. The checkout flow never populates
// these fields, so this renderer only serves callers that fill them in
// themselves. It is kept as-is rather than unified with the checkout receipt.
type CustomerSale struct {
	ID            string           `json:"id"`
	Items         []sales.SaleItem `json:"items"`
	Subtotal      float64          `json:"subtotal"`
	Tax           float64          `json:"tax"`
	Total         float64          `json:"total"`
	Paid          float64          `json:"paid"`
	Change        float64          `json:"change"`
	PaymentMethod string           `json:"paymentMethod"`
	Date          string           `json:"date"`
}

var customerReceiptTemplate = template.Must(template.New("customerReceipt").Parse(`<html>
  <body style="font-family: Arial, sans-serif; padding: 20px;">
    <h1 style="text-align: center;">Sales Receipt</h1>
    <p>Date: {{.Date}}</p>
    <p>Receipt No: {{.ID}}</p>
    <p>Payment Method: {{.PaymentMethod}}</p>
    <hr/>
    <table style="width: 100%; border-collapse: collapse;">
      <tr style="border-bottom: 1px solid #ddd;">
        <th style="text-align: left; padding: 8px;">Item</th>
        <th style="text-align: center; padding: 8px;">Qty</th>
        <th style="text-align: right; padding: 8px;">Price</th>
        <th style="text-align: right; padding: 8px;">Total</th>
      </tr>
      {{range .Lines}}
      <tr style="border-bottom: 1px solid #ddd;">
        <td style="padding: 8px;">{{.Name}}</td>
        <td style="text-align: center; padding: 8px;">{{.Quantity}}</td>
        <td style="text-align: right; padding: 8px;">{{.Price}}</td>
        <td style="text-align: right; padding: 8px;">{{.Total}}</td>
      </tr>
      {{end}}
    </table>
    <div style="margin-top: 20px; text-align: right;">
      <p style="margin: 5px 0;">Subtotal: {{.Subtotal}}</p>
      <p style="margin: 5px 0;">Tax (12%): {{.Tax}}</p>
      <p style="margin: 5px 0; font-weight: bold;">Total: {{.Total}}</p>
      <p style="margin: 5px 0;">Amount Paid: {{.Paid}}</p>
      <p style="margin: 5px 0;">Change: {{.Change}}</p>
    </div>
    <p style="text-align: center; margin-top: 30px;">Thank you for your purchase!</p>
  </body>
</html>
`))

type customerReceiptData struct {
	ID            string
	Date          string
	PaymentMethod string
	Lines         []receiptLine
	Subtotal      string
	Tax           string
	Total         string
	Paid          string
	Change        string
}

// RenderCustomerReceipt renders the standalone customer receipt.
func RenderCustomerReceipt(sale CustomerSale) (string, error) {
	data := customerReceiptData{
		ID:            sale.ID,
		Date:          customerDate(sale.Date),
		PaymentMethod: strings.ToUpper(sale.PaymentMethod),
		Subtotal:      FormatCurrency(sale.Subtotal),
		Tax:           FormatCurrency(sale.Tax),
		Total:         FormatCurrency(sale.Total),
		Paid:          FormatCurrency(sale.Paid),
		Change:        FormatCurrency(sale.Change),
	}

	for _, item := range sale.Items {
		data.Lines = append(data.Lines, receiptLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    FormatCurrency(item.Price),
			Total:    FormatCurrency(item.Price * float64(item.Quantity)),
		})
	}

	var b strings.Builder
	if err := customerReceiptTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render customer receipt: %w", err)
	}
	return b.String(), nil
}

func customerDate(date string) string {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return date
	}
	return t.Format("1/2/2006, 3:04:05 PM")
}
