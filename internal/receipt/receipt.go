// internal/receipt/receipt.go
package receipt

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"jgpos/internal/config"
	"jgpos/internal/sales"
)

// The checkout-path receipt. This renderer carries no tax line: the checkout
// flow records subtotal == total and the receipt reflects that. The separate
// customer receipt in customer.go assumes tax/paid/change fields instead; the
// two stay inconsistent on purpose.
var salesReceiptTemplate = template.Must(template.New("salesReceipt").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
      body { font-family: 'Helvetica', sans-serif; padding: 20px; max-width: 400px; margin: 0 auto; background-color: white; }
      .header { text-align: center; margin-bottom: 20px; padding-bottom: 20px; border-bottom: 1px dashed #000; }
      .receipt-title { font-size: 24px; font-weight: bold; margin-bottom: 10px; text-transform: uppercase; }
      .store-info { margin-bottom: 10px; }
      .receipt-details { margin-bottom: 20px; padding: 10px 0; border-bottom: 1px dashed #000; }
      .receipt-number { font-size: 16px; font-weight: bold; }
      .date-time { color: #444; margin-top: 5px; }
      table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
      th { padding: 8px; border-bottom: 2px solid #000; text-align: left; font-weight: bold; }
      td { padding: 8px; border-bottom: 1px solid #ddd; }
      .totals { text-align: right; margin-top: 20px; padding-top: 10px; border-top: 1px dashed #000; }
      .final-total { font-size: 18px; font-weight: bold; margin-top: 10px; padding-top: 10px; border-top: 1px solid #000; }
      .footer { text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px dashed #000; font-size: 12px; color: #666; }
    </style>
  </head>
  <body>
    <div class="header">
      <div class="receipt-title">Sales Receipt</div>
      <div class="store-info">
        <div style="font-size: 18px; font-weight: bold;">{{.StoreName}}</div>
        <div>{{.StoreAddress}}</div>
        <div>#: {{.StorePhone}}</div>
      </div>
    </div>

    <div class="receipt-details">
      <div class="receipt-number">Receipt #: {{.Number}}</div>
      <div class="date-time">
        <div>Date: {{.Date}}</div>
        <div>Time: {{.Time}}</div>
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th>Item</th>
          <th style="text-align: center">Qty</th>
          <th style="text-align: right">Price</th>
          <th style="text-align: right">Total</th>
        </tr>
      </thead>
      <tbody>
        {{range .Lines}}
        <tr>
          <td>{{.Name}}</td>
          <td style="text-align: center">{{.Quantity}}</td>
          <td style="text-align: right">{{.Price}}</td>
          <td style="text-align: right">{{.Total}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <div class="final-total">
        <span>Total:</span>
        <span style="margin-left: 20px;">{{.Total}}</span>
      </div>
    </div>

    <div class="footer">
      <p>Thank you for your purchase!</p>
      <p>Please keep this receipt for your records.</p>
    </div>
  </body>
</html>
`))

type receiptLine struct {
	Name     string
	Quantity int
	Price    string
	Total    string
}

type receiptData struct {
	StoreName    string
	StoreAddress string
	StorePhone   string
	Number       string
	Date         string
	Time         string
	Lines        []receiptLine
	Total        string
}

// RenderSalesReceipt maps a cart snapshot and its computed total to the
// printable receipt document. Pure apart from reading the configured store
// identity; the receipt number is owned by the caller (see Counter).
func RenderSalesReceipt(items []sales.CartItem, total float64, receiptNumber int, now time.Time) (string, error) {
	data := receiptData{
		StoreName:    config.StoreName,
		StoreAddress: config.StoreAddress,
		StorePhone:   config.StorePhone,
		Number:       fmt.Sprintf("%06d", receiptNumber),
		Date:         now.Format("Monday, January 2, 2006"),
		Time:         now.Format("03:04:05 PM"),
		Total:        FormatCurrency(total),
	}

	for _, item := range items {
		data.Lines = append(data.Lines, receiptLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    FormatCurrency(item.Price),
			Total:    FormatCurrency(item.Price * float64(item.Quantity)),
		})
	}

	var b strings.Builder
	if err := salesReceiptTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render receipt: %w", err)
	}
	return b.String(), nil
}
