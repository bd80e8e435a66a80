package mailer

import (
	"html/template"
	"strings"

	"github.com/m04kA/travel-backoffice/internal/ledger"
)

var confirmationTmpl = template.Must(template.New("confirmation").Funcs(template.FuncMap{
	"money": ledger.FormatMoney,
	"orNA": func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "N/A"
		}
		return s
	},
}).Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin-bottom: 20px;">
    <h2 style="color: #333; margin-bottom: 10px;">Payment Confirmation</h2>
    <p style="color: #666; margin: 0;">Thank you for your payment!</p>
  </div>
  <div style="border: 1px solid #e9ecef; border-radius: 8px; padding: 20px; margin-bottom: 20px;">
    <h3 style="color: #333;">Booking Details</h3>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="font-weight: bold; width: 30%;">Booking Number:</td><td>{{.BookingNumber}}</td></tr>
      <tr><td style="font-weight: bold;">E-Ticket:</td><td>{{.ETicket}}</td></tr>
      <tr><td style="font-weight: bold;">Travel Date:</td><td>{{.TravelDate}}</td></tr>
      <tr><td style="font-weight: bold;">Total Price:</td><td>{{money .PackagePrice}}</td></tr>
    </table>
  </div>
  <div style="background-color: #e8f5e8; border: 1px solid #c3e6c3; border-radius: 8px; padding: 20px; margin-bottom: 20px;">
    <h3 style="color: #2d5a2d;">Payment Details</h3>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="font-weight: bold; width: 30%;">Amount Paid:</td><td style="color: #2d5a2d; font-weight: bold;">{{money .Amount}}</td></tr>
      <tr><td style="font-weight: bold;">Payment Date:</td><td>{{.PaymentDate.Format "02 Jan 2006"}}</td></tr>
      <tr><td style="font-weight: bold;">Payment Method:</td><td>{{.PaymentMethod}}</td></tr>
      <tr><td style="font-weight: bold;">Reference:</td><td>{{orNA .Reference}}</td></tr>
    </table>
  </div>
  <div style="background-color: #fff3cd; border: 1px solid #ffeaa7; border-radius: 8px; padding: 20px; margin-bottom: 20px;">
    <h3 style="color: #856404;">Remaining Balance</h3>
    <p style="color: #856404; margin: 0; font-size: 18px; font-weight: bold;">{{money .Remaining}}</p>
  </div>
  <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; text-align: center;">
    <p style="color: #666; margin: 0; white-space: pre-line;">{{.Body}}</p>
  </div>
</div>
`))

// subjectFor тема письма по умолчанию
func subjectFor(m *PaymentConfirmation) string {
	if s := strings.TrimSpace(m.Subject); s != "" {
		return s
	}
	return "Payment Confirmation - Booking #" + m.BookingNumber
}

func renderHTML(m *PaymentConfirmation) (string, error) {
	data := *m
	if strings.TrimSpace(data.Body) == "" {
		data.Body = DefaultBody
	}

	var sb strings.Builder
	if err := confirmationTmpl.Execute(&sb, &data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
