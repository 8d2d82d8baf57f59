package service

import (
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

// StoreInfo is the storefront identity printed in outbound emails.
type StoreInfo struct {
	Name         string
	URL          string
	SupportEmail string
}

type otpEmailData struct {
	Store         StoreInfo
	Code          string
	ExpiryMinutes int
}

type orderEmailItem struct {
	Name     string
	Quantity int
	Price    string
}

type orderEmailData struct {
	Store         StoreInfo
	CustomerName  string
	OrderNumber   string
	StatusLabel   string
	StatusMessage string
	UpdatedOn     string
	Items         []orderEmailItem
	Total         string
}

var otpTextTemplate = texttemplate.Must(texttemplate.New("otp_text").Parse(strings.TrimSpace(`
Hello,

Your {{.Store.Name}} verification code is: {{.Code}}

This code expires in {{.ExpiryMinutes}} minutes. If you did not request it, you can ignore this email.

The {{.Store.Name}} Team
`)))

var otpHTMLTemplate = htmltemplate.Must(htmltemplate.New("otp_html").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2933;">
  <h2>Verify your email</h2>
  <p>Your {{.Store.Name}} verification code is:</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">{{.Code}}</p>
  <p>This code expires in {{.ExpiryMinutes}} minutes. If you did not request it, you can ignore this email.</p>
  <p>The {{.Store.Name}} Team</p>
</body>
</html>`))

var orderTextTemplate = texttemplate.Must(texttemplate.New("order_text").Parse(strings.TrimSpace(`
Dear {{if .CustomerName}}{{.CustomerName}}{{else}}Valued Customer{{end}},

Your order status has been updated!

Order Details:
• Order Number: {{.OrderNumber}}
• New Status: {{.StatusLabel}}
• Updated On: {{.UpdatedOn}}

{{.StatusMessage}}

Order Summary:
{{range .Items}}• {{.Name}} - Quantity: {{.Quantity}} - Price: ₹{{.Price}}
{{else}}• Order details not available
{{end}}{{if .Total}}Total: ₹{{.Total}}
{{end}}
Track Your Order:
You can track your order status anytime by logging into your {{.Store.Name}} account at {{.Store.URL}}.

Need Help?
If you have any questions about your order, please contact {{.Store.SupportEmail}}.

Thank you for choosing {{.Store.Name}}!

Best regards,
The {{.Store.Name}} Team

---
This is an automated message. Please do not reply to this email.
`)))

var orderHTMLTemplate = htmltemplate.Must(htmltemplate.New("order_html").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2933;">
  <h2>{{.StatusLabel}}</h2>
  <p>Dear {{if .CustomerName}}{{.CustomerName}}{{else}}Valued Customer{{end}},</p>
  <p>{{.StatusMessage}}</p>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><strong>Order Number</strong></td><td>{{.OrderNumber}}</td></tr>
    <tr><td><strong>Status</strong></td><td>{{.StatusLabel}}</td></tr>
    <tr><td><strong>Updated On</strong></td><td>{{.UpdatedOn}}</td></tr>
  </table>
  <h3>Order Summary</h3>
  {{if .Items}}
  <table cellpadding="6" style="border-collapse: collapse; border: 1px solid #d9e2ec;">
    <tr><th align="left">Item</th><th>Qty</th><th align="right">Price</th></tr>
    {{range .Items}}<tr><td>{{.Name}}</td><td align="center">{{.Quantity}}</td><td align="right">₹{{.Price}}</td></tr>
    {{end}}
    {{if .Total}}<tr><td colspan="2"><strong>Total</strong></td><td align="right"><strong>₹{{.Total}}</strong></td></tr>{{end}}
  </table>
  {{else}}
  <p>Order details not available</p>
  {{end}}
  <p>Track your order anytime at <a href="{{.Store.URL}}">{{.Store.URL}}</a>.</p>
  <p>Questions? Contact <a href="mailto:{{.Store.SupportEmail}}">{{.Store.SupportEmail}}</a>.</p>
  <p>Thank you for choosing {{.Store.Name}}!</p>
  <p style="color: #829ab1; font-size: 12px;">This is an automated message. Please do not reply to this email.</p>
</body>
</html>`))

func renderOtpEmail(data otpEmailData) (text, html string, err error) {
	var textBuf, htmlBuf strings.Builder
	if err := otpTextTemplate.Execute(&textBuf, data); err != nil {
		return "", "", err
	}
	if err := otpHTMLTemplate.Execute(&htmlBuf, data); err != nil {
		return "", "", err
	}
	return textBuf.String(), htmlBuf.String(), nil
}

func renderOrderEmail(data orderEmailData) (text, html string, err error) {
	var textBuf, htmlBuf strings.Builder
	if err := orderTextTemplate.Execute(&textBuf, data); err != nil {
		return "", "", err
	}
	if err := orderHTMLTemplate.Execute(&htmlBuf, data); err != nil {
		return "", "", err
	}
	return textBuf.String(), htmlBuf.String(), nil
}
