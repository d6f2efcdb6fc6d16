package notifications

import (
	"fmt"
	"html/template"
	"strings"
)

var tmplFuncs = template.FuncMap{
	"money": func(amount float64) string {
		return fmt.Sprintf("$%.2f", amount)
	},
	"lineTotal": func(price float64, qty int) string {
		return fmt.Sprintf("$%.2f", price*float64(qty))
	},
	"stars": func(rating int) string {
		if rating < 0 {
			rating = 0
		}
		if rating > 5 {
			rating = 5
		}
		return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
	},
}

func parse(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(tmplFuncs).Parse(text))
}

var orderConfirmationTmpl = parse("orderConfirmation", `
<html>
<body style="font-family: Arial, sans-serif; color: #2C3E50;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #006994;">Thank You for Your Order!</h1>
    <p>Hi {{.Order.CustomerName}},</p>
    <p>Your order has been confirmed! We're excited to start handcrafting your beautiful bikini.</p>

    <div style="background: #F5E6D3; padding: 20px; border-radius: 8px; margin: 20px 0;">
      <h2 style="color: #006994;">Order Details</h2>
      <p><strong>Order Number:</strong> {{.Order.OrderNumber}}</p>
      <p><strong>Order Date:</strong> {{.Order.CreatedAt.Format "January 2, 2006"}}</p>

      <h3 style="color: #006994;">Items:</h3>
      <ul>
        {{range .Items}}<li>{{.Name}} (Size: {{if .Size}}{{.Size}}{{else}}N/A{{end}}) x {{.Quantity}} - {{lineTotal .Price .Quantity}}</li>{{end}}
      </ul>

      <p><strong>Subtotal:</strong> {{money .Order.Subtotal}}</p>
      <p><strong>Shipping:</strong> {{money .Order.ShippingCost}}</p>
      <p><strong>Tax:</strong> {{money .Order.Tax}}</p>
      <p><strong style="font-size: 1.2em; color: #006994;">Total:</strong> {{money .Order.Total}}</p>
    </div>

    <div style="background: #E3F2FD; padding: 15px; border-radius: 8px; margin: 20px 0;">
      <h3 style="color: #006994;">What's Next?</h3>
      <p>Your bikini will be handcrafted over the next 2-3 weeks.</p>
      <p>You'll receive a shipping notification when it's on the way.</p>
    </div>

    <p>Questions? Reply to this email or contact us at {{.BusinessEmail}}</p>

    <p style="margin-top: 30px;">With love,<br>
    <strong>{{.BusinessName}}</strong></p>
  </div>
</body>
</html>`)

var orderAlertTmpl = parse("orderAlert", `
<html>
<body>
  <h2>New Order Alert</h2>
  <p><strong>Order Number:</strong> {{.Order.OrderNumber}}</p>
  <p><strong>Customer:</strong> {{.Order.CustomerName}}</p>
  <p><strong>Email:</strong> {{.Order.CustomerEmail}}</p>
  <p><strong>Total:</strong> {{money .Order.Total}}</p>
  <p><strong>Items:</strong></p>
  <ul>
    {{range .Items}}<li>{{.Name}} (Size: {{if .Size}}{{.Size}}{{else}}N/A{{end}}) x {{.Quantity}} - {{lineTotal .Price .Quantity}}</li>{{end}}
  </ul>
</body>
</html>`)

var customOrderConfirmationTmpl = parse("customOrderConfirmation", `
<html>
<body style="font-family: Arial, sans-serif; color: #2C3E50;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #006994;">Custom Order Request Received!</h1>
    <p>Hi {{.CustomOrder.CustomerName}},</p>
    <p>Thank you for your custom bikini request! We've received your specifications and will review them shortly.</p>

    <div style="background: #F5E6D3; padding: 20px; border-radius: 8px; margin: 20px 0;">
      <h2 style="color: #006994;">Your Request</h2>
      <p><strong>Request Number:</strong> {{.CustomOrder.OrderNumber}}</p>
      <p><strong>Style:</strong> {{.CustomOrder.Style}}</p>
      <p><strong>Primary Color:</strong> {{.CustomOrder.PrimaryColor}}</p>
      {{if .CustomOrder.SecondaryColor}}<p><strong>Secondary Color:</strong> {{.CustomOrder.SecondaryColor}}</p>{{end}}
      <p><strong>Pattern:</strong> {{.CustomOrder.Pattern}}</p>
      <p><strong>Budget Range:</strong> {{.CustomOrder.Budget}}</p>
    </div>

    <div style="background: #E3F2FD; padding: 15px; border-radius: 8px; margin: 20px 0;">
      <h3 style="color: #006994;">Next Steps</h3>
      <p>We'll review your specifications within 24 hours.</p>
      <p>You'll receive a quote and timeline estimate.</p>
      <p>Once approved, we'll start crafting your unique piece.</p>
    </div>

    <p>We'll be in touch soon!</p>

    <p style="margin-top: 30px;">With love,<br>
    <strong>{{.BusinessName}}</strong><br>
    {{.BusinessEmail}}</p>
  </div>
</body>
</html>`)

var customOrderAlertTmpl = parse("customOrderAlert", `
<html>
<body>
  <h2>New Custom Order Request</h2>
  <p><strong>Request Number:</strong> {{.CustomOrder.OrderNumber}}</p>
  <p><strong>Customer:</strong> {{.CustomOrder.CustomerName}}</p>
  <p><strong>Email:</strong> {{.CustomOrder.CustomerEmail}}</p>
  <p><strong>Phone:</strong> {{.CustomOrder.CustomerPhone}}</p>
  <p><strong>Style:</strong> {{.CustomOrder.Style}}</p>
  <p><strong>Colors:</strong> {{.CustomOrder.PrimaryColor}} / {{.CustomOrder.SecondaryColor}}</p>
  <p><strong>Budget:</strong> {{.CustomOrder.Budget}}</p>
  <p><strong>Special Requests:</strong> {{.CustomOrder.SpecialRequests}}</p>
  <p><strong>Measurements:</strong> bust {{.Measurements.Bust}}, under-bust {{.Measurements.UnderBust}},
     waist {{.Measurements.Waist}}, hips {{.Measurements.Hips}}{{if .Measurements.Additional}} ({{.Measurements.Additional}}){{end}}</p>
</body>
</html>`)

var shippingNoticeTmpl = parse("shippingNotice", `
<html>
<body style="font-family: Arial, sans-serif; color: #2C3E50;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #006994;">Your Bikini is On Its Way!</h1>
    <p>Hi {{.Order.CustomerName}},</p>
    <p>Great news! Your handmade bikini has been shipped and is heading your way.</p>

    <div style="background: #F5E6D3; padding: 20px; border-radius: 8px; margin: 20px 0;">
      <p><strong>Order Number:</strong> {{.Order.OrderNumber}}</p>
      {{if .TrackingNumber}}<p><strong>Tracking Number:</strong> {{.TrackingNumber}}</p>{{end}}
      <p><strong>Shipping Address:</strong><br>{{.Order.ShippingAddress}}</p>
    </div>

    <p>Enjoy your beautiful new bikini! Don't forget to follow our care instructions to keep it looking amazing.</p>

    <p style="margin-top: 30px;">With love,<br>
    <strong>{{.BusinessName}}</strong></p>
  </div>
</body>
</html>`)

var contactReceiptTmpl = parse("contactReceipt", `
<html>
<body style="font-family: Arial, sans-serif; color: #2C3E50;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #006994;">Thank You for Contacting Us!</h1>
    <p>Hi {{.Contact.Name}},</p>
    <p>We've received your message and will get back to you within 24 hours.</p>

    <div style="background: #F5E6D3; padding: 20px; border-radius: 8px; margin: 20px 0;">
      <p><strong>Your Message:</strong></p>
      <p>{{.Contact.Message}}</p>
    </div>

    <p>Talk soon!<br>
    <strong>{{.BusinessName}}</strong></p>
  </div>
</body>
</html>`)

var contactAlertTmpl = parse("contactAlert", `
<html>
<body>
  <h2>New Contact Form Submission</h2>
  <p><strong>From:</strong> {{.Contact.Name}} ({{.Contact.Email}})</p>
  <p><strong>Subject:</strong> {{.Contact.Subject}}</p>
  <p><strong>Message:</strong></p>
  <p>{{.Contact.Message}}</p>
</body>
</html>`)

var newsletterWelcomeTmpl = parse("newsletterWelcome", `
<html>
<body style="font-family: Arial, sans-serif; color: #2C3E50;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #006994;">Welcome!</h1>
    <p>Thanks for joining our newsletter!</p>
    <p>You'll be the first to know about:</p>
    <ul>
      <li>New bikini designs</li>
      <li>Special promotions</li>
      <li>Behind-the-scenes content</li>
      <li>Exclusive offers</li>
    </ul>
    <p>Stay tuned for beautiful handmade bikinis!</p>
    <p style="margin-top: 30px;">With love,<br>
    <strong>{{.BusinessName}}</strong></p>
  </div>
</body>
</html>`)

var reviewPendingTmpl = parse("reviewPending", `
<html>
<body>
  <h2>New Review Awaiting Approval</h2>
  <p><strong>Product ID:</strong> {{.Review.ProductID}}</p>
  <p><strong>From:</strong> {{.Review.Name}}</p>
  <p><strong>Rating:</strong> {{stars .Review.Rating}}</p>
  <p><strong>Review:</strong></p>
  <p>{{.Review.Review}}</p>
  <p>Log in to the admin panel to approve or reject this review.</p>
</body>
</html>`)
