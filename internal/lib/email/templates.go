package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateWelcome corresponds to templates/welcome.html
	TemplateWelcome Template = "welcome"

	// TemplatePaymentPaid corresponds to templates/payment_paid.html
	TemplatePaymentPaid Template = "payment_paid"

	// TemplateContactReceived corresponds to templates/contact_received.html
	TemplateContactReceived Template = "contact_received"
)
