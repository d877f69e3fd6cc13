package email

// PreviewData contains sample template data for local preview/testing.
//
//	templateName -> (templateVariableName -> exampleValue)
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserName": "Jane Doe",
		"Role":     "Employee",
	},
	TemplatePaymentPaid: {
		"EmployeeName":  "Jane Doe",
		"Period":        "January 2025",
		"Amount":        "1200.00",
		"TransactionID": "pi_3N0example",
	},
	TemplateContactReceived: {
		"SenderName":  "John Smith",
		"SenderEmail": "john@example.com",
		"Message":     "I would like to know more about Employetica.",
	},
}
