package email

// SendWelcomeEmail greets a newly registered user.
func (c *Client) SendWelcomeEmail(to, name, role string) error {
	data := map[string]string{
		"UserName": name,
		"Role":     role,
	}

	return c.SendEmail(to, "Welcome to Employetica!", TemplateWelcome, data)
}

// SendPaymentPaidEmail tells an employee their salary for a period was paid.
func (c *Client) SendPaymentPaidEmail(to, name, period, amount, transactionID string) error {
	data := map[string]string{
		"EmployeeName":  name,
		"Period":        period,
		"Amount":        amount,
		"TransactionID": transactionID,
	}

	return c.SendEmail(to, "Your salary for "+period+" has been paid", TemplatePaymentPaid, data)
}

// SendContactReceivedEmail forwards a contact form message to the admin inbox.
func (c *Client) SendContactReceivedEmail(to, name, from, message string) error {
	data := map[string]string{
		"SenderName":  name,
		"SenderEmail": from,
		"Message":     message,
	}

	return c.SendEmail(to, "New contact message from "+name, TemplateContactReceived, data)
}
