package services

import (
	"fmt"

	"apparel-app/config"
	"apparel-app/models"

	"gopkg.in/gomail.v2"
)

// SendPOApprovalMail notifies the supplier that a purchase order has been
// approved and is ready to ship against.
func SendPOApprovalMail(supplier models.Supplier, po models.PurchaseOrderHeader) error {
	if config.SMTPHost == "" || supplier.SuppEmail == "" {
		// Mail not configured or supplier has no address, skip silently
		return nil
	}

	subject := "Purchase Order Approved: " + po.PoNumber
	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>Purchase order approved</h3>
				<p>PO Number: <strong>%s</strong></p>
				<p>Delivery Date: <strong>%s</strong></p>
				<p>This is an auto-generated email. Please do not reply to this email or its recipients.</p>
			</body>
		</html>
	`, po.PoNumber, po.DeliveryDate)

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", supplier.SuppEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		config.LogError("services", "SendPOApprovalMail", "send mail", po.PoNumber, err)
		return err
	}

	return nil
}
