// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/brightcart/storefront/internal/config"
	"github.com/brightcart/storefront/internal/models"
)

type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

var orderStatusSubjects = map[models.OrderStatus]string{
	models.OrderStatusPending:   "We received your order",
	models.OrderStatusConfirmed: "Your order is confirmed",
	models.OrderStatusShipped:   "Your order has shipped",
	models.OrderStatusDelivered: "Your order was delivered",
	models.OrderStatusCancelled: "Your order was cancelled",
}

const orderStatusBody = `
<!DOCTYPE html>
<html>
<body>
	<h2>Order update</h2>
	<p>Hello {{.Name}},</p>
	<p>Your order <strong>{{.OrderID}}</strong> is now <strong>{{.Status}}</strong>.</p>
	<p>Order total: {{.Total}}</p>
	<p>Thanks for shopping with {{.StoreName}}.</p>
</body>
</html>`

// SendOrderStatus emails the customer about the order's current status. The
// customer is loaded fresh so a stale preload never misaddresses the email.
func (s *NotificationService) SendOrderStatus(order *models.Order) error {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", order.CustomerID).Error; err != nil {
		return fmt.Errorf("customer not found: %w", err)
	}

	subject, ok := orderStatusSubjects[order.Status]
	if !ok {
		subject = "Order update"
	}

	name := customer.FirstName
	if name == "" {
		name = customer.Email
	}

	data := map[string]interface{}{
		"Name":      name,
		"OrderID":   order.ID,
		"Status":    order.Status,
		"Total":     formatCents(order.TotalCents, order.Currency),
		"StoreName": s.config.Email.FromName,
	}

	body, err := renderTemplate(orderStatusBody, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(customer.Email, subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).
			Info("Email delivery skipped (SMTP not configured)")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf(
		"To: %s\r\nFrom: %s <%s>\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		to, s.config.Email.FromName, s.config.Email.FromEmail, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func formatCents(cents int64, currency string) string {
	return fmt.Sprintf("%d.%02d %s", cents/100, cents%100, currency)
}
