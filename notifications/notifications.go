// Package notifications renders and sends the storefront's transactional
// email. Sends are best effort: a business action that already committed is
// never rolled back because its email failed, so callers log errors and
// move on.
package notifications

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/bikinisbytelly/bikinis-api/models"
)

type Dispatcher interface {
	OrderConfirmation(order models.Order, receiptPath string) error
	CustomOrderConfirmation(customOrder models.CustomOrder) error
	ShippingNotice(order models.Order, trackingNumber string) error
	ContactReceipt(contact models.Contact) error
	NewsletterWelcome(email string) error
	ReviewPending(review models.Review) error
}

// SMTPMailer sends over plain SMTP with a raw MIME message, multipart when
// a receipt is attached.
type SMTPMailer struct {
	Addr         string // host:port for SendMail
	Host         string // host only, for PlainAuth
	Username     string
	Password     string
	From         string
	BusinessName string
	AdminEmail   string

	// seam for tests
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(addr, host, username, password, from, businessName, adminEmail string) *SMTPMailer {
	return &SMTPMailer{
		Addr:         addr,
		Host:         host,
		Username:     username,
		Password:     password,
		From:         from,
		BusinessName: businessName,
		AdminEmail:   adminEmail,
		sendMail:     smtp.SendMail,
	}
}

func (m *SMTPMailer) send(to, subject, htmlBody string, attachments []string) error {
	msg, err := buildMessage(m.From, to, subject, htmlBody, attachments)
	if err != nil {
		return err
	}
	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	if err := m.sendMail(m.Addr, auth, m.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func (m *SMTPMailer) render(tmpl *template.Template, data any) (string, error) {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("template %s: %w", tmpl.Name(), err)
	}
	return body.String(), nil
}

func (m *SMTPMailer) OrderConfirmation(order models.Order, receiptPath string) error {
	data := struct {
		Order         models.Order
		Items         []models.OrderItem
		BusinessName  string
		BusinessEmail string
	}{order, order.Items.Data(), m.BusinessName, m.From}

	var errs []error

	body, err := m.render(orderConfirmationTmpl, data)
	if err != nil {
		errs = append(errs, err)
	} else {
		var attachments []string
		if receiptPath != "" {
			attachments = []string{receiptPath}
		}
		subject := "Order Confirmation - " + order.OrderNumber
		if err := m.send(order.CustomerEmail, subject, body, attachments); err != nil {
			errs = append(errs, err)
		}
	}

	alert, err := m.render(orderAlertTmpl, data)
	if err != nil {
		errs = append(errs, err)
	} else if err := m.send(m.AdminEmail, "New Order Received - "+order.OrderNumber, alert, nil); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (m *SMTPMailer) CustomOrderConfirmation(customOrder models.CustomOrder) error {
	data := struct {
		CustomOrder   models.CustomOrder
		Measurements  models.Measurements
		BusinessName  string
		BusinessEmail string
	}{customOrder, customOrder.Measurements.Data(), m.BusinessName, m.From}

	var errs []error

	body, err := m.render(customOrderConfirmationTmpl, data)
	if err != nil {
		errs = append(errs, err)
	} else if err := m.send(customOrder.CustomerEmail,
		"Custom Order Request Received - "+customOrder.OrderNumber, body, nil); err != nil {
		errs = append(errs, err)
	}

	alert, err := m.render(customOrderAlertTmpl, data)
	if err != nil {
		errs = append(errs, err)
	} else if err := m.send(m.AdminEmail,
		"New Custom Order Request - "+customOrder.OrderNumber, alert, nil); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (m *SMTPMailer) ShippingNotice(order models.Order, trackingNumber string) error {
	data := struct {
		Order          models.Order
		TrackingNumber string
		BusinessName   string
	}{order, trackingNumber, m.BusinessName}

	body, err := m.render(shippingNoticeTmpl, data)
	if err != nil {
		return err
	}
	return m.send(order.CustomerEmail, "Your Order Has Shipped - "+order.OrderNumber, body, nil)
}

func (m *SMTPMailer) ContactReceipt(contact models.Contact) error {
	data := struct {
		Contact      models.Contact
		BusinessName string
	}{contact, m.BusinessName}

	var errs []error

	body, err := m.render(contactReceiptTmpl, data)
	if err != nil {
		errs = append(errs, err)
	} else if err := m.send(contact.Email, "We Received Your Message", body, nil); err != nil {
		errs = append(errs, err)
	}

	alert, err := m.render(contactAlertTmpl, data)
	if err != nil {
		errs = append(errs, err)
	} else if err := m.send(m.AdminEmail, "New Contact Message - "+contact.Subject, alert, nil); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (m *SMTPMailer) NewsletterWelcome(email string) error {
	data := struct{ BusinessName string }{m.BusinessName}

	body, err := m.render(newsletterWelcomeTmpl, data)
	if err != nil {
		return err
	}
	return m.send(email, "Welcome to "+m.BusinessName+"!", body, nil)
}

func (m *SMTPMailer) ReviewPending(review models.Review) error {
	data := struct{ Review models.Review }{review}

	body, err := m.render(reviewPendingTmpl, data)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("New Review Submitted - Product #%d", review.ProductID)
	return m.send(m.AdminEmail, subject, body, nil)
}

// buildMessage assembles the raw MIME message. Without attachments it is a
// single text/html body; with attachments a multipart/mixed message with
// base64 PDF parts.
func buildMessage(from, to, subject, htmlBody string, attachments []string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")

	if len(attachments) == 0 {
		buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		buf.WriteString(htmlBody)
		return buf.Bytes(), nil
	}

	writer := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	htmlHeader := textproto.MIMEHeader{}
	htmlHeader.Set("Content-Type", "text/html; charset=\"UTF-8\"")
	part, err := writer.CreatePart(htmlHeader)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	for _, attachment := range attachments {
		content, err := os.ReadFile(attachment)
		if err != nil {
			return nil, fmt.Errorf("read attachment: %w", err)
		}

		header := textproto.MIMEHeader{}
		header.Set("Content-Type", "application/pdf")
		header.Set("Content-Transfer-Encoding", "base64")
		header.Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", filepath.Base(attachment)))

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, err
		}

		encoded := base64.StdEncoding.EncodeToString(content)
		for len(encoded) > 0 {
			n := 76
			if len(encoded) < n {
				n = len(encoded)
			}
			if _, err := fmt.Fprintf(part, "%s\r\n", encoded[:n]); err != nil {
				return nil, err
			}
			encoded = encoded[n:]
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
