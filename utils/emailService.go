package utils

import (
	"fmt"
	"lms/config"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email through SendGrid when an API key is
// configured, otherwise over plain SMTP.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.SendGridKey != "" {
		return sendViaSendGrid(to, subject, htmlBody)
	}
	return sendViaSMTP(to, subject, htmlBody)
}

func sendViaSendGrid(to []string, subject string, htmlBody string) error {
	from := mail.NewEmail("LearnSphere", config.AppConfig.EmailSender)

	for _, rcpt := range to {
		message := mail.NewSingleEmail(from, subject, mail.NewEmail("", rcpt), "", htmlBody)
		client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)

		resp, err := client.Send(message)
		if err != nil {
			fmt.Println("Error sending email:", err)
			return err
		}
		if resp.StatusCode >= 400 {
			fmt.Println("SendGrid rejected email:", resp.Body)
			return fmt.Errorf("sendgrid error, code: %d", resp.StatusCode)
		}
	}

	return nil
}

func sendViaSMTP(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LearnSphere <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all outgoing mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A237E; line-height: 1.6; }
			.content h2 { color: #1A237E; margin-top: 0; }
			.otp { text-align: center; color: #4CAF50; font-size: 40px; margin: 20px 0; letter-spacing: 6px; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4CAF50; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNSPHERE</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 LearnSphere. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendOTPEmail dispatches the plaintext one-time code. Fire and forget;
// a delivery failure is logged, not surfaced to the request.
func SendOTPEmail(otp, email string) {
	subject := "Your LearnSphere Verification Code"
	body := fmt.Sprintf(`
		<p>Your One Time Password (OTP) is:</p>
		<h1 class="otp">%s</h1>
		<p>The code is valid for 5 minutes. Do not share it with anyone.</p>
	`, otp)

	go SendEmail([]string{email}, subject, getEmailTemplate("Email Verification", body))
}

// SendPurchaseEmail confirms a verified course purchase
func SendPurchaseEmail(email, name, courseName string) {
	subject := "Purchase Confirmed: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your payment was verified and you are now enrolled in <strong>%s</strong>.</p>
		<div class="info-box">
			The full course content is available in your dashboard. Happy learning!
		</div>
	`, name, courseName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Enrollment Successful", body))
}

// SendPasswordResetEmail dispatches the reset code
func SendPasswordResetEmail(otp, email string) {
	subject := "LearnSphere Password Reset Code"
	body := fmt.Sprintf(`
		<p>We received a request to reset your password. Your code is:</p>
		<h1 class="otp">%s</h1>
		<p>The code is valid for 5 minutes. If you did not request this, you can ignore this email.</p>
	`, otp)

	go SendEmail([]string{email}, subject, getEmailTemplate("Password Reset", body))
}
