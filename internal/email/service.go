package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"newsletter-server/internal/clients/mail"
	"newsletter-server/internal/observability"
)

var (
	ErrSendingEmail  = errors.New("error sending email")
	ErrEmptyTemplate = errors.New("email template is empty")
)

const (
	templateVerification = "verification"
	templateAdminLogin   = "admin_login"
)

// TemplateData represents the data that can be used in templates
type TemplateData struct {
	Name             string
	Email            string
	VerificationLink string
	LoginLink        string
	SiteName         string
}

// EmailService sends the transactional mail that sits outside campaigns
type EmailService struct {
	transport mail.Transport
	siteName  string
	logger    *observability.Logger
	templates map[string]*template.Template
}

// New creates an EmailService. siteName appears in subjects and bodies.
func New(transport mail.Transport, siteName string, logger *observability.Logger) *EmailService {
	return &EmailService{
		transport: transport,
		siteName:  siteName,
		logger:    logger,
		templates: map[string]*template.Template{
			templateVerification: template.Must(template.New(templateVerification).Parse(`
			<html>
				<body>
					<h1>Confirm your subscription</h1>
					<p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
					<p>Please confirm that you want to receive the {{.SiteName}} newsletter at {{.Email}}:</p>
					<p><a href="{{.VerificationLink}}" style="background-color: #2563EB; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Confirm subscription</a></p>
					<p>This link expires in 24 hours. If you didn't sign up, you can safely ignore this email.</p>
				</body>
			</html>
			`)),
			templateAdminLogin: template.Must(template.New(templateAdminLogin).Parse(`
			<html>
				<body>
					<h1>Sign in to {{.SiteName}}</h1>
					<p>Use the link below to sign in to the admin dashboard:</p>
					<p><a href="{{.LoginLink}}">Sign in</a></p>
					<p>This link expires in 15 minutes and works once. If you didn't request it, you can safely ignore this email.</p>
				</body>
			</html>
			`)),
		},
	}
}

// renderTemplate renders a template with the provided data
func (s *EmailService) renderTemplate(templateName string, data TemplateData) (string, error) {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	data.SiteName = s.siteName

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func (s *EmailService) send(ctx context.Context, templateName, to, subject string, data TemplateData) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_type", Value: templateName},
		observability.Field{Key: "recipient", Value: to},
	)

	htmlContent, err := s.renderTemplate(templateName, data)
	if err != nil {
		s.logger.Error(ctx, "failed to render email template", err)
		return fmt.Errorf("%w: %s", ErrEmptyTemplate, err.Error())
	}

	if err := s.transport.Send(ctx, mail.Message{To: to, Subject: subject, HTML: htmlContent}); err != nil {
		s.logger.Error(ctx, "failed to send email", err)
		return fmt.Errorf("%w: %w", ErrSendingEmail, err)
	}

	return nil
}

// SendVerificationEmail asks a new subscriber to confirm their address
func (s *EmailService) SendVerificationEmail(ctx context.Context, to, name, verificationLink string) error {
	return s.send(ctx, templateVerification, to, "Confirm your subscription to "+s.siteName, TemplateData{
		Name:             name,
		Email:            to,
		VerificationLink: verificationLink,
	})
}

// SendAdminLoginEmail delivers a magic sign-in link to an admin
func (s *EmailService) SendAdminLoginEmail(ctx context.Context, to, loginLink string) error {
	return s.send(ctx, templateAdminLogin, to, "Your "+s.siteName+" sign-in link", TemplateData{
		Email:     to,
		LoginLink: loginLink,
	})
}
