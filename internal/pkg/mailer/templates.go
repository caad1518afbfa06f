package mailer

import (
	"bytes"
	"html/template"
	"time"
)

const ParishName = "Our Lady of the Poor Church"

const layout = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8" /></head>
<body style="margin:0;padding:0;background:#eef2f7;font-family:Georgia,'Times New Roman',serif;">
  <table width="100%" cellpadding="0" cellspacing="0">
    <tr>
      <td align="center" style="padding:30px 15px;">
        <table width="600" cellpadding="0" cellspacing="0" style="background:#fff;border-radius:10px;box-shadow:0 4px 12px rgba(0,0,0,0.08);">
          <tr>
            <td style="background:#1e3a8a;color:#fff;padding:26px;text-align:center;">
              <div style="font-size:26px;margin-bottom:8px;">&#10013;</div>
              <h1 style="margin:0;font-size:22px;font-weight:normal;">{{.Parish}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding:35px 40px;color:#333;">
              <p style="font-size:16px;margin-top:0;">Dear <strong>{{.Name}}</strong>,</p>
              {{template "content" .}}
              <p style="margin-top:30px;">With prayers,<br/>{{.Parish}}</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

const (
	welcomeContent = `{{define "content"}}
<p>We warmly welcome you to the <strong>{{.Parish}}</strong> community. Your account has been created with the following email address:</p>
<p style="background:#f8fafc;border-left:4px solid #1e3a8a;padding:12px 15px;">{{.Email}}</p>
<p>You may now log in to access church services, bookings, and announcements.</p>
{{end}}`

	otpContent = `{{define "content"}}
<p>{{.Intro}}</p>
<p style="font-size:28px;letter-spacing:6px;text-align:center;color:#1e3a8a;"><strong>{{.Otp}}</strong></p>
<p>This code is valid for {{.Validity}}. If you did not request it, please ignore this email.</p>
{{end}}`

	decisionContent = `{{define "content"}}
{{if .Approved}}
<p>Your <strong>{{.Subject}}</strong> has been approved.</p>
<div style="background:#f0fdf4;padding:12px;border-left:4px solid #16a34a;margin:20px 0;"><strong>Status:</strong> Approved</div>
<p>Please log in and complete the payment to proceed.</p>
{{else}}
<p>We regret to inform you that your <strong>{{.Subject}}</strong> has been rejected.</p>
<div style="background:#fef2f2;padding:12px;border-left:4px solid #dc2626;margin:20px 0;"><strong>Status:</strong> Rejected</div>
{{end}}
{{if .Remark}}<p><strong>Remark:</strong> {{.Remark}}</p>{{end}}
{{end}}`

	paymentContent = `{{define "content"}}
<p>Your payment for the {{.Subject}} has been successfully received.</p>
<div style="background:#f0fdf4;padding:12px;border-left:4px solid #16a34a;margin:20px 0;"><strong>Payment Status:</strong> Completed</div>
<table width="100%" style="background:#f8fafc;padding:10px;border-radius:6px;">
  <tr><td><strong>Payment ID</strong></td><td>{{.PaymentId}}</td></tr>
  <tr><td><strong>Payment Date</strong></td><td>{{.PaidAt}}</td></tr>
</table>
{{if .ScheduledOn}}<p style="margin-top:20px;">Your mass is scheduled on {{.ScheduledOn}}.</p>{{end}}
{{end}}`

	deliveredContent = `{{define "content"}}
<p>Your {{.Subject}} is ready. You can download it from your account.</p>
{{end}}`
)

var templates = map[string]*template.Template{
	"welcome":   parse(welcomeContent),
	"otp":       parse(otpContent),
	"decision":  parse(decisionContent),
	"payment":   parse(paymentContent),
	"delivered": parse(deliveredContent),
}

func parse(content string) *template.Template {
	return template.Must(template.Must(template.New("layout").Parse(layout)).Parse(content))
}

type view struct {
	Parish      string
	Name        string
	Email       string
	Intro       string
	Otp         string
	Validity    string
	Subject     string
	Approved    bool
	Remark      string
	PaymentId   string
	PaidAt      string
	ScheduledOn string
}

func render(name string, v view) string {
	v.Parish = ParishName
	var buf bytes.Buffer
	// templates are static and views are plain strings; Execute cannot fail
	_ = templates[name].Execute(&buf, v)
	return buf.String()
}

func WelcomeMail(name, email string) Message {
	return Message{
		To:      email,
		Subject: "Welcome to " + ParishName,
		HTML:    render("welcome", view{Name: name, Email: email}),
	}
}

func VerifyOtpMail(name, email, otp string) Message {
	return Message{
		To:      email,
		Subject: "Account Verification – One Time Password",
		HTML: render("otp", view{
			Name:     name,
			Intro:    "Use the following one time password to verify your account:",
			Otp:      otp,
			Validity: "24 hours",
		}),
	}
}

func ResetOtpMail(name, email, otp string) Message {
	return Message{
		To:      email,
		Subject: "Password Reset – One Time Password",
		HTML: render("otp", view{
			Name:     name,
			Intro:    "Use the following one time password to reset your password:",
			Otp:      otp,
			Validity: "15 minutes",
		}),
	}
}

// DecisionMail covers both approval and rejection. what is the noun shown to
// the reader, e.g. "certificate request".
func DecisionMail(name, email, what string, approved bool, remark string) Message {
	return Message{
		To:      email,
		Subject: "Update on Your " + titleCase(what),
		HTML: render("decision", view{
			Name:     name,
			Subject:  what,
			Approved: approved,
			Remark:   remark,
		}),
	}
}

// PaymentMail confirms a payment. scheduledOn is only set for mass bookings.
func PaymentMail(name, email, what, paymentId string, paidAt time.Time, scheduledOn *time.Time) Message {
	v := view{
		Name:      name,
		Subject:   what,
		PaymentId: paymentId,
		PaidAt:    paidAt.Format("02 Jan 2006, 15:04"),
	}
	if scheduledOn != nil {
		v.ScheduledOn = scheduledOn.Format("Monday, 02 January 2006")
	}
	return Message{
		To:      email,
		Subject: "Payment Confirmation – " + titleCase(what),
		HTML:    render("payment", v),
	}
}

func DeliveredMail(name, email, what string) Message {
	return Message{
		To:      email,
		Subject: "Your " + titleCase(what) + " Is Ready",
		HTML:    render("delivered", view{Name: name, Subject: what}),
	}
}

func titleCase(s string) string {
	out := []byte(s)
	upper := true
	for i, c := range out {
		if upper && c >= 'a' && c <= 'z' {
			out[i] = c - 'a' + 'A'
		}
		upper = c == ' '
	}
	return string(out)
}
