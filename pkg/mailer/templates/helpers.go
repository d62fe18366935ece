package templates

import (
	"fmt"
	"strings"
	"time"
)

// Brand carries the organisation details shown in every email.
type Brand struct {
	CompanyName    string
	CompanyAddress string
	AppName        string
	LogoURL        string
	SupportURL     string
	PrivacyURL     string
}

// Option pattern
type Option func(*EmailData)

func WithIP(ip string) Option        { return func(d *EmailData) { d.IP = ip } }
func WithUserAgent(ua string) Option { return func(d *EmailData) { d.UserAgent = ua } }
func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04 MST") }
}
func WithResetURL(url string) Option    { return func(d *EmailData) { d.ResetURL = url } }
func WithCode(code string) Option       { return func(d *EmailData) { d.Code = code } }
func WithMembershipID(id string) Option { return func(d *EmailData) { d.MembershipID = id } }
func WithFileURL(url string) Option     { return func(d *EmailData) { d.FileURL = url } }
func WithMessage(msg string) Option     { return func(d *EmailData) { d.Message = msg } }
func WithSender(name, email string) Option {
	return func(d *EmailData) {
		d.SenderName = name
		d.SenderEmail = email
	}
}
func WithSubject(subject string) Option {
	return func(d *EmailData) {
		d.Subject = subject
		d.SubjectLabel = SubjectLabel(subject)
	}
}

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) { d.ExpiresAtText = t.UTC().Format("02 January 2006, 15:04 MST") }
}

func WithExpiresIn(dur time.Duration) Option {
	return func(d *EmailData) {
		d.ExpiresInText = HumanDuration(dur)
		d.ExpiresAtText = time.Now().Add(dur).UTC().Format("02 January 2006, 15:04 MST")
	}
}

// HumanDuration renders whole minutes/hours, e.g. "10 minutes" or "1 hour".
func HumanDuration(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		return plural(int(d/time.Hour), "hour")
	}
	m := int(d.Round(time.Minute) / time.Minute)
	if m < 1 {
		m = 1
	}
	return plural(m, "minute")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// SubjectLabel turns BLOG_SUBMISSION into "Blog Submission".
func SubjectLabel(subject string) string {
	words := strings.Fields(strings.ReplaceAll(strings.ToLower(subject), "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// NewEmailData fills the common fields from the brand, then applies options.
func NewEmailData(b Brand, typ string, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:  name,
		Email: email,
		Type:  typ,

		CompanyName:    b.CompanyName,
		CompanyAddress: b.CompanyAddress,
		AppName:        b.AppName,

		LogoURL:    b.LogoURL,
		SupportURL: b.SupportURL,
		PrivacyURL: b.PrivacyURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
