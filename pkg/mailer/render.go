package mailer

import (
	"fmt"

	"github.com/oksasatya/alc-backend/pkg/mailer/templates"
)

// Resolve fills Subject/Text/HTML from the named template when Template is
// set. An explicit Subject on the job wins over the template subject.
func Resolve(job EmailJob) (EmailJob, error) {
	if job.Template == "" {
		if job.Text == "" && job.HTML == "" {
			return job, fmt.Errorf("email job for %q has no body", job.To)
		}
		return job, nil
	}
	if !templates.Known(job.Template) {
		return job, fmt.Errorf("unknown email template %q", job.Template)
	}
	subj, text, html, err := templates.Render(job.Template, job.Data)
	if err != nil {
		return job, err
	}
	if job.Subject == "" {
		job.Subject = subj
	}
	job.Text = text
	job.HTML = html
	return job, nil
}
