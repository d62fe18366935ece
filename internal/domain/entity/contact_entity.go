package entity

import "time"

// ContactSubject classifies a contact-form submission.
type ContactSubject string

const (
	SubjectBlogSubmission ContactSubject = "BLOG_SUBMISSION"
	SubjectCollaboration  ContactSubject = "COLLABORATION"
	SubjectRemarks        ContactSubject = "REMARKS"
	SubjectOthers         ContactSubject = "OTHERS"
)

func ParseContactSubject(s string) (ContactSubject, bool) {
	switch cs := ContactSubject(s); cs {
	case SubjectBlogSubmission, SubjectCollaboration, SubjectRemarks, SubjectOthers:
		return cs, true
	}
	return "", false
}

// ContactSubmission is a persisted contact-form entry.
type ContactSubmission struct {
	ID        string
	Name      string
	Email     string
	Subject   ContactSubject
	Message   string
	FileURL   string
	CreatedAt time.Time
}
