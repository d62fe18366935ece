package entity

import (
	"strings"
	"time"
)

// Occupation is the closed set of member occupations.
type Occupation string

const (
	OccupationStudent      Occupation = "STUDENT"
	OccupationProfessional Occupation = "PROFESSIONAL"
	OccupationAcademic     Occupation = "ACADEMIC"
	OccupationArtist       Occupation = "ARTIST"
	OccupationOther        Occupation = "OTHER"
)

// ParseOccupation accepts any casing of a known occupation.
func ParseOccupation(s string) (Occupation, bool) {
	switch o := Occupation(strings.ToUpper(strings.TrimSpace(s))); o {
	case OccupationStudent, OccupationProfessional, OccupationAcademic, OccupationArtist, OccupationOther:
		return o, true
	}
	return "", false
}

// User is the aggregate root for the membership domain.
// Passwords are stored as bcrypt hashes in Password field.
//
// MembershipID is assigned once, when the email is verified, and never changes.
type User struct {
	ID               string
	MembershipID     string
	Email            string
	Password         string
	Name             string
	Occupation       Occupation
	ProfileImageURL  string
	IsVerified       bool
	ResetToken       string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NormalizeEmail is the canonical form used as a lookup key everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
