package entity

import "time"

// RegistrationPayload is what a visitor submitted on the sign-up form.
// The password stays in clear text until the email is verified.
type RegistrationPayload struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Password   string     `json:"password"`
	Occupation Occupation `json:"occupation"`
}

// PendingRegistration is an unconfirmed sign-up waiting for its one-time code.
type PendingRegistration struct {
	Code      string              `json:"code"`
	Payload   RegistrationPayload `json:"payload"`
	CreatedAt time.Time           `json:"created_at"`
}
