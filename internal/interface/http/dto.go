package handlers

import (
	"time"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
)

type memberResponse struct {
	ID              string    `json:"id"`
	MembershipID    string    `json:"membership_id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Occupation      string    `json:"occupation"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	Verified        bool      `json:"verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toMemberResponse(u *entity.User) memberResponse {
	return memberResponse{
		ID:              u.ID,
		MembershipID:    u.MembershipID,
		Email:           u.Email,
		Name:            u.Name,
		Occupation:      string(u.Occupation),
		ProfileImageURL: u.ProfileImageURL,
		Verified:        u.IsVerified,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
