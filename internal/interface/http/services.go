package handlers

import (
	"context"

	"github.com/oksasatya/alc-backend/internal/application"
	"github.com/oksasatya/alc-backend/internal/domain/entity"
)

// MemberAuth is the registration and login surface of application.Service.
type MemberAuth interface {
	Register(ctx context.Context, in application.RegisterInput) (string, error)
	ResendOTP(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, email, code string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, application.TokenPair, error)
	LoginWithMembershipID(ctx context.Context, membershipID, password string) (*entity.User, application.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (application.TokenPair, string, error)
	Logout(ctx context.Context, userID string) error
}

type PasswordResetter interface {
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword, confirm string) error
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, in application.UpdateProfileInput) (*entity.User, error)
	SearchMembers(ctx context.Context, q string, size int) ([]map[string]any, error)
}

type ContactSubmitter interface {
	Submit(ctx context.Context, req application.ContactRequest) (*application.ContactResponse, error)
}
