package application

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	"github.com/oksasatya/alc-backend/internal/metrics"
)

// FileUpload is an in-memory upload taken from a multipart form.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UpdateProfileInput carries optional changes; empty fields are left alone.
type UpdateProfileInput struct {
	Name       string
	Occupation string
	Password   string
	Image      *FileUpload
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	c, cancel := s.bound(ctx)
	defer cancel()
	u, err := s.Users.GetByID(c, userID)
	if err != nil {
		return nil, lookupErr(err, ErrUserNotFound, "load user")
	}
	return u, nil
}

// UpdateProfile applies a partial update. Nothing is persisted when any
// change is rejected or the image upload fails.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	if strings.TrimSpace(in.Occupation) != "" {
		occ, ok := entity.ParseOccupation(in.Occupation)
		if !ok {
			return nil, ErrInvalidOccupation
		}
		u.Occupation = occ
	}
	if in.Password != "" {
		if !IsPasswordValid(in.Password) {
			return nil, ErrWeakPassword
		}
		hash, err := s.Hasher.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.Password = hash
	}
	if in.Image != nil && len(in.Image.Data) > 0 {
		url, err := s.uploadAvatar(ctx, u.ID, in.Image)
		if err != nil {
			return nil, err
		}
		u.ProfileImageURL = url
	}
	u.UpdatedAt = s.now()

	c, cancel := s.bound(ctx)
	err = s.Users.Update(c, u)
	cancel()
	if err != nil {
		return nil, lookupErr(err, ErrUserNotFound, "update user")
	}

	if s.Sessions != nil {
		c, cancel := s.bound(ctx)
		if err := s.Sessions.SyncProfile(c, u.ID, u.Name, u.ProfileImageURL); err != nil {
			s.log().WithError(err).WithField("user_id", u.ID).Warn("session profile sync failed")
		}
		cancel()
	}
	s.indexUser(ctx, u)
	return u, nil
}

func (s *Service) uploadAvatar(ctx context.Context, userID string, img *FileUpload) (string, error) {
	if s.Files == nil {
		return "", newProviderError("file_store", fmt.Errorf("file store not configured"))
	}
	data, contentType := img.Data, img.ContentType
	if s.Resizer != nil {
		resized, err := s.Resizer.Resize(data, contentType)
		if err != nil {
			s.log().WithError(err).WithField("user_id", userID).Debug("avatar resize skipped")
		} else {
			data = resized
		}
	}

	key := newObjectKey("avatars", userID, strings.ToLower(filepath.Ext(img.Filename)))
	c, cancel := s.bound(ctx)
	defer cancel()
	url, err := s.Files.Upload(c, key, data, contentType)
	if err != nil {
		pe := newProviderError("file_store", err)
		metrics.RecordProviderFailure(pe.Provider)
		s.log().WithError(err).WithFields(logrus.Fields{"user_id": userID, "status": pe.StatusCode}).Error("avatar upload failed")
		return "", pe
	}
	return url, nil
}

// SearchMembers queries the member index. Without an index it returns nothing.
func (s *Service) SearchMembers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.Index == nil {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	c, cancel := s.bound(ctx)
	defer cancel()
	hits, err := s.Index.SearchUsers(c, q, size)
	if err != nil {
		return nil, newProviderError("search", err)
	}
	return hits, nil
}
