package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/oksasatya/alc-backend/config"
	"github.com/oksasatya/alc-backend/internal/application"
	"github.com/oksasatya/alc-backend/internal/container"
	"github.com/oksasatya/alc-backend/internal/domain/entity"
	repo "github.com/oksasatya/alc-backend/internal/domain/repository"
	"github.com/oksasatya/alc-backend/pkg/helpers"
)

var seedOpts struct {
	email      string
	password   string
	name       string
	occupation string
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a verified demo member if the email is free",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		logger := helpers.NewLogger(cfg.AppName+"-admin", cfg.Env, cfg.LogLevel)
		stores, closeStores, err := container.OpenStores(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer closeStores()

		in := seedInput{
			Email:      seedOpts.email,
			Password:   seedOpts.password,
			Name:       seedOpts.name,
			Occupation: seedOpts.occupation,
			Prefix:     cfg.MembershipPrefix,
			Sequence:   cfg.MembershipSequence,
		}
		u, created, err := seedMember(cmd.Context(), stores.Users, stores.Sequences, helpers.BcryptHasher{}, in)
		if err != nil {
			return err
		}
		if !created {
			fmt.Fprintf(cmd.OutOrStdout(), "member exists: %s %s\n", u.MembershipID, u.Email)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded member: id=%s membership_id=%s email=%s\n", u.ID, u.MembershipID, u.Email)
		return nil
	},
}

type seedInput struct {
	Email, Password, Name, Occupation string
	Prefix, Sequence                  string
}

// seedMember creates a verified member, or returns the existing one.
func seedMember(ctx context.Context, users repo.UserRepository, seq repo.SequenceAllocator, hasher application.PasswordHasher, in seedInput) (*entity.User, bool, error) {
	email := entity.NormalizeEmail(in.Email)
	if existing, err := users.GetByEmail(ctx, email); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, false, err
	}
	if !application.IsPasswordValid(in.Password) {
		return nil, false, application.ErrWeakPassword
	}
	occ, ok := entity.ParseOccupation(in.Occupation)
	if !ok {
		return nil, false, application.ErrInvalidOccupation
	}
	hash, err := hasher.Hash(in.Password)
	if err != nil {
		return nil, false, err
	}
	n, err := seq.Next(ctx, in.Sequence)
	if err != nil {
		return nil, false, fmt.Errorf("allocate membership id: %w", err)
	}
	now := time.Now().UTC()
	u := &entity.User{
		ID:           uuid.NewString(),
		MembershipID: application.FormatMembershipID(in.Prefix, n),
		Email:        email,
		Password:     hash,
		Name:         in.Name,
		Occupation:   occ,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, u); err != nil {
		return nil, false, fmt.Errorf("create member: %w", err)
	}
	return u, true, nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&seedOpts.email, "email", "demo@artlawcommunion.org", "member email")
	seedCmd.Flags().StringVar(&seedOpts.password, "password", "Demo123!", "member password")
	seedCmd.Flags().StringVar(&seedOpts.name, "name", "Demo Member", "display name")
	seedCmd.Flags().StringVar(&seedOpts.occupation, "occupation", "OTHER", "occupation")
}
