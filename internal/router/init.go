package router

import (
	"github.com/oksasatya/alc-backend/internal/application"
	"github.com/oksasatya/alc-backend/internal/container"
	"github.com/oksasatya/alc-backend/internal/infrastructure/redisstore"
	handlers "github.com/oksasatya/alc-backend/internal/interface/http"
	"github.com/oksasatya/alc-backend/internal/router/modules"
	"github.com/oksasatya/alc-backend/pkg/helpers"
	"github.com/oksasatya/alc-backend/pkg/mailer/templates"
)

type MemberModuleDeps struct {
	Service  *application.Service
	Resets   *application.PasswordResetService
	Sessions *redisstore.SessionStore
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
}

func brand() templates.Brand {
	cfg := container.GetConfig()
	return templates.Brand{
		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		AppName:        cfg.AppName,
		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
		PrivacyURL:     cfg.PrivacyURL,
	}
}

func buildMemberDeps() MemberModuleDeps {
	cfg := container.GetConfig()
	log := container.GetLogger()
	stores := container.GetStores()
	rdb := container.GetRedis()
	sessions := redisstore.NewSessionStore(rdb)

	opts := application.DefaultOptions()
	opts.OTPTTL = cfg.OTPTTL
	opts.MembershipPrefix = cfg.MembershipPrefix
	opts.MembershipSequence = cfg.MembershipSequence
	opts.CollaboratorTimeout = cfg.CollaboratorTimeout

	svc := &application.Service{
		Users:     stores.Users,
		Pending:   redisstore.NewPendingStore(rdb, cfg.OTPTTL),
		Sequences: stores.Sequences,
		Sessions:  sessions,
		Audit:     stores.Audit,
		Hasher:    helpers.BcryptHasher{},
		Mail:      container.GetMailer(),
		Files:     container.GetFileStore(),
		Index:     container.GetIndex(),
		Resizer:   container.GetResizer(),
		JWT:       container.GetJWT(),
		Brand:     brand(),
		Logger:    log,
		Opts:      opts,
	}
	resets := &application.PasswordResetService{
		Users:    stores.Users,
		Hasher:   svc.Hasher,
		Mail:     container.GetMailer(),
		Brand:    svc.Brand,
		Logger:   log,
		Timeout:  cfg.CollaboratorTimeout,
		ResetURL: cfg.ResetPasswordURL,
		TokenTTL: cfg.ResetTokenTTL,
	}

	return MemberModuleDeps{
		Service:  svc,
		Resets:   resets,
		Sessions: sessions,
		Auth:     handlers.NewAuthHandler(svc, resets, log, cfg.CookieDomain, cfg.CookieSecure),
		Users:    handlers.NewUserHandler(svc, log),
	}
}

func buildContactHandler() *handlers.ContactHandler {
	cfg := container.GetConfig()
	svc := &application.ContactService{
		Contacts:   container.GetStores().Contacts,
		Files:      container.GetFileStore(),
		Sheets:     container.GetSheets(),
		Mail:       container.GetMailer(),
		Brand:      brand(),
		AdminEmail: cfg.AdminEmail,
		Logger:     container.GetLogger(),
		Timeout:    cfg.CollaboratorTimeout,
	}
	return handlers.NewContactHandler(svc, container.GetLogger())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildMemberDeps()
	rdb := container.GetRedis()
	jwt := container.GetJWT()

	r.Add(modules.NewAuthModule(deps.Auth, deps.Sessions, jwt, rdb))
	r.Add(modules.NewUserModule(deps.Users, deps.Sessions, jwt, rdb))
	r.Add(modules.NewContactModule(buildContactHandler(), rdb))
	if container.GetConfig().MetricsEnabled {
		r.Add(modules.NewDebugModule(rdb))
	}
}
