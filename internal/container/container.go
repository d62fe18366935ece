package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alc-backend/config"
	"github.com/oksasatya/alc-backend/internal/application"
	repo "github.com/oksasatya/alc-backend/internal/domain/repository"
	"github.com/oksasatya/alc-backend/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router auto-wires modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	jwtManager  *helpers.JWTManager

	stores *Stores

	files   application.FileStore
	mail    application.EmailSender
	sheets  application.SheetAppender
	index   application.UserIndex
	resizer application.ImageResizer
)

// Stores are the durable repositories of the selected DB driver.
type Stores struct {
	Users     repo.UserRepository
	Sequences repo.SequenceAllocator
	Contacts  repo.ContactRepository
	Audit     repo.AuditRepository
}

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }
func SetStores(s *Stores)          { stores = s }
func GetStores() *Stores           { return stores }

func SetFileStore(f application.FileStore)  { files = f }
func GetFileStore() application.FileStore   { return files }
func SetMailer(m application.EmailSender)   { mail = m }
func GetMailer() application.EmailSender    { return mail }
func SetSheets(s application.SheetAppender) { sheets = s }
func GetSheets() application.SheetAppender  { return sheets }
func SetIndex(i application.UserIndex)      { index = i }
func GetIndex() application.UserIndex       { return index }
func SetResizer(r application.ImageResizer) { resizer = r }
func GetResizer() application.ImageResizer  { return resizer }
