package container

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/alc-backend/config"
	"github.com/oksasatya/alc-backend/internal/application"
	"github.com/oksasatya/alc-backend/internal/infrastructure/mongodb"
	"github.com/oksasatya/alc-backend/internal/infrastructure/mq"
	pginfra "github.com/oksasatya/alc-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/alc-backend/internal/infrastructure/search"
	"github.com/oksasatya/alc-backend/internal/infrastructure/sheets"
	"github.com/oksasatya/alc-backend/internal/infrastructure/storage"
	"github.com/oksasatya/alc-backend/pkg/helpers"
	"github.com/oksasatya/alc-backend/pkg/imaging"
	"github.com/oksasatya/alc-backend/pkg/mailer"
)

// Closer releases what a constructor opened. Never nil.
type Closer func()

// Bootstrap opens every backend the API needs and publishes it to the container.
func Bootstrap(ctx context.Context, c *config.Config, log *logrus.Logger) (Closer, error) {
	var closers []Closer
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	SetConfig(c)
	SetLogger(log)
	SetJWT(helpers.NewJWTManager(c.JWTAccessSecret, c.JWTRefreshSecret, c.AccessTTL, c.RefreshTTL))

	st, closeStores, err := OpenStores(ctx, c, log)
	if err != nil {
		return nil, err
	}
	closers = append(closers, closeStores)
	SetStores(st)

	rdb, err := helpers.OpenRedis(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB)
	if err != nil {
		closeAll()
		return nil, err
	}
	closers = append(closers, func() { _ = rdb.Close() })
	SetRedis(rdb)

	fs, closeFiles, err := OpenFileStore(ctx, c)
	if err != nil {
		closeAll()
		return nil, err
	}
	closers = append(closers, closeFiles)
	SetFileStore(fs)

	sender, closeMail, err := OpenMailer(ctx, c, log)
	if err != nil {
		closeAll()
		return nil, err
	}
	closers = append(closers, closeMail)
	SetMailer(sender)

	if c.SheetsSpreadsheetID != "" {
		app, err := sheets.NewAppender(ctx, c.SheetsSpreadsheetID, c.SheetsRange, c.SheetsCredentialsJSON)
		if err != nil {
			log.WithError(err).Warn("sheets disabled: client init failed")
		} else {
			SetSheets(app)
		}
	}

	if addrs := c.ESAddrs(); len(addrs) > 0 {
		es, err := search.NewESClient(addrs, c.ElasticsearchUser, c.ElasticsearchPass)
		if err != nil {
			log.WithError(err).Warn("search disabled: client init failed")
		} else {
			SetIndex(search.NewMemberIndex(es, c.ESUsersIndex))
		}
	}

	if c.AvatarWidth > 0 {
		SetResizer(imaging.NewResizer(c.AvatarWidth))
	}

	return closeAll, nil
}

// OpenStores connects the durable store selected by DB_DRIVER.
func OpenStores(ctx context.Context, c *config.Config, log *logrus.Logger) (*Stores, Closer, error) {
	switch c.DBDriver {
	case "mongo", "mongodb":
		client, err := mongodb.Connect(ctx, c.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		db := client.Database(c.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		log.WithField("database", c.MongoDatabase).Info("using mongodb store")
		return &Stores{
				Users:     mongodb.NewUserRepository(db),
				Sequences: mongodb.NewSequenceAllocator(db),
				Contacts:  mongodb.NewContactRepository(db),
				Audit:     mongodb.NewAuditRepository(db),
			}, func() {
				_ = client.Disconnect(context.Background())
			}, nil
	case "postgres", "":
		pool, err := pginfra.NewPool(ctx, c.PostgresDSN(), c.DBMaxConns, c.DBMinConns, c.DBMaxConnLife)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		db := pginfra.OpenDB(pool)
		log.WithField("database", c.DBName).Info("using postgres store")
		return &Stores{
				Users:     pginfra.NewUserRepository(db),
				Sequences: pginfra.NewSequenceAllocator(db),
				Contacts:  pginfra.NewContactRepository(db),
				Audit:     pginfra.NewAuditRepository(db),
			}, func() {
				_ = db.Close()
				pool.Close()
			}, nil
	}
	return nil, nil, fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
}

// OpenFileStore builds the object store selected by STORAGE_DRIVER.
func OpenFileStore(ctx context.Context, c *config.Config) (*storage.FileStore, Closer, error) {
	switch c.StorageDriver {
	case "minio":
		mc, err := storage.NewMinioClient(storage.MinioConfig{
			Endpoint:  c.MinioEndpoint,
			AccessKey: c.MinioAccessKey,
			SecretKey: c.MinioSecretKey,
			Bucket:    c.MinioBucket,
			UseSSL:    c.MinioUseSSL,
			PublicURL: c.MinioPublicURL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("init minio: %w", err)
		}
		fs := storage.NewFileStore(mc)
		if err := fs.EnsureBucket(ctx); err != nil {
			return nil, nil, fmt.Errorf("ensure bucket: %w", err)
		}
		return fs, func() {}, nil
	case "gcs", "":
		gc, err := storage.NewGCSClient(ctx, c.GCSBucket, c.GCSProjectID, c.GCSCredentialsJSONPath)
		if err != nil {
			return nil, nil, fmt.Errorf("init gcs: %w", err)
		}
		return storage.NewFileStore(gc), func() { _ = gc.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
}

// OpenMailer picks the email sender: logging only when sending is disabled,
// the queue when MAIL_DELIVERY=queue, otherwise Mailgun directly.
func OpenMailer(ctx context.Context, c *config.Config, log *logrus.Logger) (application.EmailSender, Closer, error) {
	if !c.MailSendEnabled {
		return &mailer.LogSender{Log: log}, func() {}, nil
	}
	if c.MailDelivery == "queue" {
		q, err := OpenMQ(ctx, c)
		if err != nil {
			return nil, nil, err
		}
		return mailer.NewQueueSender(q, c.RabbitMQEmailQueue), func() { _ = q.Close() }, nil
	}
	if c.MailgunDomain == "" || c.MailgunAPIKey == "" || c.MailgunSender == "" {
		return nil, nil, errors.New("mailgun not configured")
	}
	return mailer.NewMailgun(c.MailgunDomain, c.MailgunAPIKey, c.MailgunSender), func() {}, nil
}

// OpenMQ connects the broker selected by MQ_DRIVER.
func OpenMQ(ctx context.Context, c *config.Config) (*mq.MQ, error) {
	switch c.MQDriver {
	case "pubsub":
		b, err := mq.NewPubSubClient(ctx, mq.PubSubConfig{
			ProjectID:       c.PubSubProjectID,
			CredentialsFile: c.PubSubCredentialsJSON,
		})
		if err != nil {
			return nil, fmt.Errorf("init pubsub: %w", err)
		}
		return mq.New(b), nil
	case "rabbitmq", "":
		b, err := mq.NewRabbitMQClient(mq.RabbitMQConfig{URL: c.RabbitMQURL, PrefetchCount: 16})
		if err != nil {
			return nil, fmt.Errorf("init rabbitmq: %w", err)
		}
		return mq.New(b), nil
	}
	return nil, fmt.Errorf("unknown MQ_DRIVER %q", c.MQDriver)
}
