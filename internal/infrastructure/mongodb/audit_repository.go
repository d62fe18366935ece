package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	"github.com/oksasatya/alc-backend/internal/domain/repository"
)

type auditDoc struct {
	UserID    string         `bson:"user_id,omitempty"`
	Email     string         `bson:"email,omitempty"`
	Action    string         `bson:"action"`
	IP        string         `bson:"ip,omitempty"`
	UserAgent string         `bson:"user_agent,omitempty"`
	Metadata  map[string]any `bson:"metadata,omitempty"`
	CreatedAt time.Time      `bson:"created_at"`
}

type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

func (r *AuditRepository) Insert(ctx context.Context, e entity.AuditEntry) error {
	_, err := r.coll.InsertOne(ctx, auditDoc(e))
	return err
}

var _ repository.AuditRepository = (*AuditRepository)(nil)
