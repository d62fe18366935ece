package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	"github.com/oksasatya/alc-backend/internal/domain/repository"
)

type contactDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Subject   string    `bson:"subject"`
	Message   string    `bson:"message"`
	FileURL   string    `bson:"file_url,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

type ContactRepository struct {
	coll *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{coll: db.Collection(contactsCollection)}
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.ContactSubmission) error {
	_, err := r.coll.InsertOne(ctx, contactDoc{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Subject:   string(c.Subject),
		Message:   c.Message,
		FileURL:   c.FileURL,
		CreatedAt: c.CreatedAt,
	})
	return mapErr(err)
}

var _ repository.ContactRepository = (*ContactRepository)(nil)
