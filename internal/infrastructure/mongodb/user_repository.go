package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	"github.com/oksasatya/alc-backend/internal/domain/repository"
)

type userDoc struct {
	ID               string     `bson:"_id"`
	MembershipID     string     `bson:"membership_id"`
	Email            string     `bson:"email"`
	Password         string     `bson:"password"`
	Name             string     `bson:"name"`
	Occupation       string     `bson:"occupation"`
	ProfileImageURL  string     `bson:"profile_image_url,omitempty"`
	IsVerified       bool       `bson:"is_verified"`
	ResetToken       string     `bson:"reset_token,omitempty"`
	ResetTokenExpiry *time.Time `bson:"reset_token_expiry,omitempty"`
	CreatedAt        time.Time  `bson:"created_at"`
	UpdatedAt        time.Time  `bson:"updated_at"`
}

func toUserDoc(u *entity.User) userDoc {
	return userDoc{
		ID:               u.ID,
		MembershipID:     u.MembershipID,
		Email:            u.Email,
		Password:         u.Password,
		Name:             u.Name,
		Occupation:       string(u.Occupation),
		ProfileImageURL:  u.ProfileImageURL,
		IsVerified:       u.IsVerified,
		ResetToken:       u.ResetToken,
		ResetTokenExpiry: u.ResetTokenExpiry,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (d userDoc) toEntity() *entity.User {
	return &entity.User{
		ID:               d.ID,
		MembershipID:     d.MembershipID,
		Email:            d.Email,
		Password:         d.Password,
		Name:             d.Name,
		Occupation:       entity.Occupation(d.Occupation),
		ProfileImageURL:  d.ProfileImageURL,
		IsVerified:       d.IsVerified,
		ResetToken:       d.ResetToken,
		ResetTokenExpiry: d.ResetTokenExpiry,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	_, err := r.coll.InsertOne(ctx, toUserDoc(u))
	return mapErr(err)
}

// Update replaces the whole document so cleared reset tokens disappear.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = time.Now().UTC()
	}
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": u.ID}, toUserDoc(u))
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"email": email}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	switch mapErr(err) {
	case nil:
		return true, nil
	case repository.ErrNotFound:
		return false, nil
	}
	return false, err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) GetByMembershipID(ctx context.Context, membershipID string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"membership_id": membershipID})
}

func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"reset_token": token})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var d userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, mapErr(err)
	}
	return d.toEntity(), nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
