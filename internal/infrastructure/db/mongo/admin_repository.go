package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aereovisao/portal-api/internal/core/domain"
)

const adminCollection = "institucional_admins"

type MongoAdminRepository struct {
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *MongoAdminRepository {
	return &MongoAdminRepository{coll: db.Collection(adminCollection)}
}

type mongoAdmin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Nome         string             `bson:"nome"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Ativo        bool               `bson:"ativo"`
	LastLogin    int64              `bson:"last_login,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (ma mongoAdmin) toDomain() *domain.InstitutionalAdmin {
	admin := &domain.InstitutionalAdmin{
		ID:           ma.ID.Hex(),
		Nome:         ma.Nome,
		Email:        ma.Email,
		PasswordHash: ma.PasswordHash,
		Ativo:        ma.Ativo,
		CreatedAt:    unixToTime(ma.CreatedAt),
		UpdatedAt:    unixToTime(ma.UpdatedAt),
	}
	if ma.LastLogin != 0 {
		t := unixToTime(ma.LastLogin)
		admin.LastLogin = &t
	}
	return admin
}

func (r *MongoAdminRepository) Create(ctx context.Context, admin *domain.InstitutionalAdmin) (*domain.InstitutionalAdmin, error) {
	doc := mongoAdmin{
		Nome:         admin.Nome,
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
		Ativo:        admin.Ativo,
		CreatedAt:    admin.CreatedAt.Unix(),
		UpdatedAt:    admin.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAdminExists
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *MongoAdminRepository) FindByEmail(ctx context.Context, email string) (*domain.InstitutionalAdmin, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoAdminRepository) FindByID(ctx context.Context, id string) (*domain.InstitutionalAdmin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAdminNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoAdminRepository) findOne(ctx context.Context, filter bson.M) (*domain.InstitutionalAdmin, error) {
	var ma mongoAdmin
	if err := r.coll.FindOne(ctx, filter).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *MongoAdminRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAdminNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"last_login": at.Unix()}})
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}
