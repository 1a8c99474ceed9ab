package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aereovisao/portal-api/internal/core/domain"
)

const postCollection = "posts"

type MongoPostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{coll: db.Collection(postCollection)}
}

type mongoPost struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Titulo     string             `bson:"titulo"`
	Conteudo   string             `bson:"conteudo"`
	Categoria  string             `bson:"categoria"`
	Imagem     string             `bson:"imagem,omitempty"`
	AuthorID   string             `bson:"author_id"`
	AuthorName string             `bson:"author_name"`
	CreatedAt  int64              `bson:"created_at"`
	UpdatedAt  int64              `bson:"updated_at"`
}

func (mp mongoPost) toDomain() *domain.Post {
	return &domain.Post{
		ID:         mp.ID.Hex(),
		Titulo:     mp.Titulo,
		Conteudo:   mp.Conteudo,
		Categoria:  domain.Category(mp.Categoria),
		Imagem:     mp.Imagem,
		AuthorID:   mp.AuthorID,
		AuthorName: mp.AuthorName,
		CreatedAt:  unixToTime(mp.CreatedAt),
		UpdatedAt:  unixToTime(mp.UpdatedAt),
	}
}

func (r *MongoPostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	doc := mongoPost{
		Titulo:     post.Titulo,
		Conteudo:   post.Conteudo,
		Categoria:  string(post.Categoria),
		Imagem:     post.Imagem,
		AuthorID:   post.AuthorID,
		AuthorName: post.AuthorName,
		CreatedAt:  post.CreatedAt.Unix(),
		UpdatedAt:  post.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *MongoPostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	var mp mongoPost
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *MongoPostRepository) List(ctx context.Context, category *domain.Category) ([]domain.Post, error) {
	filter := bson.M{}
	if category != nil {
		filter["categoria"] = string(*category)
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var posts []domain.Post
	for cur.Next(ctx) {
		var mp mongoPost
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, *mp.toDomain())
	}
	return posts, cur.Err()
}

func (r *MongoPostRepository) Update(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(post.ID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	set := bson.M{
		"titulo":     post.Titulo,
		"conteudo":   post.Conteudo,
		"categoria":  string(post.Categoria),
		"imagem":     post.Imagem,
		"updated_at": post.UpdatedAt.Unix(),
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

func (r *MongoPostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}
