package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/google/uuid"

	domainguest "hotelier/internal/domain/guest"
	"hotelier/internal/domain/shared/fault"
)

type GuestRepository struct {
	col *mongo.Collection
}

func NewGuestRepository(db *mongo.Database) *GuestRepository {
	col := db.Collection("agg_guest")
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &GuestRepository{col: col}
}

func (r *GuestRepository) ByID(ctx context.Context, id domainguest.GuestID) (*domainguest.Guest, error) {
	var doc guestDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainguest.ErrGuestNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *GuestRepository) ByEmail(ctx context.Context, email string) (*domainguest.Guest, error) {
	var doc guestDocument
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainguest.ErrGuestNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *GuestRepository) Save(ctx context.Context, g *domainguest.Guest) error {
	if g.ID == "" {
		g.ID = domainguest.GuestID(uuid.NewString())
	}
	doc := newGuestDocument(g)
	opts := options.Update().SetUpsert(true)
	if _, err := r.col.UpdateByID(ctx, doc.ID, bson.M{"$set": doc}, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fault.Conflictf("mongo: guest email %s already registered", doc.Email)
		}
		return err
	}
	return nil
}

type guestDocument struct {
	ID        string `bson:"_id"`
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
	Email     string `bson:"email"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func newGuestDocument(g *domainguest.Guest) guestDocument {
	return guestDocument{
		ID:        string(g.ID),
		FirstName: g.FirstName,
		LastName:  g.LastName,
		Email:     strings.ToLower(g.Email),
		CreatedAt: g.CreatedAt.UnixMilli(),
		UpdatedAt: g.UpdatedAt.UnixMilli(),
	}
}

func (d guestDocument) toAggregate() *domainguest.Guest {
	return &domainguest.Guest{
		ID:        domainguest.GuestID(d.ID),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
	}
}
