package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainroom "hotelier/internal/domain/room"
	"hotelier/internal/domain/shared/money"
)

type RoomRepository struct {
	col *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{col: db.Collection("agg_room")}
}

func (r *RoomRepository) ByNumber(ctx context.Context, number domainroom.Number) (*domainroom.Room, error) {
	var doc roomDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": int(number)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainroom.ErrRoomNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *RoomRepository) All(ctx context.Context) ([]*domainroom.Room, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var result []*domainroom.Room
	for cursor.Next(ctx) {
		var doc roomDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, doc.toAggregate())
	}
	return result, cursor.Err()
}

func (r *RoomRepository) Save(ctx context.Context, rm *domainroom.Room) error {
	doc := newRoomDocument(rm)
	filter := bson.M{"_id": doc.ID, "version": rm.Version}
	doc.Version = rm.Version + 1
	opts := options.Update().SetUpsert(true)
	result, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	rm.Version = doc.Version
	return nil
}

func (r *RoomRepository) SetOccupancy(ctx context.Context, number domainroom.Number, state domainroom.Occupancy) error {
	update := bson.M{
		"$set": bson.M{"occupancy": string(state)},
		"$inc": bson.M{"version": 1},
	}
	result, err := r.col.UpdateByID(ctx, int(number), update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domainroom.ErrRoomNotFound
	}
	return nil
}

type roomDocument struct {
	ID               int    `bson:"_id"`
	Category         string `bson:"category"`
	NightlyRateCents int64  `bson:"nightly_rate_cents"`
	Occupancy        string `bson:"occupancy"`
	CreatedAt        int64  `bson:"created_at"`
	UpdatedAt        int64  `bson:"updated_at"`
	Version          int64  `bson:"version"`
}

func newRoomDocument(rm *domainroom.Room) roomDocument {
	return roomDocument{
		ID:               int(rm.Number),
		Category:         rm.Category,
		NightlyRateCents: rm.NightlyRate.Cents,
		Occupancy:        string(rm.Occupancy),
		CreatedAt:        rm.CreatedAt.UnixMilli(),
		UpdatedAt:        rm.UpdatedAt.UnixMilli(),
		Version:          rm.Version,
	}
}

func (d roomDocument) toAggregate() *domainroom.Room {
	return &domainroom.Room{
		Number:      domainroom.Number(d.ID),
		Category:    d.Category,
		NightlyRate: money.Money{Cents: d.NightlyRateCents},
		Occupancy:   domainroom.Occupancy(d.Occupancy),
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
		Version:     d.Version,
	}
}
