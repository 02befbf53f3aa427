package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainguest "hotelier/internal/domain/guest"
	domainreservation "hotelier/internal/domain/reservation"
	domainroom "hotelier/internal/domain/room"
	domainrange "hotelier/internal/domain/shared/daterange"
	"hotelier/internal/domain/shared/fault"
	"hotelier/internal/domain/shared/money"

	"github.com/google/uuid"
)

var ErrConcurrentUpdate = fault.Conflictf("mongo: concurrent update detected")

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	col := db.Collection("agg_reservation")
	idx := mongo.IndexModel{Keys: bson.D{{Key: "room", Value: 1}, {Key: "range.check_in", Value: 1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &ReservationRepository{col: col}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainreservation.ErrReservationNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *ReservationRepository) ForRoom(ctx context.Context, number domainroom.Number) ([]*domainreservation.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "range.check_in", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"room": int(number)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var result []*domainreservation.Reservation
	for cursor.Next(ctx) {
		var doc reservationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		agg, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	return result, cursor.Err()
}

// Save inserts a new reservation, assigning identity when blank.
func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	if res.ID == "" {
		res.ID = domainreservation.ReservationID(uuid.NewString())
	}
	res.Version = 1
	doc, err := newReservationDocument(res)
	if err != nil {
		return err
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fault.Conflictf("mongo: reservation %s already exists", res.ID)
		}
		return err
	}
	return nil
}

// Update replaces the document, using the version as an optimistic filter.
func (r *ReservationRepository) Update(ctx context.Context, res *domainreservation.Reservation) error {
	doc, err := newReservationDocument(res)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": doc.ID, "version": res.Version}
	doc.Version = res.Version + 1
	result, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrConcurrentUpdate
	}
	res.Version = doc.Version
	return nil
}

type reservationDocument struct {
	ID           string                `bson:"_id"`
	Room         int                   `bson:"room"`
	GuestID      string                `bson:"guest_id"`
	Range        rangeDocument         `bson:"range"`
	Status       string                `bson:"status"`
	AddOns       []addOnDocument       `bson:"add_ons"`
	Cancellation *cancellationDocument `bson:"cancellation,omitempty"`
	CreatedAt    int64                 `bson:"created_at"`
	UpdatedAt    int64                 `bson:"updated_at"`
	Version      int64                 `bson:"version"`
}

type rangeDocument struct {
	CheckIn  int64 `bson:"check_in"`
	CheckOut int64 `bson:"check_out"`
}

type addOnDocument struct {
	Kind           string `bson:"kind"`
	DailyRateCents int64  `bson:"daily_rate_cents"`
	Days           int    `bson:"days"`
}

type cancellationDocument struct {
	Initiator string `bson:"initiator"`
	FeeCents  int64  `bson:"fee_cents"`
	Reason    string `bson:"reason"`
	At        int64  `bson:"at"`
}

const (
	addOnKindBreakfast = "breakfast"
	addOnKindParking   = "parking"
)

func newReservationDocument(res *domainreservation.Reservation) (reservationDocument, error) {
	doc := reservationDocument{
		ID:        string(res.ID),
		Room:      int(res.Room),
		GuestID:   string(res.GuestID),
		Range:     rangeDocument{CheckIn: res.Range.CheckIn.UnixMilli(), CheckOut: res.Range.CheckOut.UnixMilli()},
		Status:    string(res.Status),
		AddOns:    make([]addOnDocument, 0, len(res.AddOns)),
		CreatedAt: res.CreatedAt.UnixMilli(),
		UpdatedAt: res.UpdatedAt.UnixMilli(),
		Version:   res.Version,
	}
	for _, addOn := range res.AddOns {
		switch a := addOn.(type) {
		case domainreservation.Breakfast:
			doc.AddOns = append(doc.AddOns, addOnDocument{Kind: addOnKindBreakfast, DailyRateCents: a.DailyRate.Cents, Days: a.Days})
		case domainreservation.Parking:
			doc.AddOns = append(doc.AddOns, addOnDocument{Kind: addOnKindParking, DailyRateCents: a.DailyRate.Cents, Days: a.Days})
		default:
			return reservationDocument{}, fmt.Errorf("mongo: unsupported add-on %T", addOn)
		}
	}
	if res.Cancellation != nil {
		doc.Cancellation = &cancellationDocument{
			Initiator: res.Cancellation.Initiator,
			FeeCents:  res.Cancellation.Fee.Cents,
			Reason:    res.Cancellation.Reason,
			At:        res.Cancellation.At.UnixMilli(),
		}
	}
	return doc, nil
}

func (d reservationDocument) toAggregate() (*domainreservation.Reservation, error) {
	dr := domainrange.DateRange{CheckIn: timestampToTime(d.Range.CheckIn), CheckOut: timestampToTime(d.Range.CheckOut)}
	agg := &domainreservation.Reservation{
		ID:        domainreservation.ReservationID(d.ID),
		Room:      domainroom.Number(d.Room),
		GuestID:   domainguest.GuestID(d.GuestID),
		Range:     dr,
		Status:    domainreservation.Status(d.Status),
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
		Version:   d.Version,
	}
	for _, a := range d.AddOns {
		rate := money.Money{Cents: a.DailyRateCents}
		switch a.Kind {
		case addOnKindBreakfast:
			addOn, err := domainreservation.NewBreakfast(rate, a.Days)
			if err != nil {
				return nil, err
			}
			agg.AddOns = append(agg.AddOns, addOn)
		case addOnKindParking:
			addOn, err := domainreservation.NewParking(rate, a.Days)
			if err != nil {
				return nil, err
			}
			agg.AddOns = append(agg.AddOns, addOn)
		default:
			return nil, fmt.Errorf("mongo: unknown add-on kind %q", a.Kind)
		}
	}
	if d.Cancellation != nil {
		agg.Cancellation = &domainreservation.CancellationRecord{
			Initiator: d.Cancellation.Initiator,
			Fee:       money.Money{Cents: d.Cancellation.FeeCents},
			Reason:    d.Cancellation.Reason,
			At:        timestampToTime(d.Cancellation.At),
		}
	}
	return agg, nil
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
