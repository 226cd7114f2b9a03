package calendarRepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"salonbook/database"
	"salonbook/models"
)

// MongoCalendarIndex persists reservations in a "reservations"
// collection. Linearizability per staff/date is provided by a striped
// in-process lock around the check-then-insert, with the overlap check
// and insert additionally wrapped in a Mongo session so a concurrent
// writer from another process cannot slip between them.
type MongoCalendarIndex struct {
	coll *mongo.Collection

	mu       sync.Mutex
	keyLocks map[string]*sync.Mutex
}

type reservationDoc struct {
	Token       string `bson:"token"`
	StaffID     string `bson:"staff_id"`
	Date        string `bson:"date"`
	StartMinute int    `bson:"start_minute"`
	EndMinute   int    `bson:"end_minute"`
	Released    bool   `bson:"released"`
}

func NewMongoCalendarIndex() *MongoCalendarIndex {
	return &MongoCalendarIndex{
		coll:     database.DB().Collection("reservations"),
		keyLocks: make(map[string]*sync.Mutex),
	}
}

func (r *MongoCalendarIndex) lockFor(staffID, date string) *sync.Mutex {
	key := staffID + "|" + date
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.keyLocks[key]
	if !ok {
		l = &sync.Mutex{}
		r.keyLocks[key] = l
	}
	return l
}

func (r *MongoCalendarIndex) Reserve(ctx context.Context, staffID, date string, startMinute, committedMinutes int) (string, error) {
	l := r.lockFor(staffID, date)
	l.Lock()
	defer l.Unlock()

	endMinute := startMinute + committedMinutes
	doc := reservationDoc{
		Token:       uuid.New().String(),
		StaffID:     staffID,
		Date:        date,
		StartMinute: startMinute,
		EndMinute:   endMinute,
	}

	sess, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return "", fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		// Half-open overlap: existing.start < want.end && want.start < existing.end.
		filter := bson.M{
			"staff_id":     staffID,
			"date":         date,
			"released":     false,
			"start_minute": bson.M{"$lt": endMinute},
			"end_minute":   bson.M{"$gt": startMinute},
		}
		n, err := r.coll.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if n > 0 {
			return ErrConflict
		}
		if _, err := r.coll.InsertOne(sc, doc); err != nil {
			return fmt.Errorf("insert reservation failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrConflict {
			return "", ErrConflict
		}
		return "", fmt.Errorf("reservation transaction failed: %w", err)
	}

	return doc.Token, nil
}

func (r *MongoCalendarIndex) Release(ctx context.Context, token string) error {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Matching zero documents is fine: release is idempotent.
	_, err := r.coll.UpdateOne(cctx,
		bson.M{"token": token, "released": false},
		bson.M{"$set": bson.M{"released": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to release reservation %s: %w", token, err)
	}
	return nil
}

func (r *MongoCalendarIndex) Committed(ctx context.Context, staffID, date string) ([]models.Range, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(cctx, bson.M{
		"staff_id": staffID,
		"date":     date,
		"released": false,
	})
	if err != nil {
		return nil, fmt.Errorf("error fetching reservations for staff %s: %w", staffID, err)
	}
	defer cursor.Close(cctx)

	var docs []reservationDoc
	if err := cursor.All(cctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}

	ranges := make([]models.Range, 0, len(docs))
	for _, d := range docs {
		ranges = append(ranges, models.Range{StartMinute: d.StartMinute, EndMinute: d.EndMinute})
	}
	return ranges, nil
}
