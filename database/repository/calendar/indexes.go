// FILE: database/repository/calendar/indexes.go
package calendarRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the reservations collection.
func (r *MongoCalendarIndex) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on the reservation token
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_token"),
		},
		// Compound index for the overlap query (primary access pattern)
		{
			Keys:    bson.D{{Key: "staff_id", Value: 1}, {Key: "date", Value: 1}, {Key: "released", Value: 1}},
			Options: options.Index().SetName("staff_date_released_idx"),
		},
		{
			Keys:    bson.D{{Key: "staff_id", Value: 1}, {Key: "date", Value: 1}, {Key: "start_minute", Value: 1}, {Key: "end_minute", Value: 1}},
			Options: options.Index().SetName("staff_date_range_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}
	return nil
}
