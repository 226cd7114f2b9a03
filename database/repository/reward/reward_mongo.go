// File: database/repository/reward/reward_mongo.go
package rewardRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoRewardLedger) GetByID(ctx context.Context, id string) (*models.Reward, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rw models.Reward
	err := r.coll.FindOne(cctx, bson.M{"id": id}).Decode(&rw)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching reward %s: %w", id, err)
	}
	return &rw, nil
}

func (r *mongoRewardLedger) Consume(ctx context.Context, rewardID, appointmentID string) error {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(cctx,
		bson.M{"id": rewardID, "status": models.RewardAvailable},
		bson.M{"$set": bson.M{
			"status":         models.RewardUsed,
			"appointment_id": appointmentID,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to consume reward %s: %w", rewardID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotAvailable
	}
	return nil
}

func (r *mongoRewardLedger) Revert(ctx context.Context, rewardID, appointmentID string) error {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Only the appointment that consumed the reward may revert it.
	_, err := r.coll.UpdateOne(cctx,
		bson.M{"id": rewardID, "status": models.RewardUsed, "appointment_id": appointmentID},
		bson.M{"$set": bson.M{
			"status":         models.RewardAvailable,
			"appointment_id": "",
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to revert reward %s: %w", rewardID, err)
	}
	return nil
}
