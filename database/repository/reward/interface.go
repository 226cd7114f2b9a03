// File: database/repository/reward/interface.go
package rewardRepo

import (
	"context"
	"errors"

	"salonbook/database"
	"salonbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound = errors.New("reward not found")
	// ErrNotAvailable is returned by Consume when the reward is not in
	// the available state (already used, expired, or raced away).
	ErrNotAvailable = errors.New("reward is not available")
)

// Ledger is the reward collaborator. The engine only ever moves a
// reward available -> used, linked to one appointment, or reverses
// that exact transition on rollback. A reward is never partially
// consumed.
type Ledger interface {
	GetByID(ctx context.Context, id string) (*models.Reward, error)
	// Consume atomically transitions available -> used and links the
	// reward to the appointment. Returns ErrNotAvailable if the reward
	// is no longer available.
	Consume(ctx context.Context, rewardID, appointmentID string) error
	// Revert undoes Consume for the given appointment: used ->
	// available, link cleared. A no-op when the reward is not linked to
	// that appointment.
	Revert(ctx context.Context, rewardID, appointmentID string) error
}

type mongoRewardLedger struct {
	coll *mongo.Collection
}

// NewMongoRewardLedger constructs a Ledger backed by MongoDB.
func NewMongoRewardLedger() Ledger {
	return &mongoRewardLedger{
		coll: database.DB().Collection("rewards"),
	}
}
