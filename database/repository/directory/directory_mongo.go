// File: database/repository/directory/directory_mongo.go
package directoryRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (d *mongoDirectory) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var svc models.Service
	err := d.services.FindOne(cctx, bson.M{"id": id}).Decode(&svc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching service %s: %w", id, err)
	}
	return &svc, nil
}

func (d *mongoDirectory) GetStaffByID(ctx context.Context, id string) (*models.Staff, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var st models.Staff
	err := d.staff.FindOne(cctx, bson.M{"id": id}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching staff %s: %w", id, err)
	}
	return &st, nil
}

func (d *mongoDirectory) EligibleStaff(ctx context.Context, serviceID string) ([]models.Staff, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "last_booked_at", Value: 1}})
	cursor, err := d.staff.Find(cctx, bson.M{
		"active":      true,
		"service_ids": serviceID,
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching eligible staff for service %s: %w", serviceID, err)
	}
	defer cursor.Close(cctx)

	var staff []models.Staff
	if err := cursor.All(cctx, &staff); err != nil {
		return nil, fmt.Errorf("error decoding staff: %w", err)
	}
	return staff, nil
}

func (d *mongoDirectory) GetPaymentMethodByID(ctx context.Context, id string) (*models.PaymentMethod, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var pm models.PaymentMethod
	err := d.paymentMethods.FindOne(cctx, bson.M{"id": id}).Decode(&pm)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPaymentMethodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching payment method %s: %w", id, err)
	}
	return &pm, nil
}

func (d *mongoDirectory) TouchStaffBooked(ctx context.Context, staffID string, at time.Time) error {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := d.staff.UpdateOne(cctx,
		bson.M{"id": staffID},
		bson.M{"$set": bson.M{"last_booked_at": at}},
	)
	if err != nil {
		return fmt.Errorf("failed to touch staff %s: %w", staffID, err)
	}
	return nil
}
