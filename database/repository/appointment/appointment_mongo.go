// File: database/repository/appointment/appointment_mongo.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(cctx, appt); err != nil {
		return fmt.Errorf("insert appointment failed: %w", err)
	}
	return nil
}

func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := r.coll.FindOne(cctx, bson.M{"id": id}).Decode(&appt)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) UpdateStatus(ctx context.Context, id string, from, to models.AppointmentStatus, set map[string]interface{}) error {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fields := bson.M{"status": to}
	for k, v := range set {
		fields[k] = v
	}

	res, err := r.coll.UpdateOne(cctx,
		bson.M{"id": id, "status": from},
		bson.M{"$set": fields},
	)
	if err != nil {
		return fmt.Errorf("status update failed for appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (r *mongoAppointmentRepo) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Appointment, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(cctx, bson.M{
		"status":     models.StatusPending,
		"created_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return nil, fmt.Errorf("error listing stale pending appointments: %w", err)
	}
	defer cursor.Close(cctx)

	var appts []models.Appointment
	if err := cursor.All(cctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

func (r *mongoAppointmentRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Appointment, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(cctx, bson.M{"customer_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("error listing appointments for customer %s: %w", customerID, err)
	}
	defer cursor.Close(cctx)

	var appts []models.Appointment
	if err := cursor.All(cctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

func (r *mongoAppointmentRepo) ListByStaffAndDate(ctx context.Context, staffID, date string) ([]models.Appointment, error) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(cctx, bson.M{"staff_id": staffID, "date": date})
	if err != nil {
		return nil, fmt.Errorf("error listing appointments for staff %s on %s: %w", staffID, date, err)
	}
	defer cursor.Close(cctx)

	var appts []models.Appointment
	if err := cursor.All(cctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}
