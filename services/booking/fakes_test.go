package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	appointmentRepo "salonbook/database/repository/appointment"
	directoryRepo "salonbook/database/repository/directory"
	rewardRepo "salonbook/database/repository/reward"
	"salonbook/models"
)

// fakeDirectory is an in-memory Directory snapshot source.
type fakeDirectory struct {
	mu       sync.Mutex
	services map[string]models.Service
	staff    map[string]models.Staff
	methods  map[string]models.PaymentMethod
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		services: make(map[string]models.Service),
		staff:    make(map[string]models.Staff),
		methods:  make(map[string]models.PaymentMethod),
	}
}

func (d *fakeDirectory) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	svc, ok := d.services[id]
	if !ok {
		return nil, directoryRepo.ErrServiceNotFound
	}
	return &svc, nil
}

func (d *fakeDirectory) GetStaffByID(ctx context.Context, id string) (*models.Staff, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	st, ok := d.staff[id]
	if !ok {
		return nil, directoryRepo.ErrStaffNotFound
	}
	return &st, nil
}

func (d *fakeDirectory) EligibleStaff(ctx context.Context, serviceID string) ([]models.Staff, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []models.Staff
	for _, st := range d.staff {
		if st.Active && st.EligibleFor(serviceID) {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastBookedAt.Equal(out[j].LastBookedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].LastBookedAt.Before(out[j].LastBookedAt)
	})
	return out, nil
}

func (d *fakeDirectory) GetPaymentMethodByID(ctx context.Context, id string) (*models.PaymentMethod, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	pm, ok := d.methods[id]
	if !ok {
		return nil, directoryRepo.ErrPaymentMethodNotFound
	}
	return &pm, nil
}

func (d *fakeDirectory) TouchStaffBooked(ctx context.Context, staffID string, at time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	st, ok := d.staff[staffID]
	if ok {
		st.LastBookedAt = at
		d.staff[staffID] = st
	}
	return nil
}

// fakeAppointments is an in-memory AppointmentRepository with the same
// CAS semantics as the Mongo implementation.
type fakeAppointments struct {
	mu    sync.Mutex
	items map[string]*models.Appointment
}

func newFakeAppointments() *fakeAppointments {
	return &fakeAppointments{items: make(map[string]*models.Appointment)}
}

func (r *fakeAppointments) Create(ctx context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *appt
	r.items[appt.ID] = &cp
	return nil
}

func (r *fakeAppointments) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.items[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *appt
	return &cp, nil
}

func (r *fakeAppointments) UpdateStatus(ctx context.Context, id string, from, to models.AppointmentStatus, set map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.items[id]
	if !ok || appt.Status != from {
		return appointmentRepo.ErrStatusChanged
	}
	appt.Status = to
	for k, v := range set {
		switch k {
		case "confirmed_at":
			t := v.(time.Time)
			appt.ConfirmedAt = &t
		case "cancelled_at":
			t := v.(time.Time)
			appt.CancelledAt = &t
		case "completed_at":
			t := v.(time.Time)
			appt.CompletedAt = &t
		case "cancellation_reason":
			appt.CancellationReason = v.(string)
		case "refund_amount":
			appt.RefundAmount = v.(float64)
		}
	}
	return nil
}

func (r *fakeAppointments) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, appt := range r.items {
		if appt.Status == models.StatusPending && appt.CreatedAt.Before(cutoff) {
			out = append(out, *appt)
		}
	}
	return out, nil
}

func (r *fakeAppointments) ListByCustomer(ctx context.Context, customerID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, appt := range r.items {
		if appt.CustomerID == customerID {
			out = append(out, *appt)
		}
	}
	return out, nil
}

func (r *fakeAppointments) ListByStaffAndDate(ctx context.Context, staffID, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, appt := range r.items {
		if appt.StaffID == staffID && appt.Date == date {
			out = append(out, *appt)
		}
	}
	return out, nil
}

// fakeRewards is an in-memory reward Ledger.
type fakeRewards struct {
	mu    sync.Mutex
	items map[string]*models.Reward
}

func newFakeRewards() *fakeRewards {
	return &fakeRewards{items: make(map[string]*models.Reward)}
}

func (r *fakeRewards) GetByID(ctx context.Context, id string) (*models.Reward, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rw, ok := r.items[id]
	if !ok {
		return nil, rewardRepo.ErrNotFound
	}
	cp := *rw
	return &cp, nil
}

func (r *fakeRewards) Consume(ctx context.Context, rewardID, appointmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rw, ok := r.items[rewardID]
	if !ok || rw.Status != models.RewardAvailable {
		return rewardRepo.ErrNotAvailable
	}
	rw.Status = models.RewardUsed
	rw.AppointmentID = appointmentID
	return nil
}

func (r *fakeRewards) Revert(ctx context.Context, rewardID, appointmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rw, ok := r.items[rewardID]
	if !ok || rw.Status != models.RewardUsed || rw.AppointmentID != appointmentID {
		return nil
	}
	rw.Status = models.RewardAvailable
	rw.AppointmentID = ""
	return nil
}

// fakeGateway scripts the payment collaborator's behavior per call.
type fakeGateway struct {
	mu       sync.Mutex
	initFn   func(req models.PaymentRequest) (*models.PaymentInit, error)
	requests []models.PaymentRequest
}

var errGatewayDown = errors.New("gateway unreachable")

func (g *fakeGateway) Initialize(ctx context.Context, req models.PaymentRequest) (*models.PaymentInit, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	fn := g.initFn
	g.mu.Unlock()
	if fn != nil {
		return fn(req)
	}
	return &models.PaymentInit{Confirmed: true}, nil
}

// recordingEmitter captures emitted appointment events.
type recordingEmitter struct {
	mu     sync.Mutex
	events []models.AppointmentEvent
}

func (e *recordingEmitter) Emit(ctx context.Context, event models.AppointmentEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
}
