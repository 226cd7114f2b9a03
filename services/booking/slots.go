package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	calendarRepo "salonbook/database/repository/calendar"
	directoryRepo "salonbook/database/repository/directory"
	"salonbook/models"
	"salonbook/utils"
)

const slotCacheTTL = 30 * time.Second

// BusinessHours bounds the candidate start times, in minutes from
// midnight. A candidate survives only if the service duration still
// fits before CloseMinute; the buffer-after may run past closing.
type BusinessHours struct {
	OpenMinute  int
	CloseMinute int
	Granularity int
}

// SlotResolver computes the ordered list of bookable start times for a
// (service, optional staff, date) tuple. It is read-only with respect
// to the calendar index: listed slots are advisory and every booking
// re-validates through Reserve.
type SlotResolver struct {
	Calendar  calendarRepo.Index
	Directory directoryRepo.Directory
	Cache     *redis.Client // optional; short-TTL response cache
	Hours     BusinessHours
	Now       func() time.Time // overridable in tests
}

func (r *SlotResolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Resolve returns the bookable start times for the service on the
// given date. StaffID narrows the check to one staff member; when
// empty, a candidate is bookable iff at least one eligible staff
// member is free for its committed range.
func (r *SlotResolver) Resolve(ctx context.Context, serviceID, staffID, date string) ([]models.TimeSlot, error) {
	if r.Cache != nil {
		if cached, ok := r.cacheGet(ctx, serviceID, staffID, date); ok {
			return cached, nil
		}
	}

	slots, err := r.resolve(ctx, serviceID, staffID, date)
	if err != nil {
		return nil, err
	}

	if r.Cache != nil {
		r.cacheSet(ctx, serviceID, staffID, date, slots)
	}
	return slots, nil
}

func (r *SlotResolver) resolve(ctx context.Context, serviceID, staffID, date string) ([]models.TimeSlot, error) {
	now := r.now()

	day, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return nil, NewValidationError("date", "must be formatted as YYYY-MM-DD")
	}

	// A date in the past is always empty, not an error.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return []models.TimeSlot{}, nil
	}

	svc, err := r.Directory.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return []models.TimeSlot{}, nil
	}

	staff, err := r.candidateStaff(ctx, svc, staffID)
	if err != nil {
		return nil, err
	}
	if svc.RequiresStaff && len(staff) == 0 {
		return []models.TimeSlot{}, nil
	}

	// Staff-less services reserve against a single per-tenant track so
	// tenant capacity is still guarded by the calendar index.
	tracks := make([]string, 0, len(staff))
	for _, st := range staff {
		tracks = append(tracks, st.ID)
	}
	if len(tracks) == 0 {
		tracks = append(tracks, tenantTrack(svc))
	}

	// One occupancy snapshot per track for the whole sweep.
	occupancy := make(map[string][]models.Range, len(tracks))
	for _, id := range tracks {
		ranges, err := r.Calendar.Committed(ctx, id, date)
		if err != nil {
			return nil, fmt.Errorf("failed to read calendar for %s: %w", id, err)
		}
		occupancy[id] = ranges
	}

	isToday := day.Equal(today)
	nowMinute := now.Hour()*60 + now.Minute()
	committed := svc.CommittedMinutes()

	var slots []models.TimeSlot
	for start := r.Hours.OpenMinute; start+svc.DurationMinutes <= r.Hours.CloseMinute; start += r.Hours.Granularity {
		if isToday && start < nowMinute {
			continue
		}

		want := models.Range{StartMinute: start, EndMinute: start + committed}
		free := false
		for _, id := range tracks {
			if rangeFree(occupancy[id], want) {
				free = true
				break
			}
		}
		if free {
			slots = append(slots, models.TimeSlot{
				Date:            date,
				StartMinute:     start,
				DurationMinutes: svc.DurationMinutes,
			})
		}
	}
	if slots == nil {
		slots = []models.TimeSlot{}
	}
	return slots, nil
}

// candidateStaff narrows to the requested staff member, or returns all
// active eligible staff ordered least-recently-booked first.
func (r *SlotResolver) candidateStaff(ctx context.Context, svc *models.Service, staffID string) ([]models.Staff, error) {
	if staffID == "" {
		if !svc.RequiresStaff {
			return nil, nil
		}
		return r.Directory.EligibleStaff(ctx, svc.ID)
	}

	st, err := r.Directory.GetStaffByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if !st.Active || !st.EligibleFor(svc.ID) {
		return []models.Staff{}, nil
	}
	return []models.Staff{*st}, nil
}

// tenantTrack is the synthetic calendar key guarding tenant capacity
// for services that do not require a named staff member.
func tenantTrack(svc *models.Service) string {
	return "tenant:" + svc.TenantID
}

func rangeFree(committed []models.Range, want models.Range) bool {
	for _, r := range committed {
		if r.Overlaps(want) {
			return false
		}
	}
	return true
}

func slotCacheKey(serviceID, staffID, date string) string {
	if staffID == "" {
		staffID = "any"
	}
	return fmt.Sprintf("slots:%s:%s:%s", serviceID, staffID, date)
}

func (r *SlotResolver) cacheGet(ctx context.Context, serviceID, staffID, date string) ([]models.TimeSlot, bool) {
	data, err := r.Cache.Get(ctx, slotCacheKey(serviceID, staffID, date)).Result()
	if err != nil {
		return nil, false
	}
	var slots []models.TimeSlot
	if err := json.Unmarshal([]byte(data), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (r *SlotResolver) cacheSet(ctx context.Context, serviceID, staffID, date string, slots []models.TimeSlot) {
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, slotCacheKey(serviceID, staffID, date), data, slotCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache slot list", zap.Error(err))
	}
}
