package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	calendarRepo "salonbook/database/repository/calendar"
	"salonbook/models"
)

func testHours() BusinessHours {
	return BusinessHours{OpenMinute: 540, CloseMinute: 1080, Granularity: 30}
}

func newTestResolver(dir *fakeDirectory, now time.Time) (*SlotResolver, *calendarRepo.MemoryIndex) {
	idx := calendarRepo.NewMemoryIndex()
	return &SlotResolver{
		Calendar:  idx,
		Directory: dir,
		Hours:     testHours(),
		Now:       func() time.Time { return now },
	}, idx
}

func TestResolve_OpenDayListsEveryFittingStart(t *testing.T) {
	dir := newFakeDirectory()
	dir.services["svc-cut"] = models.Service{
		ID: "svc-cut", TenantID: "t1", Name: "Haircut",
		DurationMinutes: 30, RequiresStaff: true, Active: true,
	}
	dir.staff["st-1"] = models.Staff{ID: "st-1", Active: true, ServiceIDs: []string{"svc-cut"}}

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	resolver, _ := newTestResolver(dir, now)

	slots, err := resolver.Resolve(context.Background(), "svc-cut", "", "2026-03-02")
	require.NoError(t, err)

	// 09:00 through 17:30, every half hour.
	require.Len(t, slots, 18)
	assert.Equal(t, 540, slots[0].StartMinute)
	assert.Equal(t, 1050, slots[len(slots)-1].StartMinute)
	for _, s := range slots {
		assert.Equal(t, "2026-03-02", s.Date)
		assert.Equal(t, 30, s.DurationMinutes)
	}
}

func TestResolve_CommittedRangeIncludesBuffer(t *testing.T) {
	dir := newFakeDirectory()
	dir.services["svc-color"] = models.Service{
		ID: "svc-color", TenantID: "t1", Name: "Color",
		DurationMinutes: 60, BufferAfterMinutes: 15, RequiresStaff: true, Active: true,
	}
	dir.staff["st-1"] = models.Staff{ID: "st-1", Active: true, ServiceIDs: []string{"svc-color"}}

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	resolver, idx := newTestResolver(dir, now)

	// Occupy 10:00-11:15 on the only staff track.
	_, err := idx.Reserve(context.Background(), "st-1", "2026-03-02", 600, 75)
	require.NoError(t, err)

	slots, err := resolver.Resolve(context.Background(), "svc-color", "", "2026-03-02")
	require.NoError(t, err)

	starts := make(map[int]bool, len(slots))
	for _, s := range slots {
		starts[s.StartMinute] = true
	}

	// Candidates whose committed span (60+15 min) touches the booked
	// range are gone, including ones that merely reach into the buffer.
	for _, blocked := range []int{540, 570, 600, 630, 660} {
		assert.False(t, starts[blocked], "start %d should conflict", blocked)
	}
	assert.True(t, starts[690])

	// Duration must fit before closing; the trailing buffer may not.
	assert.True(t, starts[1020])
	assert.False(t, starts[1050], "60-minute service cannot start at 17:30")
}

func TestResolve_PastDateIsEmptyNotError(t *testing.T) {
	dir := newFakeDirectory()
	dir.services["svc-cut"] = models.Service{ID: "svc-cut", DurationMinutes: 30, RequiresStaff: true, Active: true}
	dir.staff["st-1"] = models.Staff{ID: "st-1", Active: true, ServiceIDs: []string{"svc-cut"}}

	now := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	resolver, _ := newTestResolver(dir, now)

	slots, err := resolver.Resolve(context.Background(), "svc-cut", "", "2026-03-04")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestResolve_TodayHidesElapsedStarts(t *testing.T) {
	dir := newFakeDirectory()
	dir.services["svc-cut"] = models.Service{ID: "svc-cut", DurationMinutes: 30, RequiresStaff: true, Active: true}
	dir.staff["st-1"] = models.Staff{ID: "st-1", Active: true, ServiceIDs: []string{"svc-cut"}}

	now := time.Date(2026, 3, 2, 12, 1, 0, 0, time.UTC)
	resolver, _ := newTestResolver(dir, now)

	slots, err := resolver.Resolve(context.Background(), "svc-cut", "", "2026-03-02")
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, 750, slots[0].StartMinute)
}

func TestResolve_NoEligibleStaffIsEmpty(t *testing.T) {
	dir := newFakeDirectory()
	dir.services["svc-cut"] = models.Service{ID: "svc-cut", DurationMinutes: 30, RequiresStaff: true, Active: true}
	dir.staff["st-1"] = models.Staff{ID: "st-1", Active: true, ServiceIDs: []string{"svc-other"}}

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	resolver, _ := newTestResolver(dir, now)

	slots, err := resolver.Resolve(context.Background(), "svc-cut", "", "2026-03-02")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestResolve_InactiveServiceIsEmpty(t *testing.T) {
	dir := newFakeDirectory()
	dir.services["svc-cut"] = models.Service{ID: "svc-cut", DurationMinutes: 30, RequiresStaff: true, Active: false}

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	resolver, _ := newTestResolver(dir, now)

	slots, err := resolver.Resolve(context.Background(), "svc-cut", "", "2026-03-02")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestResolve_AnyStaffFallsThroughToFreeTrack(t *testing.T) {
	dir := newFakeDirectory()
	dir.services["svc-cut"] = models.Service{ID: "svc-cut", DurationMinutes: 30, RequiresStaff: true, Active: true}
	dir.staff["st-a"] = models.Staff{ID: "st-a", Active: true, ServiceIDs: []string{"svc-cut"}}
	dir.staff["st-b"] = models.Staff{ID: "st-b", Active: true, ServiceIDs: []string{"svc-cut"}}

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	resolver, idx := newTestResolver(dir, now)

	_, err := idx.Reserve(context.Background(), "st-a", "2026-03-02", 540, 30)
	require.NoError(t, err)

	// Any-staff view: st-b still covers 09:00.
	slots, err := resolver.Resolve(context.Background(), "svc-cut", "", "2026-03-02")
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, 540, slots[0].StartMinute)

	// Narrowed to st-a, 09:00 is gone.
	slots, err = resolver.Resolve(context.Background(), "svc-cut", "st-a", "2026-03-02")
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, 570, slots[0].StartMinute)
}

func TestResolve_StafflessServiceUsesTenantTrack(t *testing.T) {
	dir := newFakeDirectory()
	dir.services["svc-sauna"] = models.Service{
		ID: "svc-sauna", TenantID: "t1", DurationMinutes: 60, RequiresStaff: false, Active: true,
	}

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	resolver, idx := newTestResolver(dir, now)

	_, err := idx.Reserve(context.Background(), "tenant:t1", "2026-03-02", 540, 60)
	require.NoError(t, err)

	slots, err := resolver.Resolve(context.Background(), "svc-sauna", "", "2026-03-02")
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, 600, slots[0].StartMinute)
}

func TestResolve_BadDateIsValidationError(t *testing.T) {
	dir := newFakeDirectory()
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	resolver, _ := newTestResolver(dir, now)

	_, err := resolver.Resolve(context.Background(), "svc-cut", "", "03/02/2026")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
