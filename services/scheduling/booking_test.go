package scheduling

import (
	"context"
	"testing"

	sessionRepo "harmony/database/repository/session"
	"harmony/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingEngine(sessions *fakeSessionRepo) *DefaultSchedulingEngine {
	return testEngine(sessions,
		mondayAvail(models.TimeWindow{Start: 540, End: 720}), // 09:00-12:00
		mondayAvail(models.TimeWindow{Start: 540, End: 720}),
	)
}

func TestBookSessionCommitsAndSnapshotsNames(t *testing.T) {
	sessions := &fakeSessionRepo{}
	engine := bookingEngine(sessions)

	result, err := engine.BookSession(context.Background(), BookingRequest{
		PatientID:   "p1",
		TherapistID: "t1",
		Date:        testDate,
		Start:       600,
		End:         630,
		Notes:       "first visit",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Session)

	s := result.Session
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, models.SessionScheduled, s.Status)
	assert.Equal(t, "Dr. Achieng", s.TherapistName)
	assert.Equal(t, "Brian Otieno", s.PatientName)
	assert.Equal(t, slotKeys(600, 630), s.SlotKeys)
	assert.Len(t, sessions.sessions, 1)

	// No notifier configured: report is empty, not nil-panicking.
	assert.NotNil(t, result.Notifications)
	assert.Empty(t, result.Notifications)
}

func TestBookSessionRejectsSecondIdenticalBooking(t *testing.T) {
	sessions := &fakeSessionRepo{}
	engine := bookingEngine(sessions)

	req := BookingRequest{
		PatientID:   "p1",
		TherapistID: "t1",
		Date:        testDate,
		Start:       600,
		End:         630,
	}

	_, err := engine.BookSession(context.Background(), req)
	require.NoError(t, err)

	_, err = engine.BookSession(context.Background(), req)
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeSlotUnavailable))
	assert.Len(t, sessions.sessions, 1)
}

func TestBookSessionRejectsPartialOverlap(t *testing.T) {
	engine := bookingEngine(&fakeSessionRepo{sessions: []models.Session{
		{ID: "s1", TherapistID: "t1", PatientID: "p9", Date: testDate,
			Start: 600, End: 660, Status: models.SessionScheduled, SlotKeys: slotKeys(600, 660)},
	}})

	_, err := engine.BookSession(context.Background(), BookingRequest{
		PatientID:   "p1",
		TherapistID: "t1",
		Date:        testDate,
		Start:       630,
		End:         690,
	})
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeSlotUnavailable))
}

func TestBookSessionAllowsBackToBack(t *testing.T) {
	engine := bookingEngine(&fakeSessionRepo{sessions: []models.Session{
		{ID: "s1", TherapistID: "t1", PatientID: "p9", Date: testDate,
			Start: 540, End: 600, Status: models.SessionScheduled, SlotKeys: slotKeys(540, 600)},
	}})

	_, err := engine.BookSession(context.Background(), BookingRequest{
		PatientID:   "p1",
		TherapistID: "t1",
		Date:        testDate,
		Start:       600,
		End:         660,
	})
	assert.NoError(t, err)
}

func TestBookSessionIgnoresCancelledSessions(t *testing.T) {
	engine := bookingEngine(&fakeSessionRepo{sessions: []models.Session{
		{ID: "s1", TherapistID: "t1", PatientID: "p9", Date: testDate,
			Start: 600, End: 660, Status: models.SessionCancelled, SlotKeys: slotKeys(600, 660)},
	}})

	_, err := engine.BookSession(context.Background(), BookingRequest{
		PatientID:   "p1",
		TherapistID: "t1",
		Date:        testDate,
		Start:       600,
		End:         660,
	})
	assert.NoError(t, err)
}

func TestBookSessionMapsStoreDuplicateToSlotUnavailable(t *testing.T) {
	// The re-check sees no conflict, but a concurrent writer wins the insert.
	sessions := &fakeSessionRepo{insertErr: sessionRepo.ErrDuplicateSlot}
	engine := bookingEngine(sessions)

	_, err := engine.BookSession(context.Background(), BookingRequest{
		PatientID:   "p1",
		TherapistID: "t1",
		Date:        testDate,
		Start:       600,
		End:         630,
	})
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeSlotUnavailable))
}

func TestBookSessionRejectsOutsideAvailability(t *testing.T) {
	engine := bookingEngine(&fakeSessionRepo{})

	// 13:00-13:30 is outside the 09:00-12:00 window.
	_, err := engine.BookSession(context.Background(), BookingRequest{
		PatientID:   "p1",
		TherapistID: "t1",
		Date:        testDate,
		Start:       780,
		End:         810,
	})
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeSlotUnavailable))
}

func TestBookSessionRejectsEmptyInterval(t *testing.T) {
	engine := bookingEngine(&fakeSessionRepo{})

	_, err := engine.BookSession(context.Background(), BookingRequest{
		PatientID:   "p1",
		TherapistID: "t1",
		Date:        testDate,
		Start:       600,
		End:         600,
	})
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeInvalidDuration))
}

// The unique index is only correct if key sets intersect exactly when the
// half-open intervals overlap.
func TestSlotKeysMatchOverlapSemantics(t *testing.T) {
	keys := slotKeys(600, 630)
	require.Len(t, keys, 30)
	assert.Equal(t, 600, keys[0])
	assert.Equal(t, 629, keys[29])

	// Back-to-back intervals share no key.
	for _, k := range slotKeys(540, 600) {
		assert.NotContains(t, slotKeys(600, 660), k)
	}
	// A single minute of overlap shares a key.
	assert.Contains(t, slotKeys(584, 615), slotKeys(555, 585)[29])
}

func TestBookSessionBackToBackOnUnalignedWindow(t *testing.T) {
	// A 09:15-12:00 window anchors the stride off the wall-clock grid; the
	// adjacent slots it yields must both commit.
	sessions := &fakeSessionRepo{}
	engine := testEngine(sessions,
		mondayAvail(models.TimeWindow{Start: 555, End: 720}),
		mondayAvail(models.TimeWindow{Start: 555, End: 720}),
	)

	_, err := engine.BookSession(context.Background(), BookingRequest{
		PatientID:   "p1",
		TherapistID: "t1",
		Date:        testDate,
		Start:       555,
		End:         585,
	})
	require.NoError(t, err)

	_, err = engine.BookSession(context.Background(), BookingRequest{
		PatientID:   "p1",
		TherapistID: "t1",
		Date:        testDate,
		Start:       585,
		End:         615,
	})
	require.NoError(t, err)
	assert.Len(t, sessions.sessions, 2)
}
