package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"harmony/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-02 is a Monday.
const testDate = "2026-03-02"

func testEngine(sessions *fakeSessionRepo, therapistAvail, patientAvail models.WeeklyAvailability) *DefaultSchedulingEngine {
	return &DefaultSchedulingEngine{
		Sessions: sessions,
		Therapists: &fakeTherapistRepo{therapists: map[string]*models.Therapist{
			"t1": {ID: "t1", Name: "Dr. Achieng", Email: "achieng@example.com", Availability: therapistAvail},
		}},
		Patients: &fakePatientRepo{patients: map[string]*models.Patient{
			"p1": {ID: "p1", Name: "Brian Otieno", Phone: "0712345678", PreferredDays: patientAvail},
		}},
	}
}

func mondayAvail(windows ...models.TimeWindow) models.WeeklyAvailability {
	return models.WeeklyAvailability{Days: []time.Weekday{time.Monday}, Windows: windows}
}

func slotStarts(slots []models.CandidateSlot) []string {
	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start.String())
	}
	return starts
}

func TestAvailableSlotsIntersectsBothParties(t *testing.T) {
	engine := testEngine(&fakeSessionRepo{},
		mondayAvail(models.TimeWindow{Start: 540, End: 720}), // 09:00-12:00
		mondayAvail(models.TimeWindow{Start: 600, End: 660}), // 10:00-11:00
	)

	slots, err := engine.AvailableSlots(context.Background(), SlotRequest{
		TherapistID:     "t1",
		PatientID:       "p1",
		Date:            testDate,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	// The 10:30-11:00 slot ends exactly at the patient window close and is
	// still bookable.
	assert.Equal(t, []string{"10:00", "10:30"}, slotStarts(slots))
}

func TestAvailableSlotsExcludesBookedIntervals(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: []models.Session{
		{ID: "s1", TherapistID: "t1", PatientID: "p9", Date: testDate, Start: 600, End: 630, Status: models.SessionScheduled},
	}}
	engine := testEngine(sessions,
		mondayAvail(models.TimeWindow{Start: 540, End: 720}),
		mondayAvail(models.TimeWindow{Start: 600, End: 660}),
	)

	slots, err := engine.AvailableSlots(context.Background(), SlotRequest{
		TherapistID:     "t1",
		PatientID:       "p1",
		Date:            testDate,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30"}, slotStarts(slots))
}

func TestAvailableSlotsTherapistOnlyWhenNoPatient(t *testing.T) {
	engine := testEngine(&fakeSessionRepo{},
		mondayAvail(models.TimeWindow{Start: 540, End: 660}), // 09:00-11:00
		mondayAvail(),
	)

	slots, err := engine.AvailableSlots(context.Background(), SlotRequest{
		TherapistID:     "t1",
		Date:            testDate,
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotStarts(slots))
}

func TestAvailableSlotsSortedAcrossWindows(t *testing.T) {
	engine := testEngine(&fakeSessionRepo{},
		mondayAvail(
			models.TimeWindow{Start: 840, End: 900}, // 14:00-15:00
			models.TimeWindow{Start: 540, End: 600}, // 09:00-10:00
		),
		mondayAvail(models.TimeWindow{Start: 0, End: 1440}),
	)

	slots, err := engine.AvailableSlots(context.Background(), SlotRequest{
		TherapistID:     "t1",
		PatientID:       "p1",
		Date:            testDate,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "14:00", "14:30"}, slotStarts(slots))
}

func TestAvailableSlotsClosedDayYieldsEmpty(t *testing.T) {
	engine := testEngine(&fakeSessionRepo{},
		models.WeeklyAvailability{Days: []time.Weekday{time.Tuesday}, Windows: []models.TimeWindow{{Start: 540, End: 720}}},
		mondayAvail(models.TimeWindow{Start: 0, End: 1440}),
	)

	slots, err := engine.AvailableSlots(context.Background(), SlotRequest{
		TherapistID:     "t1",
		PatientID:       "p1",
		Date:            testDate,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlotsEmptyDaysIsNotAnError(t *testing.T) {
	engine := testEngine(&fakeSessionRepo{},
		models.WeeklyAvailability{Windows: []models.TimeWindow{{Start: 540, End: 720}}},
		mondayAvail(models.TimeWindow{Start: 0, End: 1440}),
	)

	slots, err := engine.AvailableSlots(context.Background(), SlotRequest{
		TherapistID:     "t1",
		PatientID:       "p1",
		Date:            testDate,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlotsRejectsInvalidDuration(t *testing.T) {
	engine := testEngine(&fakeSessionRepo{},
		mondayAvail(models.TimeWindow{Start: 540, End: 720}),
		mondayAvail(models.TimeWindow{Start: 540, End: 720}),
	)

	for _, dur := range []int{0, -30, 45} {
		_, err := engine.AvailableSlots(context.Background(), SlotRequest{
			TherapistID:     "t1",
			Date:            testDate,
			DurationMinutes: dur,
		})
		require.Error(t, err)
		assert.True(t, HasCode(err, CodeInvalidDuration))
	}
}

func TestAvailableSlotsFailsClosedOnRepoError(t *testing.T) {
	sessions := &fakeSessionRepo{findErr: errors.New("connection reset")}
	engine := testEngine(sessions,
		mondayAvail(models.TimeWindow{Start: 540, End: 720}),
		mondayAvail(models.TimeWindow{Start: 540, End: 720}),
	)

	_, err := engine.AvailableSlots(context.Background(), SlotRequest{
		TherapistID:     "t1",
		PatientID:       "p1",
		Date:            testDate,
		DurationMinutes: 30,
	})
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeConflictCheckUnavailable))
}

func TestAvailableSlotsAnchorAtWindowStart(t *testing.T) {
	// A window opening off the wall-clock grid yields slots anchored at its
	// own start, stepping by the stride.
	engine := testEngine(&fakeSessionRepo{},
		mondayAvail(models.TimeWindow{Start: 555, End: 675}), // 09:15-11:15
		mondayAvail(models.TimeWindow{Start: 0, End: 1440}),
	)

	slots, err := engine.AvailableSlots(context.Background(), SlotRequest{
		TherapistID:     "t1",
		PatientID:       "p1",
		Date:            testDate,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:15", "09:45", "10:15", "10:45"}, slotStarts(slots))
}

func TestAvailableSlotsCustomGranularity(t *testing.T) {
	engine := testEngine(&fakeSessionRepo{},
		mondayAvail(models.TimeWindow{Start: 540, End: 660}), // 09:00-11:00
		mondayAvail(models.TimeWindow{Start: 0, End: 1440}),
	)

	slots, err := engine.AvailableSlots(context.Background(), SlotRequest{
		TherapistID:        "t1",
		PatientID:          "p1",
		Date:               testDate,
		DurationMinutes:    60,
		GranularityMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, slotStarts(slots))
}
