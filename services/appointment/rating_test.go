package appointment

import (
	"testing"

	"github.com/Pratik-911/skillswap/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundRating(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{4.25, 4.3},
		{4.24, 4.2},
		{4.0, 4.0},
		{3.333333, 3.3},
		{4.666666, 4.7},
		{4.95, 5.0},
	}
	for _, tc := range cases {
		assert.InDeltaf(t, tc.want, roundRating(tc.in), 1e-9, "roundRating(%v)", tc.in)
	}
}

func TestRecompute_NoRatedAppointmentsIsNoOp(t *testing.T) {
	teacher := models.User{ID: "t", IsActive: true}
	users := newFakeUserStore(teacher)
	appts := newFakeAppointmentStore()
	agg := NewRatingAggregator(users, appts)

	require.NoError(t, agg.Recompute("t"))

	u, _ := users.GetByID("t")
	assert.Nil(t, u.Rating)
	assert.Zero(t, u.TotalSessions)
}

func TestRecompute_MeanIsRoundedHalfUp(t *testing.T) {
	teacher := models.User{ID: "t", IsActive: true}
	users := newFakeUserStore(teacher)
	appts := newFakeAppointmentStore()
	agg := NewRatingAggregator(users, appts)

	ratings := []int{5, 4, 4, 4} // mean 4.25
	for i, r := range ratings {
		rating := r
		require.NoError(t, appts.Create(&models.Appointment{
			ID:        string(rune('a' + i)),
			TeacherID: "t",
			LearnerID: "l",
			Status:    models.StatusCompleted,
			Rating:    &rating,
		}))
	}

	require.NoError(t, agg.Recompute("t"))

	u, _ := users.GetByID("t")
	require.NotNil(t, u.Rating)
	assert.InDelta(t, 4.3, *u.Rating, 1e-9)
	assert.Equal(t, 4, u.TotalSessions)
}

func TestRecompute_IgnoresUnratedAndNonCompleted(t *testing.T) {
	teacher := models.User{ID: "t", IsActive: true}
	users := newFakeUserStore(teacher)
	appts := newFakeAppointmentStore()
	agg := NewRatingAggregator(users, appts)

	five := 5
	require.NoError(t, appts.Create(&models.Appointment{
		ID: "rated", TeacherID: "t", LearnerID: "l",
		Status: models.StatusCompleted, Rating: &five,
	}))
	require.NoError(t, appts.Create(&models.Appointment{
		ID: "unrated", TeacherID: "t", LearnerID: "l",
		Status: models.StatusCompleted,
	}))
	one := 1
	require.NoError(t, appts.Create(&models.Appointment{
		ID: "cancelled", TeacherID: "t", LearnerID: "l",
		Status: models.StatusCancelled, Rating: &one,
	}))

	require.NoError(t, agg.Recompute("t"))

	u, _ := users.GetByID("t")
	require.NotNil(t, u.Rating)
	assert.InDelta(t, 5.0, *u.Rating, 1e-9)
	assert.Equal(t, 1, u.TotalSessions)
}
