package appointment

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	userRepo "github.com/Pratik-911/skillswap/database/repository/user"
	"github.com/Pratik-911/skillswap/models"
	"github.com/Pratik-911/skillswap/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeUserStore is an in-memory UserRepository covering what the appointment
// service touches.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) GetByID(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		copied := u
		return &copied, nil
	}
	return nil, nil
}

func (s *fakeUserStore) GetByEmail(string) (*models.User, error)     { return nil, nil }
func (s *fakeUserStore) GetByTokenHash(string) (*models.User, error) { return nil, nil }

func (s *fakeUserStore) Create(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = *u
	return nil
}

func (s *fakeUserStore) Update(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = *u
	return nil
}

func (s *fakeUserStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) GetByIDWithProjection(id string, _ bson.M) (*models.User, error) {
	return s.GetByID(id)
}

func (s *fakeUserStore) GetByEmailWithProjection(string, bson.M) (*models.User, error) {
	return nil, nil
}

func (s *fakeUserStore) FindActiveBySkillPatterns(userRepo.SkillSearchCriteria) ([]models.User, error) {
	return nil, nil
}

func (s *fakeUserStore) SearchActiveBySkill(string, string, int64, int64) ([]models.User, int64, error) {
	return nil, 0, nil
}

// fakeAppointmentStore is an in-memory AppointmentRepository.
type fakeAppointmentStore struct {
	mu    sync.Mutex
	appts map[string]models.Appointment
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{appts: make(map[string]models.Appointment)}
}

func (s *fakeAppointmentStore) GetByID(id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.appts[id]; ok {
		copied := a
		return &copied, nil
	}
	return nil, nil
}

func (s *fakeAppointmentStore) Create(a *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appts[a.ID] = *a
	return nil
}

func (s *fakeAppointmentStore) Update(a *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appts[a.ID] = *a
	return nil
}

func (s *fakeAppointmentStore) FindByTeacherAtTime(teacherID string, at time.Time, statuses []string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appts {
		if a.TeacherID != teacherID || !a.ScheduledDate.Equal(at) {
			continue
		}
		for _, st := range statuses {
			if a.Status == st {
				copied := a
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (s *fakeAppointmentStore) FindRatedCompletedByTeacher(teacherID string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.appts {
		if a.TeacherID == teacherID && a.Status == models.StatusCompleted && a.Rating != nil {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAppointmentStore) FindByParticipant(userID, status string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.appts {
		if a.TeacherID != userID && a.LearnerID != userID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out, nil
}

func newTestService(users ...models.User) (*DefaultAppointmentService, *fakeUserStore, *fakeAppointmentStore) {
	userStore := newFakeUserStore(users...)
	apptStore := newFakeAppointmentStore()
	agg := NewRatingAggregator(userStore, apptStore)
	return NewDefaultAppointmentService(apptStore, userStore, agg), userStore, apptStore
}

func testParticipants() (models.User, models.User) {
	teacher := models.User{ID: "teacher-1", Name: "Ada", IsActive: true, SkillsToTeach: []string{"Piano"}}
	learner := models.User{ID: "learner-1", Name: "Ben", IsActive: true, SkillsToLearn: []string{"Piano"}}
	return teacher, learner
}

func assertKind(t *testing.T, err error, kind utils.ErrorKind) {
	t.Helper()
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, kind, svcErr.Kind)
}

func TestCreate_RoundTrip(t *testing.T) {
	teacher, learner := testParticipants()
	svc, _, _ := newTestService(teacher, learner)
	when := time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC)

	appt, err := svc.Create(context.Background(), learner.ID, models.AppointmentInput{
		TeacherID:     teacher.ID,
		Skill:         "Piano",
		Title:         "Intro lesson",
		ScheduledDate: when,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, models.DefaultDuration, appt.Duration)
	assert.NotEmpty(t, appt.ID)
	require.NotNil(t, appt.Teacher)
	assert.Equal(t, "Ada", appt.Teacher.Name)

	got, err := svc.GetByID(context.Background(), appt.ID, learner.ID)
	require.NoError(t, err)
	assert.Equal(t, appt.ID, got.ID)
	assert.True(t, got.ScheduledDate.Equal(when))
}

func TestCreate_UnknownTeacher(t *testing.T) {
	_, learner := testParticipants()
	svc, _, _ := newTestService(learner)

	_, err := svc.Create(context.Background(), learner.ID, models.AppointmentInput{
		TeacherID:     "nobody",
		Skill:         "Piano",
		Title:         "x",
		ScheduledDate: time.Now().Add(24 * time.Hour),
	})
	assertKind(t, err, utils.KindNotFound)
}

func TestCreate_SelfBooking(t *testing.T) {
	teacher, _ := testParticipants()
	svc, _, _ := newTestService(teacher)

	_, err := svc.Create(context.Background(), teacher.ID, models.AppointmentInput{
		TeacherID:     teacher.ID,
		Skill:         "Piano",
		Title:         "x",
		ScheduledDate: time.Now().Add(24 * time.Hour),
	})
	assertKind(t, err, utils.KindValidation)
}

func TestCreate_SkillNotOffered(t *testing.T) {
	teacher, learner := testParticipants()
	svc, _, _ := newTestService(teacher, learner)

	_, err := svc.Create(context.Background(), learner.ID, models.AppointmentInput{
		TeacherID:     teacher.ID,
		Skill:         "Welding",
		Title:         "x",
		ScheduledDate: time.Now().Add(24 * time.Hour),
	})
	assertKind(t, err, utils.KindValidation)
}

func TestCreate_DurationBounds(t *testing.T) {
	teacher, learner := testParticipants()
	svc, _, _ := newTestService(teacher, learner)

	_, err := svc.Create(context.Background(), learner.ID, models.AppointmentInput{
		TeacherID:     teacher.ID,
		Skill:         "Piano",
		Title:         "x",
		ScheduledDate: time.Now().Add(24 * time.Hour),
		Duration:      10,
	})
	assertKind(t, err, utils.KindValidation)
}

func TestCreate_ConflictIsExactTimestampOnly(t *testing.T) {
	teacher, learner := testParticipants()
	other := models.User{ID: "learner-2", Name: "Cy", IsActive: true}
	teacher2 := models.User{ID: "teacher-2", Name: "Dee", IsActive: true, SkillsToTeach: []string{"Piano"}}
	svc, _, _ := newTestService(teacher, learner, other, teacher2)

	when := time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), learner.ID, models.AppointmentInput{
		TeacherID: teacher.ID, Skill: "Piano", Title: "a", ScheduledDate: when,
	})
	require.NoError(t, err)

	// Same teacher, same instant: conflict.
	_, err = svc.Create(context.Background(), other.ID, models.AppointmentInput{
		TeacherID: teacher.ID, Skill: "Piano", Title: "b", ScheduledDate: when,
	})
	assertKind(t, err, utils.KindConflict)

	// One millisecond later overlaps in reality but is not a conflict.
	_, err = svc.Create(context.Background(), other.ID, models.AppointmentInput{
		TeacherID: teacher.ID, Skill: "Piano", Title: "c", ScheduledDate: when.Add(time.Millisecond),
	})
	require.NoError(t, err)

	// Different teacher at the same instant is fine.
	_, err = svc.Create(context.Background(), other.ID, models.AppointmentInput{
		TeacherID: teacher2.ID, Skill: "Piano", Title: "d", ScheduledDate: when,
	})
	require.NoError(t, err)
}

func TestCreate_RejectedSlotIsReusable(t *testing.T) {
	teacher, learner := testParticipants()
	other := models.User{ID: "learner-2", Name: "Cy", IsActive: true}
	svc, _, _ := newTestService(teacher, learner, other)

	when := time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC)
	appt, err := svc.Create(context.Background(), learner.ID, models.AppointmentInput{
		TeacherID: teacher.ID, Skill: "Piano", Title: "a", ScheduledDate: when,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), appt.ID, teacher.ID, models.StatusRejected, "")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), other.ID, models.AppointmentInput{
		TeacherID: teacher.ID, Skill: "Piano", Title: "b", ScheduledDate: when,
	})
	require.NoError(t, err)
}

func TestUpdateStatus_OnlyTeacherAccepts(t *testing.T) {
	teacher, learner := testParticipants()
	svc, _, _ := newTestService(teacher, learner)

	appt, err := svc.Create(context.Background(), learner.ID, models.AppointmentInput{
		TeacherID: teacher.ID, Skill: "Piano", Title: "a",
		ScheduledDate: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), appt.ID, learner.ID, models.StatusAccepted, "")
	assertKind(t, err, utils.KindForbidden)

	updated, err := svc.UpdateStatus(context.Background(), appt.ID, teacher.ID, models.StatusAccepted, "see you there")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, updated.Status)
	assert.Equal(t, "see you there", updated.Notes)
}

func TestUpdateStatus_OutsiderForbidden(t *testing.T) {
	teacher, learner := testParticipants()
	svc, _, _ := newTestService(teacher, learner)

	appt, err := svc.Create(context.Background(), learner.ID, models.AppointmentInput{
		TeacherID: teacher.ID, Skill: "Piano", Title: "a",
		ScheduledDate: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), appt.ID, "stranger", models.StatusCancelled, "")
	assertKind(t, err, utils.KindForbidden)
}

func TestUpdateStatus_TerminalStatesAreFinal(t *testing.T) {
	teacher, learner := testParticipants()
	svc, _, _ := newTestService(teacher, learner)

	appt, err := svc.Create(context.Background(), learner.ID, models.AppointmentInput{
		TeacherID: teacher.ID, Skill: "Piano", Title: "a",
		ScheduledDate: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), appt.ID, learner.ID, models.StatusCancelled, "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), appt.ID, teacher.ID, models.StatusCompleted, "")
	assertKind(t, err, utils.KindInvalidState)
}

func TestSubmitFeedback_AggregatesTeacherRating(t *testing.T) {
	teacher, learner := testParticipants()
	svc, userStore, _ := newTestService(teacher, learner)

	book := func(at time.Time) *models.Appointment {
		appt, err := svc.Create(context.Background(), learner.ID, models.AppointmentInput{
			TeacherID: teacher.ID, Skill: "Piano", Title: "a", ScheduledDate: at,
		})
		require.NoError(t, err)
		_, err = svc.UpdateStatus(context.Background(), appt.ID, teacher.ID, models.StatusCompleted, "")
		require.NoError(t, err)
		return appt
	}

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	first := book(base)
	second := book(base.Add(time.Hour))

	_, err := svc.SubmitFeedback(context.Background(), first.ID, learner.ID, 5, "great")
	require.NoError(t, err)

	u, _ := userStore.GetByID(teacher.ID)
	require.NotNil(t, u.Rating)
	assert.InDelta(t, 5.0, *u.Rating, 1e-9)
	assert.Equal(t, 1, u.TotalSessions)

	_, err = svc.SubmitFeedback(context.Background(), second.ID, learner.ID, 3, "ok")
	require.NoError(t, err)

	u, _ = userStore.GetByID(teacher.ID)
	require.NotNil(t, u.Rating)
	assert.InDelta(t, 4.0, *u.Rating, 1e-9)
	assert.Equal(t, 2, u.TotalSessions)
}

func TestSubmitFeedback_RequiresCompletedState(t *testing.T) {
	teacher, learner := testParticipants()
	svc, userStore, apptStore := newTestService(teacher, learner)

	appt, err := svc.Create(context.Background(), learner.ID, models.AppointmentInput{
		TeacherID: teacher.ID, Skill: "Piano", Title: "a",
		ScheduledDate: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.SubmitFeedback(context.Background(), appt.ID, learner.ID, 5, "early")
	assertKind(t, err, utils.KindInvalidState)

	// Neither the appointment nor the teacher was mutated.
	stored, _ := apptStore.GetByID(appt.ID)
	assert.Nil(t, stored.Rating)
	assert.Empty(t, stored.Feedback)
	u, _ := userStore.GetByID(teacher.ID)
	assert.Nil(t, u.Rating)
	assert.Zero(t, u.TotalSessions)
}

func TestSubmitFeedback_LearnerOnly(t *testing.T) {
	teacher, learner := testParticipants()
	svc, _, _ := newTestService(teacher, learner)

	appt, err := svc.Create(context.Background(), learner.ID, models.AppointmentInput{
		TeacherID: teacher.ID, Skill: "Piano", Title: "a",
		ScheduledDate: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), appt.ID, teacher.ID, models.StatusCompleted, "")
	require.NoError(t, err)

	_, err = svc.SubmitFeedback(context.Background(), appt.ID, teacher.ID, 5, "self praise")
	assertKind(t, err, utils.KindForbidden)
}

func TestListForUser_RoleAndStatusFilters(t *testing.T) {
	teacher, learner := testParticipants()
	svc, _, _ := newTestService(teacher, learner)

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	first, err := svc.Create(context.Background(), learner.ID, models.AppointmentInput{
		TeacherID: teacher.ID, Skill: "Piano", Title: "a", ScheduledDate: base,
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), learner.ID, models.AppointmentInput{
		TeacherID: teacher.ID, Skill: "Piano", Title: "b", ScheduledDate: base.Add(time.Hour),
	})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), first.ID, teacher.ID, models.StatusAccepted, "")
	require.NoError(t, err)

	all, err := svc.ListForUser(context.Background(), learner.ID, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	// Sorted by scheduled date.
	assert.True(t, all[0].ScheduledDate.Before(all[1].ScheduledDate))

	accepted, err := svc.ListForUser(context.Background(), learner.ID, models.StatusAccepted, "")
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, first.ID, accepted[0].ID)

	teaching, err := svc.ListForUser(context.Background(), learner.ID, "", FilterTeaching)
	require.NoError(t, err)
	assert.Empty(t, teaching)

	_, err = svc.ListForUser(context.Background(), learner.ID, "bogus", "")
	assertKind(t, err, utils.KindValidation)
}

func TestGetByID_ParticipantsOnly(t *testing.T) {
	teacher, learner := testParticipants()
	svc, _, _ := newTestService(teacher, learner)

	appt, err := svc.Create(context.Background(), learner.ID, models.AppointmentInput{
		TeacherID: teacher.ID, Skill: "Piano", Title: "a",
		ScheduledDate: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), appt.ID, "stranger")
	assertKind(t, err, utils.KindForbidden)

	_, err = svc.GetByID(context.Background(), "missing", teacher.ID)
	assertKind(t, err, utils.KindNotFound)
}
