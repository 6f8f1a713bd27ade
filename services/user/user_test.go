package user

import (
	"context"
	"strings"
	"testing"

	userRepo "github.com/Pratik-911/skillswap/database/repository/user"
	"github.com/Pratik-911/skillswap/models"
	"github.com/Pratik-911/skillswap/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		copied := u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByTokenHash(hash string) (*models.User, error) {
	for _, u := range r.users {
		if u.TokenHash == hash {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(u *models.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) Update(u *models.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByIDWithProjection(id string, _ bson.M) (*models.User, error) {
	return r.GetByID(id)
}

func (r *fakeUserRepo) GetByEmailWithProjection(email string, _ bson.M) (*models.User, error) {
	return r.GetByEmail(email)
}

func (r *fakeUserRepo) FindActiveBySkillPatterns(userRepo.SkillSearchCriteria) ([]models.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) SearchActiveBySkill(excludeID, skill string, page, limit int64) ([]models.User, int64, error) {
	var matched []models.User
	for _, u := range r.users {
		if u.ID == excludeID || !u.IsActive {
			continue
		}
		for _, s := range u.SkillsToTeach {
			if strings.Contains(strings.ToLower(s), strings.ToLower(skill)) {
				matched = append(matched, u)
				break
			}
		}
	}
	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func assertKind(t *testing.T, err error, kind utils.ErrorKind) {
	t.Helper()
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, kind, svcErr.Kind)
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &DefaultUserService{Repo: repo}

	resp, err := svc.RegisterUser(context.Background(), models.User{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.User.ID)
	assert.True(t, resp.User.IsActive)
	assert.Empty(t, resp.User.PasswordHash)
	assert.Empty(t, resp.User.Password)
	assert.NotNil(t, resp.User.SkillsToTeach)
	assert.NotNil(t, resp.User.SkillsToLearn)

	stored, _ := repo.GetByID(resp.User.ID)
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
	assert.Equal(t, utils.HashToken(resp.Token), stored.TokenHash)
}

func TestRegisterUser_MissingFields(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserRepo()}

	_, err := svc.RegisterUser(context.Background(), models.User{Email: "a@b.c"})
	assertKind(t, err, utils.KindValidation)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserRepo()}

	_, err := svc.RegisterUser(context.Background(), models.User{
		Name: "Ada", Email: "ada@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = svc.RegisterUser(context.Background(), models.User{
		Name: "Other Ada", Email: "ada@example.com", Password: "different",
	})
	assertKind(t, err, utils.KindConflict)
}

func TestAuthenticateUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &DefaultUserService{Repo: repo}

	reg, err := svc.RegisterUser(context.Background(), models.User{
		Name: "Ada", Email: "ada@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	auth, err := svc.AuthenticateUser(context.Background(), "ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, auth.User.ID)
	assert.NotEmpty(t, auth.Token)
	assert.Empty(t, auth.User.PasswordHash)

	// Login rotates the stored token hash.
	stored, _ := repo.GetByID(reg.User.ID)
	assert.Equal(t, utils.HashToken(auth.Token), stored.TokenHash)

	_, err = svc.AuthenticateUser(context.Background(), "ada@example.com", "wrong")
	assertKind(t, err, utils.KindForbidden)

	_, err = svc.AuthenticateUser(context.Background(), "nobody@example.com", "hunter22")
	assertKind(t, err, utils.KindForbidden)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	rating := 4.5
	repo := newFakeUserRepo(models.User{
		ID:            "u1",
		Name:          "Ada",
		Bio:           "old bio",
		IsActive:      true,
		Rating:        &rating,
		TotalSessions: 3,
	})
	svc := &DefaultUserService{Repo: repo}

	newBio := "new bio"
	updated, err := svc.UpdateProfile(context.Background(), "u1", ProfileUpdate{
		Bio:           &newBio,
		SkillsToTeach: []string{"Go"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", updated.Name)
	assert.Equal(t, "new bio", updated.Bio)
	assert.Equal(t, []string{"Go"}, updated.SkillsToTeach)

	// Derived fields stay untouched.
	stored, _ := repo.GetByID("u1")
	require.NotNil(t, stored.Rating)
	assert.InDelta(t, 4.5, *stored.Rating, 1e-9)
	assert.Equal(t, 3, stored.TotalSessions)
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserRepo()}

	_, err := svc.UpdateProfile(context.Background(), "ghost", ProfileUpdate{})
	assertKind(t, err, utils.KindNotFound)
}

func TestSearchBySkill_Paging(t *testing.T) {
	repo := newFakeUserRepo(
		models.User{ID: "u1", IsActive: true, SkillsToTeach: []string{"Go"}, PasswordHash: "secret"},
		models.User{ID: "u2", IsActive: true, SkillsToTeach: []string{"Go"}},
		models.User{ID: "u3", IsActive: true, SkillsToTeach: []string{"Piano"}},
		models.User{ID: "me", IsActive: true, SkillsToTeach: []string{"Go"}},
	)
	svc := &DefaultUserService{Repo: repo}

	result, err := svc.SearchBySkill(context.Background(), "me", "go", 1, 10)
	require.NoError(t, err)
	assert.Len(t, result.Users, 2)
	assert.Equal(t, int64(1), result.TotalPages)
	for _, u := range result.Users {
		assert.Empty(t, u.PasswordHash)
		assert.NotEqual(t, "me", u.ID)
	}

	paged, err := svc.SearchBySkill(context.Background(), "me", "go", 1, 1)
	require.NoError(t, err)
	assert.Len(t, paged.Users, 1)
	assert.Equal(t, int64(2), paged.TotalPages)

	// Out-of-range inputs fall back to defaults.
	fallback, err := svc.SearchBySkill(context.Background(), "me", "go", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fallback.CurrentPage)
}

func TestRevokeToken(t *testing.T) {
	repo := newFakeUserRepo(models.User{ID: "u1", IsActive: true, TokenHash: "hash"})
	svc := &DefaultUserService{Repo: repo}

	require.NoError(t, svc.RevokeToken(context.Background(), "u1"))

	stored, _ := repo.GetByID("u1")
	assert.Empty(t, stored.TokenHash)

	assertKind(t, svc.RevokeToken(context.Background(), "ghost"), utils.KindNotFound)
}
