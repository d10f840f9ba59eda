package service

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/clothing-shop/internal/auth"
	"github.com/spec-kit/clothing-shop/internal/config"
	"github.com/spec-kit/clothing-shop/internal/domain"
	"github.com/spec-kit/clothing-shop/internal/repository"
	apperrors "github.com/spec-kit/clothing-shop/pkg/util"
)

// fakeUserRepo is an in-memory stand-in for the Postgres user directory.
type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	user.ID = f.nextID
	f.nextID++
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for id := int64(1); id < f.nextID; id++ {
		if user, ok := f.users[id]; ok {
			out = append(out, *user)
		}
	}
	return out, nil
}

func testConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{
		JWTSecret:       "test-secret",
		JWTIssuer:       "clothing-shop",
		JWTAudience:     "clothing-shop-api",
		TokenTTLMinutes: 30,
		BcryptCost:      bcrypt.MinCost,
	}}
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password string, roleID int64, role domain.RoleName) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     strings.ToUpper(username[:1]) + username[1:],
		Email:        username + "@example.com",
		RoleID:       roleID,
		RoleName:     role,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, code, de.Code)
}

func identityOf(user *domain.User) domain.Identity {
	return domain.Identity{SubjectID: user.ID, Role: user.RoleName}
}

func TestUserServiceGetVisibility(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(testConfig(), repo, nil)
	ctx := context.Background()

	admin := seedUser(t, repo, "alice", "password-a", RoleIDAdmin, domain.RoleAdmin)
	staff := seedUser(t, repo, "bob", "password-b", RoleIDStaff, domain.RoleStaff)
	member := seedUser(t, repo, "carol", "password-c", RoleIDMember, domain.RoleMember)
	other := seedUser(t, repo, "dave", "password-d", RoleIDMember, domain.RoleMember)

	got, err := svc.Get(ctx, identityOf(admin), member.ID)
	require.NoError(t, err)
	assert.Equal(t, member.ID, got.ID)

	got, err = svc.Get(ctx, identityOf(staff), member.ID)
	require.NoError(t, err)
	assert.Equal(t, member.ID, got.ID)

	_, err = svc.Get(ctx, identityOf(staff), admin.ID)
	assertCode(t, err, "FORBIDDEN")

	got, err = svc.Get(ctx, identityOf(member), member.ID)
	require.NoError(t, err)
	assert.Equal(t, member.ID, got.ID)

	_, err = svc.Get(ctx, identityOf(member), other.ID)
	assertCode(t, err, "FORBIDDEN")

	_, err = svc.Get(ctx, identityOf(admin), 999)
	assertCode(t, err, "NOT_FOUND")
}

func TestUserServiceListIsAdminOnly(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(testConfig(), repo, nil)
	ctx := context.Background()

	admin := seedUser(t, repo, "alice", "password-a", RoleIDAdmin, domain.RoleAdmin)
	staff := seedUser(t, repo, "bob", "password-b", RoleIDStaff, domain.RoleStaff)
	member := seedUser(t, repo, "carol", "password-c", RoleIDMember, domain.RoleMember)

	users, err := svc.List(ctx, identityOf(admin))
	require.NoError(t, err)
	assert.Len(t, users, 3)

	_, err = svc.List(ctx, identityOf(staff))
	assertCode(t, err, "FORBIDDEN")

	_, err = svc.List(ctx, identityOf(member))
	assertCode(t, err, "FORBIDDEN")
}

func TestUserServiceUpdateProfileAuthorizes(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(testConfig(), repo, nil)
	ctx := context.Background()

	member := seedUser(t, repo, "carol", "password-c", RoleIDMember, domain.RoleMember)
	other := seedUser(t, repo, "dave", "password-d", RoleIDMember, domain.RoleMember)

	updated, err := svc.UpdateProfile(ctx, identityOf(member), member.ID, ProfileUpdate{
		FullName: "Carol Q.",
		Email:    "carol@example.com",
		Address:  "12 Main St",
	})
	require.NoError(t, err)
	assert.Equal(t, "Carol Q.", updated.FullName)
	assert.Equal(t, "12 Main St", updated.Address)

	_, err = svc.UpdateProfile(ctx, identityOf(member), other.ID, ProfileUpdate{FullName: "Hijack", Email: "x@example.com"})
	assertCode(t, err, "FORBIDDEN")

	// no partial mutation on a forbidden update
	stored, err := repo.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dave", stored.FullName)
}

func TestUserServiceChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(testConfig(), repo, nil)
	ctx := context.Background()

	member := seedUser(t, repo, "carol", "password-c", RoleIDMember, domain.RoleMember)
	originalHash := member.PasswordHash

	err := svc.ChangePassword(ctx, identityOf(member), member.ID, "wrong-old", "brand-new-pass")
	assertCode(t, err, "FORBIDDEN")

	stored, err := repo.GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, originalHash, stored.PasswordHash, "rejected change must not mutate the stored secret")

	require.NoError(t, svc.ChangePassword(ctx, identityOf(member), member.ID, "password-c", "brand-new-pass"))

	stored, err = repo.GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, stored.PasswordHash)
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "brand-new-pass"))
}

func TestUserServiceDeactivateReactivate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(testConfig(), repo, nil)
	ctx := context.Background()

	admin := seedUser(t, repo, "alice", "password-a", RoleIDAdmin, domain.RoleAdmin)
	member := seedUser(t, repo, "carol", "password-c", RoleIDMember, domain.RoleMember)

	require.NoError(t, svc.Deactivate(ctx, identityOf(admin), member.ID))

	stored, err := repo.GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.True(t, stored.Deactivated)

	err = svc.Deactivate(ctx, identityOf(admin), member.ID)
	assertCode(t, err, "CONFLICT")

	require.NoError(t, svc.Reactivate(ctx, identityOf(admin), member.ID))

	stored, err = repo.GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.False(t, stored.Deactivated)

	err = svc.Reactivate(ctx, identityOf(admin), member.ID)
	assertCode(t, err, "CONFLICT")
}

func TestUserServiceMutationsRequireAuthorization(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(testConfig(), repo, nil)
	ctx := context.Background()

	member := seedUser(t, repo, "carol", "password-c", RoleIDMember, domain.RoleMember)
	other := seedUser(t, repo, "dave", "password-d", RoleIDMember, domain.RoleMember)

	err := svc.Deactivate(ctx, identityOf(member), other.ID)
	assertCode(t, err, "FORBIDDEN")

	stored, err := repo.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.False(t, stored.Deactivated)

	err = svc.ChangePassword(ctx, identityOf(member), other.ID, "password-d", "stolen-pass")
	assertCode(t, err, "FORBIDDEN")
}
