package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-shop/internal/domain"
)

func newUserSvc() (*UserService, *fakeUsers) {
	repo := newFakeUsers()
	return NewUserService(repo, plainHasher{}), repo
}

func validUser() UserFields {
	return UserFields{
		Name:     Str("Ada"),
		LastName: Str("Lovelace"),
		Email:    Str("ada@example.com"),
		Password: Str("secret1"),
	}
}

func TestUserCreate_HashesPassword(t *testing.T) {
	svc, _ := newUserSvc()

	u, err := svc.Create(context.Background(), validUser())
	require.NoError(t, err)
	assert.Equal(t, "hashed:secret1", u.Password)
	assert.Nil(t, u.Phone)
}

func TestUserCreate_Validation(t *testing.T) {
	cases := []struct {
		name string
		edit func(*UserFields)
		msg  string
	}{
		{"missing email", func(f *UserFields) { f.Email = nil }, "Error creating user: Name, last name, email, and password are required fields"},
		{"empty last name", func(f *UserFields) { f.LastName = Str("") }, "Error creating user: Name, last name, email, and password are required fields"},
		{"bad email", func(f *UserFields) { f.Email = Str("not-an-email") }, "Error creating user: Invalid email format"},
		{"short password", func(f *UserFields) { f.Password = Str("12345") }, "Error creating user: Password must be at least 6 characters long"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo := newUserSvc()
			in := validUser()
			tc.edit(&in)

			_, err := svc.Create(context.Background(), in)
			require.EqualError(t, err, tc.msg)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
			assert.NotContains(t, repo.calls, "Create")
		})
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	svc, repo := newUserSvc()
	repo.seed(domain.User{Email: "ada@example.com"})

	_, err := svc.Create(context.Background(), validUser())
	require.EqualError(t, err, "Error creating user: Email already exists")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	// 软删后邮箱可复用
	repo.deleted[1] = true
	_, err = svc.Create(context.Background(), validUser())
	require.NoError(t, err)
}

func TestUserCreate_HashFailure(t *testing.T) {
	repo := newFakeUsers()
	svc := NewUserService(repo, plainHasher{err: errors.New("bcrypt failed")})

	_, err := svc.Create(context.Background(), validUser())
	require.EqualError(t, err, "Error creating user: bcrypt failed")
	assert.Equal(t, domain.KindStore, domain.KindOf(err))
}

func TestUser_FalsyID(t *testing.T) {
	svc, repo := newUserSvc()
	ctx := context.Background()

	_, err := svc.Get(ctx, 0)
	require.EqualError(t, err, "Error fetching user: User ID is required")
	_, err = svc.Update(ctx, 0, UserFields{})
	require.EqualError(t, err, "Error updating user: User ID is required for update")
	_, err = svc.SoftDelete(ctx, 0)
	require.EqualError(t, err, "Error deleting user: User ID is required for delete")
	_, err = svc.HardDelete(ctx, -1)
	require.EqualError(t, err, "Error permanently deleting user: User ID is required for hard delete")
	assert.Empty(t, repo.calls)
}

func TestUserFindByEmail(t *testing.T) {
	svc, repo := newUserSvc()
	repo.seed(domain.User{Email: "ada@example.com"})

	u, err := svc.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)

	u, err = svc.FindByEmail(context.Background(), "ADA@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)

	repo.fail["FindByEmail"] = errDB
	_, err = svc.FindByEmail(context.Background(), "ada@example.com")
	require.EqualError(t, err, "Error fetching user by email: DB error")
}

func TestUserUpdate(t *testing.T) {
	svc, repo := newUserSvc()
	repo.seed(
		domain.User{Name: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "hashed:secret1"},
		domain.User{Name: "Alan", LastName: "Turing", Email: "alan@example.com"},
	)
	ctx := context.Background()

	u, err := svc.Update(ctx, 1, UserFields{Phone: Str("555-0100"), Password: Str("newsecret")})
	require.NoError(t, err)
	assert.Equal(t, []string{"password", "phone"}, keys(repo.updates[0]))
	assert.Equal(t, "hashed:newsecret", u.Password)
	require.NotNil(t, u.Phone)
	assert.Equal(t, "555-0100", *u.Phone)

	_, err = svc.Update(ctx, 1, UserFields{Email: Str("alan@example.com")})
	require.EqualError(t, err, "Error updating user: Email already exists")

	_, err = svc.Update(ctx, 1, UserFields{Email: Str("bad")})
	require.EqualError(t, err, "Error updating user: Invalid email format")

	_, err = svc.Update(ctx, 1, UserFields{Name: Str("  ")})
	require.EqualError(t, err, "Error updating user: Name cannot be empty")

	_, err = svc.Update(ctx, 1, UserFields{Password: Str("123")})
	require.EqualError(t, err, "Error updating user: Password must be at least 6 characters long")

	// 邮箱不变时不查重
	repo.calls = nil
	_, err = svc.Update(ctx, 1, UserFields{Email: Str("ada@example.com")})
	require.NoError(t, err)
	assert.NotContains(t, repo.calls, "FindByEmail")

	u, err = svc.Update(ctx, 9, UserFields{Name: Str("x")})
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserDelete(t *testing.T) {
	svc, repo := newUserSvc()
	repo.seed(domain.User{Email: "a@example.com"}, domain.User{Email: "b@example.com"})
	ctx := context.Background()

	u, err := svc.SoftDelete(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, u)
	u, err = svc.SoftDelete(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, u)

	// 已软删的行 hard delete 也视为不存在
	u, err = svc.HardDelete(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = svc.HardDelete(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, u)
	_, ok := repo.rows[2]
	assert.False(t, ok)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUserSoftDelete_LostRace(t *testing.T) {
	svc, repo := newUserSvc()
	repo.seed(domain.User{Email: "a@example.com"})
	repo.noAffect = true

	_, err := svc.SoftDelete(context.Background(), 1)
	require.EqualError(t, err, "Error deleting user: Failed to delete user")
}

func TestUser_MissingRow(t *testing.T) {
	svc, repo := newUserSvc()
	ctx := context.Background()

	u, err := svc.Get(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = svc.Update(ctx, 99, UserFields{Phone: Str("555-0199")})
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Empty(t, repo.updates)
	assert.NotContains(t, repo.calls, "Update")
}
