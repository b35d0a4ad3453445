package service

import (
	"testing"

	"fleet-service/internal/apperr"
	"fleet-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newUserFixture() (*UserService, *mockUserRepo, *mockCompanyRepo) {
	users := newMockUserRepo()
	companies := newMockCompanyRepo()
	svc := NewUserService(users, companies, zap.NewNop())
	return svc, users, companies
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, _, companies := newUserFixture()
	companies.add(&model.Company{CompanyRef: 7, Active: true})

	user, err := svc.CreateUser(&CreateUserRequest{
		CompanyRef: 7,
		Name:       "Alice",
		Login:      "alice",
		Password:   "secret123",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
	assert.Equal(t, model.RoleUser, user.Role, "role defaults to user")
	assert.True(t, user.Active)
}

func TestCreateUserDuplicateLogin(t *testing.T) {
	svc, users, companies := newUserFixture()
	companies.add(&model.Company{CompanyRef: 7, Active: true})
	users.users[1] = &model.User{ID: 1, Login: "alice", CompanyRef: 7, Active: true}

	_, err := svc.CreateUser(&CreateUserRequest{CompanyRef: 7, Login: "alice", Password: "x"})
	assert.Equal(t, apperr.ErrUserExistsByLogin, err)
}

func TestCreateUserUnknownCompany(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.CreateUser(&CreateUserRequest{CompanyRef: 99, Login: "alice", Password: "x"})
	assert.Equal(t, apperr.ErrCompanyNotFound, err)
}

func TestFindAllUsersByCompanyRefUnknownCompany(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.FindAllUsersByCompanyRef(99)
	assert.Equal(t, apperr.ErrCompanyNotFound, err)
}

func TestFindUserByCompanyRefAndIDScoped(t *testing.T) {
	svc, users, companies := newUserFixture()
	companies.add(&model.Company{CompanyRef: 7, Active: true})
	companies.add(&model.Company{CompanyRef: 8, Active: true})
	users.users[1] = &model.User{ID: 1, Login: "alice", CompanyRef: 7, Active: true}

	_, err := svc.FindUserByCompanyRefAndID(8, 1)
	assert.Equal(t, apperr.ErrUserNotFound, err)

	found, err := svc.FindUserByCompanyRefAndID(7, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), found.ID)
}

func TestUpdateUserNonAdminCannotEscalate(t *testing.T) {
	svc, users, _ := newUserFixture()
	users.users[1] = &model.User{ID: 1, Login: "alice", Role: model.RoleUser, CompanyRef: 7, Active: true}

	role := model.RoleAdmin
	active := false
	name := "Alice B"
	updated, err := svc.UpdateUserByID(1, model.RoleUser, &UpdateUserRequest{
		Name:   &name,
		Role:   &role,
		Active: &active,
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, model.RoleUser, updated.Role, "role change ignored for non-admin caller")
	assert.True(t, updated.Active, "active change ignored for non-admin caller")
}

func TestUpdateUserAdminCanChangeRole(t *testing.T) {
	svc, users, _ := newUserFixture()
	users.users[1] = &model.User{ID: 1, Login: "alice", Role: model.RoleUser, CompanyRef: 7, Active: true}

	role := model.RoleAdmin
	updated, err := svc.UpdateUserByID(1, model.RoleAdmin, &UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	svc, users, _ := newUserFixture()
	users.users[1] = &model.User{ID: 1, Login: "alice", Password: "oldhash", CompanyRef: 7, Active: true}

	pw := "newsecret"
	updated, err := svc.UpdateUserByID(1, model.RoleUser, &UpdateUserRequest{Password: &pw})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newsecret")))
}

func TestRemoveUserSoftDeletes(t *testing.T) {
	svc, users, _ := newUserFixture()
	users.users[1] = &model.User{ID: 1, Login: "alice", CompanyRef: 7, Active: true}

	require.NoError(t, svc.RemoveUserByID(1))
	assert.False(t, users.users[1].Active)

	// Soft-deleted users disappear from default reads
	_, err := svc.FindByLogin("alice")
	assert.Equal(t, apperr.ErrUserNotFound, err)
}

func TestRemoveUserNotFound(t *testing.T) {
	svc, _, _ := newUserFixture()
	assert.Equal(t, apperr.ErrUserNotFound, svc.RemoveUserByID(42))
}
