package impl

import (
	"context"
	"testing"

	"fixly/internal/domain/entity"
	domainerrors "fixly/internal/domain/errors"
	"fixly/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_SignUp_CustomerStartsPending(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()

	out, err := svc.SignUp(context.Background(), &usecase.SignUpInput{
		Name:     "Test Customer",
		Email:    "customer@example.com",
		Password: "Password123",
		Role:     entity.RoleCustomer,
	})
	require.NoError(t, err)
	require.NotNil(t, out.User)

	assert.NotEqual(t, uuid.Nil, out.User.ID)
	assert.Equal(t, entity.RoleCustomer, out.User.Role)
	assert.Equal(t, entity.ApprovalPending, out.User.Status)

	stored, err := f.userRepo.FindByEmail(context.Background(), "customer@example.com")
	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalPending, stored.Status)
}

func TestUserService_SignUp_ProviderRoleRejected(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()

	_, err := svc.SignUp(context.Background(), &usecase.SignUpInput{
		Name:     "Wrong Door",
		Email:    "provider@example.com",
		Password: "Password123",
		Role:     entity.RoleProvider,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestUserService_SignUp_AllowlistedAdminIsPreApproved(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0, "Boss@Example.com"))
	svc := f.newUserService()

	// Allow-list comparison is case-insensitive.
	out, err := svc.SignUp(context.Background(), &usecase.SignUpInput{
		Name:     "The Boss",
		Email:    "boss@example.com",
		Password: "Password123",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalApproved, out.User.Status)
}

func TestUserService_SignUp_AdminOutsideAllowlistRejected(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0, "boss@example.com"))
	svc := f.newUserService()

	_, err := svc.SignUp(context.Background(), &usecase.SignUpInput{
		Name:     "Impostor",
		Email:    "impostor@example.com",
		Password: "Password123",
		Role:     entity.RoleAdmin,
	})
	assert.ErrorIs(t, err, domainerrors.ErrAdminNotAllowed)

	// No half-created rows survive the rejection.
	_, err = f.userRepo.FindByEmail(context.Background(), "impostor@example.com")
	assert.Error(t, err)
}

func TestUserService_SignUp_DuplicateEmail(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()
	ctx := context.Background()

	input := &usecase.SignUpInput{
		Name:     "First",
		Email:    "dup@example.com",
		Password: "Password123",
		Role:     entity.RoleCustomer,
	}
	_, err := svc.SignUp(ctx, input)
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_SignUp_WeakPassword(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()

	_, err := svc.SignUp(context.Background(), &usecase.SignUpInput{
		Name:     "Weak",
		Email:    "weak@example.com",
		Password: "abc",
		Role:     entity.RoleCustomer,
	})
	assert.ErrorIs(t, err, domainerrors.ErrPasswordStrength)
}

// signUpApprovedCustomer registers a customer and approves the account
// directly, returning the user.
func signUpApprovedCustomer(t *testing.T, f *serviceFixtures, svc usecase.UserUsecase, email, password string) *entity.User {
	t.Helper()
	ctx := context.Background()

	out, err := svc.SignUp(ctx, &usecase.SignUpInput{
		Name:     "Approved Customer",
		Email:    email,
		Password: password,
		Role:     entity.RoleCustomer,
	})
	require.NoError(t, err)
	require.NoError(t, f.userRepo.UpdateStatus(ctx, out.User.ID, entity.ApprovalApproved))

	return out.User
}

func TestUserService_SignIn_Success(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()
	user := signUpApprovedCustomer(t, f, svc, "login@example.com", "Password123")

	out, err := svc.SignIn(context.Background(), &usecase.SignInInput{
		Email:    "login@example.com",
		Password: "Password123",
		Role:     entity.RoleCustomer,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, user.ID, out.User.ID)
}

func TestUserService_SignIn_WrongPassword(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()
	signUpApprovedCustomer(t, f, svc, "login@example.com", "Password123")

	_, err := svc.SignIn(context.Background(), &usecase.SignInInput{
		Email:    "login@example.com",
		Password: "WrongPassword1",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_SignIn_UnknownEmail(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()

	_, err := svc.SignIn(context.Background(), &usecase.SignInInput{
		Email:    "nobody@example.com",
		Password: "Password123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_SignIn_RoleMismatch(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()
	user := signUpApprovedCustomer(t, f, svc, "login@example.com", "Password123")

	// A customer signing into the admin portal is turned away even with
	// correct credentials.
	_, err := svc.SignIn(context.Background(), &usecase.SignInInput{
		Email:    "login@example.com",
		Password: "Password123",
		Role:     entity.RoleAdmin,
	})
	assert.ErrorIs(t, err, domainerrors.ErrRoleMismatch)

	// The rejection happens before any token work, so no half-open session
	// may be left behind.
	sessions, err := f.refreshTokenRepo.CountActiveSessionsByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Zero(t, sessions)
}

func TestUserService_SignIn_PendingAccountBlocked(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, &usecase.SignUpInput{
		Name:     "Pending Customer",
		Email:    "pending@example.com",
		Password: "Password123",
		Role:     entity.RoleCustomer,
	})
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, &usecase.SignInInput{
		Email:    "pending@example.com",
		Password: "Password123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotApproved)
}

func TestUserService_SignIn_SessionLimit(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(2))
	svc := f.newUserService()
	signUpApprovedCustomer(t, f, svc, "login@example.com", "Password123")
	ctx := context.Background()

	input := &usecase.SignInInput{Email: "login@example.com", Password: "Password123"}

	_, err := svc.SignIn(ctx, input)
	require.NoError(t, err)
	_, err = svc.SignIn(ctx, input)
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrSessionLimitExceeded)
}

func TestUserService_Refresh_Success(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()
	signUpApprovedCustomer(t, f, svc, "login@example.com", "Password123")
	ctx := context.Background()

	signedIn, err := svc.SignIn(ctx, &usecase.SignInInput{Email: "login@example.com", Password: "Password123"})
	require.NoError(t, err)

	out, err := svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: signedIn.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
}

func TestUserService_Refresh_InvalidToken(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()

	_, err := svc.Refresh(context.Background(), &usecase.RefreshInput{RefreshToken: "not-a-token"})
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_Refresh_BlockedAfterRejection(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin, entity.ApprovalApproved)
	user := signUpApprovedCustomer(t, f, svc, "victim@example.com", "Password123")
	ctx := context.Background()

	signedIn, err := svc.SignIn(ctx, &usecase.SignInInput{Email: "victim@example.com", Password: "Password123"})
	require.NoError(t, err)

	// Rejection revokes the session, so the next refresh finds no token row.
	require.NoError(t, svc.RejectUser(ctx, admin.ID, user.ID))

	_, err = svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: signedIn.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_Logout_EndsSession(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()
	signUpApprovedCustomer(t, f, svc, "login@example.com", "Password123")
	ctx := context.Background()

	signedIn, err := svc.SignIn(ctx, &usecase.SignInInput{Email: "login@example.com", Password: "Password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, &usecase.LogoutInput{RefreshToken: signedIn.RefreshToken}))

	_, err = svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: signedIn.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_Logout_UnknownTokenIsQuiet(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()

	assert.NoError(t, svc.Logout(context.Background(), &usecase.LogoutInput{RefreshToken: "never-issued"}))
}

func TestUserService_LogoutAll_RevokesEverySession(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()
	user := signUpApprovedCustomer(t, f, svc, "login@example.com", "Password123")
	ctx := context.Background()

	first, err := svc.SignIn(ctx, &usecase.SignInInput{Email: "login@example.com", Password: "Password123"})
	require.NoError(t, err)
	second, err := svc.SignIn(ctx, &usecase.SignInInput{Email: "login@example.com", Password: "Password123"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, user.ID))

	_, err = svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
	_, err = svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: second.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_Me(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()
	user := f.seedUser(t, "me@example.com", entity.RoleCustomer, entity.ApprovalPending)

	got, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, entity.ApprovalPending, got.Status)

	_, err = svc.Me(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_ApproveUser(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin, entity.ApprovalApproved)
	target := f.seedUser(t, "target@example.com", entity.RoleCustomer, entity.ApprovalPending)
	ctx := context.Background()

	require.NoError(t, svc.ApproveUser(ctx, admin.ID, target.ID))

	stored, err := f.userRepo.FindByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalApproved, stored.Status)

	// Approving again converges quietly.
	assert.NoError(t, svc.ApproveUser(ctx, admin.ID, target.ID))
}

func TestUserService_ApproveUser_NonAdminForbidden(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()
	customer := f.seedUser(t, "customer@example.com", entity.RoleCustomer, entity.ApprovalApproved)
	target := f.seedUser(t, "target@example.com", entity.RoleCustomer, entity.ApprovalPending)

	err := svc.ApproveUser(context.Background(), customer.ID, target.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestUserService_ApproveUser_PendingAdminForbidden(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()
	pendingAdmin := f.seedUser(t, "pending-admin@example.com", entity.RoleAdmin, entity.ApprovalPending)
	target := f.seedUser(t, "target@example.com", entity.RoleCustomer, entity.ApprovalPending)

	// The admin gate checks role and approval against fresh data.
	err := svc.ApproveUser(context.Background(), pendingAdmin.ID, target.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestUserService_ApproveUser_TargetNotFound(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin, entity.ApprovalApproved)

	err := svc.ApproveUser(context.Background(), admin.ID, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_RejectUser(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin, entity.ApprovalApproved)
	target := f.seedUser(t, "target@example.com", entity.RoleCustomer, entity.ApprovalPending)
	ctx := context.Background()

	require.NoError(t, svc.RejectUser(ctx, admin.ID, target.ID))

	stored, err := f.userRepo.FindByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApprovalRejected, stored.Status)
}

func TestUserService_ListPendingUsers(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin, entity.ApprovalApproved)
	f.seedUser(t, "first@example.com", entity.RoleCustomer, entity.ApprovalPending)
	f.seedUser(t, "second@example.com", entity.RoleCustomer, entity.ApprovalPending)
	f.seedUser(t, "approved@example.com", entity.RoleCustomer, entity.ApprovalApproved)

	pending, err := svc.ListPendingUsers(context.Background(), admin.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, user := range pending {
		assert.Equal(t, entity.ApprovalPending, user.Status)
	}
}

func TestUserService_ListPendingUsers_NonAdminForbidden(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(0))
	svc := f.newUserService()
	customer := f.seedUser(t, "customer@example.com", entity.RoleCustomer, entity.ApprovalApproved)

	_, err := svc.ListPendingUsers(context.Background(), customer.ID, 10, 0)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
