package tests

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"restaurant-ordering/account-svc/internal/domain"
	"restaurant-ordering/account-svc/internal/mocks"
	"restaurant-ordering/account-svc/internal/service"
	"restaurant-ordering/auth"
	"restaurant-ordering/config"
	"restaurant-ordering/validation"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var tokens = auth.NewTokenService(config.Auth{JWTSecret: "test", TokenTTL: time.Hour, InviteTTL: 48 * time.Hour})

func nullLog() *logrus.Entry {
	logger, _ := test.NewNullLogger()
	return logrus.NewEntry(logger)
}

type accountMocks struct {
	users     *mocks.UserRepository
	publisher *mocks.NotificationPublisher
}

func newAccountService(t *testing.T) (*service.AccountService, accountMocks) {
	m := accountMocks{
		users:     mocks.NewUserRepository(t),
		publisher: mocks.NewNotificationPublisher(t),
	}
	return service.NewAccountService(m.users, tokens, m.publisher, "https://trattoria.example/", nullLog()), m
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestAccountService_Signup(t *testing.T) {
	ctx := context.Background()
	svc, m := newAccountService(t)

	m.users.On("CreateUser", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "ada@example.com" && auth.CheckPassword(u.PasswordHash, "analytical")
	}), auth.RoleCustomer).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = "user-1"
	}).Return(nil).Once()
	m.publisher.On("Publish", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Type == domain.NotificationNewsletterWelcome
	})).Return(errors.New("broker unreachable")).Once()

	session, err := svc.Signup(ctx, domain.SignupRequest{
		Email: " Ada@Example.com ", Password: "analytical", FullName: "Ada", Subscribe: true,
	})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleCustomer, session.User.Role)

	claims, err := tokens.Parse(session.Token, auth.PurposeSession)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestAccountService_Signup_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		svc, _ := newAccountService(t)
		_, err := svc.Signup(ctx, domain.SignupRequest{Email: "nope", Password: "short"})
		verrs, ok := validation.As(err)
		require.True(t, ok)
		assert.Contains(t, verrs, "email")
		assert.Contains(t, verrs, "password")
	})

	t.Run("duplicate_email", func(t *testing.T) {
		svc, m := newAccountService(t)
		m.users.On("CreateUser", ctx, mock.Anything, auth.RoleCustomer).Return(domain.ErrConflict).Once()

		_, err := svc.Signup(ctx, domain.SignupRequest{Email: "ada@example.com", Password: "analytical"})
		assert.ErrorIs(t, err, service.ErrEmailTaken)
	})
}

func TestAccountService_Login(t *testing.T) {
	ctx := context.Background()
	hash := hashed(t, "analytical")

	tests := []struct {
		name        string
		password    string
		user        *domain.User
		repoErr     error
		expectedErr error
	}{
		{
			name:     "success",
			password: "analytical",
			user:     &domain.User{ID: "user-1", Email: "ada@example.com", PasswordHash: hash, Verified: true, Roles: []string{"customer"}},
		},
		{
			name:        "wrong_password",
			password:    "babbage",
			user:        &domain.User{ID: "user-1", Email: "ada@example.com", PasswordHash: hash, Verified: true},
			expectedErr: service.ErrInvalidCredentials,
		},
		{
			name:        "unknown_email",
			password:    "analytical",
			repoErr:     domain.ErrNotFound,
			expectedErr: service.ErrInvalidCredentials,
		},
		{
			name:        "invited_not_verified",
			password:    "analytical",
			user:        &domain.User{ID: "user-1", Email: "ada@example.com", Roles: []string{"admin"}},
			expectedErr: service.ErrNotVerified,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, m := newAccountService(t)
			m.users.On("GetUserByEmail", ctx, "ada@example.com").Return(testCase.user, testCase.repoErr).Once()

			session, err := svc.Login(ctx, domain.LoginRequest{Email: "ada@example.com", Password: testCase.password})
			if testCase.expectedErr != nil {
				assert.ErrorIs(t, err, testCase.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, session.Token)
		})
	}
}

func TestAccountService_AdminLogin(t *testing.T) {
	ctx := context.Background()
	hash := hashed(t, "analytical")

	t.Run("customer_refused", func(t *testing.T) {
		svc, m := newAccountService(t)
		m.users.On("GetUserByEmail", ctx, "ada@example.com").
			Return(&domain.User{ID: "user-1", Email: "ada@example.com", PasswordHash: hash, Verified: true, Roles: []string{"customer"}}, nil).Once()

		_, err := svc.AdminLogin(ctx, domain.LoginRequest{Email: "ada@example.com", Password: "analytical"})
		assert.ErrorIs(t, err, service.ErrNotAdmin)
	})

	t.Run("admin", func(t *testing.T) {
		svc, m := newAccountService(t)
		m.users.On("GetUserByEmail", ctx, "ada@example.com").
			Return(&domain.User{ID: "user-1", Email: "ada@example.com", PasswordHash: hash, Verified: true, Roles: []string{"admin", "customer"}}, nil).Once()

		session, err := svc.AdminLogin(ctx, domain.LoginRequest{Email: "ada@example.com", Password: "analytical"})
		require.NoError(t, err)
		claims, err := tokens.Parse(session.Token, auth.PurposeSession)
		require.NoError(t, err)
		assert.True(t, claims.IsAdmin())
	})
}

func TestAccountService_Role(t *testing.T) {
	ctx := context.Background()
	svc, m := newAccountService(t)
	m.users.On("GetUserByID", ctx, "user-1").Return(&domain.User{ID: "user-1", Roles: []string{"customer", "admin"}}, nil).Once()
	m.users.On("GetUserByID", ctx, "ghost").Return(nil, domain.ErrNotFound).Once()

	role, err := svc.Role(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, role)

	_, err = svc.Role(ctx, "ghost")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestAccountService_InviteAdmin(t *testing.T) {
	ctx := context.Background()
	svc, m := newAccountService(t)

	m.users.On("EnsureAdmin", ctx, "chef@example.com", "Chef").
		Return(&domain.User{ID: "user-9", Email: "chef@example.com", FullName: "Chef", Roles: []string{"admin"}}, nil).Once()
	m.publisher.On("Publish", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		if n.Type != domain.NotificationAdminVerification {
			return false
		}
		var msg domain.AdminVerification
		if err := json.Unmarshal(n.Payload, &msg); err != nil {
			return false
		}
		const prefix = "https://trattoria.example/admin/verify?token="
		if !strings.HasPrefix(msg.VerifyURL, prefix) {
			return false
		}
		claims, err := tokens.Parse(strings.TrimPrefix(msg.VerifyURL, prefix), auth.PurposeAdminInvite)
		return err == nil && claims.UserID == "user-9"
	})).Return(nil).Once()

	invite, err := svc.InviteAdmin(ctx, domain.InviteRequest{Email: "Chef@example.com", FullName: "Chef"})
	require.NoError(t, err)
	assert.True(t, invite.EmailSent)
	assert.Equal(t, "user-9", invite.UserID)
}

func TestAccountService_InviteAdmin_PublishFailure(t *testing.T) {
	ctx := context.Background()
	svc, m := newAccountService(t)

	m.users.On("EnsureAdmin", ctx, "chef@example.com", "").
		Return(&domain.User{ID: "user-9", Email: "chef@example.com"}, nil).Once()
	m.publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker unreachable")).Once()

	invite, err := svc.InviteAdmin(ctx, domain.InviteRequest{Email: "chef@example.com"})
	require.NoError(t, err)
	assert.False(t, invite.EmailSent)
}

func TestAccountService_VerifyAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("sets_password", func(t *testing.T) {
		svc, m := newAccountService(t)
		invite, err := tokens.IssueInvite("user-9", "chef@example.com")
		require.NoError(t, err)

		m.users.On("SetPassword", ctx, "user-9", mock.MatchedBy(func(hash string) bool {
			return auth.CheckPassword(hash, "kitchen-secret")
		})).Return(nil).Once()
		m.users.On("GetUserByID", ctx, "user-9").
			Return(&domain.User{ID: "user-9", Email: "chef@example.com", Verified: true, Roles: []string{"admin"}}, nil).Once()

		session, err := svc.VerifyAdmin(ctx, domain.VerifyRequest{Token: invite, Password: "kitchen-secret"})
		require.NoError(t, err)
		assert.Equal(t, auth.RoleAdmin, session.User.Role)
	})

	t.Run("redeemed_twice", func(t *testing.T) {
		svc, m := newAccountService(t)
		invite, err := tokens.IssueInvite("user-9", "chef@example.com")
		require.NoError(t, err)

		m.users.On("SetPassword", ctx, "user-9", mock.AnythingOfType("string")).Return(nil).Once()
		m.users.On("GetUserByID", ctx, "user-9").
			Return(&domain.User{ID: "user-9", Email: "chef@example.com", Verified: true, Roles: []string{"admin"}}, nil).Once()
		m.users.On("SetPassword", ctx, "user-9", mock.AnythingOfType("string")).Return(domain.ErrNotFound).Once()

		_, err = svc.VerifyAdmin(ctx, domain.VerifyRequest{Token: invite, Password: "kitchen-secret"})
		require.NoError(t, err)

		_, err = svc.VerifyAdmin(ctx, domain.VerifyRequest{Token: invite, Password: "attacker-pass"})
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("session_token_rejected", func(t *testing.T) {
		svc, _ := newAccountService(t)
		sessionToken, err := tokens.Issue("user-9", "chef@example.com", auth.RoleAdmin)
		require.NoError(t, err)

		_, err = svc.VerifyAdmin(ctx, domain.VerifyRequest{Token: sessionToken, Password: "kitchen-secret"})
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})
}

func TestProfileService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid_phone", func(t *testing.T) {
		svc := service.NewProfileService(mocks.NewProfileRepository(t))
		_, err := svc.Update(ctx, "user-1", domain.ProfileUpdate{Phone: "12"})
		verrs, ok := validation.As(err)
		require.True(t, ok)
		assert.Contains(t, verrs, "phone")
	})

	t.Run("trimmed", func(t *testing.T) {
		repo := mocks.NewProfileRepository(t)
		repo.On("UpdateProfile", ctx, "user-1", domain.ProfileUpdate{FullName: "Ada", Phone: "555 010 0100", Address: "12 Engine Road"}).
			Return(&domain.Profile{UserID: "user-1", FullName: "Ada"}, nil).Once()

		svc := service.NewProfileService(repo)
		p, err := svc.Update(ctx, "user-1", domain.ProfileUpdate{FullName: " Ada ", Phone: "555 010 0100 ", Address: "12 Engine Road"})
		require.NoError(t, err)
		assert.Equal(t, "Ada", p.FullName)
	})

	t.Run("empty_phone_allowed", func(t *testing.T) {
		repo := mocks.NewProfileRepository(t)
		repo.On("UpdateProfile", ctx, "user-1", domain.ProfileUpdate{FullName: "Ada"}).
			Return(&domain.Profile{UserID: "user-1", FullName: "Ada"}, nil).Once()

		_, err := service.NewProfileService(repo).Update(ctx, "user-1", domain.ProfileUpdate{FullName: "Ada"})
		assert.NoError(t, err)
	})
}
