package service

import (
	"context"

	"restaurant-ordering/account-svc/internal/domain"
	"restaurant-ordering/auth"
)

type UserRepository interface {
	// CreateUser inserts the user, an empty profile and the given role atomically.
	CreateUser(ctx context.Context, user *domain.User, role string) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	// EnsureAdmin grants the admin role and leaves the user unverified until
	// the invitation is redeemed.
	EnsureAdmin(ctx context.Context, email, fullName string) (*domain.User, error)
	// SetPassword returns domain.ErrNotFound for an already verified user.
	SetPassword(ctx context.Context, userID, hash string) error
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error)
}

type TokenIssuer interface {
	Issue(userID, email, role string) (string, error)
	IssueInvite(userID, email string) (string, error)
	Parse(tokenString, purpose string) (*auth.Claims, error)
}

type NotificationPublisher interface {
	Publish(ctx context.Context, msg domain.Notification) error
}

type AccountServiceInterface interface {
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.Session, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error)
	AdminLogin(ctx context.Context, req domain.LoginRequest) (*domain.Session, error)
	Role(ctx context.Context, userID string) (string, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	InviteAdmin(ctx context.Context, req domain.InviteRequest) (*domain.Invitation, error)
	VerifyAdmin(ctx context.Context, req domain.VerifyRequest) (*domain.Session, error)
}

type ProfileServiceInterface interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error)
}

var (
	_ AccountServiceInterface = (*AccountService)(nil)
	_ ProfileServiceInterface = (*ProfileService)(nil)
	_ TokenIssuer             = (*auth.TokenService)(nil)
)
