package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"restaurant-ordering/account-svc/internal/domain"
	"restaurant-ordering/auth"
	"restaurant-ordering/validation"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("account is not verified yet")
	ErrNotAdmin           = errors.New("admin access required")
	ErrInvalidToken       = errors.New("invitation link is invalid or has expired")
)

type AccountService struct {
	users     UserRepository
	tokens    TokenIssuer
	publisher NotificationPublisher
	siteURL   string
	log       *logrus.Entry
	now       func() time.Time
}

func NewAccountService(users UserRepository, tokens TokenIssuer, publisher NotificationPublisher, siteURL string, log *logrus.Entry) *AccountService {
	return &AccountService{
		users:     users,
		tokens:    tokens,
		publisher: publisher,
		siteURL:   strings.TrimRight(siteURL, "/"),
		log:       log,
		now:       time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PrimaryRole picks the role carried in session tokens.
func PrimaryRole(roles []string) string {
	for _, r := range roles {
		if r == auth.RoleAdmin {
			return auth.RoleAdmin
		}
	}
	return auth.RoleCustomer
}

func (s *AccountService) session(user *domain.User) (*domain.Session, error) {
	role := PrimaryRole(user.Roles)
	token, err := s.tokens.Issue(user.ID, user.Email, role)
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		Token: token,
		User:  domain.SessionUser{ID: user.ID, Email: user.Email, FullName: user.FullName, Role: role},
	}, nil
}

func (s *AccountService) publish(ctx context.Context, kind string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.publisher.Publish(ctx, domain.Notification{Type: kind, Payload: raw, Timestamp: s.now()})
}

func (s *AccountService) Signup(ctx context.Context, req domain.SignupRequest) (*domain.Session, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: hash,
		Verified:     true,
		FullName:     strings.TrimSpace(req.FullName),
		Roles:        []string{auth.RoleCustomer},
	}
	if err := s.users.CreateUser(ctx, user, auth.RoleCustomer); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	log := s.log.WithField("user_id", user.ID)
	log.Info("User signed up")

	if req.Subscribe {
		welcome := domain.NewsletterWelcome{Email: user.Email, FullName: user.FullName}
		if err := s.publish(ctx, domain.NotificationNewsletterWelcome, welcome); err != nil {
			log.WithError(err).Warn("Failed to publish newsletter welcome")
		}
	}
	return s.session(user)
}

func (s *AccountService) authenticate(ctx context.Context, req domain.LoginRequest) (*domain.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.Verified || user.PasswordHash == "" {
		return nil, ErrNotVerified
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AccountService) Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error) {
	user, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.session(user)
}

// AdminLogin is Login restricted to users holding the admin role.
func (s *AccountService) AdminLogin(ctx context.Context, req domain.LoginRequest) (*domain.Session, error) {
	user, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}
	if PrimaryRole(user.Roles) != auth.RoleAdmin {
		s.log.WithField("user_id", user.ID).Warn("Non-admin attempted admin login")
		return nil, ErrNotAdmin
	}
	return s.session(user)
}

// Role reads the role from the database rather than trusting token claims.
func (s *AccountService) Role(ctx context.Context, userID string) (string, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return PrimaryRole(user.Roles), nil
}

func (s *AccountService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *AccountService) InviteAdmin(ctx context.Context, req domain.InviteRequest) (*domain.Invitation, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	user, err := s.users.EnsureAdmin(ctx, req.Email, strings.TrimSpace(req.FullName))
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.IssueInvite(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	invite := &domain.Invitation{UserID: user.ID, Email: user.Email}
	msg := domain.AdminVerification{
		Email:     user.Email,
		FullName:  user.FullName,
		VerifyURL: fmt.Sprintf("%s/admin/verify?token=%s", s.siteURL, url.QueryEscape(token)),
	}
	log := s.log.WithField("user_id", user.ID)
	if err := s.publish(ctx, domain.NotificationAdminVerification, msg); err != nil {
		log.WithError(err).Warn("Failed to publish admin verification")
	} else {
		invite.EmailSent = true
	}
	log.Info("Admin invited")
	return invite, nil
}

// VerifyAdmin redeems an invitation token by setting the password and
// returns a fresh admin session.
func (s *AccountService) VerifyAdmin(ctx context.Context, req domain.VerifyRequest) (*domain.Session, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	claims, err := s.tokens.Parse(req.Token, auth.PurposeAdminInvite)
	if err != nil {
		return nil, ErrInvalidToken
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.SetPassword(ctx, claims.UserID, hash); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	s.log.WithField("user_id", user.ID).Info("Admin verified")
	return s.session(user)
}

type ProfileService struct {
	profiles ProfileRepository
}

func NewProfileService(profiles ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *ProfileService) Update(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	update.FullName = strings.TrimSpace(update.FullName)
	update.Phone = strings.TrimSpace(update.Phone)
	update.Address = strings.TrimSpace(update.Address)
	if err := validation.Struct(update); err != nil {
		return nil, err
	}
	p, err := s.profiles.UpdateProfile(ctx, userID, update)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}
