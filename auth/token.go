package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"restaurant-ordering/config"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

const (
	PurposeSession     = "session"
	PurposeAdminInvite = "admin_invite"
	PurposeReceipt     = "order_receipt"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// TokenService signs and verifies HS256 tokens for sessions and admin invitations.
type TokenService struct {
	secret    []byte
	issuer    string
	ttl       time.Duration
	adminTTL  time.Duration
	inviteTTL time.Duration
	now       func() time.Time
}

func NewTokenService(cfg config.Auth) *TokenService {
	return &TokenService{
		secret:    []byte(cfg.JWTSecret),
		issuer:    "restaurant-ordering",
		ttl:       cfg.TokenTTL,
		adminTTL:  cfg.AdminTTL,
		inviteTTL: cfg.InviteTTL,
		now:       time.Now,
	}
}

// Issue signs a session token. Admin sessions use the shorter AdminTTL when
// one is configured.
func (s *TokenService) Issue(userID, email, role string) (string, error) {
	ttl := s.ttl
	if role == RoleAdmin && s.adminTTL > 0 && s.adminTTL < ttl {
		ttl = s.adminTTL
	}
	return s.sign(userID, email, role, PurposeSession, ttl)
}

func (s *TokenService) IssueInvite(userID, email string) (string, error) {
	return s.sign(userID, email, RoleAdmin, PurposeAdminInvite, s.inviteTTL)
}

// IssueReceipt signs a link token that grants read access to one order's receipt.
func (s *TokenService) IssueReceipt(orderID int) (string, error) {
	return s.sign(strconv.Itoa(orderID), "", "", PurposeReceipt, s.ttl)
}

func (s *TokenService) VerifyReceipt(token string, orderID int) bool {
	claims, err := s.Parse(token, PurposeReceipt)
	return err == nil && claims.UserID == strconv.Itoa(orderID)
}

func (s *TokenService) sign(userID, email, role, purpose string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:  userID,
		Email:   email,
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature, expiry and purpose of a token.
func (s *TokenService) Parse(tokenString, purpose string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
