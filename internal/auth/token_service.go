package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/thefankor/KanbanBoard/internal/config"
)

var (
	// ErrTokenExpired is returned when a token's expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid is returned for malformed tokens and bad signatures,
	// including tokens signed with the wrong secret.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims represents the JWT claims carried by both token kinds.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenPair is an access/refresh token pair issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenService issues and verifies the access/refresh pair. The two kinds
// are signed with independent secrets, so a refresh token never verifies
// where an access token is expected and vice versa.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a TokenService from application config.
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecretKey),
		refreshSecret: []byte(cfg.RefreshSecretKey),
		accessTTL:     time.Duration(cfg.AccessTokenExpireMinutes) * time.Minute,
		refreshTTL:    time.Duration(cfg.RefreshTokenExpireDays) * 24 * time.Hour,
	}
}

// GeneratePair signs a fresh access/refresh pair for the given username.
func (s *TokenService) GeneratePair(username string) (*TokenPair, error) {
	access, err := s.sign(username, s.accessSecret, s.accessTTL, "")
	if err != nil {
		return nil, err
	}

	refresh, err := s.sign(username, s.refreshSecret, s.refreshTTL, uuid.New().String())
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// VerifyAccessToken validates a token against the access secret.
func (s *TokenService) VerifyAccessToken(tokenString string) (*Claims, error) {
	return s.verify(tokenString, s.accessSecret)
}

// VerifyRefreshToken validates a token against the refresh secret.
func (s *TokenService) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return s.verify(tokenString, s.refreshSecret)
}

func (s *TokenService) sign(username string, secret []byte, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *TokenService) verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
