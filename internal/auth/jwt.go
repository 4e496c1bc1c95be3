package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/julianstephens/habitual/internal/constants"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const (
	tokenAccess  = "access"
	tokenRefresh = "refresh"
)

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
}

func DefaultJWTConfig(secret string) JWTConfig {
	return JWTConfig{
		Secret:     secret,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		Issuer:     constants.AppName,
	}
}

// Claims identify the user a token was issued to.
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	cfg JWTConfig
	now func() time.Time
}

func NewJWTManager(cfg JWTConfig) *JWTManager {
	return &JWTManager{cfg: cfg, now: time.Now}
}

func (m *JWTManager) AccessToken(userID, email string) (string, error) {
	return m.sign(userID, email, tokenAccess, m.cfg.AccessTTL)
}

func (m *JWTManager) RefreshToken(userID, email string) (string, error) {
	return m.sign(userID, email, tokenRefresh, m.cfg.RefreshTTL)
}

func (m *JWTManager) sign(userID, email, kind string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.cfg.Secret))
}

func (m *JWTManager) parse(raw, kind string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(*jwt.Token) (any, error) {
		return []byte(m.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != kind || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *JWTManager) ValidateAccessToken(raw string) (*Claims, error) {
	return m.parse(raw, tokenAccess)
}

func (m *JWTManager) ValidateRefreshToken(raw string) (*Claims, error) {
	return m.parse(raw, tokenRefresh)
}

// ExpiresIn is the access token lifetime in seconds.
func (m *JWTManager) ExpiresIn() int64 {
	return int64(m.cfg.AccessTTL.Seconds())
}
