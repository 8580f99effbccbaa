package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"

	DefaultTokenTTL = 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid_token")

// Identity is an authenticated caller. Token is the bearer token it was
// derived from, so clients can forward it.
type Identity struct {
	Subject  string `json:"sub"`
	Role     string `json:"role"`
	DoctorID string `json:"doctorId,omitempty"`
	Token    string `json:"-"`
}

// Authenticated reports whether the identity can be used for API calls.
func (i *Identity) Authenticated() bool {
	return i != nil && i.Subject != "" && i.Token != ""
}

type Claims struct {
	Role     string `json:"role"`
	DoctorID string `json:"doctorId,omitempty"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) Issue(subject, role, doctorID string) (string, error) {
	now := t.now()
	claims := Claims{
		Role:     role,
		DoctorID: doctorID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *Tokens) Parse(tokenString string) (*Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{
		Subject:  claims.Subject,
		Role:     claims.Role,
		DoctorID: claims.DoctorID,
		Token:    tokenString,
	}, nil
}
