package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bookverse/bookverse-api/internal/application/auth"
	"github.com/bookverse/bookverse-api/internal/domain"
)

// JWTCodec implements auth.TokenCodec with HS256 and a process-wide secret.
// Session tokens carry identity + role + a refresh flag + jti; action tokens
// carry email + purpose + jti. The refresh flag and purpose live inside the
// signed payload, so neither can be forged without breaking the signature.
type JWTCodec struct {
	secret []byte
	issuer string
}

func NewJWTCodec(secret string, issuer string) *JWTCodec {
	return &JWTCodec{
		secret: []byte(secret),
		issuer: issuer,
	}
}

type sessionClaims struct {
	UserID  string `json:"uid"`
	Email   string `json:"email"`
	Role    string `json:"role,omitempty"`
	Refresh bool   `json:"refresh"`
	// Never set on issuance; decoded to reject action payloads.
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

type actionClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	// Never set on issuance; decoded to reject session payloads.
	UserID string `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

func (c *JWTCodec) IssueSession(userID, email, role string, kind domain.TokenKind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID:  userID,
		Email:   email,
		Role:    role,
		Refresh: kind == domain.TokenRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

func (c *JWTCodec) DecodeSession(token string) (auth.SessionClaims, error) {
	claims := &sessionClaims{}
	if err := c.parse(token, claims); err != nil {
		return auth.SessionClaims{}, err
	}
	// A capability token must never pass as a session, whatever its kind
	// would default to.
	if claims.Purpose != "" || claims.UserID == "" {
		return auth.SessionClaims{}, domain.ErrTokenInvalid()
	}

	kind := domain.TokenAccess
	if claims.Refresh {
		kind = domain.TokenRefresh
	}

	exp := time.Time{}
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	return auth.SessionClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		Kind:   kind,
		JTI:    claims.ID,
		Exp:    exp,
	}, nil
}

func (c *JWTCodec) IssueAction(email string, purpose domain.ActionPurpose, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := actionClaims{
		Email:   email,
		Purpose: string(purpose),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

func (c *JWTCodec) DecodeAction(token string) (auth.ActionClaims, error) {
	claims := &actionClaims{}
	if err := c.parse(token, claims); err != nil {
		return auth.ActionClaims{}, err
	}
	if claims.UserID != "" || claims.Purpose == "" {
		return auth.ActionClaims{}, domain.ErrTokenInvalid()
	}

	exp := time.Time{}
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	return auth.ActionClaims{
		Email:   claims.Email,
		Purpose: domain.ActionPurpose(claims.Purpose),
		JTI:     claims.ID,
		Exp:     exp,
	}, nil
}

// parse verifies signature integrity first; expiry is checked by the jwt
// library after the signature is known good. Errors collapse into the two
// domain classes the client is allowed to see.
func (c *JWTCodec) parse(token string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrTokenInvalid()
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.ErrTokenExpired()
		}
		return domain.ErrTokenInvalid()
	}
	if !parsed.Valid {
		return domain.ErrTokenInvalid()
	}
	return nil
}
