package utils // package utils provides helpers for password hashing and session tokens

import (
    "errors" // error values for token validation failures
    "time"   // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken represents a signed JWT session credential along with its
// expiry.  The Token field contains the JWT string.  Exp stores the
// expiration timestamp as a time.Time.  Session tokens are short-lived
// and sent in the Authorization header when calling protected endpoints.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// Identity is what a verified session token resolves to: the subject user
// ID and the email the token was issued for.  Status is deliberately not
// part of the claims; the middleware re-reads the live record instead.
type Identity struct {
    UserID uint64
    Email  string
}

// ErrInvalidToken is returned by ParseSessionToken for any token that does
// not verify: bad signature, wrong algorithm, expired, or malformed claims.
var ErrInvalidToken = errors.New("invalid session token")

// NewSessionToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user ID, the user's email, and a TTL in minutes.
// The JWT includes standard claims: subject (sub), email, expiration (exp)
// and issued at (iat).
func NewSessionToken(secret string, userID uint64, email string, ttlMin int) (SessionToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub":   userID,
        "email": email,
        "exp":   exp.Unix(),
        "iat":   time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies a raw JWT against the secret and re-derives
// the caller's identity from its claims.  Expiry is enforced by the
// parser.  Any failure collapses into ErrInvalidToken so callers cannot
// leak the exact reason a credential was rejected.
func ParseSessionToken(secret, raw string) (Identity, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Reject tokens signed with a different algorithm family.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return Identity{}, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return Identity{}, ErrInvalidToken
    }
    var id Identity
    // Numeric claims decode as float64.
    if sub, ok := claims["sub"].(float64); ok {
        id.UserID = uint64(sub)
    }
    if email, ok := claims["email"].(string); ok {
        id.Email = email
    }
    if id.UserID == 0 || id.Email == "" {
        return Identity{}, ErrInvalidToken
    }
    return id, nil
}
