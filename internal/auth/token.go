package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token fails signature or structural
// verification.
var ErrInvalidToken = errors.New("invalid token")

const (
	claimUserID    = "userId"
	claimTokenType = "type"

	// refreshTokenType marks refresh tokens; access tokens carry no type
	// claim.
	refreshTokenType = "refresh"
)

// TokenManager issues and verifies signed bearer tokens. Expiry is not
// checked during parsing; it is an explicit separate step so callers can
// distinguish "unverifiable" from "expired".
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// AccessTTL returns the configured access token lifetime.
func (tm *TokenManager) AccessTTL() time.Duration {
	return tm.accessTTL
}

// Issue signs a token whose payload carries the subject, issued-at, expiry
// and the supplied custom claims.
func (tm *TokenManager) Issue(subject string, custom map[string]any, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": jwt.NewNumericDate(now),
		"exp": jwt.NewNumericDate(now.Add(ttl)),
	}
	for name, value := range custom {
		claims[name] = value
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// IssueAccessToken builds a short-lived token for the user.
func (tm *TokenManager) IssueAccessToken(username string, userID int64) (string, error) {
	return tm.Issue(username, map[string]any{claimUserID: userID}, tm.accessTTL)
}

// IssueRefreshToken builds a long-lived token marked with the refresh type
// claim.
func (tm *TokenManager) IssueRefreshToken(username string, userID int64) (string, error) {
	return tm.Issue(username, map[string]any{claimUserID: userID, claimTokenType: refreshTokenType}, tm.refreshTTL)
}

// Parse verifies the signature and structure of the token and returns all
// claims. It deliberately does not reject expired tokens.
func (tm *TokenManager) Parse(tokenStr string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS512 {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrInvalidToken, token.Header["alg"])
		}
		return tm.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if _, hasSub := claims["sub"]; !hasSub {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if _, hasExp := claims["exp"]; !hasExp {
		return nil, fmt.Errorf("%w: missing expiry", ErrInvalidToken)
	}
	return claims, nil
}

// ExtractClaim returns a single claim by name, performing a full parse.
func (tm *TokenManager) ExtractClaim(tokenStr, name string) (any, error) {
	claims, err := tm.Parse(tokenStr)
	if err != nil {
		return nil, err
	}
	value, ok := claims[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing claim %q", ErrInvalidToken, name)
	}
	return value, nil
}

// ExtractUsername returns the token subject.
func (tm *TokenManager) ExtractUsername(tokenStr string) (string, error) {
	value, err := tm.ExtractClaim(tokenStr, "sub")
	if err != nil {
		return "", err
	}
	username, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: subject is not a string", ErrInvalidToken)
	}
	return username, nil
}

// ExtractUserID returns the numeric userId claim.
func (tm *TokenManager) ExtractUserID(tokenStr string) (int64, error) {
	value, err := tm.ExtractClaim(tokenStr, claimUserID)
	if err != nil {
		return 0, err
	}
	switch v := value.(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: userId is not numeric", ErrInvalidToken)
	}
}

// ExtractExpiration returns the token expiry instant.
func (tm *TokenManager) ExtractExpiration(tokenStr string) (time.Time, error) {
	claims, err := tm.Parse(tokenStr)
	if err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("%w: missing expiry", ErrInvalidToken)
	}
	return exp.Time, nil
}

// IsRefreshToken reports whether the token carries the refresh type claim.
func (tm *TokenManager) IsRefreshToken(tokenStr string) bool {
	value, err := tm.ExtractClaim(tokenStr, claimTokenType)
	if err != nil {
		return false
	}
	typ, ok := value.(string)
	return ok && typ == refreshTokenType
}

// IsExpired reports whether the token expiry has passed. Tokens that cannot
// be parsed count as expired.
func (tm *TokenManager) IsExpired(tokenStr string) bool {
	exp, err := tm.ExtractExpiration(tokenStr)
	if err != nil {
		return true
	}
	return exp.Before(time.Now())
}

// Validate reports whether the token is verifiable, belongs to the given
// username and has not expired. Any failure yields false.
func (tm *TokenManager) Validate(tokenStr, username string) bool {
	subject, err := tm.ExtractUsername(tokenStr)
	if err != nil {
		return false
	}
	return subject == username && !tm.IsExpired(tokenStr)
}
