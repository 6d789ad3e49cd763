package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/InSantoshMahto/login-system/domain"
)

// Keyring holds the versioned signing secrets. Issue always signs with the
// current version; Verify accepts any known version, which lets secrets be
// rotated without invalidating outstanding tokens.
type Keyring struct {
	Current int
	Keys    map[int][]byte
}

// NewKeyring builds a keyring from config-provided secrets
func NewKeyring(current int, secrets map[int]string) (Keyring, error) {
	if len(secrets) == 0 {
		return Keyring{}, errors.New("keyring requires at least one secret")
	}
	keys := make(map[int][]byte, len(secrets))
	for version, secret := range secrets {
		if secret == "" {
			return Keyring{}, fmt.Errorf("empty secret for key version %d", version)
		}
		keys[version] = []byte(secret)
	}
	if _, ok := keys[current]; !ok {
		return Keyring{}, fmt.Errorf("current key version %d has no secret", current)
	}
	return Keyring{Current: current, Keys: keys}, nil
}

// JWTServiceImpl implements domain.TokenService using HS256 signing
type JWTServiceImpl struct {
	keyring Keyring
	issuer  string
}

// NewJWTService creates a new JWT token service
func NewJWTService(keyring Keyring, issuer string) domain.TokenService {
	return &JWTServiceImpl{
		keyring: keyring,
		issuer:  issuer,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// Issue implements domain.TokenService. The signature covers the user id,
// purpose and both timestamps, so tampering with any field invalidates the
// token.
func (j *JWTServiceImpl) Issue(userID uint, purpose domain.Purpose, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"purpose": string(purpose),
		"iss":     j.issuer,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
		"jti":     j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = strconv.Itoa(j.keyring.Current)
	return token.SignedString(j.keyring.Keys[j.keyring.Current])
}

// Verify implements domain.TokenService. It fails closed: any signature
// mismatch, structural corruption or expiry yields an error, never partial
// claims.
func (j *JWTServiceImpl) Verify(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.keyFor(token)
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	purpose, ok := claims["purpose"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	return &domain.TokenClaims{
		UserID:    uint(userID),
		Purpose:   domain.Purpose(purpose),
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}

// keyFor resolves the signing secret for a token's kid header
func (j *JWTServiceImpl) keyFor(token *jwt.Token) (interface{}, error) {
	kid, ok := token.Header["kid"].(string)
	if !ok {
		return j.keyring.Keys[j.keyring.Current], nil
	}
	version, err := strconv.Atoi(kid)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}
	key, ok := j.keyring.Keys[version]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return key, nil
}
