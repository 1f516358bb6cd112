package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

type JWT struct {
	key []byte
}

// Claims is the decoded identity a token carries. JTI is the ledger's key
// for the token.
type Claims struct {
	Identity uint
	Type     TokenType
	JTI      string
	Expires  int64 // Unix second
}

func New(key string) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}

	return &JWT{key: []byte(key)}, nil
}

// SignAccess mints a short-lived bearer token. Signing alone has no ledger
// side effect; the caller records the returned claims before handing the
// token out.
func (j *JWT) SignAccess(identity uint, ttl time.Duration) (string, *Claims, error) {
	return j.sign(identity, TypeAccess, ttl)
}

// SignRefresh mints the long-lived counterpart used only on the refresh and
// revoke endpoints.
func (j *JWT) SignRefresh(identity uint, ttl time.Duration) (string, *Claims, error) {
	return j.sign(identity, TypeRefresh, ttl)
}

func (j *JWT) sign(identity uint, typ TokenType, ttl time.Duration) (string, *Claims, error) {
	claims := &Claims{
		Identity: identity,
		Type:     typ,
		JTI:      uuid.NewString(),
		Expires:  time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"identity": claims.Identity,
		"typ":      string(claims.Type),
		"jti":      claims.JTI,
		"exp":      claims.Expires,
	})

	signed, err := token.SignedString(j.key)
	if err != nil {
		return "", nil, fmt.Errorf("sign jwt failed: %w", err)
	}

	return signed, claims, nil
}

func (j *JWT) Parse(tokenString string) (*Claims, error) {
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}

	// Map the claim fields
	claims := &Claims{}
	if mapClaims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		identity, ok := mapClaims["identity"].(float64)
		if !ok {
			return nil, errors.New("invalid identity claim")
		}
		typ, ok := mapClaims["typ"].(string)
		if !ok {
			return nil, errors.New("invalid typ claim")
		}
		jti, ok := mapClaims["jti"].(string)
		if !ok {
			return nil, errors.New("invalid jti claim")
		}
		exp, ok := mapClaims["exp"].(float64)
		if !ok {
			return nil, errors.New("invalid exp claim")
		}

		claims.Identity = uint(identity)
		claims.Type = TokenType(typ)
		claims.JTI = jti
		claims.Expires = int64(exp)
	} else {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
