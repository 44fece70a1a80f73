package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ExtractTokenFromRequest extracts a JWT token from an HTTP request's Authorization header
func ExtractTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header is missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("authorization header format must be 'Bearer {token}'")
	}

	return parts[1], nil
}

// OperatorClaims are the claims read from back-office tokens.
type OperatorClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// HMACVerifier validates HS256 tokens signed with a shared secret. It is
// meant for local setups without an identity provider.
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) (*HMACVerifier, error) {
	if secret == "" {
		return nil, errors.New("empty signing secret")
	}
	return &HMACVerifier{secret: []byte(secret)}, nil
}

func (v *HMACVerifier) Verify(_ context.Context, rawToken string) (Operator, error) {
	return ExtractOperatorFromJWT(rawToken, v.secret)
}

// ExtractOperatorFromJWT validates tokenString with secret and returns the
// operator named by its claims. The subject claim is required.
func ExtractOperatorFromJWT(tokenString string, secret []byte) (Operator, error) {
	if tokenString == "" {
		return Operator{}, errors.New("empty token")
	}

	var claims OperatorClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Operator{}, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims.Subject == "" {
		return Operator{}, errors.New("subject claim not found in token")
	}

	return Operator{Subject: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

// SignOperatorToken issues an HS256 token for op. Used by local tooling and
// tests.
func SignOperatorToken(op Operator, secret []byte, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = op.Subject
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, OperatorClaims{
		Email:            op.Email,
		Name:             op.Name,
		RegisteredClaims: claims,
	})
	return token.SignedString(secret)
}
