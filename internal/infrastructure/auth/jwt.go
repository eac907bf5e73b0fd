package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidator validates RS256 access tokens issued by the platform's
// identity service. This service never issues tokens, only validates them.
type TokenValidator struct {
	publicKey *rsa.PublicKey
	issuer    string
	audience  string
}

type accessClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// ActorClaims is the identity extracted from a validated token.
type ActorClaims struct {
	UserID string
	Email  string
	Name   string
}

func NewTokenValidator(publicKey *rsa.PublicKey, issuer, audience string) *TokenValidator {
	return &TokenValidator{publicKey: publicKey, issuer: issuer, audience: audience}
}

func (t *TokenValidator) ValidateAccessToken(tokenString string) (ActorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.publicKey, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithAudience(t.audience))
	if err != nil {
		return ActorClaims{}, err
	}
	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return ActorClaims{}, errors.New("invalid token claims")
	}
	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	return ActorClaims{UserID: userID, Email: claims.Email, Name: claims.Name}, nil
}

// LoadRSAPublicKeyFromPEM parses a PEM-encoded RSA public key.
func LoadRSAPublicKeyFromPEM(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("PEM block is not an RSA public key")
	}
	return rsaPub, nil
}
