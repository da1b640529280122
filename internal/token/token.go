// Package token reads the provisioning state out of the OIDC access token.
// Signature verification happened upstream in the identity provider flow; the
// core only needs the claim values to decide where to route the session.
package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"merchant-dashboard/internal/models"
)

// Claims are the access-token fields the dashboard cares about. Role and
// AccountRef stay empty until the backend provisions the account.
type Claims struct {
	jwt.RegisteredClaims

	Role       string `json:"role,omitempty"`
	AccountRef string `json:"account_ref,omitempty"`
}

// Decode parses the token without verifying its signature and returns the
// claims.
func Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}

// AuthenticationFrom builds the stored session identity from a raw access
// token.
func AuthenticationFrom(tokenString string) (models.Authentication, error) {
	claims, err := Decode(tokenString)
	if err != nil {
		return models.Authentication{}, err
	}
	return models.Authentication{
		UserID:     claims.Subject,
		Token:      tokenString,
		Role:       claims.Role,
		AccountRef: claims.AccountRef,
	}, nil
}
