// Package auth provides authentication helpers for the NPCForge SDK.
package auth

import "github.com/golang-jwt/jwt/v5"

// Claims encodes JWT claims embedded into player-scoped access tokens.
//
// This is a DTO matching the server's access token contract. The SDK keeps
// this struct local rather than sharing types with the backend.
type Claims struct {
	GameID         string `json:"gid,omitempty"`
	PlayerID       string `json:"pid,omitempty"`
	PlayerExternal string `json:"pext,omitempty"`
	SessionID      string `json:"sid,omitempty"`
	TokenType      string `json:"typ,omitempty"`

	jwt.RegisteredClaims
}

// ParseUnverified decodes claims without verifying the signature. Use it for
// client-side inspection only (expiry display, player attribution); the
// server remains the authority on token validity.
func ParseUnverified(token string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
