// Package sdk provides the NPCForge Go SDK for interacting with the NPCForge API.
package sdk

import (
	"net/http"
	"strings"

	"github.com/npcforge/npcforge-go/headers"
)

type authStrategy interface {
	Apply(req *http.Request)
}

type authChain []authStrategy

func (c authChain) Apply(req *http.Request) {
	for _, s := range c {
		if s == nil {
			continue
		}
		s.Apply(req)
	}
}

type bearerAuth struct {
	token string
}

func (b bearerAuth) Apply(req *http.Request) {
	if b.token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+b.token)
}

type apiKeyAuth struct {
	key string
}

func (a apiKeyAuth) Apply(req *http.Request) {
	if a.key == "" {
		return
	}
	req.Header.Set(headers.APIKey, a.key)
}

// playerAuth attributes requests to a player via the identifying header.
type playerAuth struct {
	playerID string
}

func (p playerAuth) Apply(req *http.Request) {
	if p.playerID == "" {
		return
	}
	if req.Header.Get(headers.PlayerID) != "" {
		// A per-call option already set the player; keep it.
		return
	}
	req.Header.Set(headers.PlayerID, p.playerID)
}

// isSecretKey returns true if the API key is a secret key (nf_sk_*).
func (a apiKeyAuth) isSecretKey() bool {
	return strings.HasPrefix(a.key, "nf_sk_")
}
