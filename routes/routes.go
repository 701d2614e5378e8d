// Package routes provides shared API route constants used by both
// the API server and SDK clients to prevent path mismatches.
package routes

// API route paths - these constants are shared between server and clients
// to ensure compile-time safety and prevent endpoint mismatches.
const (
	// ChatCompletions serves NPC chat completions (blocking JSON or streaming SSE).
	ChatCompletions = "/chat/completions"

	// Players creates (POST) or lists (GET) players for the authenticated game.
	Players = "/players"

	// PlayerByID returns or updates a single player profile.
	PlayerByID = "/players/{player_id}"

	// PlayerState stores and lists per-player state entries.
	PlayerState = "/players/{player_id}/state"

	// PlayerStateKey reads or deletes a single state entry.
	PlayerStateKey = "/players/{player_id}/state/{key}"

	// PlayerWallet returns the player's wallet snapshot.
	PlayerWallet = "/players/{player_id}/wallet"

	// PlayerWalletHistory returns the wallet's ledger entries.
	PlayerWalletHistory = "/players/{player_id}/wallet/history"

	// Events polls pending game events (GET) or ingests new ones (POST).
	Events = "/events"

	// EventsAck acknowledges delivered events so they are not re-polled.
	EventsAck = "/events/ack"

	// AuthPlayerToken mints a player-scoped bearer token (requires secret key).
	AuthPlayerToken = "/auth/player-token" // #nosec G101 -- route path, not a credential
)
