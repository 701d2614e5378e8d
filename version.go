package sdk

// Version is the published SDK version.
// 0.5.0: Breaking - Wallet moves under /players/{player_id}/wallet and gains
// History. Events.Ingest returns the accepted count.
// 0.4.0: Add Auth.PlayerToken for minting player-scoped bearer tokens.
// 0.3.0: Add RetryDelay helper; APIError gains Kind keyed by HTTP status.
const Version = "0.5.0"
