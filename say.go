package sdk

import (
	"context"
	"fmt"
	"strings"
)

// SayOptions configures optional settings for Say.
type SayOptions struct {
	// System persona to prepend to the conversation.
	System string
	// Tier selects the cost/quality level for the upstream AI call.
	Tier QualityTier
	// PlayerID overrides the client-level player attribution for this call.
	PlayerID string
}

// Say sends one player line to an NPC and returns the NPC's reply text.
//
// This is the most ergonomic way to get a quick answer.
//
// Example:
//
//	reply, err := client.Say(ctx, "blacksmith", "Can you repair my sword?", nil)
//	if err != nil { /* handle */ }
//	fmt.Println(reply)
func (c *Client) Say(ctx context.Context, npcID, line string, opts *SayOptions) (string, error) {
	if opts == nil {
		opts = &SayOptions{}
	}
	req := ChatRequest{NPCID: npcID, Tier: opts.Tier}
	if opts.System != "" {
		req.Messages = append(req.Messages, SystemMessage(opts.System))
	}
	req.Messages = append(req.Messages, UserMessage(line))

	var callOpts []CallOption
	if opts.PlayerID != "" {
		callOpts = append(callOpts, WithPlayer(opts.PlayerID))
	}
	resp, err := c.Chat.Complete(ctx, req, callOpts...)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Content) == "" {
		return "", fmt.Errorf("sdk: response contained no dialogue text")
	}
	return resp.Content, nil
}
