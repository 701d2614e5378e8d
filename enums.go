package sdk

import (
	"encoding/json"
	"strings"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// FinishReason encodes the reason a completion ended.
type FinishReason string

const (
	FinishReasonStop          FinishReason = "stop"
	FinishReasonLength        FinishReason = "length"
	FinishReasonContentFilter FinishReason = "content_filter"
	FinishReasonUnknown       FinishReason = "unknown"
)

// ParseFinishReason normalizes known finish reasons while keeping vendor-specific values.
func ParseFinishReason(val string) FinishReason {
	normalized := strings.TrimSpace(strings.ToLower(val))
	switch normalized {
	case "":
		return ""
	case "stop", "end_turn", "completed":
		return FinishReasonStop
	case "length", "max_tokens":
		return FinishReasonLength
	case "content_filter":
		return FinishReasonContentFilter
	case "unknown":
		return FinishReasonUnknown
	default:
		return FinishReason(val)
	}
}

// IsOther reports whether the value is not one of the known constants.
func (f FinishReason) IsOther() bool {
	switch f {
	case FinishReasonStop, FinishReasonLength, FinishReasonContentFilter, FinishReasonUnknown:
		return false
	default:
		return strings.TrimSpace(string(f)) != ""
	}
}

func (f FinishReason) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

func (f *FinishReason) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = ParseFinishReason(raw)
	return nil
}

// QualityTier selects the cost/quality level for the upstream AI call. The
// value is passed through opaquely; unknown tiers are preserved as-is.
type QualityTier string

const (
	TierBudget   QualityTier = "budget"
	TierStandard QualityTier = "standard"
	TierPremium  QualityTier = "premium"
)

// ParseQualityTier normalizes known tiers and preserves custom identifiers.
func ParseQualityTier(val string) QualityTier {
	trimmed := strings.TrimSpace(val)
	switch strings.ToLower(trimmed) {
	case "":
		return ""
	case "budget":
		return TierBudget
	case "standard":
		return TierStandard
	case "premium":
		return TierPremium
	default:
		return QualityTier(trimmed)
	}
}

// IsOther reports whether the tier is not one of the built-in constants.
func (q QualityTier) IsOther() bool {
	switch q {
	case TierBudget, TierStandard, TierPremium:
		return false
	default:
		return strings.TrimSpace(string(q)) != ""
	}
}

// IsEmpty reports whether the tier is unset.
func (q QualityTier) IsEmpty() bool {
	return strings.TrimSpace(string(q)) == ""
}

func (q QualityTier) String() string {
	return string(q)
}

func (q QualityTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(q))
}

func (q *QualityTier) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*q = ParseQualityTier(raw)
	return nil
}
