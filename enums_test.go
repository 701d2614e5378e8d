package sdk

import "testing"

func TestParseFinishReason(t *testing.T) {
	cases := map[string]FinishReason{
		"stop":           FinishReasonStop,
		"end_turn":       FinishReasonStop,
		"completed":      FinishReasonStop,
		"MAX_TOKENS":     FinishReasonLength,
		"content_filter": FinishReasonContentFilter,
		"":               "",
		"tool_use":       FinishReason("tool_use"),
	}
	for in, want := range cases {
		if got := ParseFinishReason(in); got != want {
			t.Errorf("ParseFinishReason(%q) = %q, want %q", in, got, want)
		}
	}
	if !FinishReason("tool_use").IsOther() {
		t.Errorf("vendor finish reason should report IsOther")
	}
	if FinishReasonStop.IsOther() {
		t.Errorf("stop is a known finish reason")
	}
}

func TestParseQualityTier(t *testing.T) {
	cases := map[string]QualityTier{
		"budget":   TierBudget,
		"Standard": TierStandard,
		" premium": TierPremium,
		"":         "",
		"ultra":    QualityTier("ultra"),
	}
	for in, want := range cases {
		if got := ParseQualityTier(in); got != want {
			t.Errorf("ParseQualityTier(%q) = %q, want %q", in, got, want)
		}
	}
	if !QualityTier("ultra").IsOther() {
		t.Errorf("custom tier should report IsOther")
	}
	if !QualityTier("  ").IsEmpty() {
		t.Errorf("whitespace tier should report IsEmpty")
	}
}
