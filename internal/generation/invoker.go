package generation

import (
	"context"
	"encoding/json"
	"strings"

	"dagdraft/internal/config"
	"dagdraft/internal/logging"
	"dagdraft/internal/types"
)

// Invoker submits grounding payloads to the capability a section references.
// It owns capability selection and the round-trip timeout; it never touches
// the store.
type Invoker struct {
	client   Client
	timeouts config.GenerationTimeouts
}

// NewInvoker creates an invoker over a generation client.
func NewInvoker(client Client, timeouts config.GenerationTimeouts) *Invoker {
	return &Invoker{client: client, timeouts: timeouts}
}

// SelectCapability picks the capability reference for this attempt.
// Override rule: caller feedback on a defenses section routes to the
// section's feedback-specialized capability when one is configured.
func SelectCapability(sec *types.Section, userFeedback string) string {
	if userFeedback != "" && sec.Kind == types.KindDefenses && sec.FeedbackCapabilityRef != "" {
		return sec.FeedbackCapabilityRef
	}
	return sec.GenerationCapabilityRef
}

// Invoke performs one bounded generation round trip and decodes the answer
// into the loosely-typed envelope the normalizer consumes. Transport and
// timeout failures come back as UpstreamError; the caller persists nothing
// in that case, so retries are safe.
func (iv *Invoker) Invoke(ctx context.Context, sec *types.Section, req *Request) (map[string]interface{}, error) {
	ref := SelectCapability(sec, req.UserFeedback)
	if ref == "" {
		return nil, types.NewValidation("no generation capability configured for section %s", sec.SectionKey)
	}

	system := BuildSystemPrompt(ref, sec.Kind)
	user := BuildUserPrompt(req)

	timer := logging.StartTimer(logging.CategoryGeneration, "Invoke "+sec.SectionKey)
	defer timer.StopWithThreshold(iv.timeouts.PerCallTimeout / 2)

	callCtx, cancel := context.WithTimeout(ctx, iv.timeouts.PerCallTimeout)
	defer cancel()

	logging.Generation("Invoking capability %s for section %s (model %s, regeneration=%v)",
		ref, sec.SectionKey, iv.client.Model(), req.Regeneration)

	raw, err := iv.client.CompleteWithSystem(callCtx, system, user)
	if err != nil {
		logging.Get(logging.CategoryGeneration).Error("Capability %s failed for %s: %v", ref, sec.SectionKey, err)
		return nil, types.NewUpstream("generate "+sec.SectionKey, err)
	}

	return DecodeEnvelope(raw), nil
}

// DecodeEnvelope parses the model's raw output into a loosely-typed map.
// Markdown code fences are stripped first. Output that is not a JSON object
// is wrapped as {"text": raw} so the normalizer's generic rule can still
// render it; a failed round trip is an error, an odd-shaped answer is not.
func DecodeEnvelope(raw string) map[string]interface{} {
	cleaned := stripCodeFences(raw)

	var m map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &m); err == nil {
		return m
	}

	// Some models wrap the object in a one-element array.
	var arr []interface{}
	if err := json.Unmarshal([]byte(cleaned), &arr); err == nil && len(arr) > 0 {
		if m, ok := arr[0].(map[string]interface{}); ok {
			return m
		}
	}

	logging.GenerationDebug("Response is not a JSON object; treating as plain text (%d bytes)", len(raw))
	return map[string]interface{}{"text": strings.TrimSpace(raw)}
}

// stripCodeFences removes a surrounding ```json ... ``` fence if present.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag line ("json").
		trimmed = trimmed[idx+1:]
	}
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
