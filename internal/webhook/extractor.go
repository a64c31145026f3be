package webhook

import (
	"math"
	"strings"
)

// CallData is the canonical record produced from a raw provider payload.
// Pointer fields distinguish "absent from payload" from zero values, so the
// storage layer can apply partial updates without clobbering earlier data.
type CallData struct {
	CallID       string
	AgentID      *string
	Phone        *string
	WebCall      bool
	Transcript   *string
	Summary      *string
	RecordingURL *string
	DurationSec  *int
	CallStatus   string
	Successful   bool
	Sentiment    string
	Name         *string
	CaseType     *string
	Urgency      *string
	Analysis     map[string]any
}

// SummaryPlaceholder stands in when the provider sends a transcript but no
// analysis summary, so the UI never shows an empty summary for a real call.
const SummaryPlaceholder = "Call completed - transcript available"

// candidate is one possible location for a canonical field: a source object
// and the key to read from it. Candidates are tried in order, first
// present non-empty value wins.
type candidate struct {
	src map[string]any
	key string
}

// ExtractCall normalizes a raw webhook payload into CallData. The provider's
// payload shape varies across event types and API versions, so every field is
// read through an ordered candidate list covering the known locations.
// Returns ok=false when no call id is present anywhere; such payloads are
// acknowledged no-ops.
func ExtractCall(payload map[string]any) (CallData, bool) {
	call := objectAt(payload, "call")
	analysis := firstObject(
		candidate{call, "call_analysis"},
		candidate{payload, "call_analysis"},
	)
	customData := objectAt(analysis, "custom_analysis_data")

	callID, ok := firstString(
		candidate{call, "call_id"},
		candidate{payload, "call_id"},
		candidate{payload, "callId"},
	)
	if !ok {
		return CallData{}, false
	}

	data := CallData{
		CallID:   callID,
		Analysis: analysis,
		WebCall:  isWebCall(call, payload),
	}

	data.AgentID = optString(
		candidate{call, "agent_id"},
		candidate{payload, "agent_id"},
		candidate{payload, "agentId"},
	)
	data.Phone = optString(
		candidate{call, "from_number"},
		candidate{payload, "from_number"},
		candidate{call, "from"},
		candidate{call, "caller_number"},
		candidate{payload, "caller_number"},
	)
	data.Transcript = extractTranscript(call, payload)
	data.Summary = optString(
		candidate{analysis, "call_summary"},
		candidate{payload, "call_summary"},
		candidate{payload, "summary"},
	)
	data.RecordingURL = optString(
		candidate{call, "recording_url"},
		candidate{payload, "recording_url"},
	)

	if ms, ok := firstNumber(
		candidate{call, "duration_ms"},
		candidate{payload, "duration_ms"},
	); ok {
		secs := int(math.Round(ms / 1000))
		data.DurationSec = &secs
	}

	data.CallStatus = "ended"
	if status, ok := firstString(
		candidate{call, "call_status"},
		candidate{payload, "call_status"},
	); ok {
		data.CallStatus = status
	}

	if successful, ok := analysis["call_successful"].(bool); ok {
		data.Successful = successful
	}
	if sentiment, ok := analysis["user_sentiment"].(string); ok {
		data.Sentiment = strings.TrimSpace(sentiment)
	}

	data.Name = optString(candidate{customData, "name"})
	data.CaseType = optString(candidate{customData, "case_type"})
	data.Urgency = optString(candidate{customData, "urgency"})

	return data, true
}

// SummaryOrPlaceholder resolves the summary to store on first insert.
// Updates pass the raw Summary so an absent value never overwrites.
func (d CallData) SummaryOrPlaceholder() *string {
	if d.Summary != nil {
		return d.Summary
	}
	if d.Transcript != nil {
		placeholder := SummaryPlaceholder
		return &placeholder
	}
	return nil
}

// extractTranscript returns the flat transcript when present, otherwise
// reconstructs one from the provider's structured speaker turns.
func extractTranscript(call, payload map[string]any) *string {
	if t := optString(
		candidate{call, "transcript"},
		candidate{payload, "transcript"},
	); t != nil {
		return t
	}

	turns, ok := firstSlice(
		candidate{call, "transcript_object"},
		candidate{payload, "transcript_object"},
		candidate{call, "transcript_with_tool_calls"},
	)
	if !ok {
		return nil
	}

	var lines []string
	for _, raw := range turns {
		turn, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		role, _ := turn["role"].(string)
		content, _ := turn["content"].(string)
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		lines = append(lines, role+": "+content)
	}
	if len(lines) == 0 {
		return nil
	}
	joined := strings.Join(lines, "\n")
	return &joined
}

func isWebCall(call, payload map[string]any) bool {
	callType, _ := firstString(
		candidate{call, "call_type"},
		candidate{payload, "call_type"},
	)
	return strings.EqualFold(callType, "web_call")
}

// ---- ordered-candidate helpers ----

func firstString(candidates ...candidate) (string, bool) {
	for _, c := range candidates {
		if c.src == nil {
			continue
		}
		if v, ok := c.src[c.key].(string); ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}

func optString(candidates ...candidate) *string {
	if v, ok := firstString(candidates...); ok {
		return &v
	}
	return nil
}

func firstNumber(candidates ...candidate) (float64, bool) {
	for _, c := range candidates {
		if c.src == nil {
			continue
		}
		// JSON numbers decode as float64
		if v, ok := c.src[c.key].(float64); ok {
			return v, true
		}
	}
	return 0, false
}

func firstSlice(candidates ...candidate) ([]any, bool) {
	for _, c := range candidates {
		if c.src == nil {
			continue
		}
		if v, ok := c.src[c.key].([]any); ok && len(v) > 0 {
			return v, true
		}
	}
	return nil, false
}

func firstObject(candidates ...candidate) map[string]any {
	for _, c := range candidates {
		if c.src == nil {
			continue
		}
		if v, ok := c.src[c.key].(map[string]any); ok {
			return v
		}
	}
	return nil
}

func objectAt(src map[string]any, key string) map[string]any {
	if src == nil {
		return nil
	}
	v, _ := src[key].(map[string]any)
	return v
}
