package webhook

import (
	"encoding/json"
	"testing"
)

// parsePayload round-trips through encoding/json so number and object types
// match what the handler sees at runtime.
func parsePayload(t *testing.T, raw string) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("invalid test payload: %v", err)
	}
	return payload
}

func TestExtractCallIDPrecedence(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
	}{
		{
			"nested wins over top-level",
			`{"call": {"call_id": "nested"}, "call_id": "top"}`,
			"nested",
		},
		{
			"top-level when no nested",
			`{"call_id": "top", "callId": "camel"}`,
			"top",
		},
		{
			"camelCase as last resort",
			`{"callId": "camel"}`,
			"camel",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, ok := ExtractCall(parsePayload(t, tc.raw))
			if !ok {
				t.Fatal("expected extraction to succeed")
			}
			if data.CallID != tc.want {
				t.Errorf("CallID = %q, want %q", data.CallID, tc.want)
			}
		})
	}
}

func TestExtractCallWithoutCallID(t *testing.T) {
	_, ok := ExtractCall(parsePayload(t, `{"event": "call_ended", "from_number": "+15551234"}`))
	if ok {
		t.Error("expected extraction to fail without a call id")
	}
}

func TestExtractTranscriptFromSpeakerTurns(t *testing.T) {
	payload := parsePayload(t, `{
		"call_id": "c1",
		"call": {
			"transcript_object": [
				{"role": "agent", "content": "Hello, how can I help?"},
				{"role": "user", "content": ""},
				{"role": "user", "content": "I was in an accident."}
			]
		}
	}`)

	data, ok := ExtractCall(payload)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if data.Transcript == nil {
		t.Fatal("expected a reconstructed transcript")
	}
	want := "agent: Hello, how can I help?\nuser: I was in an accident."
	if *data.Transcript != want {
		t.Errorf("Transcript = %q, want %q", *data.Transcript, want)
	}
}

func TestExtractFlatTranscriptWinsOverTurns(t *testing.T) {
	payload := parsePayload(t, `{
		"call_id": "c1",
		"transcript": "full transcript",
		"call": {"transcript_object": [{"role": "agent", "content": "hi"}]}
	}`)

	data, _ := ExtractCall(payload)
	if data.Transcript == nil || *data.Transcript != "full transcript" {
		t.Errorf("expected flat transcript to win, got %v", data.Transcript)
	}
}

func TestExtractDurationRounding(t *testing.T) {
	cases := []struct {
		ms   string
		want int
	}{
		{"42000", 42},
		{"41500", 42},
		{"41499", 41},
		{"400", 0},
	}

	for _, tc := range cases {
		payload := parsePayload(t, `{"call_id": "c1", "duration_ms": `+tc.ms+`}`)
		data, _ := ExtractCall(payload)
		if data.DurationSec == nil {
			t.Fatalf("duration_ms=%s: expected a duration", tc.ms)
		}
		if *data.DurationSec != tc.want {
			t.Errorf("duration_ms=%s: got %d seconds, want %d", tc.ms, *data.DurationSec, tc.want)
		}
	}

	data, _ := ExtractCall(parsePayload(t, `{"call_id": "c1"}`))
	if data.DurationSec != nil {
		t.Error("expected nil duration when duration_ms is absent")
	}
}

func TestExtractCustomAnalysisData(t *testing.T) {
	payload := parsePayload(t, `{
		"call_id": "c1",
		"call_analysis": {
			"call_successful": true,
			"user_sentiment": "Positive",
			"call_summary": "Caller needs a divorce attorney.",
			"custom_analysis_data": {"name": "Ana", "case_type": "Divorce", "urgency": "High"}
		}
	}`)

	data, _ := ExtractCall(payload)
	if data.Name == nil || *data.Name != "Ana" {
		t.Errorf("Name = %v, want Ana", data.Name)
	}
	if data.CaseType == nil || *data.CaseType != "Divorce" {
		t.Errorf("CaseType = %v, want Divorce", data.CaseType)
	}
	if data.Urgency == nil || *data.Urgency != "High" {
		t.Errorf("Urgency = %v, want High", data.Urgency)
	}
	if !data.Successful {
		t.Error("expected Successful to be true")
	}
	if data.Sentiment != "Positive" {
		t.Errorf("Sentiment = %q, want Positive", data.Sentiment)
	}
	if data.Summary == nil || *data.Summary != "Caller needs a divorce attorney." {
		t.Errorf("Summary = %v", data.Summary)
	}
	if data.Analysis == nil {
		t.Error("expected the raw analysis blob to be preserved")
	}
}

func TestExtractNestedAnalysisBlock(t *testing.T) {
	payload := parsePayload(t, `{
		"call": {
			"call_id": "c1",
			"call_analysis": {"user_sentiment": "Negative", "call_successful": false}
		}
	}`)

	data, _ := ExtractCall(payload)
	if data.Sentiment != "Negative" {
		t.Errorf("Sentiment = %q, want Negative", data.Sentiment)
	}
}

func TestSummaryPlaceholder(t *testing.T) {
	transcript := "agent: hello"

	withTranscript := CallData{Transcript: &transcript}
	if got := withTranscript.SummaryOrPlaceholder(); got == nil || *got != SummaryPlaceholder {
		t.Errorf("expected placeholder when transcript exists, got %v", got)
	}

	var empty CallData
	if got := empty.SummaryOrPlaceholder(); got != nil {
		t.Errorf("expected nil without transcript or summary, got %q", *got)
	}

	summary := "real summary"
	withSummary := CallData{Summary: &summary, Transcript: &transcript}
	if got := withSummary.SummaryOrPlaceholder(); got == nil || *got != "real summary" {
		t.Errorf("expected the real summary to win, got %v", got)
	}
}

func TestExtractWebCall(t *testing.T) {
	data, _ := ExtractCall(parsePayload(t, `{"call_id": "c1", "call": {"call_type": "web_call"}}`))
	if !data.WebCall {
		t.Error("expected web call detection from nested call_type")
	}

	data, _ = ExtractCall(parsePayload(t, `{"call_id": "c1", "call_type": "phone_call"}`))
	if data.WebCall {
		t.Error("expected phone_call not to be a web call")
	}
}

func TestExtractCallStatusDefault(t *testing.T) {
	data, _ := ExtractCall(parsePayload(t, `{"call_id": "c1"}`))
	if data.CallStatus != "ended" {
		t.Errorf("CallStatus = %q, want ended", data.CallStatus)
	}

	data, _ = ExtractCall(parsePayload(t, `{"call_id": "c1", "call": {"call_status": "ongoing"}}`))
	if data.CallStatus != "ongoing" {
		t.Errorf("CallStatus = %q, want ongoing", data.CallStatus)
	}
}

func TestExtractPhonePrecedence(t *testing.T) {
	payload := parsePayload(t, `{"call_id": "c1", "call": {"from_number": "+15550001"}, "from_number": "+15550002"}`)
	data, _ := ExtractCall(payload)
	if data.Phone == nil || *data.Phone != "+15550001" {
		t.Errorf("Phone = %v, want nested +15550001", data.Phone)
	}

	data, _ = ExtractCall(parsePayload(t, `{"call_id": "c1"}`))
	if data.Phone != nil {
		t.Errorf("expected nil phone when absent, got %q", *data.Phone)
	}
}
