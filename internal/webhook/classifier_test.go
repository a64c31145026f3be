package webhook

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		event string
		want  EventClass
	}{
		{"call_analyzed", EventAnalyzed},
		{"call.analyzed", EventAnalyzed},
		{"call_completed", EventFinal},
		{"call.completed", EventFinal},
		{"call_ended", EventFinal},
		{"call.ended", EventFinal},
		{"CALL_ANALYZED", EventAnalyzed},
		{"  call_ended  ", EventFinal},
		{"call_started", EventIrrelevant},
		{"transcript_ready", EventIrrelevant},
		{"", EventIrrelevant},
	}

	for _, tc := range cases {
		if got := Classify(tc.event); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.event, got, tc.want)
		}
	}
}
