package domain

import "testing"

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name       string
		successful bool
		sentiment  string
		want       Status
	}{
		{"successful call converts", true, "", StatusConverted},
		{"successful wins over negative sentiment", true, SentimentNegative, StatusConverted},
		{"positive sentiment qualifies", false, SentimentPositive, StatusQualified},
		{"negative sentiment disqualifies", false, SentimentNegative, StatusDisqualified},
		{"neutral sentiment stays new", false, "Neutral", StatusNew},
		{"empty analysis stays new", false, "", StatusNew},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveStatus(tc.successful, tc.sentiment)
			if got != tc.want {
				t.Errorf("DeriveStatus(%v, %q) = %q, want %q", tc.successful, tc.sentiment, got, tc.want)
			}
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range AllStatuses {
		if !IsValidStatus(string(status)) {
			t.Errorf("expected %q to be a valid status", status)
		}
	}
	for _, invalid := range []string{"", "new", "All", "Closed"} {
		if IsValidStatus(invalid) {
			t.Errorf("expected %q to be rejected", invalid)
		}
	}
}

func TestIsValidUrgency(t *testing.T) {
	for _, u := range []string{"Low", "Medium", "High", "Critical"} {
		if !IsValidUrgency(u) {
			t.Errorf("expected %q to be a valid urgency", u)
		}
	}
	if IsValidUrgency("Urgent") {
		t.Error("expected unknown urgency to be rejected")
	}
}
