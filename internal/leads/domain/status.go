// Package domain holds the leads bounded context's core types and rules.
package domain

// Status is the lifecycle status of a lead.
type Status string

const (
	StatusNew          Status = "New"
	StatusContacted    Status = "Contacted"
	StatusQualified    Status = "Qualified"
	StatusConverted    Status = "Converted"
	StatusDisqualified Status = "Disqualified"
)

// AllStatuses lists every valid lead status, in pipeline order.
var AllStatuses = []Status{
	StatusNew,
	StatusContacted,
	StatusQualified,
	StatusConverted,
	StatusDisqualified,
}

// IsValidStatus reports whether s is a known lead status.
func IsValidStatus(s string) bool {
	for _, status := range AllStatuses {
		if string(status) == s {
			return true
		}
	}
	return false
}

// Urgency is the urgency classification of a lead's case.
type Urgency string

const (
	UrgencyLow      Urgency = "Low"
	UrgencyMedium   Urgency = "Medium"
	UrgencyHigh     Urgency = "High"
	UrgencyCritical Urgency = "Critical"
)

// IsValidUrgency reports whether u is a known urgency level.
func IsValidUrgency(u string) bool {
	switch Urgency(u) {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// Sentiment values reported by the voice provider's post-call analysis.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
)

// DeriveStatus maps post-call analysis signals to a lead status.
// Rules are evaluated in order; the first match wins:
// a successful call converts the lead, otherwise sentiment decides.
// Only invoked for analyzed events; final-only events never derive a status.
func DeriveStatus(callSuccessful bool, sentiment string) Status {
	switch {
	case callSuccessful:
		return StatusConverted
	case sentiment == SentimentPositive:
		return StatusQualified
	case sentiment == SentimentNegative:
		return StatusDisqualified
	default:
		return StatusNew
	}
}
