// Package domain holds the core models shared by the client, history and
// display layers.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// TimestampLayout is the format used for the client-assigned receipt timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// ErrEmptyName is returned when either name is empty after trimming.
var ErrEmptyName = errors.New("both names are required")

// ComparisonRequest holds the two names sent to the matching service.
type ComparisonRequest struct {
	Name1 string `json:"name1"`
	Name2 string `json:"name2"`
}

// Normalize returns a copy with both names trimmed.
func (r ComparisonRequest) Normalize() ComparisonRequest {
	return ComparisonRequest{
		Name1: strings.TrimSpace(r.Name1),
		Name2: strings.TrimSpace(r.Name2),
	}
}

// Validate rejects requests where either trimmed name is empty.
func (r ComparisonRequest) Validate() error {
	n := r.Normalize()
	if n.Name1 == "" || n.Name2 == "" {
		return ErrEmptyName
	}
	return nil
}

// Verdict is the server's yes/no match judgment.
type Verdict string

const (
	VerdictYes Verdict = "yes"
	VerdictNo  Verdict = "no"
)

// ParseVerdict accepts "yes"/"no" in any case with surrounding whitespace.
func ParseVerdict(raw string) (Verdict, error) {
	switch v := Verdict(strings.ToLower(strings.TrimSpace(raw))); v {
	case VerdictYes, VerdictNo:
		return v, nil
	default:
		return "", fmt.Errorf("invalid is_match value %q (expected yes or no)", raw)
	}
}

// IsMatch reports whether the verdict is "yes".
func (v Verdict) IsMatch() bool { return v == VerdictYes }

// ComparisonResult is a single completed comparison as seen by the client.
type ComparisonResult struct {
	IsMatch         Verdict `json:"is_match"`
	ConfidenceScore float64 `json:"confidence_score"`
	Reason          string  `json:"reason"`
	ResponseTimeMs  float64 `json:"response_time_ms"`
	Timestamp       string  `json:"timestamp"`
	InputName1      string  `json:"input_name1"`
	InputName2      string  `json:"input_name2"`
}

// Route returns the display-only routing label for the result.
func (r ComparisonResult) Route() RoutingLabel {
	return Classify(r.IsMatch, r.ConfidenceScore)
}
