// Package display renders comparison results, history and errors for the
// terminal. All color and layout decisions live here.
package display

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/samvad-hq/namematch-console/internal/app"
	"github.com/samvad-hq/namematch-console/internal/domain"
	"github.com/samvad-hq/namematch-console/internal/matcher"
	"github.com/samvad-hq/namematch-console/pkg/pairs"
)

const (
	noReason       = "No reason provided"
	emptyNamesHint = "Please enter both names to compare"
)

var (
	bold   = color.New(color.Bold)
	dim    = color.New(color.FgHiBlack)
	green  = color.New(color.FgGreen, color.Bold)
	yellow = color.New(color.FgYellow, color.Bold)
	red    = color.New(color.FgRed, color.Bold)
)

// SetColor enables or disables ANSI colors globally.
func SetColor(enabled bool) { color.NoColor = !enabled }

// MatchLabel returns the plain YES/NO label for a verdict.
func MatchLabel(v domain.Verdict) string {
	if v.IsMatch() {
		return "YES"
	}
	return "NO"
}

func verdictColor(v domain.Verdict) *color.Color {
	if v.IsMatch() {
		return green
	}
	return red
}

// confidenceColor grades a score: green from 0.8, yellow from 0.5, red below.
func confidenceColor(score float64) *color.Color {
	switch {
	case score >= domain.HighConfidence:
		return green
	case score >= 0.5:
		return yellow
	default:
		return red
	}
}

func routeColor(l domain.RoutingLabel) *color.Color {
	switch l {
	case domain.RouteTrue:
		return green
	case domain.RouteFalse:
		return red
	default:
		return yellow
	}
}

// Result prints a single comparison result.
func Result(w io.Writer, r domain.ComparisonResult) {
	_, _ = bold.Fprintf(w, "%s  vs  %s\n", r.InputName1, r.InputName2)
	_, _ = dim.Fprintln(w, strings.Repeat("━", 50))

	fmt.Fprint(w, "Match:          ")
	_, _ = verdictColor(r.IsMatch).Fprintln(w, MatchLabel(r.IsMatch))

	fmt.Fprint(w, "Confidence:     ")
	_, _ = confidenceColor(r.ConfidenceScore).Fprintf(w, "%.2f\n", r.ConfidenceScore)

	fmt.Fprintf(w, "Response Time:  %v ms\n", r.ResponseTimeMs)

	reason := strings.TrimSpace(r.Reason)
	if reason == "" {
		reason = noReason
	}
	fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "REASONING")
	fmt.Fprintln(w, reason)

	label := r.Route()
	fmt.Fprintln(w)
	fmt.Fprint(w, "Target Sheet:   ")
	_, _ = routeColor(label).Fprintln(w, label.TargetName())
}

// History prints the recorded results as a table, newest first.
func History(w io.Writer, entries []domain.ComparisonResult) error {
	if len(entries) == 0 {
		_, _ = dim.Fprintln(w, "No comparisons yet")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Timestamp\tName 1\tName 2\tMatch\tConfidence\tResponse Time (ms)")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%v\n",
			e.Timestamp, e.InputName1, e.InputName2, MatchLabel(e.IsMatch), e.ConfidenceScore, e.ResponseTimeMs)
	}
	return tw.Flush()
}

// ErrorMessage converts a comparison error into a user-facing message.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, domain.ErrEmptyName) {
		return emptyNamesHint
	}

	var me *matcher.Error
	if !errors.As(err, &me) {
		return "Error: " + err.Error()
	}
	switch me.Kind {
	case matcher.KindAPIError:
		return fmt.Sprintf("API Error: %d - %s", me.StatusCode, BodyText(me.Body))
	case matcher.KindConnectionFailed:
		return fmt.Sprintf("Connection Error: Could not connect to API at %s. Make sure your API server is running.", me.URL)
	default:
		return "Error: " + me.Message
	}
}

// Error prints the message for err in red.
func Error(w io.Writer, err error) {
	if errors.Is(err, domain.ErrEmptyName) {
		_, _ = yellow.Fprintln(w, ErrorMessage(err))
		return
	}
	_, _ = red.Fprintln(w, ErrorMessage(err))
}

// Health prints the outcome of a health check against baseURL.
func Health(w io.Writer, status matcher.HealthStatus, baseURL string) {
	switch status.State {
	case matcher.Healthy:
		_, _ = green.Fprintln(w, "API is healthy and accessible")
	case matcher.Unhealthy:
		_, _ = red.Fprintf(w, "API returned status code: %d\n", status.StatusCode)
	case matcher.Unreachable:
		_, _ = red.Fprintf(w, "Cannot connect to API at %s\n", baseURL)
	default:
		_, _ = red.Fprintf(w, "Health check failed: %s\n", status.Message)
	}
}

// BatchSummary prints one line per outcome followed by totals. Table cells
// are uncolored so tabwriter can align them.
func BatchSummary(w io.Writer, outcomes []app.BatchOutcome) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName 1\tName 2\tMatch\tConfidence\tExpected")

	var failed, met, missed int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t-\t-\n", o.Pair.ID, o.Pair.Name1, o.Pair.Name2, "ERROR")
			continue
		}

		expected := "-"
		if ok, checked := o.ExpectationMet(); checked {
			if ok {
				met++
				expected = "ok"
			} else {
				missed++
				expected = "want " + MatchLabel(o.Pair.Expect)
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
			o.Pair.ID, o.Result.InputName1, o.Result.InputName2,
			MatchLabel(o.Result.IsMatch),
			o.Result.ConfidenceScore, expected)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d compared, %d failed, %d expectations met, %d missed\n",
		len(outcomes)-failed, failed, met, missed)
	for _, o := range outcomes {
		if o.Err != nil {
			_, _ = dim.Fprintf(w, "  %s: %s\n", o.Pair.ID, ErrorMessage(o.Err))
		}
	}
	return nil
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Scenarios lists the built-in quick test scenarios.
func Scenarios(w io.Writer, list []pairs.Pair) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tScenario\tName 1\tName 2\tExpected")
	for _, p := range list {
		expected := "-"
		if p.HasExpectation() {
			expected = MatchLabel(p.Expect)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Label, p.Name1, p.Name2, expected)
	}
	return tw.Flush()
}

// BatchRecord is the JSON shape of a batch outcome.
type BatchRecord struct {
	ID             string                   `json:"id"`
	Name1          string                   `json:"name1"`
	Name2          string                   `json:"name2"`
	Result         *domain.ComparisonResult `json:"result,omitempty"`
	RoutingLabel   domain.RoutingLabel      `json:"routing_label,omitempty"`
	Error          string                   `json:"error,omitempty"`
	ExpectationMet *bool                    `json:"expectation_met,omitempty"`
}

// BatchRecords converts outcomes for JSON output.
func BatchRecords(outcomes []app.BatchOutcome) []BatchRecord {
	out := make([]BatchRecord, 0, len(outcomes))
	for _, o := range outcomes {
		rec := BatchRecord{ID: o.Pair.ID, Name1: o.Pair.Name1, Name2: o.Pair.Name2}
		if o.Err != nil {
			rec.Error = ErrorMessage(o.Err)
		} else {
			res := o.Result
			rec.Result = &res
			rec.RoutingLabel = res.Route()
		}
		if met, checked := o.ExpectationMet(); checked {
			rec.ExpectationMet = &met
		}
		out = append(out, rec)
	}
	return out
}
