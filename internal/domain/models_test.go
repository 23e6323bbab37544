package domain

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		verdict    Verdict
		confidence float64
		want       RoutingLabel
	}{
		{VerdictYes, 0.9, RouteTrue},
		{VerdictYes, 0.8, RouteTrue},
		{VerdictNo, 0.3, RouteFalse},
		{VerdictNo, 0.79, RouteFalse},
		{VerdictYes, 0.5, RouteDefault},
		{VerdictNo, 0.8, RouteDefault},
		{VerdictNo, 1.0, RouteDefault},
	}
	for _, tc := range cases {
		if got := Classify(tc.verdict, tc.confidence); got != tc.want {
			t.Errorf("Classify(%s, %.2f) = %s want %s", tc.verdict, tc.confidence, got, tc.want)
		}
	}
}

func TestRoutingLabelTargetName(t *testing.T) {
	if got := RouteTrue.TargetName(); got != "Name Match API True Data" {
		t.Fatalf("unexpected true target %q", got)
	}
	if got := RouteFalse.TargetName(); got != "Name Match API False Data" {
		t.Fatalf("unexpected false target %q", got)
	}
	if got := RouteDefault.TargetName(); got != "Name Match API Data" {
		t.Fatalf("unexpected default target %q", got)
	}
}

func TestComparisonRequestValidate(t *testing.T) {
	for _, req := range []ComparisonRequest{
		{Name1: "", Name2: "Bob"},
		{Name1: "Alice", Name2: "   "},
		{Name1: "\t\n", Name2: " "},
	} {
		if err := req.Validate(); !errors.Is(err, ErrEmptyName) {
			t.Errorf("Validate(%#v) = %v, want ErrEmptyName", req, err)
		}
	}

	req := ComparisonRequest{Name1: "  John Smith ", Name2: "JOHNSMITH123"}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if n := req.Normalize(); n.Name1 != "John Smith" {
		t.Fatalf("Normalize did not trim: %q", n.Name1)
	}
}

func TestParseVerdict(t *testing.T) {
	if v, err := ParseVerdict(" YES "); err != nil || v != VerdictYes {
		t.Fatalf("ParseVerdict yes = %q, %v", v, err)
	}
	if v, err := ParseVerdict("no"); err != nil || v != VerdictNo {
		t.Fatalf("ParseVerdict no = %q, %v", v, err)
	}
	if _, err := ParseVerdict("maybe"); err == nil {
		t.Fatal("expected error for unknown verdict")
	}
}
