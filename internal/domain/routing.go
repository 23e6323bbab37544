package domain

// HighConfidence is the score at or above which a result counts as confident.
const HighConfidence = 0.8

// RoutingLabel is a client-side categorization of a result. It is purely
// informational and never triggers an action on its own.
type RoutingLabel string

const (
	RouteTrue    RoutingLabel = "True"
	RouteFalse   RoutingLabel = "False"
	RouteDefault RoutingLabel = "Default"
)

// Classify maps a verdict and confidence score to a routing label.
func Classify(verdict Verdict, confidence float64) RoutingLabel {
	switch {
	case verdict == VerdictYes && confidence >= HighConfidence:
		return RouteTrue
	case verdict == VerdictNo && confidence < HighConfidence:
		return RouteFalse
	default:
		return RouteDefault
	}
}

// TargetName returns the human readable target associated with the label.
func (l RoutingLabel) TargetName() string {
	switch l {
	case RouteTrue:
		return "Name Match API True Data"
	case RouteFalse:
		return "Name Match API False Data"
	default:
		return "Name Match API Data"
	}
}

func (l RoutingLabel) String() string { return string(l) }
