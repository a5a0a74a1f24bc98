package collage

import "fmt"

// FitMode is the policy for reconciling a source image's aspect ratio with a
// target rectangle.
type FitMode int

const (
	// FitFill scales uniformly to cover the target and center-crops the excess.
	FitFill FitMode = iota
	// FitContain scales uniformly to fit inside the target, with black bars.
	FitContain
	// FitStretch resizes non-uniformly to the exact target dimensions.
	FitStretch
	// FitCenter pastes the source unscaled, centered on a black canvas.
	FitCenter
	// FitSpan behaves exactly like FitFill.
	FitSpan
)

// String returns the config representation of the fit mode.
func (m FitMode) String() string {
	switch m {
	case FitFill:
		return "fill"
	case FitContain:
		return "fit"
	case FitStretch:
		return "stretch"
	case FitCenter:
		return "center"
	case FitSpan:
		return "span"
	default:
		return fmt.Sprintf("FitMode(%d)", int(m))
	}
}

// ParseFitMode converts a config string into a FitMode. Unknown values are an
// error, never a silent default.
func ParseFitMode(s string) (FitMode, error) {
	switch s {
	case "fill":
		return FitFill, nil
	case "fit":
		return FitContain, nil
	case "stretch":
		return FitStretch, nil
	case "center":
		return FitCenter, nil
	case "span":
		return FitSpan, nil
	default:
		return 0, fmt.Errorf("unknown fit mode: %q", s)
	}
}

// SelectionPolicy is the rule governing which images are picked next from a folder.
type SelectionPolicy int

const (
	// SelectionRandom draws without replacement within a cycle.
	SelectionRandom SelectionPolicy = iota
	// SelectionSequential walks the folder by modification time, most recent first.
	SelectionSequential
)

// String returns the config representation of the selection policy.
func (p SelectionPolicy) String() string {
	switch p {
	case SelectionRandom:
		return "random"
	case SelectionSequential:
		return "sequential"
	default:
		return fmt.Sprintf("SelectionPolicy(%d)", int(p))
	}
}

// ParseSelectionPolicy converts a config string into a SelectionPolicy.
func ParseSelectionPolicy(s string) (SelectionPolicy, error) {
	switch s {
	case "random":
		return SelectionRandom, nil
	case "sequential":
		return SelectionSequential, nil
	default:
		return 0, fmt.Errorf("unknown selection policy: %q", s)
	}
}
