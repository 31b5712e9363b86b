package types

import "fmt"

// WCAGLevel is the requested conformance level for a scan.
type WCAGLevel string

const (
	WCAGLevelA   WCAGLevel = "a"
	WCAGLevelAA  WCAGLevel = "aa"
	WCAGLevelAAA WCAGLevel = "aaa"
)

// ParseWCAGLevel validates a level string, defaulting empty to AA.
func ParseWCAGLevel(s string) (WCAGLevel, error) {
	switch WCAGLevel(s) {
	case WCAGLevelA, WCAGLevelAA, WCAGLevelAAA:
		return WCAGLevel(s), nil
	case "":
		return WCAGLevelAA, nil
	default:
		return "", fmt.Errorf("unknown wcag level %q (want a, aa or aaa)", s)
	}
}

// AtLeast reports whether the level includes the given level's checks.
func (l WCAGLevel) AtLeast(min WCAGLevel) bool {
	rank := func(v WCAGLevel) int {
		switch v {
		case WCAGLevelAAA:
			return 3
		case WCAGLevelAA:
			return 2
		default:
			return 1
		}
	}
	return rank(l) >= rank(min)
}

// ComplianceOptions is the compliance profile for one batch submission.
type ComplianceOptions struct {
	WCAGLevel          WCAGLevel `json:"wcagLevel"`
	Section508         bool      `json:"section508"`
	BestPractices      bool      `json:"bestPractices"`
	Experimental       bool      `json:"experimental"`
	CaptureScreenshots bool      `json:"captureScreenshots"`
}

// DefaultOptions is the profile used when the caller specifies nothing: AA
// plus best practices, no 508 or experimental checks.
func DefaultOptions() ComplianceOptions {
	return ComplianceOptions{WCAGLevel: WCAGLevelAA, BestPractices: true}
}
