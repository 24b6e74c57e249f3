package extraction

import (
	"errors"
	"fmt"
)

var (
	// ErrDetection is the sentinel behind every DetectionError
	ErrDetection = errors.New("layout detection failed")

	// ErrPreprocess is the sentinel behind every PreprocessError
	ErrPreprocess = errors.New("preprocessing failed")

	// ErrEmptyResult is returned when a strategy finishes without finding
	// any element
	ErrEmptyResult = errors.New("strategy produced no elements")

	// ErrAllStrategiesFailed is reported by Outcome.Err when no strategy
	// succeeded
	ErrAllStrategiesFailed = errors.New("all extraction strategies failed")

	// ErrCancelled marks strategies skipped because the caller gave up
	ErrCancelled = errors.New("cancelled")
)

// DetectionError reports a detector failure on one page
type DetectionError struct {
	Page int // 0-based, -1 when not page specific
	Err  error
}

func (e *DetectionError) Error() string {
	if e.Page < 0 {
		return fmt.Sprintf("detection: %v", e.Err)
	}
	return fmt.Sprintf("detection on page %d: %v", e.Page+1, e.Err)
}

func (e *DetectionError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDetection) hold for every DetectionError
func (e *DetectionError) Is(target error) bool { return target == ErrDetection }

// PreprocessError reports a failed preprocessing variant
type PreprocessError struct {
	Variant string
	Err     error
}

func (e *PreprocessError) Error() string {
	return fmt.Sprintf("preprocess %s: %v", e.Variant, e.Err)
}

func (e *PreprocessError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrPreprocess) hold for every PreprocessError
func (e *PreprocessError) Is(target error) bool { return target == ErrPreprocess }
