package analysis

import "strings"

// ErrorKind is the terminal failure taxonomy of the pipeline. Only these
// three kinds can surface to a caller, and only when no fallback exists;
// everything else degrades to a defaulted value.
type ErrorKind int

const (
	// KindConfiguration: required credentials are absent. Not transient,
	// never retried.
	KindConfiguration ErrorKind = iota
	// KindFetch: the content source failed or returned zero items.
	KindFetch
	// KindModel: the model call failed, or its reply was empty/non-JSON.
	KindModel
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindFetch:
		return "fetch"
	default:
		return "model"
	}
}

// PipelineError is a terminal pipeline failure.
type PipelineError struct {
	Kind        ErrorKind
	Message     string
	MissingVars []string
	Err         error
}

func (e *PipelineError) Error() string { return e.Message }

func (e *PipelineError) Unwrap() error { return e.Err }

// ModelErrorClass refines KindModel for presentation purposes.
type ModelErrorClass int

const (
	ModelErrorGeneric ModelErrorClass = iota
	ModelErrorAuth
	ModelErrorRateLimit
)

// ClassifyModelError sniffs the error message the way the dashboards expect:
// key/unauthorized/invalid reads as an auth problem, rate limit/429/too many
// as throttling, anything else as generic.
func ClassifyModelError(message string) ModelErrorClass {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "api key"), strings.Contains(m, "unauthorized"), strings.Contains(m, "invalid"):
		return ModelErrorAuth
	case strings.Contains(m, "rate limit"), strings.Contains(m, "too many"), strings.Contains(m, "429"):
		return ModelErrorRateLimit
	default:
		return ModelErrorGeneric
	}
}
