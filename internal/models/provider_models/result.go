package provider_models

import (
	"fmt"

	"roamio/internal/models/domain_models"
)

// Status enumerates every outcome a provider call can have. Result replaces
// exception-driven error handling: callers switch over Status and must handle
// each variant.
type Status int

const (
	StatusSuccess Status = iota
	StatusNoResults
	StatusRateLimited
	StatusAPIKeyInvalid
	StatusTimeout
	StatusNetworkError
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNoResults:
		return "no_results"
	case StatusRateLimited:
		return "rate_limited"
	case StatusAPIKeyInvalid:
		return "api_key_invalid"
	case StatusTimeout:
		return "timeout"
	case StatusNetworkError:
		return "network_error"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the typed outcome of a single provider call. Exactly one variant
// is active, identified by Status; Places is populated only on success.
type Result struct {
	Provider   string
	Status     Status
	HTTPStatus int
	Places     []domain_models.Place
	Count      int
	Reason     string
}

func Success(provider string, places []domain_models.Place) Result {
	return Result{Provider: provider, Status: StatusSuccess, Places: places, Count: len(places)}
}

func NoResults(provider string) Result {
	return Result{Provider: provider, Status: StatusNoResults}
}

func RateLimited(provider, reason string, httpStatus int) Result {
	return Result{Provider: provider, Status: StatusRateLimited, Reason: reason, HTTPStatus: httpStatus}
}

func APIKeyInvalid(provider string, httpStatus int) Result {
	return Result{Provider: provider, Status: StatusAPIKeyInvalid, HTTPStatus: httpStatus}
}

func Timeout(provider string) Result {
	return Result{Provider: provider, Status: StatusTimeout}
}

func NetworkError(provider, reason string) Result {
	return Result{Provider: provider, Status: StatusNetworkError, Reason: reason}
}

func Error(provider, message string, httpStatus int) Result {
	return Result{Provider: provider, Status: StatusError, Reason: message, HTTPStatus: httpStatus}
}

func (r Result) String() string {
	if r.Status == StatusSuccess {
		return fmt.Sprintf("%s: success (%d places)", r.Provider, r.Count)
	}
	if r.Reason != "" {
		return fmt.Sprintf("%s: %s (%s)", r.Provider, r.Status, r.Reason)
	}
	return fmt.Sprintf("%s: %s", r.Provider, r.Status)
}
