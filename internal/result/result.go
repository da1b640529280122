// Package result provides the success/failure algebra shared by all use cases.
package result

import "errors"

// Kind identifies one failure category. The set is closed: every remote or
// domain failure surfacing from a use case carries exactly one Kind.
type Kind string

const (
	KindWrongShop            Kind = "wrong_shop"
	KindPromoExpired         Kind = "promo_expired"
	KindPromoNotYetStarted   Kind = "promo_not_yet_started"
	KindNotRecognized        Kind = "not_recognized"
	KindInvalidDateRange     Kind = "invalid_date_range"
	KindFileUploadFailed     Kind = "file_upload_failed"
	KindSaveResourceFailed   Kind = "save_resource_failed"
	KindUpgradedPlanRequired Kind = "upgraded_plan_required"
	KindInternalServerError  Kind = "internal_server_error"
	KindUnauthenticatedUser  Kind = "unauthenticated_user"
)

// Kinds lists every failure category.
var Kinds = []Kind{
	KindWrongShop,
	KindPromoExpired,
	KindPromoNotYetStarted,
	KindNotRecognized,
	KindInvalidDateRange,
	KindFileUploadFailed,
	KindSaveResourceFailed,
	KindUpgradedPlanRequired,
	KindInternalServerError,
	KindUnauthenticatedUser,
}

// Exception is a domain failure with a human-readable message. It implements
// error so it can travel through ordinary error returns and be recovered with
// errors.As at the use-case boundary.
type Exception struct {
	Kind    Kind
	Message string
}

func (e *Exception) Error() string {
	return e.Message
}

// New creates an Exception with a custom message.
func New(kind Kind, message string) *Exception {
	return &Exception{Kind: kind, Message: message}
}

// Default messages for failures raised locally. Remote failures carry the
// message returned by the backend instead.
func WrongShop() *Exception {
	return New(KindWrongShop, "coupon belongs to another shop")
}

func PromoExpired() *Exception {
	return New(KindPromoExpired, "promo has expired")
}

func PromoNotYetStarted() *Exception {
	return New(KindPromoNotYetStarted, "promo has not started yet")
}

func NotRecognized() *Exception {
	return New(KindNotRecognized, "coupon not recognized")
}

func InvalidDateRange() *Exception {
	return New(KindInvalidDateRange, "Invalid date range")
}

// As extracts an Exception from an error chain.
func As(err error) (*Exception, bool) {
	var ex *Exception
	if errors.As(err, &ex) {
		return ex, true
	}
	return nil, false
}

// From normalizes any error into an Exception. Errors that are not already
// tagged are treated as internal server errors.
func From(err error) *Exception {
	if ex, ok := As(err); ok {
		return ex
	}
	return New(KindInternalServerError, err.Error())
}

// Result is the outcome of a synchronous, pre-network validation. Exactly one
// branch is populated; callers check IsOk before reading the matching branch.
type Result[T any] struct {
	value T
	ex    *Exception
}

// Ok creates a successful result.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err creates a failed result.
func Err[T any](ex *Exception) Result[T] {
	return Result[T]{ex: ex}
}

// IsOk reports whether the result holds a value.
func (r Result[T]) IsOk() bool {
	return r.ex == nil
}

// Value returns the success value. Only meaningful after IsOk.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure, nil on success.
func (r Result[T]) Err() *Exception {
	return r.ex
}
