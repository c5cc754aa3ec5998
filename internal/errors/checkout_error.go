package errors

import (
	"errors"
	"net/http"
)

// Category groups failures by what the shopper can do about them.
type Category string

const (
	CategoryValidation Category = "validation"
	CategoryNetwork    Category = "network"
	CategoryPayment    Category = "payment"
	CategoryOrder      Category = "order"
	CategoryUnknown    Category = "unknown"
)

// UserFacingError is a classified failure carrying the message and suggested
// action shown to the shopper.
type UserFacingError struct {
	Category  Category
	Code      string
	Retryable bool
	Message   string
	Action    string
	Err       error
}

func (e *UserFacingError) Error() string {
	return e.Message
}

func (e *UserFacingError) Unwrap() error {
	return e.Err
}

func (e *UserFacingError) StatusCode() int {
	switch e.Category {
	case CategoryValidation:
		return http.StatusUnprocessableEntity
	case CategoryNetwork:
		return http.StatusServiceUnavailable
	case CategoryPayment:
		return http.StatusPaymentRequired
	case CategoryOrder:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func IsUserFacing(err error) (*UserFacingError, bool) {
	var ufe *UserFacingError

	if errors.As(err, &ufe) {
		return ufe, true
	}

	return nil, false
}

// Classify maps an arbitrary error onto the shopper-facing taxonomy. Errors
// that are already classified are returned unchanged.
func Classify(err error) *UserFacingError {
	if err == nil {
		return nil
	}

	if ufe, ok := IsUserFacing(err); ok {
		return ufe
	}

	appErr, ok := IsAppError(err)
	if !ok {
		return &UserFacingError{
			Category: CategoryUnknown,
			Code:     ErrCodeInternal,
			Message:  "Something went wrong. Please try again.",
			Action:   "Refresh the page and try again. Contact support if the problem persists.",
			Err:      err,
		}
	}

	switch appErr.Code {
	case ErrCodeValidation, ErrCodeBadRequest, ErrCodeNotFound, ErrCodeConflict:
		return &UserFacingError{
			Category: CategoryValidation,
			Code:     appErr.Code,
			Message:  appErr.Message,
			Action:   "Review the highlighted information and try again.",
			Err:      err,
		}
	case ErrCodeUnauthorized, ErrCodeForbidden:
		return &UserFacingError{
			Category: CategoryValidation,
			Code:     appErr.Code,
			Message:  "Your session has expired.",
			Action:   "Sign in again to continue.",
			Err:      err,
		}
	case ErrCodeNetwork, ErrCodeUpstream, ErrCodeTooManyRequests:
		return &UserFacingError{
			Category:  CategoryNetwork,
			Code:      appErr.Code,
			Retryable: true,
			Message:   "We could not reach the store right now.",
			Action:    "Check your connection and try again in a moment.",
			Err:       err,
		}
	case ErrCodePayment, ErrCodeThirdPartyError:
		return &UserFacingError{
			Category: CategoryPayment,
			Code:     appErr.Code,
			Message:  appErr.Message,
			Action:   "Try again or use a different payment method.",
			Err:      err,
		}
	case ErrCodeOrder:
		return &UserFacingError{
			Category: CategoryOrder,
			Code:     appErr.Code,
			Message:  appErr.Message,
			Action:   "Your payment went through. Check your orders page before trying again.",
			Err:      err,
		}
	default:
		return &UserFacingError{
			Category: CategoryUnknown,
			Code:     appErr.Code,
			Message:  "Something went wrong. Please try again.",
			Action:   "Refresh the page and try again. Contact support if the problem persists.",
			Err:      err,
		}
	}
}
