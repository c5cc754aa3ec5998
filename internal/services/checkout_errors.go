package service

import (
	stdErrors "errors"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/errors"
	"github.com/stripe/stripe-go/v81"
)

// Checkout stages, used for spans and the outcome metric.
const (
	stageValidate     = "validate_products"
	stageIntent       = "payment_intent"
	stageConfirm      = "confirm_payment"
	stageCreateOrder  = "create_order"
	stageVerifyOrder  = "verify_order"
	stageStep         = "step"
	stageComplete     = "complete"
	outcomeNoCategory = "none"
)

var (
	errPaymentProcessing = errors.PaymentError("Your payment is still processing")
	errOrderUnpaid       = errors.OrderError("Your order is awaiting payment confirmation")
	errOrderPaymentFail  = errors.OrderError("The payment for this order failed")
)

// classifyPaymentError turns a payment provider failure into the message
// and action shown to the shopper.
func classifyPaymentError(err error) *errors.UserFacingError {

	var stripeErr *stripe.Error
	if !stdErrors.As(err, &stripeErr) {
		return &errors.UserFacingError{
			Category:  errors.CategoryNetwork,
			Code:      errors.ErrCodeNetwork,
			Retryable: true,
			Message:   "We could not reach the payment provider.",
			Action:    "Check your connection and try again.",
			Err:       err,
		}
	}

	if stripeErr.HTTPStatusCode >= 500 || stripeErr.Type == stripe.ErrorTypeAPI || stripeErr.Code == stripe.ErrorCodeRateLimit {
		return &errors.UserFacingError{
			Category:  errors.CategoryNetwork,
			Code:      errors.ErrCodeThirdPartyError,
			Retryable: true,
			Message:   "The payment provider is temporarily unavailable.",
			Action:    "Wait a moment and try again. You have not been charged.",
			Err:       err,
		}
	}

	declined := &errors.UserFacingError{
		Category: errors.CategoryPayment,
		Code:     errors.ErrCodePayment,
		Message:  "Your card was declined.",
		Action:   "Try a different card or contact your bank.",
		Err:      err,
	}

	switch {
	case stripeErr.DeclineCode == stripe.DeclineCodeInsufficientFunds:
		declined.Message = "Your card has insufficient funds."
	case stripeErr.Code == stripe.ErrorCodeExpiredCard:
		declined.Message = "Your card has expired."
		declined.Action = "Check the expiry date or use a different card."
	case stripeErr.Code == stripe.ErrorCodeIncorrectCVC:
		declined.Message = "Your card's security code is incorrect."
		declined.Action = "Check the security code and try again."
	case stripeErr.Code == stripe.ErrorCodeIncorrectNumber:
		declined.Message = "Your card number is incorrect."
		declined.Action = "Check the card number and try again."
	case stripeErr.Code == stripe.ErrorCodeProcessingError:
		declined.Message = "An error occurred while processing your card."
		declined.Action = "Try again in a moment."
		declined.Retryable = true
	case stripeErr.Type == stripe.ErrorTypeCard:
		if stripeErr.Msg != "" {
			declined.Message = stripeErr.Msg
		}
	default:
		declined.Message = "We could not process your payment."
		declined.Action = "Refresh the page and try again."
	}

	return declined
}

// intentStatusError maps a non-succeeded intent status to a shopper-facing error.
func intentStatusError(status stripe.PaymentIntentStatus) *errors.UserFacingError {

	switch status {
	case stripe.PaymentIntentStatusProcessing:
		return &errors.UserFacingError{
			Category:  errors.CategoryPayment,
			Code:      errors.ErrCodePayment,
			Retryable: true,
			Message:   "Your payment is still processing.",
			Action:    "Wait a moment and submit again. You will not be charged twice.",
			Err:       errPaymentProcessing,
		}
	case stripe.PaymentIntentStatusRequiresAction:
		return &errors.UserFacingError{
			Category: errors.CategoryPayment,
			Code:     errors.ErrCodePayment,
			Message:  "Your card requires additional authentication.",
			Action:   "Complete the verification with your bank, then submit again.",
			Err:      errors.PaymentError("payment requires action"),
		}
	case stripe.PaymentIntentStatusCanceled:
		return &errors.UserFacingError{
			Category: errors.CategoryPayment,
			Code:     errors.ErrCodePayment,
			Message:  "This payment was cancelled.",
			Action:   "Go back to shipping and start the payment again.",
			Err:      errors.PaymentError("payment intent canceled"),
		}
	default:
		return &errors.UserFacingError{
			Category: errors.CategoryPayment,
			Code:     errors.ErrCodePayment,
			Message:  "Your card was declined.",
			Action:   "Try a different card or contact your bank.",
			Err:      errors.PaymentError("payment intent status " + string(status)),
		}
	}
}

func orderNotConfirmed(orderID string, err error) *errors.UserFacingError {
	return &errors.UserFacingError{
		Category: errors.CategoryOrder,
		Code:     errors.ErrCodeOrder,
		Message:  "Your payment was received but we could not confirm your order yet.",
		Action:   "Check your orders page in a few minutes before trying again. Reference: " + orderID,
		Err:      err,
	}
}

func orderPaymentFailed(orderID string, err error) *errors.UserFacingError {
	return &errors.UserFacingError{
		Category: errors.CategoryOrder,
		Code:     errors.ErrCodeOrder,
		Message:  "The payment for your order could not be completed.",
		Action:   "Contact support with reference " + orderID + " before trying again.",
		Err:      err,
	}
}

func orderNotCreated(err error) *errors.UserFacingError {
	return &errors.UserFacingError{
		Category: errors.CategoryOrder,
		Code:     errors.ErrCodeOrder,
		Message:  "Your payment was received but we could not record your order.",
		Action:   "Submit again to retry. You will not be charged twice.",
		Err:      err,
	}
}

func cartChangedAfterPayment() *errors.AppError {
	return errors.OrderError("Your cart changed after payment was taken. Contact support before placing another order.")
}
