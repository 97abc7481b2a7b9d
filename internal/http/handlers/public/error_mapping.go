package public

import (
	"errors"

	"github.com/huong-next/internal/http/response"
	"github.com/huong-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError binds a business error to an API response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var voucherErrorRules = []mappedHandlerError{
	{target: service.ErrCouponInvalid, code: response.CodeBadRequest, msg: "voucher code invalid"},
	{target: service.ErrCouponNotFound, code: response.CodeBadRequest, msg: "voucher code not found"},
	{target: service.ErrCouponExpired, code: response.CodeBadRequest, msg: "voucher expired"},
	{target: service.ErrCouponUsed, code: response.CodeBadRequest, msg: "voucher already used"},
	{target: service.ErrCouponNotYours, code: response.CodeBadRequest, msg: "voucher belongs to another customer"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrQuantityOutOfRange, code: response.CodeBadRequest, msg: "quantity must be between 1 and 10"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrProductInactive, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "cart item not found"},
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, msg: "payment method invalid"},
	{target: service.ErrOrderEmptyItems, code: response.CodeBadRequest, msg: "order has no items"},
	{target: service.ErrQuantityOutOfRange, code: response.CodeBadRequest, msg: "quantity must be between 1 and 10"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, msg: "product not found"},
	{target: service.ErrProductInactive, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrStockInsufficient, code: response.CodeBadRequest, msg: "insufficient stock"},
	{target: service.ErrCustomerNotFound, code: response.CodeBadRequest, msg: "customer information required"},
	{target: service.ErrCouponNotFound, code: response.CodeBadRequest, msg: "applied voucher no longer exists"},
	{target: service.ErrCouponUsed, code: response.CodeBadRequest, msg: "applied voucher already used"},
	{target: service.ErrCouponExpired, code: response.CodeBadRequest, msg: "applied voucher expired"},
	{target: service.ErrCouponNotYours, code: response.CodeBadRequest, msg: "applied voucher belongs to another customer"},
}

var orderReadErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderCancelNotAllowed, code: response.CodeBadRequest, msg: "order can no longer be cancelled"},
}

var paymentCallbackErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderTransition, code: response.CodeBadRequest, msg: "order is not awaiting payment"},
}

var customerAuthErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "invalid email or password"},
	{target: service.ErrAccountDisabled, code: response.CodeForbidden, msg: "account disabled"},
}

var passwordResetErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "email invalid"},
	{target: service.ErrInvalidCredentials, code: response.CodeBadRequest, msg: "password too short"},
	{target: service.ErrOTPInvalid, code: response.CodeBadRequest, msg: "verification code incorrect"},
	{target: service.ErrOTPExpired, code: response.CodeBadRequest, msg: "verification code expired"},
	{target: service.ErrOTPExhausted, code: response.CodeBadRequest, msg: "verification code invalidated, request a new one"},
	{target: service.ErrOTPCoolingDown, code: response.CodeTooManyRequests, msg: "too many attempts, try again later"},
	{target: service.ErrCustomerNotFound, code: response.CodeBadRequest, msg: "account not found"},
}

var warrantyErrorRules = []mappedHandlerError{
	{target: service.ErrWarrantyNotFound, code: response.CodeNotFound, msg: "warranty not found"},
	{target: service.ErrWarrantyExpired, code: response.CodeBadRequest, msg: "warranty expired"},
	{target: service.ErrClaimAlreadyOpen, code: response.CodeBadRequest, msg: "warranty already has an open claim"},
}
