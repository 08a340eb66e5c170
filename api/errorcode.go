package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/autonomy-nearby/nearby"
)

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1001: "invalid authorization format",
		1003: "invalid token",

		1010: "invalid parameters",
		1011: "cannot parse request",
		1012: "too many requests",

		1101: "actor not found",
		1104: "unknown actor location",
		1105: "address not found",

		1200: nearby.ErrNotFound.Error(),
		1201: nearby.ErrConflict.Error(),
		1202: nearby.ErrRequestClosed.Error(),
		1203: nearby.ErrAlreadyAccepted.Error(),
		1204: nearby.ErrUnauthorized.Error(),
		1205: nearby.ErrUnreachable.Error(),
	}

	errorInternalServer             = errorJSON(999)
	errorInvalidAuthorizationFormat = errorJSON(1001)
	errorInvalidToken               = errorJSON(1003)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)
	errorTooManyRequests    = errorJSON(1012)

	errorActorNotFound        = errorJSON(1101)
	errorUnknownActorLocation = errorJSON(1104)
	errorAddressNotFound      = errorJSON(1105)

	errorNotFound        = errorJSON(1200)
	errorConflict        = errorJSON(1201)
	errorRequestClosed   = errorJSON(1202)
	errorAlreadyAccepted = errorJSON(1203)
	errorNotPermitted    = errorJSON(1204)
	errorUnreachable     = errorJSON(1205)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// abortWithNearbyError maps the error kinds of the engine to a response
func abortWithNearbyError(c *gin.Context, err error) {
	switch nearby.Kind(err) {
	case nearby.ErrValidation:
		abortWithEncoding(c, http.StatusBadRequest, ErrorResponse{
			Code:    errorInvalidParameters.Code,
			Message: err.Error(),
		}, err)
	case nearby.ErrNotFound:
		abortWithEncoding(c, http.StatusNotFound, errorNotFound, err)
	case nearby.ErrConflict:
		abortWithEncoding(c, http.StatusConflict, errorConflict, err)
	case nearby.ErrRequestClosed:
		abortWithEncoding(c, http.StatusGone, errorRequestClosed, err)
	case nearby.ErrAlreadyAccepted:
		abortWithEncoding(c, http.StatusConflict, errorAlreadyAccepted, err)
	case nearby.ErrUnauthorized:
		abortWithEncoding(c, http.StatusForbidden, errorNotPermitted, err)
	case nearby.ErrUnreachable:
		abortWithEncoding(c, http.StatusUnprocessableEntity, errorUnreachable, err)
	default:
		shouldInterupt(err, c)
	}
}
