package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the structured business-error payload carried under the
// "error_detail" key.
type ErrorBody struct {
	Code    ErrCode           `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// errorEnvelope wraps business-rule violations. Framework-level auth
// failures use authEnvelope instead so API clients can tell the two
// families apart.
type errorEnvelope struct {
	ErrorDetail ErrorBody `json:"error_detail"`
}

type authEnvelope struct {
	Detail string `json:"detail"`
}

// Success sends a successful JSON response with the given status code and data.
// Request tracing travels on the X-Request-ID header, not in the body.
func Success(c *gin.Context, statusCode int, data interface{}) {
	if data == nil {
		c.Status(statusCode)
		return
	}
	c.JSON(statusCode, data)
}

// Fail sends a business error response with an error code and no
// field-level details.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, errorEnvelope{
		ErrorDetail: ErrorBody{Code: code, Message: GetMessage(code)},
	})
}

// FailWithFields sends a business error response with field-level
// validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, errorEnvelope{
		ErrorDetail: ErrorBody{Code: code, Message: GetMessage(code), Fields: fields},
	})
}

// AbortFail aborts the middleware chain with an auth-family error. These
// use the flat {"detail": ...} body.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, authEnvelope{Detail: GetMessage(code)})
}
