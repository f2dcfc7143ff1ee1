package status

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrCloseConnection  = NewError(CloseConnection, "actively closing the connection")
	ErrShutdown         = NewError(Shutdown, "shutdown")
	ErrGracefulShutdown = NewError(Shutdown, "graceful shutdown")

	ErrBadRequest              = NewError(BadRequest, "bad request")
	ErrTooLongRequestLine      = NewError(BadRequest, "request line is too long")
	ErrURLDecoding             = NewError(BadRequest, "invalid urlencoded sequence")
	ErrNotFound                = NewError(NotFound, "not found")
	ErrForbidden               = NewError(Forbidden, "forbidden")
	ErrInternalServerError     = NewError(InternalServerError, "internal server error")
	ErrMethodNotImplemented    = NewError(NotImplemented, "request method is not supported")
	ErrMethodNotAllowed        = NewError(MethodNotAllowed, "method not allowed")
	ErrHeaderFieldsTooLarge    = NewError(RequestHeaderFieldsTooLarge, "too large headers section")
	ErrTooManyHeaders          = NewError(RequestHeaderFieldsTooLarge, "too many headers")
	ErrURITooLong              = NewError(RequestURITooLong, "request URI too long")
	ErrHTTPVersionNotSupported = NewError(HTTPVersionNotSupported, "HTTP version not supported")
)
