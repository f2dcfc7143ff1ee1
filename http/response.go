package http

import (
	"io"
	"os"

	"github.com/indigo-web/fileserve/http/mime"
	"github.com/indigo-web/fileserve/http/status"
	"github.com/indigo-web/fileserve/internal/response"
	"github.com/indigo-web/fileserve/kv"
	json "github.com/json-iterator/go"
)

const (
	// why 7? I don't know. There's no theory behind this number nor researches.
	preallocRespHeaders = 7
	defaultFileMIME     = mime.OctetStream
)

type Response struct {
	fields *response.Fields
}

// NewResponse returns a new instance of the Response object with status code
// set to 200 OK, pre-allocated space for response headers and text/html
// content-type.
// NOTE: it's recommended to use Request.Respond() method inside of handlers,
// if there's no clear reason otherwise
func NewResponse() *Response {
	return &Response{
		&response.Fields{
			Code:        status.OK,
			Headers:     make([]response.Header, 0, preallocRespHeaders),
			ContentType: response.DefaultContentType,
		},
	}
}

// Code sets a Response code and a corresponding status.
// In case of unknown code, "Unknown Status Code" will be set as a status
// text. In this case you should call Status explicitly
func (r *Response) Code(code status.Code) *Response {
	r.fields.Code = code
	return r
}

// Status sets a custom status text. This text does not matter at all, and
// usually is totally ignored by clients
func (r *Response) Status(status status.Status) *Response {
	r.fields.Status = status
	return r
}

// ContentType sets a custom Content-Type header value.
func (r *Response) ContentType(value mime.MIME) *Response {
	r.fields.ContentType = value
	return r
}

// TransferEncoding sets a custom Transfer-Encoding header value.
func (r *Response) TransferEncoding(value string) *Response {
	r.fields.TransferEncoding = value
	return r
}

// Header sets header values to a key. In case it already exists the value
// will be appended
func (r *Response) Header(key string, values ...string) *Response {
	for i := range values {
		r.fields.Headers = append(r.fields.Headers, kv.Pair{
			Key:   key,
			Value: values[i],
		})
	}

	return r
}

// String sets the response's body to the passed string
func (r *Response) String(body string) *Response {
	r.fields.Body = append(r.fields.Body[:0], body...)
	return r
}

// Bytes sets the response's body to the passed slice WITHOUT COPYING. Changing
// the passed slice later will affect the response by itself
func (r *Response) Bytes(body []byte) *Response {
	r.fields.Body = body
	return r
}

// Write implements the io.Writer interface. It always returns n=len(b) and
// err=nil
func (r *Response) Write(b []byte) (n int, err error) {
	r.fields.Body = append(r.fields.Body, b...)
	return len(b), nil
}

// TryFile tries to open a file for reading and returns a new Response with
// the attachment set to its descriptor. Missing files result in
// status.ErrNotFound, everything else (e.g. lacking permissions) in
// status.ErrInternalServerError
func (r *Response) TryFile(path string) (*Response, error) {
	fd, err := os.Open(path)
	switch {
	case err == nil:
	case os.IsNotExist(err):
		return r, status.ErrNotFound
	default:
		return r, status.ErrInternalServerError
	}

	stat, err := fd.Stat()
	if err != nil {
		_ = fd.Close()
		return r, status.ErrInternalServerError
	}
	if stat.IsDir() {
		_ = fd.Close()
		return r, status.ErrNotFound
	}

	return r.
		ContentType(mime.ByExtension(path)).
		Attachment(fd, int(stat.Size())), nil
}

// File opens a file for reading and returns a new Response with the attachment
// set to the file descriptor. If an error occurred, it'll be silently wrapped
// into an error response
func (r *Response) File(path string) *Response {
	resp, err := r.TryFile(path)
	if err != nil {
		return r.Error(err)
	}

	return resp
}

// Attachment sets a Response's attachment. In this case the Response body
// will be ignored. If size <= 0, Transfer-Encoding: chunked is used
func (r *Response) Attachment(reader io.Reader, size int) *Response {
	r.fields.Attachment = response.NewAttachment(reader, size)
	return r
}

// Redirect returns a redirection response to the passed location.
func (r *Response) Redirect(location string) *Response {
	return r.
		Code(status.MovedPermanently).
		Header("Location", location)
}

// TryJSON receives a model (must be a pointer to the structure) and returns
// a new Response object and an error
func (r *Response) TryJSON(model any) (*Response, error) {
	r.fields.Body = r.fields.Body[:0]
	stream := json.ConfigDefault.BorrowStream(r)
	stream.WriteVal(model)
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)

	return r.ContentType(mime.JSON), err
}

// JSON does the same as TryJSON does, except the returned error is implicitly
// wrapped by Error
func (r *Response) JSON(model any) *Response {
	resp, err := r.TryJSON(model)
	if err != nil {
		return r.Error(err)
	}

	return resp
}

// Error returns a response builder with an error set. If the passed err is nil,
// nothing happens. If an instance of status.HTTPError is passed, the error code
// is automatically set. By default, the error is status.ErrInternalServerError
func (r *Response) Error(err error, code ...status.Code) *Response {
	if err == nil {
		return r
	}

	if http, ok := err.(status.HTTPError); ok {
		return r.
			Code(http.Code).
			ContentType(mime.Plain).
			String(http.Message)
	}

	c := status.InternalServerError
	if len(code) > 0 {
		// peek the first, ignore the rest
		c = code[0]
	}

	return r.
		Code(c).
		ContentType(mime.Plain).
		String(err.Error())
}

// Reveal returns a struct with values, filled by the builder. Used mostly in
// internal purposes
func (r *Response) Reveal() *response.Fields {
	return r.fields
}

// Clear discards everything that was done with the Response object before
func (r *Response) Clear() *Response {
	r.fields.Clear()
	return r
}

// Respond is a predicate to request.Respond(). May be used as a dummy handler
func Respond(request *Request) *Response {
	return request.Respond()
}

// Code is a predicate to request.Respond().Code(...)
func Code(request *Request, code status.Code) *Response {
	return request.Respond().Code(code)
}

// Error is a predicate to request.Respond().Error(...)
func Error(request *Request, err error, code ...status.Code) *Response {
	return request.Respond().Error(err, code...)
}
