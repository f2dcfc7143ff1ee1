package http

import (
	"net"

	"github.com/indigo-web/fileserve/http/method"
	"github.com/indigo-web/fileserve/http/proto"
	"github.com/indigo-web/fileserve/kv"
)

type Headers = *kv.Storage

// Request represents an HTTP request
type Request struct {
	// Method is an enum representing the request method
	Method method.Method
	// Path is a decoded and validated request path, without the query
	Path string
	// Query contains the raw query string, if any was passed. The server never
	// interprets it
	Query string
	// Proto is the protocol of the request
	Proto proto.Proto
	// Headers holds non-normalized header pairs, even though lookup is
	// case-insensitive
	Headers Headers
	// Remote holds the remote address. Note that this is generally not a good
	// parameter to identify a user, as there might be proxies in the middle
	Remote net.Addr

	response *Response
}

func NewRequest(headers Headers, response *Response, remote net.Addr) *Request {
	return &Request{
		Method:   method.Unknown,
		Proto:    proto.HTTP11,
		Headers:  headers,
		Remote:   remote,
		response: response,
	}
}

// HasBody tells whether the request claims to carry a body. The server never
// reads request bodies, so such connections aren't kept alive
func (r *Request) HasBody() bool {
	return r.Headers.Has("content-length") || r.Headers.Has("transfer-encoding")
}

// Respond returns the Response object.
//
// WARNING: this method clears the response builder under the hood. As it is
// passed by reference, it'll be cleared EVERYWHERE along a handler
func (r *Request) Respond() *Response {
	return r.response.Clear()
}

// Reset the request, preparing it for the next one on the same connection
func (r *Request) Reset() {
	r.Method = method.Unknown
	r.Path = ""
	r.Query = ""
	r.Headers.Clear()
}
