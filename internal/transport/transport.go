package transport

import (
	"github.com/indigo-web/fileserve/http"
	"github.com/indigo-web/fileserve/http/proto"
)

type Parser interface {
	Parse(b []byte) (state RequestState, extra []byte, err error)
}

// RequestState represents the state of the request's parsing
type RequestState uint8

const (
	Pending RequestState = iota + 1
	HeadersCompleted
	Error
)

type Writer interface {
	Write([]byte) error
}

// Serializer converts an HTTP response builder into bytes and writes it
type Serializer interface {
	Write(target proto.Proto, request *http.Request, response *http.Response, writer Writer) error
}

// Transport is a pair of a parser and a serializer belonging to the same
// protocol major version
type Transport interface {
	Parser
	Serializer
}
