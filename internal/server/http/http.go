package http

import (
	"fmt"

	"github.com/indigo-web/fileserve/http"
	"github.com/indigo-web/fileserve/internal/server/tcp"
	"github.com/indigo-web/fileserve/internal/transport"
	"github.com/indigo-web/fileserve/router"
)

type Server struct {
	router router.Router
}

func NewServer(router router.Router) *Server {
	return &Server{
		router: router,
	}
}

func (s *Server) Run(client tcp.Client, req *http.Request, trans transport.Transport) {
	for s.HandleRequest(client, req, trans) {
	}

	_ = client.Close()
}

func (s *Server) HandleRequest(client tcp.Client, req *http.Request, trans transport.Transport) (ok bool) {
	data, err := client.Read()
	if err != nil {
		// the client is gone or idled out. There's nobody to respond to
		return false
	}

	state, extra, err := trans.Parse(data)
	switch state {
	case transport.Pending:
	case transport.HeadersCompleted:
		client.Unread(extra)

		if err = trans.Write(req.Proto, req, s.onRequest(req), client); err != nil {
			// if an error happened during writing the response, it makes no
			// sense to try to write anything again
			return false
		}

		req.Reset()
	case transport.Error:
		// write the error response (e.g. 400) and drop the connection; its
		// state is unrecoverable
		_ = trans.Write(req.Proto, req, s.onError(req, err), client)
		return false
	default:
		panic(fmt.Sprintf("BUG: got unexpected parser state: %v", state))
	}

	return true
}

func (s *Server) onError(req *http.Request, err error) *http.Response {
	return notNil(req, s.router.OnError(req, err))
}

func (s *Server) onRequest(req *http.Request) *http.Response {
	return notNil(req, s.router.OnRequest(req))
}

func notNil(req *http.Request, resp *http.Response) *http.Response {
	if resp != nil {
		return resp
	}

	return http.Respond(req)
}
