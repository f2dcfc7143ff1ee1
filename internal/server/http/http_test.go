package http

import (
	"strings"
	"testing"

	"github.com/indigo-web/fileserve/config"
	"github.com/indigo-web/fileserve/http"
	"github.com/indigo-web/fileserve/internal/construct"
	"github.com/indigo-web/fileserve/internal/server/tcp/dummy"
	"github.com/indigo-web/fileserve/internal/transport"
	"github.com/indigo-web/fileserve/kv"
	"github.com/stretchr/testify/require"
)

type routerStub struct {
	served int
}

func (r *routerStub) OnStart() error {
	return nil
}

func (r *routerStub) OnRequest(request *http.Request) *http.Response {
	r.served++
	return request.Respond().String("ok")
}

func (r *routerStub) OnError(request *http.Request, err error) *http.Response {
	return http.Error(request, err)
}

func getSuit(stub *routerStub) (*Server, *http.Request, transport.Transport) {
	cfg := config.Default()
	request := http.NewRequest(kv.New(), http.NewResponse(), nil)

	return NewServer(stub), request, construct.Transport(cfg, request)
}

func TestSession(t *testing.T) {
	t.Run("single request", func(t *testing.T) {
		stub := new(routerStub)
		server, request, trans := getSuit(stub)
		client := dummy.NewCircularClient([]byte("GET / HTTP/1.1\r\n\r\n")).OneTime()

		server.Run(client, request, trans)
		require.Equal(t, 1, stub.served)
		written := string(client.Written())
		require.True(t, strings.HasPrefix(written, "HTTP/1.1 200 OK\r\n"))
		require.True(t, strings.HasSuffix(written, "\r\n\r\nok"))
	})

	t.Run("keep-alive", func(t *testing.T) {
		stub := new(routerStub)
		server, request, trans := getSuit(stub)
		client := dummy.NewCircularClient(
			[]byte("GET /first HTTP/1.1\r\n\r\n"),
			[]byte("GET /second HTTP/1.1\r\n\r\n"),
		).OneTime()

		server.Run(client, request, trans)
		require.Equal(t, 2, stub.served)
		require.Equal(t, 2, strings.Count(string(client.Written()), "HTTP/1.1 200 OK\r\n"))
	})

	t.Run("connection: close terminates the session", func(t *testing.T) {
		stub := new(routerStub)
		server, request, trans := getSuit(stub)
		// note: the client isn't set into the one-time mode, so only the
		// Connection header saves us from an infinite loop here
		client := dummy.NewCircularClient([]byte("GET / HTTP/1.1\r\nConnection: close\r\n\r\n"))

		server.Run(client, request, trans)
		require.Equal(t, 1, stub.served)
	})

	t.Run("malformed request gets an error response", func(t *testing.T) {
		stub := new(routerStub)
		server, request, trans := getSuit(stub)
		client := dummy.NewCircularClient([]byte("GET index.html HTTP/1.1\r\n\r\n"))

		server.Run(client, request, trans)
		require.Equal(t, 0, stub.served)
		require.True(t, strings.HasPrefix(string(client.Written()), "HTTP/1.1 400 Bad Request\r\n"))
	})

	t.Run("pipelined requests", func(t *testing.T) {
		stub := new(routerStub)
		server, request, trans := getSuit(stub)
		client := dummy.NewCircularClient(
			[]byte("GET /first HTTP/1.1\r\n\r\nGET /second HTTP/1.1\r\n\r\n"),
		).OneTime()

		server.Run(client, request, trans)
		require.Equal(t, 2, stub.served)
	})
}
