package construct

import (
	"net"

	"github.com/indigo-web/fileserve/config"
	"github.com/indigo-web/fileserve/http"
	"github.com/indigo-web/fileserve/internal/server/tcp"
	"github.com/indigo-web/fileserve/internal/transport"
	"github.com/indigo-web/fileserve/internal/transport/http1"
	"github.com/indigo-web/fileserve/kv"
	"github.com/indigo-web/utils/buffer"
)

func Client(cfg config.NET, conn net.Conn) tcp.Client {
	readBuff := make([]byte, cfg.ReadBufferSize)

	return tcp.NewClient(conn, cfg.ReadTimeout, readBuff)
}

func Request(cfg *config.Config, conn net.Conn) *http.Request {
	hdrs := kv.NewPrealloc(cfg.Headers.Number.Default)
	response := http.NewResponse()

	return http.NewRequest(hdrs, response, conn.RemoteAddr())
}

func Transport(cfg *config.Config, request *http.Request) transport.Transport {
	keyBuff := buffer.New(
		cfg.Headers.Space.Default,
		cfg.Headers.Space.Maximal,
	)
	valBuff := buffer.New(
		cfg.Headers.Space.Default,
		cfg.Headers.Space.Maximal,
	)
	startLineBuff := buffer.New(
		cfg.URI.RequestLineSize.Default,
		cfg.URI.RequestLineSize.Maximal,
	)
	respBuff := make([]byte, 0, cfg.HTTP.ResponseBuffSize)

	return http1.New(
		request,
		keyBuff, valBuff, startLineBuff,
		cfg.Headers,
		respBuff,
		cfg.HTTP.FileBuffSize,
		cfg.Headers.Default,
	)
}
