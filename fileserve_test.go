package fileserve

import (
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/indigo-web/fileserve/http/status"
	"github.com/indigo-web/fileserve/router"
	"github.com/stretchr/testify/require"
)

const testAddr = "localhost:16070"

func populateRoot(t *testing.T) string {
	root := t.TempDir()
	files := map[string]string{
		"index.html":     "<h1>home</h1>",
		"style.css":      "body {}",
		"app.wasm":       "\x00asm",
		"noext":          "raw bytes",
		"sub/index.html": "<h1>sub</h1>",
		"pub/a.txt":      "alpha",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return root
}

func waitForListener(t *testing.T, addr string) {
	for i := 0; i < 100; i++ {
		conn, err := net.Dial("tcp", addr)
		if err == nil {
			_ = conn.Close()
			return
		}

		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("server at %s never came up", addr)
}

// rawRoundTrip talks to the server over a bare TCP connection and returns
// everything it responded with before dropping the connection
func rawRoundTrip(t *testing.T, request string) string {
	conn, err := net.Dial("tcp", testAddr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte(request))
	require.NoError(t, err)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	resp, err := io.ReadAll(conn)
	require.NoError(t, err)

	return string(resp)
}

func get(t *testing.T, path string) (*http.Response, string) {
	resp, err := http.Get("http://" + testAddr + path)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, string(body)
}

func TestApp(t *testing.T) {
	root := populateRoot(t)
	started := make(chan struct{})
	stopped := make(chan struct{})
	app := New(testAddr).
		NotifyOnStart(func() { close(started) }).
		NotifyOnStop(func() { close(stopped) })

	serveErr := make(chan error)
	go func() {
		serveErr <- app.Serve(router.NewStatic(root).Log(nil))
	}()
	<-started
	waitForListener(t, testAddr)

	t.Run("mapped content type", func(t *testing.T) {
		resp, body := get(t, "/style.css")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "text/css", resp.Header.Get("Content-Type"))
		require.Equal(t, "fileserve", resp.Header.Get("Server"))
		require.Equal(t, "body {}", body)
	})

	t.Run("wasm", func(t *testing.T) {
		resp, _ := get(t, "/app.wasm")
		require.Equal(t, "application/wasm", resp.Header.Get("Content-Type"))
	})

	t.Run("fallback content type", func(t *testing.T) {
		resp, body := get(t, "/noext")
		require.Equal(t, "application/octet-stream", resp.Header.Get("Content-Type"))
		require.Equal(t, "raw bytes", body)
	})

	t.Run("missing file", func(t *testing.T) {
		resp, _ := get(t, "/anything.html")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("root serves the index", func(t *testing.T) {
		resp, body := get(t, "/")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "text/html", resp.Header.Get("Content-Type"))
		require.Equal(t, "<h1>home</h1>", body)
	})

	t.Run("directory redirect", func(t *testing.T) {
		client := &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
		resp, err := client.Get("http://" + testAddr + "/sub")
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		require.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
		require.Equal(t, "/sub/", resp.Header.Get("Location"))

		// the default client follows it all the way to the index
		_, body := get(t, "/sub")
		require.Equal(t, "<h1>sub</h1>", body)
	})

	t.Run("directory listing", func(t *testing.T) {
		resp, body := get(t, "/pub/")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, body, "Directory listing for /pub/")
		require.Contains(t, body, "a.txt")
	})

	t.Run("json directory listing", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, "http://"+testAddr+"/pub/", nil)
		require.NoError(t, err)
		req.Header.Set("Accept", "application/json")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		require.Equal(t, `["a.txt"]`, string(body))
	})

	t.Run("head", func(t *testing.T) {
		resp, err := http.Head("http://" + testAddr + "/style.css")
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		require.Empty(t, body)
		require.Equal(t, int64(7), resp.ContentLength)
	})

	t.Run("post is not allowed", func(t *testing.T) {
		resp, err := http.Post("http://"+testAddr+"/style.css", "text/plain", nil)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		require.Equal(t, "GET, HEAD", resp.Header.Get("Allow"))
	})

	t.Run("unknown method", func(t *testing.T) {
		resp := rawRoundTrip(t, "BREW /tea HTTP/1.1\r\n\r\n")
		require.True(t, strings.HasPrefix(resp, "HTTP/1.1 501 Not Implemented\r\n"))
	})

	t.Run("unsupported protocol", func(t *testing.T) {
		resp := rawRoundTrip(t, "GET / HTTP/1.2\r\n\r\n")
		require.True(t, strings.HasPrefix(resp, "HTTP/1.1 505 HTTP Version Not Supported\r\n"))
	})

	t.Run("malformed request", func(t *testing.T) {
		resp := rawRoundTrip(t, "GET index.html HTTP/1.1\r\n\r\n")
		require.True(t, strings.HasPrefix(resp, "HTTP/1.1 400 Bad Request\r\n"))
	})

	t.Run("keep-alive", func(t *testing.T) {
		resp := rawRoundTrip(t,
			"GET /style.css HTTP/1.1\r\n\r\n"+
				"GET /style.css HTTP/1.1\r\nConnection: close\r\n\r\n",
		)
		require.Equal(t, 2, strings.Count(resp, "HTTP/1.1 200 OK\r\n"))
	})

	t.Run("request with a body drops the connection", func(t *testing.T) {
		resp := rawRoundTrip(t, "GET / HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello")
		require.Equal(t, 1, strings.Count(resp, "HTTP/1.1 200 OK\r\n"))
	})

	app.Stop()
	require.Equal(t, status.ErrShutdown, <-serveErr)
	<-stopped
}

func TestApp_BadRoot(t *testing.T) {
	err := New("localhost:16071").Serve(router.NewStatic("/definitely/not/a/real/root"))
	require.Error(t, err)
}

func TestApp_StopReleasesAcceptLoop(t *testing.T) {
	const addr = "localhost:16072"
	root := t.TempDir()
	base := runtime.NumGoroutine()

	app := New(addr)
	serveErr := make(chan error)
	go func() {
		serveErr <- app.Serve(router.NewStatic(root).Log(nil))
	}()
	waitForListener(t, addr)

	app.Stop()
	require.Equal(t, status.ErrShutdown, <-serveErr)

	// the accept loop must not stay blocked on reporting its exit error
	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= base
	}, 3*time.Second, 10*time.Millisecond)
}
