package router

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/indigo-web/fileserve/http"
	"github.com/indigo-web/fileserve/http/method"
	"github.com/indigo-web/fileserve/http/status"
	"github.com/indigo-web/fileserve/internal/pathlib"
)

type Logger interface {
	Printf(fmt string, v ...any)
}

// Static is a router that resolves every request against a root directory
// and returns files from it. There are no routing tables: the request path
// is the route
type Static struct {
	root   string
	index  string
	logger Logger
	paths  sync.Pool
}

// NewStatic returns a static router serving files from the root directory.
func NewStatic(root string) *Static {
	s := &Static{
		root:   root,
		index:  "index.html",
		logger: log.Default(),
	}
	s.paths.New = func() any {
		return pathlib.NewPath("/", root)
	}

	return s
}

// Index overrides the file served for directory requests. Defaults to
// index.html
func (s *Static) Index(name string) *Static {
	s.index = name
	return s
}

// Log overrides the access log destination. Passing nil disables the
// access log
func (s *Static) Log(logger Logger) *Static {
	s.logger = logger
	return s
}

func (s *Static) OnStart() error {
	stat, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("static: root: %w", err)
	}
	if !stat.IsDir() {
		return fmt.Errorf("static: root: %s is not a directory", s.root)
	}

	return nil
}

func (s *Static) OnRequest(request *http.Request) *http.Response {
	response := s.serve(request)

	if s.logger != nil {
		s.logger.Printf("%s %q %d", request.Method.String(), request.Path, response.Reveal().Code)
	}

	return response
}

func (s *Static) OnError(request *http.Request, err error) *http.Response {
	return http.Error(request, err)
}

func (s *Static) serve(request *http.Request) *http.Response {
	if request.Method != method.GET && request.Method != method.HEAD {
		return http.Error(request, status.ErrMethodNotAllowed).
			Header("Allow", "GET, HEAD")
	}

	if !isSafe(request.Path) {
		// pretend traversal targets simply don't exist
		return http.Error(request, status.ErrNotFound)
	}

	resolver := s.paths.Get().(*pathlib.Path)
	defer s.paths.Put(resolver)

	resolver.Set(request.Path)
	target := resolver.Relative()

	stat, err := os.Stat(target)
	switch {
	case err == nil:
	case os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR):
		// ENOTDIR happens on paths through a regular file, e.g. /style.css/x.
		// Nothing exists at such a path either
		return http.Error(request, status.ErrNotFound)
	default:
		return http.Error(request, status.ErrInternalServerError)
	}

	if stat.IsDir() {
		if !strings.HasSuffix(request.Path, "/") {
			return request.Respond().Redirect(request.Path + "/")
		}

		if resp, err := request.Respond().TryFile(target + s.index); err == nil {
			return resp
		}

		return s.listing(request, target)
	}

	return request.Respond().File(target)
}

// isSafe checks for path traversal (basically - double dots)
func isSafe(path string) bool {
	for len(path) > 0 {
		dot := strings.IndexByte(path, '.')
		if dot == -1 || dot == len(path)-1 {
			return true
		}

		if path[dot+1] == '.' {
			return false
		}

		path = path[dot+1:]
	}

	return true
}
