package router

import (
	"github.com/indigo-web/fileserve/http"
)

type Router interface {
	OnStart() error
	OnRequest(request *http.Request) *http.Response
	OnError(request *http.Request, err error) *http.Response
}
