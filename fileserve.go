package fileserve

import (
	"fmt"
	"net"
	"sync/atomic"

	"github.com/indigo-web/fileserve/config"
	"github.com/indigo-web/fileserve/http/status"
	"github.com/indigo-web/fileserve/internal/address"
	"github.com/indigo-web/fileserve/internal/construct"
	httpserver "github.com/indigo-web/fileserve/internal/server/http"
	"github.com/indigo-web/fileserve/internal/server/tcp"
	"github.com/indigo-web/fileserve/router"
)

type ListenerConstructor func(network, addr string) (net.Listener, error)

type Listener struct {
	Port        uint16
	Constructor ListenerConstructor
}

// App is the server launchpad: it collects listeners, settings and hooks,
// and runs the accept loops until failure or shutdown
type App struct {
	addr      address.Address
	hooks     hooks
	listeners []Listener
	cfg       *config.Config
	errCh     chan error
	// failSilently tells the accept loops that their exit errors are of no
	// interest anymore, so they must not block on errCh
	failSilently atomic.Bool
}

// New returns a new App instance bound to the addr. The host may be omitted
// (":8000"), in which case all the interfaces are bound
func New(addr string) *App {
	appAddr, err := address.Parse(addr)
	if err != nil {
		panic(fmt.Errorf("fileserve: listen: bad addr: %v", err))
	}

	return &App{
		addr:  appAddr,
		cfg:   config.Default(),
		errCh: make(chan error),
	}
}

// Tune replaces the default config. Zero fields are filled with defaults.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = config.Fill(cfg)
	return a
}

// NotifyOnStart calls the callback at the moment when all the servers are
// started. However, it isn't strongly guaranteed that they'll be able to
// accept new connections immediately
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment when all the servers are
// down. It's guaranteed that at that moment the server isn't able to accept
// any new connections and all the clients are already disconnected
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Listen adds a new listener on the port
func (a *App) Listen(port uint16, optionalConstructor ...ListenerConstructor) *App {
	constructor := optional(optionalConstructor, net.Listen)
	if constructor == nil {
		constructor = net.Listen
	}

	a.listeners = append(a.listeners, Listener{
		Port:        port,
		Constructor: constructor,
	})

	return a
}

// Serve starts the server. If nil is passed instead of a router, files are
// served from the current working directory
func (a *App) Serve(r router.Router) error {
	if r == nil {
		r = router.NewStatic(".").Index(a.cfg.FS.Index)
	}

	if err := r.OnStart(); err != nil {
		return err
	}

	a.Listen(a.addr.Port, net.Listen)
	servers, err := a.getServers(a.addr, r)
	if err != nil {
		return err
	}

	return a.run(servers)
}

func (a *App) getServers(addr address.Address, r router.Router) ([]*tcp.Server, error) {
	servers := make([]*tcp.Server, len(a.listeners))

	for i, listener := range a.listeners {
		sock, err := listener.Constructor("tcp", addr.SetPort(listener.Port).String())
		if err != nil {
			return nil, err
		}

		servers[i] = tcp.NewServer(sock, a.newTCPCallback(r))
	}

	return servers, nil
}

func (a *App) run(servers []*tcp.Server) error {
	for _, server := range servers {
		go func(server *tcp.Server) {
			err := server.Start()

			if a.failSilently.Swap(true) {
				return
			}

			a.errCh <- err
		}(server)
	}

	callIfNotNil(a.hooks.OnStart)
	err := <-a.errCh
	if err == status.ErrGracefulShutdown {
		// stop listening to new clients and process till the end all the old ones
		tcp.PauseAll(servers)
	}

	tcp.StopAll(servers)
	callIfNotNil(a.hooks.OnStop)

	return err
}

// GracefulStop stops accepting new connections, but keeps serving old ones.
//
// NOTE: the call isn't blocking. So by that, after the method returned, the
// server will still be working
func (a *App) GracefulStop() {
	a.failSilently.Store(true)
	a.errCh <- status.ErrGracefulShutdown
}

// Stop stops the whole application immediately.
//
// NOTE: the call isn't blocking. So by that, after the method returned, the
// server will still be working
func (a *App) Stop() {
	a.failSilently.Store(true)
	a.errCh <- status.ErrShutdown
}

func (a *App) newTCPCallback(r router.Router) tcp.OnConn {
	return func(conn net.Conn) {
		client := construct.Client(a.cfg.NET, conn)
		request := construct.Request(a.cfg, conn)
		trans := construct.Transport(a.cfg, request)
		httpServer := httpserver.NewServer(r)
		httpServer.Run(client, request, trans)
	}
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}

func optional[T any](optionals []T, otherwise T) T {
	if len(optionals) == 0 {
		return otherwise
	}

	return optionals[0]
}
