package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	_ "net/http/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server is the http server serving /metrics requests for prometheus.
type Server struct {
	server *http.Server
	log    zerolog.Logger

	mu      sync.Mutex
	address string // bound address, available once Ready has closed
}

// NewServer creates a new server that will start on the specified port and
// responds to the `/metrics` endpoint. Passing port 0 binds an ephemeral
// port; the bound address is available from Address once the server is
// ready.
func NewServer(log zerolog.Logger, port uint, enableProfilerEndpoint bool) *Server {
	addr := ":" + strconv.Itoa(int(port))

	mux := http.NewServeMux()
	endpoint := "/metrics"
	mux.Handle(endpoint, promhttp.Handler())
	if enableProfilerEndpoint {
		mux.Handle("/debug/pprof/", http.DefaultServeMux)
	}

	m := &Server{
		server: &http.Server{Addr: addr, Handler: mux},
		log:    log.With().Str("component", "metrics_server").Logger(),
	}

	return m
}

// Ready returns a channel that closes once the server's listener is bound
// and serving. It also closes when binding fails; the failure is logged and
// Address stays empty.
func (m *Server) Ready() <-chan struct{} {
	ready := make(chan struct{})
	go func() {
		defer close(ready)

		listener, err := net.Listen("tcp", m.server.Addr)
		if err != nil {
			m.log.Err(err).Str("address", m.server.Addr).Msg("could not bind metrics server")
			return
		}

		m.mu.Lock()
		m.address = listener.Addr().String()
		m.mu.Unlock()
		m.log.Info().Str("address", m.address).Str("endpoint", "/metrics").Msg("metrics server started")

		go func() {
			if err := m.server.Serve(listener); err != nil {
				// http.ErrServerClosed is returned when Close or Shutdown is
				// called; that is an orderly exit, not an error
				if errors.Is(err, http.ErrServerClosed) {
					m.log.Debug().Err(err).Msg("metrics server shutdown")
				} else {
					m.log.Err(err).Msg("error shutting down metrics server")
				}
			}
		}()
	}()
	return ready
}

// Done returns a channel that will close when shutdown is complete.
func (m *Server) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = m.server.Shutdown(ctx)
		close(done)
	}()
	return done
}

// Address returns the address the server is bound to. Empty until the Ready
// channel has closed.
func (m *Server) Address() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.address
}
