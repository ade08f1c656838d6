package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/launchdarkly/sse-fragment-harness/framework"
)

const httpListenerTimeout = time.Second * 10

// Listener is a running HTTP server.
type Listener struct {
	server *http.Server
	addr   net.Addr
}

// Start binds addr and serves handler on it in the background. It does not return until the
// listener is answering requests. HEAD requests to any path get an empty 200 response, which
// is how readiness is detected.
func Start(addr string, handler http.Handler, logger framework.Logger) (*Listener, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("could not listen on %s: %w", addr, err)
	}
	l := &Listener{
		server: &http.Server{
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodHead {
					w.WriteHeader(http.StatusOK)
					return
				}
				handler.ServeHTTP(w, r)
			}),
		},
		addr: ln.Addr(),
	}
	go func() {
		if err := l.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("Listener stopped unexpectedly: %s", err)
		}
	}()

	// Wait till the server is definitely listening for requests
	deadline := time.NewTimer(httpListenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	for {
		select {
		case <-deadline.C:
			_ = l.server.Close()
			return nil, fmt.Errorf("could not detect own listener at %s", l.addr)
		case <-ticker.C:
			resp, err := http.DefaultClient.Head(l.URL())
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					return l, nil
				}
			}
		}
	}
}

// URL is the base URL of the listener, without a trailing slash.
func (l *Listener) URL() string {
	host, port, err := net.SplitHostPort(l.addr.String())
	if err != nil {
		return "http://" + l.addr.String()
	}
	if ip := net.ParseIP(host); ip == nil || ip.IsUnspecified() {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// Close stops accepting connections and waits for active streams to finish, or for ctx to
// be done.
func (l *Listener) Close(ctx context.Context) error {
	return l.server.Shutdown(ctx)
}
