package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/launchdarkly/sse-fragment-harness/framework"
	"github.com/launchdarkly/sse-fragment-harness/stream"
)

const (
	FragmentedPath = "/fragmented"
	ExpectedPath   = "/expected"

	InfoMessage = "Fragmented SSE server. Use " + FragmentedPath + " for test, " + ExpectedPath + " for lengths."
)

// Handler serves the fragmented stream, the expected frame lengths, and a fixed informational
// message for every other path. Only GET is supported. Request headers, query parameters and
// bodies are ignored.
type Handler struct {
	// StreamLogger receives the per-event and per-fragment lines of each stream. If nil, they
	// go to the handler's own logger.
	StreamLogger framework.Logger

	shape    stream.Shape
	pacer    stream.Pacer
	logger   framework.Logger
	expected string
}

// NewHandler creates a Handler for shape. A nil pacer means real wall-clock delays.
func NewHandler(shape stream.Shape, pacer stream.Pacer, logger framework.Logger) *Handler {
	if pacer == nil {
		pacer = stream.WallClock{}
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Handler{
		shape:    shape,
		pacer:    pacer,
		logger:   logger,
		expected: stream.ExpectedBody(shape),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.logger.Printf("[Server] %s %s", req.Method, req.URL.Path)
	if req.Method != http.MethodGet {
		writeResponse(w, http.StatusNotImplemented, fmt.Sprintf("Unsupported method (%q)", req.Method))
		return
	}
	switch req.URL.Path {
	case FragmentedPath:
		h.serveStream(w, req)
	case ExpectedPath:
		writeText(w, h.expected)
	default:
		writeText(w, InfoMessage)
	}
}

func (h *Handler) serveStream(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "close")
	// no chunked framing: the body is the raw fragments, ended by closing the connection
	w.Header().Set("Transfer-Encoding", "identity")
	w.WriteHeader(http.StatusOK)

	conn := newResponseConn(w)
	if err := conn.Flush(); err != nil {
		h.logger.Printf("Response does not support flushing: %s", err)
		return
	}

	streamLogger := h.StreamLogger
	if streamLogger == nil {
		streamLogger = h.logger
	}
	streamLogger = framework.LoggerWithPrefix(streamLogger, "[stream] ")
	session := stream.NewSession(h.shape, stream.NewEmitter(h.pacer, streamLogger), streamLogger)
	if err := session.Run(req.Context(), conn); err != nil {
		// the peer went away; there is nothing left to tell it
		h.logger.Printf("Stream ended after %d complete events, %d fragments not sent: %s",
			session.Sent(), session.Remaining(), err)
		return
	}
	h.logger.Printf("Sent fragmented stream (%d events)", session.Sent())
}

func writeText(w http.ResponseWriter, body string) {
	writeResponse(w, http.StatusOK, body)
}

func writeResponse(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

type responseConn struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

func newResponseConn(w http.ResponseWriter) responseConn {
	return responseConn{w: w, rc: http.NewResponseController(w)}
}

func (c responseConn) Write(p []byte) (int, error) {
	return c.w.Write(p)
}

func (c responseConn) Flush() error {
	return c.rc.Flush()
}
