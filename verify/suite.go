package verify

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/sse-fragment-harness/client"
	"github.com/launchdarkly/sse-fragment-harness/framework"
	"github.com/launchdarkly/sse-fragment-harness/stream"
)

const (
	fragmentedPath = "/fragmented"
	expectedPath   = "/expected"

	defaultCheckTimeout = time.Second * 30
)

var lengthListPattern = regexp.MustCompile(`^[0-9]+(,[0-9]+)*$`)

// Params describes the harness being checked.
type Params struct {
	BaseURL string
	// Sentinel is the payload of the final frame. Defaults to stream.DefaultSentinel.
	Sentinel string
	// ReadSize is passed through to client.Client.
	ReadSize int
	Timeout  time.Duration
}

// T is one check in the verify suite. Pass it to assert/require in place of a *testing.T.
type T struct {
	context *framework.Context
	params  Params
}

func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

func (t *T) FailNow() {
	t.context.FailNow()
}

func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, params: t.params})
	})
}

func (t *T) client() *client.Client {
	return &client.Client{
		BaseURL:  t.params.BaseURL,
		ReadSize: t.params.ReadSize,
		Logger:   t.context.DebugLogger(),
	}
}

func (t *T) ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), t.params.Timeout)
	t.context.Defer(cancel)
	return ctx
}

func (t *T) requireStream() client.StreamResult {
	result, err := t.client().ReadStream(t.ctx(), fragmentedPath)
	require.NoError(t, err)
	return result
}

func (t *T) requireExpected() []int {
	lengths, err := t.client().ReadLengths(t.ctx(), expectedPath)
	require.NoError(t, err)
	return lengths
}

// RunSuite runs every check that passes filter.
func RunSuite(params Params, filter framework.Filter, testLogger framework.TestLogger) framework.Results {
	if params.Sentinel == "" {
		params.Sentinel = stream.DefaultSentinel
	}
	if params.Timeout <= 0 {
		params.Timeout = defaultCheckTimeout
	}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, params: params}
		t.Run("expected", doExpectedChecks)
		t.Run("stream", doStreamChecks)
		t.Run("fallback", doFallbackChecks)
	})
}

func doExpectedChecks(t *T) {
	t.Run("literal body", func(t *T) {
		body, err := t.client().ReadText(t.ctx(), expectedPath)
		require.NoError(t, err)
		assert.Regexp(t, lengthListPattern, body, "expected lengths must be comma-separated integers with no whitespace")
	})
}

func doStreamChecks(t *T) {
	t.Run("headers", func(t *T) {
		result := t.requireStream()
		assert.True(t, strings.HasPrefix(result.Header.Get("Content-Type"), "text/event-stream"),
			"incorrect Content-Type %q", result.Header.Get("Content-Type"))
		assert.Equal(t, "no-cache", result.Header.Get("Cache-Control"))
	})

	t.Run("frame lengths match expected", func(t *T) {
		expected := t.requireExpected()
		result := t.requireStream()
		assert.Equal(t, expected, result.FrameLengths())
		assert.Empty(t, string(result.Pending), "stream ended with an incomplete frame")
	})

	t.Run("frames are single data lines", func(t *T) {
		result := t.requireStream()
		for i, f := range result.Frames {
			s := f.String()
			assert.True(t, strings.HasPrefix(s, "data: "), "frame %d: %q", i, s)
			assert.Equal(t, strings.Index(s, "\n"), len(s)-2, "frame %d has more than one line: %q", i, s)
		}
	})

	t.Run("sentinel is last", func(t *T) {
		result := t.requireStream()
		require.NotEmpty(t, result.Frames)
		assert.Equal(t, "data: "+t.params.Sentinel+"\n\n", result.Frames[len(result.Frames)-1].String())
	})

	t.Run("determinism", func(t *T) {
		first := t.requireStream()
		second := t.requireStream()
		assert.Equal(t, first.Frames, second.Frames)
	})
}

func doFallbackChecks(t *T) {
	t.Run("informational response", func(t *T) {
		body, err := t.client().ReadText(t.ctx(), "/")
		require.NoError(t, err)
		assert.NotEmpty(t, body)
		assert.NotContains(t, body, "data:")
	})
}
