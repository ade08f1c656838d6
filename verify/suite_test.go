package verify

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/sse-fragment-harness/framework"
	"github.com/launchdarkly/sse-fragment-harness/server"
	"github.com/launchdarkly/sse-fragment-harness/stream"
)

func failureNames(results framework.Results) []string {
	var ret []string
	for _, f := range results.Failures {
		ret = append(ret, f.TestID.String())
	}
	return ret
}

func TestSuitePassesAgainstHarness(t *testing.T) {
	handler := server.NewHandler(stream.DefaultShape(), &stream.VirtualClock{}, nil)
	httphelpers.WithServer(handler, func(s *httptest.Server) {
		results := RunSuite(Params{BaseURL: s.URL, ReadSize: 5}, nil, nil)
		assert.Empty(t, failureNames(results))
		assert.Equal(t, 10, results.Passed()) // seven checks plus the three groups that hold them
	})
}

func TestSuiteDetectsWrongExpectedLengths(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/", server.NewHandler(stream.DefaultShape(), &stream.VirtualClock{}, nil))
	mux.Handle("/expected", httphelpers.HandlerWithResponse(200, nil, []byte("51,51,51,15")))
	httphelpers.WithServer(mux, func(s *httptest.Server) {
		results := RunSuite(Params{BaseURL: s.URL}, nil, nil)
		assert.Equal(t, []string{"stream/frame lengths match expected"}, failureNames(results))
	})
}

func TestSuiteHonorsFilter(t *testing.T) {
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("^expected"))
	handler := server.NewHandler(stream.DefaultShape(), &stream.VirtualClock{}, nil)
	httphelpers.WithServer(handler, func(s *httptest.Server) {
		results := RunSuite(Params{BaseURL: s.URL}, filters.AsFilter, nil)
		assert.True(t, results.OK())
		assert.Equal(t, 2, results.Passed()) // "expected" and "expected/literal body"
	})
}

func TestSuiteFailsWhenHarnessIsDown(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(404), func(s *httptest.Server) {
		results := RunSuite(Params{BaseURL: s.URL}, nil, nil)
		assert.False(t, results.OK())
	})
}
