package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/launchdarkly/sse-fragment-harness/framework"
)

const defaultReadSize = 1000

// Client reads from a running fragmented stream harness the way a consumer under test would.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	// ReadSize is the buffer size for each read from the stream body. Small values make the
	// reads line up less with the server's writes.
	ReadSize int
	Logger   framework.Logger
}

// StreamResult is everything that was received from one request for the fragmented stream.
type StreamResult struct {
	Header  http.Header
	Frames  []Frame
	Reads   int
	Pending []byte
}

// FrameLengths returns the length of each frame, in order.
func (r StreamResult) FrameLengths() []int {
	ret := make([]int, 0, len(r.Frames))
	for _, f := range r.Frames {
		ret = append(ret, f.Len())
	}
	return ret
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) logger() framework.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return framework.NullLogger()
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSuffix(c.BaseURL, "/")+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s returned HTTP status %d", path, resp.StatusCode)
	}
	return resp, nil
}

// ReadStream requests path and reads the response body until the server closes it, making no
// assumption about where reads start or end. Frames are split out using only the blank-line
// terminator.
func (c *Client) ReadStream(ctx context.Context, path string) (StreamResult, error) {
	resp, err := c.get(ctx, path)
	if err != nil {
		return StreamResult{}, err
	}
	defer resp.Body.Close()

	readSize := c.ReadSize
	if readSize <= 0 {
		readSize = defaultReadSize
	}
	result := StreamResult{Header: resp.Header}
	var reassembler Reassembler
	chunk := make([]byte, readSize)
	for {
		n, err := resp.Body.Read(chunk)
		if n > 0 {
			result.Reads++
			jsonStr, _ := json.Marshal(string(chunk[:n]))
			c.logger().Printf(">> received: %s", jsonStr)
			result.Frames = append(result.Frames, reassembler.Feed(chunk[:n])...)
		}
		if err != nil {
			result.Pending = reassembler.Pending()
			if errors.Is(err, io.EOF) {
				return result, nil
			}
			return result, fmt.Errorf("I/O error reading stream: %w", err)
		}
	}
}

// ReadText requests path and returns the whole body as a string.
func (c *Client) ReadText(ctx context.Context, path string) (string, error) {
	resp, err := c.get(ctx, path)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadLengths requests path and parses the body as comma-separated integers.
func (c *Client) ReadLengths(ctx context.Context, path string) ([]int, error) {
	body, err := c.ReadText(ctx, path)
	if err != nil {
		return nil, err
	}
	return ParseLengths(body)
}

// ParseLengths parses a list like "51,51,51,14".
func ParseLengths(s string) ([]int, error) {
	if s == "" {
		return nil, errors.New("empty length list")
	}
	parts := strings.Split(s, ",")
	ret := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("malformed length list %q: %w", s, err)
		}
		ret = append(ret, n)
	}
	return ret, nil
}
