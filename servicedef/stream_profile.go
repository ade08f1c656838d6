package servicedef

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/launchdarkly/sse-fragment-harness/stream"
)

// StreamProfile is the JSON form of a stream shape. Any property that is omitted keeps the
// value from stream.DefaultShape.
type StreamProfile struct {
	Payloads        []string            `json:"payloads,omitempty"`
	Sentinel        string              `json:"sentinel,omitempty"`
	EventSplit      []int               `json:"eventSplit,omitempty"`
	SentinelSplit   []int               `json:"sentinelSplit,omitempty"`
	FragmentDelayMS ldvalue.OptionalInt `json:"fragmentDelayMs,omitempty"`
	EventDelayMS    ldvalue.OptionalInt `json:"eventDelayMs,omitempty"`
}

// ParseProfile decodes a profile, rejecting unknown properties.
func ParseProfile(data []byte) (StreamProfile, error) {
	var p StreamProfile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return StreamProfile{}, fmt.Errorf("malformed stream profile: %w", err)
	}
	return p, nil
}

// LoadProfile reads a profile from a JSON file.
func LoadProfile(path string) (StreamProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StreamProfile{}, err
	}
	return ParseProfile(data)
}

// Shape builds the stream shape described by the profile.
func (p StreamProfile) Shape() (stream.Shape, error) {
	def := stream.DefaultShape()
	params := stream.ShapeParams{
		Payloads:      def.Payloads(),
		Sentinel:      def.Sentinel(),
		EventSplit:    def.EventSplit(),
		SentinelSplit: def.SentinelSplit(),
		FragmentDelay: def.FragmentDelay(),
		EventDelay:    def.EventDelay(),
	}
	if p.Payloads != nil {
		params.Payloads = p.Payloads
	}
	if p.Sentinel != "" {
		params.Sentinel = p.Sentinel
	}
	if p.EventSplit != nil {
		params.EventSplit = stream.SplitPolicy{Name: "event", Lengths: p.EventSplit}
	}
	if p.SentinelSplit != nil {
		params.SentinelSplit = stream.SplitPolicy{Name: "sentinel", Lengths: p.SentinelSplit}
	}
	if p.FragmentDelayMS.IsDefined() {
		params.FragmentDelay = time.Duration(p.FragmentDelayMS.IntValue()) * time.Millisecond
	}
	if p.EventDelayMS.IsDefined() {
		params.EventDelay = time.Duration(p.EventDelayMS.IntValue()) * time.Millisecond
	}
	return stream.NewShape(params)
}
