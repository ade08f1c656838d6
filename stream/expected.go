package stream

import (
	"strconv"
	"strings"
)

// ExpectedLengths returns the framed size of every event in shape, sentinel last.
//
// The sizes are worked out from the payload text alone. Nothing here goes through Event or
// Plan, so a bug in framing or planning shows up as a mismatch instead of being reported
// back consistently.
func ExpectedLengths(shape Shape) []int {
	const overhead = len("data: ") + len("\n\n")
	ret := make([]int, 0, len(shape.payloads)+1)
	for _, p := range shape.payloads {
		ret = append(ret, overhead+len(p))
	}
	return append(ret, overhead+len(shape.sentinel))
}

// ExpectedBody is ExpectedLengths as comma-separated decimal integers.
func ExpectedBody(shape Shape) string {
	lengths := ExpectedLengths(shape)
	parts := make([]string, 0, len(lengths))
	for _, n := range lengths {
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, ",")
}
