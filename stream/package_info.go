// Package stream builds and sends the deliberately fragmented SSE stream.
//
// An Event is one framed "data:" line. Plan cuts an Event into byte ranges according to a
// SplitPolicy, and an Emitter writes those ranges one at a time, flushing after each and
// pausing through a Pacer. A Session runs a whole Shape (the fixed event list plus a
// sentinel) over a single connection. ExpectedLengths reports what a consumer should end up
// with, computed without going through any of that machinery.
package stream
