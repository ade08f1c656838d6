// Package client is the consuming side of the harness: it reads the fragmented stream with no
// assumptions about read boundaries and reassembles frames using only the blank-line
// terminator, so results can be compared with the server's expected lengths.
package client
