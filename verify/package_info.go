// Package verify contains the checks that can be run against a live harness to confirm that
// it emits the stream its /expected endpoint describes. They use the same reassembly logic as
// a consumer would, so they double as a smoke test for the client package.
package verify
