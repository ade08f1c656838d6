// Package framework contains infrastructure shared by the rest of the harness that is not
// specific to fragmented streams.
//
// Logger is the minimal logging interface used everywhere; CapturingLogger keeps messages in
// memory and the zap adapters send them to the console. Context is similar to Go's
// *testing.T, allowing a named check to accumulate failures and debug output outside of the
// Go test runner, with Results and TestLogger reporting on a whole run.
package framework
