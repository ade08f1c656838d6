package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/launchdarkly/sse-fragment-harness/framework"
)

var (
	failedLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	skippedLabel = color.New(color.FgYellow).SprintFunc()
	passedLabel  = color.New(color.FgGreen).SprintFunc()
)

type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Printf("[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Printf("  %s %s\n", failedLabel("FAILED:"), id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(os.Stdout, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Printf("  %s %s\n", skippedLabel("SKIPPED:"), id)
	} else {
		fmt.Printf("  %s %s (%s)\n", skippedLabel("SKIPPED:"), id, reason)
	}
}

func printResults(results framework.Results) {
	if results.OK() {
		fmt.Println(passedLabel(fmt.Sprintf("All checks passed (%d)", results.Passed())))
		return
	}
	fmt.Println(failedLabel(fmt.Sprintf("%d check(s) failed:", len(results.Failures))))
	for _, f := range results.Failures {
		for _, err := range f.Errors {
			fmt.Printf("  %s\n", strings.SplitN(framework.TestFailure{ID: f.TestID, Err: err}.Error(), "\n", 2)[0])
		}
	}
}
