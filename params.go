package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/launchdarkly/sse-fragment-harness/framework"
)

type commandParams struct {
	host        string
	port        int
	profilePath string
	verifyURL   string
	sentinel    string
	readSize    int
	filters     framework.RegexFilters
	debug       bool
	debugAll    bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.host, "host", "127.0.0.1", "address that the harness will listen on")
	fs.IntVar(&c.port, "port", defaultPort, "port that the harness will listen on")
	fs.StringVar(&c.profilePath, "profile", "", "JSON file describing an alternative stream shape")
	fs.StringVar(&c.verifyURL, "verify", "", "instead of serving, check a running harness at this base URL")
	fs.StringVar(&c.sentinel, "sentinel", "", "payload of the final frame when verifying (default \"[DONE]\")")
	fs.IntVar(&c.readSize, "read-size", 0, "buffer size for each read of the stream when verifying")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select checks to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select checks not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging (and debug output for failed checks)")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug output for all checks")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.port < 0 || c.port > 65535 {
		fmt.Fprintf(os.Stderr, "-port must be between 0 and 65535, not %d\n", c.port)
		fs.Usage()
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

func curlCommand(url string, streaming bool) string {
	var b commandBuilder
	b.add("curl")
	if streaming {
		b.add("-N")
	}
	b.add(url)
	return b.String()
}
