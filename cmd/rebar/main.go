// Command rebar is the CLI entrypoint wiring internal/cli's command
// tree into a process, mirroring cmd/cue's thin main.go.
package main

import (
	"os"

	"github.com/ktmeaton/rebar-sub000/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
