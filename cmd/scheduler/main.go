// The scheduler binary is the interactive command-line front end to the
// flight network: one in-memory network per session, driven by a
// prompt loop on stdin.
package main

import (
	"os"

	"github.com/reneeli0223/Flight-Scheduler/internal/cli"
	"github.com/reneeli0223/Flight-Scheduler/internal/logging"
	"github.com/reneeli0223/Flight-Scheduler/internal/network"
)

func main() {
	logging.Nop()
	repl := cli.New(network.New(), os.Stdout, logging.GetLogger())
	repl.Run(os.Stdin)
}
