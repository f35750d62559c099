// Command piart renders the digits of pi as a grid of colored cells.
//
// Usage:
//
//	piart render  [flags]          write the grid as a PNG
//	piart hit     -x X -y Y        print the digit under a pixel
//	piart palette list|show|generate|convert
//	piart view    [flags]          interactive terminal viewer
//	piart version
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/piart"
)

// Version information (set via ldflags during build).
var (
	version = piart.Version
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app carries the output streams and environment of one invocation.
type app struct {
	stdout, stderr io.Writer
	lookupEnv      func(string) (string, bool)
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, lookupEnv: os.LookupEnv}
	return a.run(args)
}

func (a *app) run(args []string) int {
	if len(args) == 0 {
		a.usage()
		return 2
	}

	var err error
	switch args[0] {
	case "render":
		err = a.render(args[1:])
	case "hit":
		err = a.hit(args[1:])
	case "palette":
		err = a.palette(args[1:])
	case "view":
		err = a.view(args[1:])
	case "version", "-version", "--version":
		fmt.Fprintf(a.stdout, "piart %s (%s)\n", version, commit)
		return 0
	case "help", "-h", "-help", "--help":
		a.usage()
		return 0
	default:
		fmt.Fprintf(a.stderr, "piart: unknown command %q\n\n", args[0])
		a.usage()
		return 2
	}

	if err != nil {
		switch {
		case errors.Is(err, errHelp):
			return 0
		case errors.Is(err, errUsage):
			return 2
		}
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) usage() {
	fmt.Fprintf(a.stderr, `piart - the digits of pi as colored cells

Usage:
  piart render   [flags]    render the grid to a PNG file
  piart hit      [flags]    print the digit under pixel -x,-y
  piart palette  <cmd>      list | show | generate | convert
  piart view     [flags]    interactive terminal viewer
  piart version             print the version

Run "piart <command> -h" for command flags.
`)
}
