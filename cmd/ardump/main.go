// Command ardump prints the table of contents of a BSD ar archive, including the symbol to member
// mapping held in its __.SYMDEF member.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/containerd/log"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line args and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logrus.SetOutput(stderr)

	cmd := newRootCommand(ctx)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		log.G(ctx).WithError(err).Debug("ardump failed")
		fmt.Fprintf(stderr, "ardump: %s\n", err)
		return 1
	}
	return 0
}
