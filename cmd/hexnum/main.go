// Package main provides the hexnum CLI: number patterns on the hex grid,
// decomposition of arbitrary numbers, and a persistent pattern cache.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}

// run executes one command line and releases whatever the command opened.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	st := &rootState{}
	cmd := newRootCmd(st)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if st.app != nil {
		err = errors.Join(err, st.app.close(context.Background()))
	}
	return err
}
