package cmd

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/clock"
	"github.com/josephgoksu/dayplan/store"
	"github.com/josephgoksu/dayplan/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// cli runs commands against one in-memory store and a fake clock, the way
// separate dayplan invocations share the data directory.
type cli struct {
	t   *testing.T
	kv  *store.MemoryStore
	clk *clock.FakeClock
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("DAYPLAN_DATA_DIR", t.TempDir())

	c := &cli{
		t:   t,
		kv:  store.NewMemoryStore(),
		clk: clock.Fake(time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local)),
	}

	origApp, origPrompt := newApp, canPrompt
	newApp = func(cfg types.AppConfig) (*app.App, io.Closer, error) {
		a, err := app.New(app.Options{Config: cfg, Clock: c.clk, Store: c.kv, Out: io.Discard})
		return a, nopCloser{}, err
	}
	canPrompt = func() bool { return false }
	t.Cleanup(func() {
		newApp, canPrompt = origApp, origPrompt
		resetCLI()
	})
	return c
}

// run executes one command line and returns its standard output.
func (c *cli) run(args ...string) (string, error) {
	resetCLI()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "dayplan %v", args)
	return out
}

// resetCLI restores every flag to its default. cobra keeps parsed values
// between Execute calls.
func resetCLI() {
	resetFlags(rootCmd)
	rootCmd.SetArgs(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}
