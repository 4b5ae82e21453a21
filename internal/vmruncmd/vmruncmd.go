// Package vmruncmd implements the vmrun command: load a raw bytecode file,
// run it to completion, and print the result stack or fault reason. It is
// glue around the engine package, not a fifth core subsystem, and contains
// no opcode semantics of its own.
package vmruncmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/stackvm/engine"
)

const binName = "vmrun"

var shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <script-file>
Run '%[1]s --help' for details.
`, binName)

var longUsage = fmt.Sprintf(`usage: %s [<option>...] <script-file>
       %[1]s -h|--help
       %[1]s -v|--version

Runs a raw bytecode script to Halt or Fault and prints the result stack.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --strict                  Validate the script up front (jump/call/try
                                 targets, type operands) before running it.
       --trace                   Write one line per dispatched instruction
                                 to stderr.
       --limits <path>           Path to a JSON file overriding the default
                                 resource limits (see engine.Limits).
`, binName)

// Cmd is the vmrun command. It is a single-purpose command, unlike the
// multi-subcommand Cmd in internal/maincmd: it runs exactly one script file.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool   `flag:"h,help"`
	Version bool   `flag:"v,version"`
	Strict  bool   `flag:"strict"`
	Trace   bool   `flag:"trace"`
	Limits  string `flag:"limits"`

	args []string
}

func (c *Cmd) SetArgs(args []string)          { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) == 0 {
		return errors.New("no script file specified")
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.run(ctx, stdio); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", binName, err)
		return mainer.Failure
	}
	return mainer.Success
}

func (c *Cmd) run(ctx context.Context, stdio mainer.Stdio) error {
	data, err := os.ReadFile(c.args[0])
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	limits, err := c.loadLimits()
	if err != nil {
		return err
	}

	script, err := engine.NewScript(data, c.Strict)
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}

	eng := engine.NewEngine(limits)
	if c.Trace {
		eng.Trace = stdio.Stderr
	}
	if err := eng.LoadScript(script, -1); err != nil {
		return fmt.Errorf("load script: %w", err)
	}

	switch state := eng.Execute(); state {
	case engine.StateHalt:
		items := eng.ResultStack().Items()
		for i := len(items) - 1; i >= 0; i-- {
			fmt.Fprintln(stdio.Stdout, items[i].String())
		}
		return nil
	case engine.StateFault:
		return eng.FaultReason()
	default:
		return fmt.Errorf("unexpected terminal state: %s", state)
	}
}

func (c *Cmd) loadLimits() (engine.Limits, error) {
	if c.Limits == "" {
		return engine.DefaultLimits, nil
	}
	data, err := os.ReadFile(c.Limits)
	if err != nil {
		return engine.Limits{}, fmt.Errorf("read limits: %w", err)
	}
	limits := engine.DefaultLimits
	if err := json.Unmarshal(data, &limits); err != nil {
		return engine.Limits{}, fmt.Errorf("parse limits: %w", err)
	}
	return limits, nil
}
