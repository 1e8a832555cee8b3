// Jaipur plays the two-player trading card game between humans, built-in
// agents, move scripts and Lua bots.
// Usage: jaipur [--p1 human] [--p2 greedy] [--seed N] [--games N] [--plain] [--trace]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/nathoo/jaipur/agent"
	jcli "github.com/nathoo/jaipur/cli"
	"github.com/nathoo/jaipur/engine"
	"github.com/nathoo/jaipur/match"
	"github.com/nathoo/jaipur/tui"
	"github.com/nathoo/jaipur/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const humanSpec = "human"

func main() {
	cmd := &cli.Command{
		Name:    "jaipur",
		Usage:   "play Jaipur in the terminal",
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "p1", Value: humanSpec, Usage: "seat 0: human, random, greedy, script:<file> or lua:<file>"},
			&cli.StringFlag{Name: "p2", Value: "greedy", Usage: "seat 1, same choices as --p1"},
			&cli.Int64Flag{Name: "seed", Usage: "RNG seed (default: time based)"},
			&cli.IntFlag{Name: "first", Value: engine.RandomFirstPlayer, Usage: "opening seat, -1 for random"},
			&cli.IntFlag{Name: "games", Value: 1, Usage: "number of games; more than one plays a batch without humans"},
			&cli.StringFlag{Name: "input", Usage: "read human actions from a file (implies --plain)"},
			&cli.BoolFlag{Name: "plain", Usage: "line-based output instead of the full-screen UI"},
			&cli.BoolFlag{Name: "auto", Usage: "full-screen UI: agents play without waiting for a key"},
			&cli.DurationFlag{Name: "delay", Value: tui.DefaultDelay, Usage: "full-screen UI: pause between agent turns"},
			&cli.BoolFlag{Name: "trace", Usage: "print engine events after each turn"},
			&cli.BoolFlag{Name: "debug", Usage: "write debug logs"},
			&cli.StringFlag{Name: "log-file", Usage: "debug log destination (default stderr)"},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd.Bool("debug"), cmd.String("log-file"))
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg := engine.DefaultConfig()
	if cmd.IsSet("seed") {
		cfg.Seed = cmd.Int64("seed")
	}
	cfg.FirstPlayer = cmd.Int("first")
	cfg.Logger = log

	specs := [types.NumPlayers]string{cmd.String("p1"), cmd.String("p2")}
	games := cmd.Int("games")
	if games < 1 {
		return fmt.Errorf("--games must be at least 1, got %d", games)
	}
	if games > 1 && hasHuman(specs) {
		return errors.New("a batch of games cannot seat a human")
	}

	plain := cmd.Bool("plain") || !isTerminal()
	c := jcli.New()
	c.Trace = cmd.Bool("trace")
	c.Plain = !isTerminal()

	// Input file mode: force plain, echo commands.
	if path := cmd.String("input"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		c.In = f
		c.EchoInput = true
		plain = true
	}

	var agents [types.NumPlayers]agent.Agent
	for seat, spec := range specs {
		if strings.EqualFold(spec, humanSpec) {
			if plain {
				agents[seat] = c.Human()
			}
			continue
		}
		a, err := agent.New(spec, cfg.Seed+int64(seat)+1)
		if err != nil {
			return fmt.Errorf("seat %d: %w", seat, err)
		}
		if cl, ok := a.(interface{ Close() }); ok {
			defer cl.Close()
		}
		agents[seat] = a
	}

	e := engine.New(cfg)

	if games > 1 {
		_, err := c.Batch(ctx, games, func(int) (*match.Match, error) {
			if err := e.Start(); err != nil {
				return nil, err
			}
			return match.New(e, agents, log), nil
		})
		return err
	}

	if err := e.Start(); err != nil {
		return err
	}
	m := match.New(e, agents, log)

	if !plain {
		return tui.Run(m, tui.Options{
			Trace: c.Trace,
			Auto:  cmd.Bool("auto"),
			Delay: cmd.Duration("delay"),
		})
	}

	_, err = c.Play(ctx, m)
	if errors.Is(err, jcli.ErrQuit) {
		return nil
	}
	return err
}

func hasHuman(specs [types.NumPlayers]string) bool {
	for _, s := range specs {
		if strings.EqualFold(s, humanSpec) {
			return true
		}
	}
	return false
}

// newLogger returns a no-op logger unless debug is set.
func newLogger(debug bool, path string) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	if path != "" {
		cfg.OutputPaths = []string{path}
	}
	return cfg.Build()
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
