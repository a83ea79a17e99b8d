// Command cocsim simulates and optimizes attacks
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/trickybestia/cocsim/config"
	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/game"
	"github.com/trickybestia/cocsim/optimize"
	"github.com/trickybestia/cocsim/parameter"
	"github.com/trickybestia/cocsim/render/terminal"
	"github.com/trickybestia/cocsim/replay"
	"github.com/trickybestia/cocsim/server"
)

const usage = `usage: cocsim [-debug] <command> [flags] [args]

commands:
  simulate  scenario      run the scenario's plan and print the result
  optimize  scenario      search for a better plan
  schema                  print the JSON Schema of scenario files
  serve                   start the websocket optimization server
  view      file          play a replay file, or a scenario's plan, in the terminal
`

var errUsage = errors.New("bad usage")

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	debug := flag.Bool("debug", false, "write logs to logs/cocsim.log")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if f := setupLogging(*debug); f != nil {
		defer f.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, flag.Args(), os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "cocsim: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches one command
func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "simulate":
		return simulate(ctx, args, out)
	case "optimize":
		return optimizeCmd(ctx, args, out)
	case "schema":
		return schema(out)
	case "serve":
		return serve(ctx, args)
	case "view":
		return view(ctx, args)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

// parseFlags parses fs and returns its single positional argument
func parseFlags(fs *flag.FlagSet, args []string) (string, error) {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("%s: %v: %w", fs.Name(), err, errUsage)
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s: expected one file: %w", fs.Name(), errUsage)
	}
	return fs.Arg(0), nil
}

func simulate(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	seed := fs.Int64("seed", -1, "first seed; default is the optimizer seed of the scenario")
	runs := fs.Int("runs", 1, "number of simulations, with consecutive seeds")
	replayPath := fs.String("replay", "", "write a replay of the first run to this file")
	every := fs.Int("every", parameter.ReplayEvery, "replay keeps one frame per this many ticks")
	path, err := parseFlags(fs, args)
	if err != nil {
		return err
	}

	doc, err := config.Load(path)
	if err != nil {
		return err
	}
	if doc.Plan == nil {
		return config.ErrNoPlan
	}
	first := doc.Optimizer.Seed
	if *seed >= 0 {
		first = uint64(*seed)
	}

	ev := optimize.NewEvaluator(&doc.Map, *runs, doc.Optimizer.Workers, first, nil)
	if *runs <= 1 {
		res, err := ev.Simulate(*doc.Plan, first)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s, %.2f s\n", resultLine(res), res.Time)
	} else {
		st, err := ev.Evaluate(ctx, *doc.Plan)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, optimize.Describe(1, 1, st))
	}

	if *replayPath != "" {
		r, err := replay.Materialize(&doc.Map, *doc.Plan, first, *every)
		if err != nil {
			return err
		}
		if err := writeReplay(*replayPath, r); err != nil {
			return err
		}
	}
	return nil
}

func resultLine(r game.Result) string {
	return fmt.Sprintf("%.0f %% | %d star", r.Percentage, r.Stars)
}

func optimizeCmd(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("optimize", flag.ContinueOnError)
	steps := fs.Int("steps", 0, "override the scenario's step count")
	kind := fs.String("kind", "", "override the optimizer kind")
	outPath := fs.String("out", "", "save the scenario with the best plan to this file")
	replayPath := fs.String("replay", "", "write a replay of the best plan to this file")
	path, err := parseFlags(fs, args)
	if err != nil {
		return err
	}

	doc, err := config.Load(path)
	if err != nil {
		return err
	}
	o := doc.Optimizer
	if *steps > 0 {
		o.Steps = *steps
	}
	if *kind != "" {
		o.Kind = optimize.Kind(*kind)
	}

	pr, err := optimize.NewProblem(&doc.Map, &doc.Army, o.Runs, o.Workers, o.Seed, nil)
	if err != nil {
		return err
	}
	opt, err := optimize.New(pr, o, doc.Plan)
	if err != nil {
		return err
	}
	sess := optimize.NewSession(pr, opt, o.Steps, parameter.ReplayEvery)

	var rec *replay.Replay
	start := time.Now()
	best, err := sess.Run(ctx, func(m optimize.Message) error {
		if m.Kind == optimize.MessageResult {
			rec = m.Replay
			return nil
		}
		_, err := fmt.Fprintln(out, m.Text)
		return err
	})
	if err != nil {
		return err
	}
	log.Printf("optimize: %s finished in %s", o.Kind, time.Since(start))
	fmt.Fprintf(out, "best: %s\n", optimize.Describe(o.Steps, o.Steps, best.Stats))

	if *outPath != "" {
		doc.Plan = &best.Plan
		doc.Optimizer = o
		if err := config.Save(*outPath, doc); err != nil {
			return err
		}
	}
	if *replayPath != "" && rec != nil {
		return writeReplay(*replayPath, rec)
	}
	return nil
}

func schema(out io.Writer) error {
	data, err := json.MarshalIndent(config.Schema(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func serve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", ":8080", "listen address")
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("serve: %v: %w", err, errUsage)
	}

	s := server.New(nil)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Printf("server listening on %s", *addr)
	fmt.Fprintf(os.Stderr, "listening on %s\n", *addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	s.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func view(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	seed := fs.Int64("seed", -1, "seed for scenario files; default is the optimizer seed")
	every := fs.Int("every", parameter.ReplayEvery, "ticks per frame for scenario files")
	path, err := parseFlags(fs, args)
	if err != nil {
		return err
	}

	r, err := loadReplay(path, *seed, *every)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	core.SetCrashReset(screen.Fini)
	defer screen.Fini()

	err = terminal.NewPlayer(screen, r).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadReplay reads a replay file, or records one from a scenario with a plan
func loadReplay(path string, seed int64, every int) (*replay.Replay, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		doc, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		if doc.Plan == nil {
			return nil, config.ErrNoPlan
		}
		s := doc.Optimizer.Seed
		if seed >= 0 {
			s = uint64(seed)
		}
		return replay.Materialize(&doc.Map, *doc.Plan, s, every)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return replay.Decode(f)
	}
}

func writeReplay(path string, r *replay.Replay) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
