package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trickybestia/cocsim/config"
)

const scenario = `
map:
  base_size: 8
  border_size: 2
  buildings:
    - {kind: town_hall, x: 5, y: 5}
    - {kind: cannon, x: 2, y: 2}
army:
  units:
    - {kind: dragon, level: 0, count: 2}
plan:
  units:
    - {kind: dragon, level: 0, count: 2, angle: 1, distance: 0.5, drop_time: 0}
optimizer:
  kind: random
  seed: 3
  runs: 1
  workers: 1
  plans_per_step: 1
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunUsage(t *testing.T) {
	ctx := context.Background()
	for _, args := range [][]string{nil, {"attack"}, {"simulate"}, {"simulate", "-bogus", "x.yaml"}} {
		if err := run(ctx, args, &bytes.Buffer{}); !errors.Is(err, errUsage) {
			t.Errorf("run(%q) = %v, want usage error", args, err)
		}
	}
}

func TestSchemaCommand(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"schema"}, &out); err != nil {
		t.Fatalf("schema: %v", err)
	}
	if !strings.Contains(out.String(), "cocsim scenario") {
		t.Errorf("schema output lacks title:\n%s", out.String())
	}
}

func TestSimulateWritesReplay(t *testing.T) {
	path := writeScenario(t, scenario)
	replayPath := filepath.Join(t.TempDir(), "attack.replay")

	var out bytes.Buffer
	if err := run(context.Background(), []string{"simulate", "-replay", replayPath, path}, &out); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !strings.Contains(out.String(), "star") {
		t.Errorf("simulate output = %q", out.String())
	}

	r, err := loadReplay(replayPath, -1, 0)
	if err != nil {
		t.Fatalf("loadReplay: %v", err)
	}
	if r.Seed != 3 || len(r.Frames) < 2 {
		t.Errorf("replay seed %d with %d frames", r.Seed, len(r.Frames))
	}

	fromScenario, err := loadReplay(path, -1, r.Every)
	if err != nil {
		t.Fatalf("loadReplay scenario: %v", err)
	}
	if fromScenario.Result != r.Result {
		t.Errorf("scenario replay %+v differs from file %+v", fromScenario.Result, r.Result)
	}
}

func TestSimulateNeedsPlan(t *testing.T) {
	body := scenario[:strings.Index(scenario, "plan:")] + scenario[strings.Index(scenario, "optimizer:"):]
	path := writeScenario(t, body)
	if err := run(context.Background(), []string{"simulate", path}, &bytes.Buffer{}); !errors.Is(err, config.ErrNoPlan) {
		t.Errorf("simulate = %v, want ErrNoPlan", err)
	}
}

func TestOptimizeSavesBestPlan(t *testing.T) {
	path := writeScenario(t, scenario)
	outPath := filepath.Join(t.TempDir(), "best.json")

	var out bytes.Buffer
	if err := run(context.Background(), []string{"optimize", "-steps", "2", "-out", outPath, path}, &out); err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if got := strings.Count(out.String(), "step "); got < 2 {
		t.Errorf("expected progress lines, got:\n%s", out.String())
	}

	doc, err := config.Load(outPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Plan == nil || doc.Optimizer.Steps != 2 {
		t.Errorf("saved document = %+v", doc)
	}
}

func TestOptimizeCancelled(t *testing.T) {
	path := writeScenario(t, scenario)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := run(ctx, []string{"optimize", path}, &bytes.Buffer{}); !errors.Is(err, context.Canceled) {
		t.Errorf("optimize = %v, want context.Canceled", err)
	}
}
