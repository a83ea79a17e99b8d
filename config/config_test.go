package config

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/trickybestia/cocsim/catalog"
	"github.com/trickybestia/cocsim/game"
	"github.com/trickybestia/cocsim/optimize"
	"github.com/trickybestia/cocsim/parameter"
)

const sample = `
map:
  base_size: 12
  border_size: 2
  buildings:
    - {kind: town_hall, x: 6, y: 6, level: 1}
    - {kind: cannon, x: 2, y: 2}
    - kind: clan_castle
      x: 10
      y: 2
      reserve:
        - {kind: archer, level: 0, count: 2}
    - {kind: air_sweeper, x: 2, y: 10, facing: 90}
army:
  units:
    - {kind: barbarian, level: 0, count: 10}
    - {kind: dragon, level: 1, count: 2}
  spells:
    - {kind: lightning, level: 0, count: 2}
plan:
  units:
    - {kind: barbarian, level: 0, count: 10, angle: 1.5, distance: 0.3, drop_time: 0}
    - {kind: dragon, level: 1, count: 2, angle: 4, distance: 0.7, drop_time: 3}
  spells:
    - {kind: lightning, level: 0, count: 2, x: 8, y: 8, drop_time: 5}
optimizer:
  kind: annealing
  seed: 42
  iterations: 100
`

func TestParseYAML(t *testing.T) {
	doc, err := Parse([]byte(sample), false)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := doc.Map.Buildings[0].Kind; got != catalog.TownHall {
		t.Errorf("first building = %v", got)
	}
	if got := doc.Map.Buildings[2].Reserve; len(got) != 1 || got[0].Kind != catalog.Archer {
		t.Errorf("reserve = %+v", got)
	}
	if doc.Map.Buildings[3].Facing != 90 {
		t.Errorf("facing = %v", doc.Map.Buildings[3].Facing)
	}
	if doc.Plan == nil || doc.Plan.Spells[0].X != 8 {
		t.Fatalf("plan = %+v", doc.Plan)
	}

	o := doc.Optimizer
	if o.Kind != optimize.KindAnnealing || o.Seed != 42 || o.Iterations != 100 {
		t.Errorf("optimizer = %+v", o)
	}
	if o.Runs != parameter.DefaultRunsPerPlan || o.Population != parameter.GAPopulationSize {
		t.Errorf("defaults not applied: %+v", o)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		edit func(string) string
		want error
	}{
		{"unknown kind", func(s string) string { return strings.Replace(s, "kind: cannon", "kind: catapult", 1) }, catalog.ErrUnknownKind},
		{"overlap", func(s string) string { return strings.Replace(s, "x: 2, y: 2", "x: 7, y: 7", 1) }, game.ErrBuildingOverlap},
		{"plan mismatch", func(s string) string { return strings.Replace(s, "count: 10, angle", "count: 9, angle", 1) }, optimize.ErrPlanMismatch},
		{"army housing", func(s string) string { return strings.Replace(s, "count: 10}", "count: 500}", 1) }, game.ErrHousing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.edit(sample)), false)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Parse([]byte(sample+"extra: 1\n"), false); err == nil {
		t.Error("unknown field accepted")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sample), false)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	for _, name := range []string{"scenario.yaml", "scenario.json"} {
		path := filepath.Join(t.TempDir(), name)
		if err := Save(path, doc); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load %s: %v", name, err)
		}
		if !reflect.DeepEqual(got, doc) {
			t.Errorf("%s round trip differs:\n%+v\n%+v", name, got, doc)
		}
	}
}

func TestSchema(t *testing.T) {
	data, err := json.Marshal(Schema())
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"base_size"`, `"town_hall"`, `"dragon"`, `"lightning"`, `"annealing"`, `"drop_time"`} {
		if !strings.Contains(s, want) {
			t.Errorf("schema lacks %s", want)
		}
	}
}
