package replay

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/trickybestia/cocsim/catalog"
	"github.com/trickybestia/cocsim/game"
	"github.com/trickybestia/cocsim/plan"
)

func testMap() *game.Map {
	return &game.Map{
		BaseSize:   8,
		BorderSize: 2,
		Buildings: []game.BuildingSpec{
			{Kind: catalog.TownHall, X: 5, Y: 5},
			{Kind: catalog.Cannon, X: 2, Y: 2},
		},
	}
}

func testPlan() plan.AttackPlan {
	return plan.FromArmy(&game.Army{
		Units:  []game.UnitSlot{{Kind: catalog.Barbarian, Count: 6}},
		Spells: []game.SpellSlot{{Kind: catalog.Lightning, Count: 1}},
	})
}

func TestMaterializeMatchesRun(t *testing.T) {
	m, p := testMap(), testPlan()
	r, err := Materialize(m, p, 4, 30)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	g, err := game.New(m, 4, nil)
	if err != nil {
		t.Fatal(err)
	}
	g.SetDeployer(plan.NewExecutor(p, g.DropZone()))
	if want := g.Run(); r.Result != want {
		t.Errorf("replay result %+v, plain run %+v", r.Result, want)
	}

	if len(r.Frames) < 2 {
		t.Fatalf("%d frames", len(r.Frames))
	}
	if r.Frames[0].Time != 0 || r.Frames[0].Grid == nil {
		t.Errorf("first frame = t %v, grid %d shapes", r.Frames[0].Time, len(r.Frames[0].Grid))
	}
	if last := r.Frames[len(r.Frames)-1]; last.Time != r.Result.Time {
		t.Errorf("last frame at %v, result at %v", last.Time, r.Result.Time)
	}
	for i := 1; i < len(r.Frames); i++ {
		if r.Frames[i].Time <= r.Frames[i-1].Time {
			t.Fatalf("frame %d goes back in time", i)
		}
	}
	if r.GridAt(len(r.Frames)-1) == nil {
		t.Error("GridAt found no grid layer")
	}
}

func TestEncodeDecode(t *testing.T) {
	r, err := Materialize(testMap(), testPlan(), 1, 120)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, r) {
		t.Error("decoded replay differs")
	}

	if _, err := Decode(bytes.NewReader([]byte{0xc1})); err == nil {
		t.Error("Decode accepted garbage")
	}
}
