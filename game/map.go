package game

import (
	"fmt"

	"github.com/trickybestia/cocsim/catalog"
	"github.com/trickybestia/cocsim/component"
	"github.com/trickybestia/cocsim/core"
	"github.com/trickybestia/cocsim/grid"
	"github.com/trickybestia/cocsim/parameter"
)

// BuildingSpec places one building on the map
type BuildingSpec struct {
	Kind  catalog.BuildingKind `yaml:"kind" json:"kind"`
	X     int                  `yaml:"x" json:"x"`
	Y     int                  `yaml:"y" json:"y"`
	Level int                  `yaml:"level" json:"level"`

	// Facing is the air sweeper direction in degrees
	Facing float64 `yaml:"facing,omitempty" json:"facing,omitempty"`

	// Reserve lists clan castle troops
	Reserve []UnitSlot `yaml:"reserve,omitempty" json:"reserve,omitempty"`
}

// Area returns the tile footprint
func (b BuildingSpec) Area() core.Area {
	n := b.Kind.Size()
	return core.Area{X: b.X, Y: b.Y, Width: n, Height: n}
}

// Map is a base layout; the base square is surrounded by a border of open tiles
type Map struct {
	BaseSize   int            `yaml:"base_size" json:"base_size" jsonschema:"minimum=1,maximum=64"`
	BorderSize int            `yaml:"border_size" json:"border_size" jsonschema:"minimum=1,maximum=8"`
	Buildings  []BuildingSpec `yaml:"buildings" json:"buildings"`
}

// Size returns the full map edge in tiles
func (m *Map) Size() int { return m.BaseSize + 2*m.BorderSize }

// UnitSlot is a number of units of one kind and level
type UnitSlot struct {
	Kind  catalog.UnitKind `yaml:"kind" json:"kind"`
	Level int              `yaml:"level" json:"level"`
	Count int              `yaml:"count" json:"count" jsonschema:"minimum=1"`
}

// SpellSlot is a number of spells of one kind and level
type SpellSlot struct {
	Kind  catalog.SpellKind `yaml:"kind" json:"kind"`
	Level int               `yaml:"level" json:"level"`
	Count int               `yaml:"count" json:"count" jsonschema:"minimum=1"`
}

// Army is the attacking force available to a plan
type Army struct {
	Units  []UnitSlot  `yaml:"units" json:"units"`
	Spells []SpellSlot `yaml:"spells,omitempty" json:"spells,omitempty"`
}

// Validate checks every map invariant the simulation relies on
func (m *Map) Validate() error {
	if m.BaseSize < parameter.MinBaseSize || m.BaseSize > parameter.MaxBaseSize {
		return invalid("base_size", -1, fmt.Errorf("%d: %w", m.BaseSize, ErrBaseSize))
	}
	if m.BorderSize < parameter.MinBorderSize || m.BorderSize > parameter.MaxBorderSize {
		return invalid("border_size", -1, fmt.Errorf("%d: %w", m.BorderSize, ErrBorderSize))
	}
	if len(m.Buildings) > parameter.MaxBuildings {
		return invalid("buildings", -1, fmt.Errorf("%d: %w", len(m.Buildings), ErrTooManyBuildings))
	}

	size := m.Size()
	lo, hi := m.BorderSize, m.BorderSize+m.BaseSize
	occupancy := grid.NewOccupancy(size)
	footprints := make([]grid.Footprint, 0, len(m.Buildings))
	townHalls := 0

	for i, b := range m.Buildings {
		if !b.Kind.Valid() {
			return invalid("buildings", i, fmt.Errorf("%s: %w", b.Kind, catalog.ErrUnknownKind))
		}
		if err := b.Kind.CheckLevel(b.Level); err != nil {
			return invalid("buildings", i, err)
		}

		a := b.Area()
		if a.X < lo || a.Y < lo || a.X+a.Width > hi || a.Y+a.Height > hi {
			return invalid("buildings", i, fmt.Errorf("%s at (%d,%d): %w", b.Kind, b.X, b.Y, ErrOutOfBounds))
		}
		if other, ok := occupancy.Place(a, core.Entity(i+1)); !ok {
			return invalid("buildings", i, fmt.Errorf("%s with buildings[%d]: %w", b.Kind, int(other)-1, ErrBuildingOverlap))
		}

		if err := validateReserve(b); err != nil {
			return invalid("buildings", i, err)
		}

		if b.Kind == catalog.TownHall {
			townHalls++
		}
		if !b.Kind.IsTrap() {
			footprints = append(footprints, grid.Footprint{Entity: core.Entity(i + 1), Area: a, AffectsDropZone: true})
		}
	}

	switch {
	case townHalls == 0:
		return invalid("buildings", -1, ErrNoTownHall)
	case townHalls > 1:
		return invalid("buildings", -1, ErrDuplicateTownHall)
	}

	g := grid.New(size)
	g.Rebuild(footprints)
	if g.DropZone.Count() == 0 {
		return invalid("buildings", -1, ErrNoDropZone)
	}
	return nil
}

func validateReserve(b BuildingSpec) error {
	if len(b.Reserve) == 0 {
		return nil
	}
	if b.Kind != catalog.ClanCastle {
		return fmt.Errorf("%s cannot hold troops: %w", b.Kind, ErrReserve)
	}

	housing := 0
	for _, s := range b.Reserve {
		if err := s.validate(); err != nil {
			return fmt.Errorf("reserve: %w", err)
		}
		housing += s.Kind.Housing() * s.Count
	}
	if limit := min(catalog.ClanCastleHousing(b.Level), parameter.MaxClanCastleHousingSpace); housing > limit {
		return fmt.Errorf("reserve uses %d of %d: %w", housing, limit, ErrHousing)
	}
	return nil
}

func (s UnitSlot) validate() error {
	if !s.Kind.Valid() {
		return fmt.Errorf("%s: %w", s.Kind, catalog.ErrUnknownKind)
	}
	if s.Count < 1 {
		return fmt.Errorf("%s x%d: %w", s.Kind, s.Count, ErrCount)
	}
	return s.Kind.CheckLevel(s.Level)
}

func (s SpellSlot) validate() error {
	if !s.Kind.Valid() {
		return fmt.Errorf("%s: %w", s.Kind, catalog.ErrUnknownKind)
	}
	if s.Count < 1 {
		return fmt.Errorf("%s x%d: %w", s.Kind, s.Count, ErrCount)
	}
	return s.Kind.CheckLevel(s.Level)
}

// Validate checks slot contents and housing limits
func (a *Army) Validate() error {
	housing := 0
	for i, s := range a.Units {
		if err := s.validate(); err != nil {
			return invalid("units", i, err)
		}
		housing += s.Kind.Housing() * s.Count
	}
	if housing > parameter.MaxArmyHousingSpace {
		return invalid("units", -1, fmt.Errorf("%d of %d: %w", housing, parameter.MaxArmyHousingSpace, ErrHousing))
	}

	housing = 0
	for i, s := range a.Spells {
		if err := s.validate(); err != nil {
			return invalid("spells", i, err)
		}
		housing += s.Kind.Housing() * s.Count
	}
	if housing > parameter.MaxSpellHousingSpace {
		return invalid("spells", -1, fmt.Errorf("%d of %d: %w", housing, parameter.MaxSpellHousingSpace, ErrHousing))
	}
	return nil
}

// troops expands reserve slots into one troop per unit
func troops(slots []UnitSlot) []component.Troop {
	var out []component.Troop
	for _, s := range slots {
		for i := 0; i < s.Count; i++ {
			out = append(out, catalog.NewTroop(s.Kind, s.Level))
		}
	}
	return out
}
