package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a kind name does not match any variant
var ErrUnknownKind = errors.New("unknown kind")

// ErrLevelRange is returned for a level index outside a kind's table
var ErrLevelRange = errors.New("level out of range")

// BuildingKind enumerates every building variant
type BuildingKind uint8

const (
	TownHall BuildingKind = iota
	ClanCastle
	Cannon
	ArcherTower
	Mortar
	AirDefense
	WizardTower
	AirSweeper
	Wall
	GoldMine
	ElixirCollector
	GoldStorage
	ElixirStorage
	ArmyCamp
	Barracks
	BuilderHut
	Bomb
	buildingKindCount
)

// UnitKind enumerates every troop variant
type UnitKind uint8

const (
	Barbarian UnitKind = iota
	Archer
	Giant
	Goblin
	WallBreaker
	Balloon
	Wizard
	Minion
	Dragon
	unitKindCount
)

// SpellKind enumerates every spell variant
type SpellKind uint8

const (
	Lightning SpellKind = iota
	Healing
	Rage
	Haste
	spellKindCount
)

// BuildingKinds lists every building variant in declaration order
func BuildingKinds() []BuildingKind {
	out := make([]BuildingKind, buildingKindCount)
	for i := range out {
		out[i] = BuildingKind(i)
	}
	return out
}

// UnitKinds lists every unit variant in declaration order
func UnitKinds() []UnitKind {
	out := make([]UnitKind, unitKindCount)
	for i := range out {
		out[i] = UnitKind(i)
	}
	return out
}

// SpellKinds lists every spell variant in declaration order
func SpellKinds() []SpellKind {
	out := make([]SpellKind, spellKindCount)
	for i := range out {
		out[i] = SpellKind(i)
	}
	return out
}

func (k BuildingKind) Valid() bool { return k < buildingKindCount }
func (k UnitKind) Valid() bool     { return k < unitKindCount }
func (k SpellKind) Valid() bool    { return k < spellKindCount }

func (k BuildingKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("building(%d)", uint8(k))
	}
	return buildings[k].name
}

func (k UnitKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("unit(%d)", uint8(k))
	}
	return units[k].name
}

func (k SpellKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("spell(%d)", uint8(k))
	}
	return spells[k].name
}

// MarshalText encodes the kind by name
func (k BuildingKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k UnitKind) MarshalText() ([]byte, error)     { return []byte(k.String()), nil }
func (k SpellKind) MarshalText() ([]byte, error)    { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name
func (k *BuildingKind) UnmarshalText(b []byte) error {
	for _, v := range BuildingKinds() {
		if v.String() == string(b) {
			*k = v
			return nil
		}
	}
	return fmt.Errorf("building %q: %w", b, ErrUnknownKind)
}

func (k *UnitKind) UnmarshalText(b []byte) error {
	for _, v := range UnitKinds() {
		if v.String() == string(b) {
			*k = v
			return nil
		}
	}
	return fmt.Errorf("unit %q: %w", b, ErrUnknownKind)
}

func (k *SpellKind) UnmarshalText(b []byte) error {
	for _, v := range SpellKinds() {
		if v.String() == string(b) {
			*k = v
			return nil
		}
	}
	return fmt.Errorf("spell %q: %w", b, ErrUnknownKind)
}

func checkLevel(name string, level, levels int) error {
	if level < 0 || level >= levels {
		return fmt.Errorf("%s level %d (have %d): %w", name, level, levels, ErrLevelRange)
	}
	return nil
}
