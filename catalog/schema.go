package catalog

import "github.com/invopop/jsonschema"

func enumSchema[K interface{ String() string }](title string, kinds []K) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "string", Title: title}
	for _, k := range kinds {
		s.Enum = append(s.Enum, k.String())
	}
	return s
}

// JSONSchema describes kinds as their names
func (BuildingKind) JSONSchema() *jsonschema.Schema { return enumSchema("building", BuildingKinds()) }
func (UnitKind) JSONSchema() *jsonschema.Schema     { return enumSchema("unit", UnitKinds()) }
func (SpellKind) JSONSchema() *jsonschema.Schema    { return enumSchema("spell", SpellKinds()) }
