// Package config loads scenario documents: a map, an army, an optional plan and optimizer settings
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/trickybestia/cocsim/game"
	"github.com/trickybestia/cocsim/optimize"
	"github.com/trickybestia/cocsim/plan"
)

// Document is one scenario file
type Document struct {
	Map       game.Map          `yaml:"map" json:"map" jsonschema:"required"`
	Army      game.Army         `yaml:"army" json:"army"`
	Plan      *plan.AttackPlan  `yaml:"plan,omitempty" json:"plan,omitempty"`
	Optimizer optimize.Settings `yaml:"optimizer,omitempty" json:"optimizer,omitempty"`
}

// Load reads a document from path; .json files are parsed as JSON, everything else as YAML
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	doc, err := Parse(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and validates a document
func Parse(data []byte, isJSON bool) (*Document, error) {
	var doc Document
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	}
	doc.Optimizer = doc.Optimizer.WithDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the map, the army and that the plan deploys the army
func (d *Document) Validate() error {
	if err := d.Map.Validate(); err != nil {
		return fmt.Errorf("map: %w", err)
	}
	if err := d.Army.Validate(); err != nil {
		return fmt.Errorf("army: %w", err)
	}
	if d.Plan != nil {
		want := plan.FromArmy(&d.Army)
		if err := (&optimize.Problem{Template: want}).Check(*d.Plan); err != nil {
			return fmt.Errorf("plan: %w", err)
		}
	}
	return nil
}

// Save writes d as YAML, or JSON when path ends in .json
func Save(path string, d *Document) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(d, "", "  ")
	} else {
		data, err = yaml.Marshal(d)
	}
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ErrNoPlan is returned when a command needs a plan the document lacks
var ErrNoPlan = errors.New("document has no plan")

// Schema returns the JSON Schema of Document
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	schema := reflector.Reflect(new(Document))
	schema.Title = "cocsim scenario"
	schema.Description = "Base layout, attacking army, optional attack plan and optimizer settings"
	return schema
}
