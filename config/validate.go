package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "wander://config.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("load schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// document renders the config as the generic JSON value the schema validates
// Goes through YAML so durations appear as strings, the same shape a config file uses
func (c *Config) document() (any, error) {
	var buf bytes.Buffer
	if err := c.Dump(&buf); err != nil {
		return nil, err
	}
	var tree map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &tree); err != nil {
		return nil, fmt.Errorf("reparse config: %w", err)
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return doc, nil
}

// Validate checks the config against the embedded schema and cross-field rules
func (c *Config) Validate() error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	doc, err := c.document()
	if err != nil {
		return err
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if c.Sim.TickInterval <= 0 {
		return fmt.Errorf("%w: sim.tick_interval must be positive, got %s", ErrInvalid, c.Sim.TickInterval)
	}
	if c.Sim.Favorites.Enabled && c.Sim.Places > 0 && c.Sim.Favorites.Count > c.Sim.Places {
		return fmt.Errorf("%w: sim.favorites.count %d exceeds sim.places %d",
			ErrInvalid, c.Sim.Favorites.Count, c.Sim.Places)
	}
	return nil
}
