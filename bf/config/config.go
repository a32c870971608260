// Package config holds the interpreter's two-field policy configuration:
// end-of-input behavior and whether the debug handler is invoked. Loading
// is modeled on the teacher's YAML-backed configuration loader
// (internal/config.LoadConfig in the teacher repo), adapted to this
// module's much smaller field set.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// EndOfInputAction selects what the interpreter writes to the tape when
// input is exhausted.
type EndOfInputAction int

const (
	// StoreZero writes 0 to the tape cell on end-of-input. Default.
	StoreZero EndOfInputAction = iota
	// StoreEof writes the EOF sentinel (-1) to the tape cell.
	StoreEof
	// DoNothing leaves the tape cell untouched.
	DoNothing
)

func (a EndOfInputAction) String() string {
	switch a {
	case StoreZero:
		return "store_zero"
	case StoreEof:
		return "store_eof"
	case DoNothing:
		return "do_nothing"
	default:
		return "unknown"
	}
}

func (a EndOfInputAction) valid() bool {
	return a == StoreZero || a == StoreEof || a == DoNothing
}

// Configuration is a plain, shareable value container. It is safe to
// share between multiple interpreters as long as none of them is
// currently running (spec.md §3).
type Configuration struct {
	EndOfInputAction EndOfInputAction
	DebugEnabled     bool
}

// New returns the default configuration: StoreZero, debug disabled.
func New() *Configuration {
	return &Configuration{EndOfInputAction: StoreZero, DebugEnabled: false}
}

// SetEndOfInputAction sets the end-of-input policy, rejecting any value
// outside the three defined cases.
func (c *Configuration) SetEndOfInputAction(a EndOfInputAction) error {
	if !a.valid() {
		return fmt.Errorf("bf/config: invalid end_of_input_action %d", int(a))
	}
	c.EndOfInputAction = a
	return nil
}

// yamlConfig is the on-disk shape, kept separate from Configuration so
// the in-memory API doesn't carry yaml struct tags.
type yamlConfig struct {
	EndOfInputAction string `yaml:"end_of_input_action"`
	DebugEnabled     bool   `yaml:"debug_enabled"`
}

var actionFromString = map[string]EndOfInputAction{
	"store_zero": StoreZero,
	"store_eof":  StoreEof,
	"do_nothing": DoNothing,
}

// LoadConfig reads a YAML configuration file and returns a validated
// Configuration. An empty or absent end_of_input_action defaults to
// StoreZero, matching New()'s default.
func LoadConfig(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bf/config: read %s: %w", path, err)
	}

	var y yamlConfig
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("bf/config: parse %s: %w", path, err)
	}

	cfg := New()
	cfg.DebugEnabled = y.DebugEnabled

	if y.EndOfInputAction != "" {
		action, ok := actionFromString[y.EndOfInputAction]
		if !ok {
			return nil, fmt.Errorf("bf/config: %s: end_of_input_action %q must be one of: store_zero, store_eof, do_nothing", path, y.EndOfInputAction)
		}
		cfg.EndOfInputAction = action
	}

	return cfg, nil
}

// WriteYAML serializes the configuration in the format LoadConfig reads.
func (c *Configuration) WriteYAML(w io.Writer) error {
	y := yamlConfig{
		EndOfInputAction: c.EndOfInputAction.String(),
		DebugEnabled:     c.DebugEnabled,
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(y)
}
