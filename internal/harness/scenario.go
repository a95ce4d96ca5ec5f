package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sonphnt/mathjs/internal/arith"
)

// DefaultTolerance is the relative tolerance used when neither the case nor
// the scenario sets one.
const DefaultTolerance = 1e-12

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fn is the registered function under test.
	Fn string `yaml:"fn"`

	// Tolerance overrides DefaultTolerance for every case.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// RunID is the journal run ID. Defaults to "scenario-" + Name.
	RunID string `yaml:"run_id,omitempty"`

	// Cases are evaluated in order.
	Cases []Case `yaml:"cases"`
}

// Case is a single evaluation with its expected outcome.
type Case struct {
	Name string `yaml:"name"`

	// Input is the single argument, in the JSON form of value.Unmarshal.
	// Mutually exclusive with Args.
	Input yaml.Node `yaml:"input,omitempty"`

	// Args is an explicit argument list, used to exercise arity.
	Args yaml.Node `yaml:"args,omitempty"`

	// Expect is the expected output. Mutually exclusive with Error.
	Expect yaml.Node `yaml:"expect,omitempty"`

	// Error is the expected error code (ARITY, UNSUPPORTED_TYPE).
	Error string `yaml:"error,omitempty"`

	// Message, if set, must equal the error message exactly.
	Message string `yaml:"message,omitempty"`

	// Tolerance overrides the scenario tolerance for this case.
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

func (c *Case) hasInput() bool  { return c.Input.Kind != 0 }
func (c *Case) hasArgs() bool   { return c.Args.Kind != 0 }
func (c *Case) hasExpect() bool { return c.Expect.Kind != 0 }

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return errors.New("name is required")
	}

	if s.Description == "" {
		return errors.New("description is required")
	}

	if s.Fn == "" {
		return errors.New("fn is required")
	}
	if _, ok := arith.Lookup(s.Fn); !ok {
		return fmt.Errorf("unknown fn %q", s.Fn)
	}

	if s.Tolerance < 0 {
		return errors.New("tolerance must not be negative")
	}

	if len(s.Cases) == 0 {
		return errors.New("cases list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(s.Cases))
	for i := range s.Cases {
		c := &s.Cases[i]
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = true

		if c.hasInput() == c.hasArgs() {
			return fmt.Errorf("case %q: exactly one of input and args is required", c.Name)
		}
		if c.hasArgs() && c.Args.Kind != yaml.SequenceNode {
			return fmt.Errorf("case %q: args must be a list", c.Name)
		}
		if c.hasExpect() == (c.Error != "") {
			return fmt.Errorf("case %q: exactly one of expect and error is required", c.Name)
		}
		if c.Message != "" && c.Error == "" {
			return fmt.Errorf("case %q: message requires error", c.Name)
		}
		if c.Tolerance < 0 {
			return fmt.Errorf("case %q: tolerance must not be negative", c.Name)
		}
	}

	return nil
}
