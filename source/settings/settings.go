// The settings for a run of lair: which builtins exist, how name collisions between builtins and
// script functions are resolved, how indentation is checked, and how much the stages log.

package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	VERSION = "0.1.0"

	// Says whether the tests should say what is being tested, useful if one of them crashes and we don't know which.
	SHOW_TESTS = false
)

// CollisionPolicy decides what happens when a script defines a function with the same name as a
// builtin.
type CollisionPolicy string

const (
	NativeFirst CollisionPolicy = "native-first" // The builtin wins and the script function is unreachable.
	UserFirst   CollisionPolicy = "user-first"   // The script function shadows the builtin.
	Reject      CollisionPolicy = "reject"       // Defining the script function is an error.
)

// IndentUnit pins the character used for indentation, or leaves it to the first indented line.
type IndentUnit string

const (
	AnyIndent IndentUnit = "any"
	Spaces    IndentUnit = "spaces"
	Tabs      IndentUnit = "tabs"
)

type Database struct {
	Driver string `yaml:"driver"` // One of the names in database.GetSortedDrivers.
	DSN    string `yaml:"dsn"`
}

type Config struct {
	Builtins  []string        `yaml:"builtins"`
	Collision CollisionPolicy `yaml:"collision"`
	Indent    IndentUnit      `yaml:"indent"`
	LogLevel  string          `yaml:"log_level"`
	Database  Database        `yaml:"database"`
}

// The builtins which can be switched on in a config file.
var KnownBuiltins = []string{"+", "-", "*", "concat", "print"}

// The builtins of the reference distribution.
var StandardBuiltins = []string{"+", "print"}

func DefaultConfig() Config {
	return Config{
		Builtins:  slices.Clone(StandardBuiltins),
		Collision: NativeFirst,
		Indent:    AnyIndent,
		LogLevel:  "warn",
	}
}

// LoadConfig reads a YAML config file. Fields missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, fmt.Errorf("config: empty path")
	}
	abs, e := filepath.Abs(path)
	if e != nil {
		return cfg, fmt.Errorf("config: resolve %s: %w", path, e)
	}
	file, e := os.Open(abs)
	if e != nil {
		return cfg, e
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if e := decoder.Decode(&cfg); e != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", abs, e)
	}
	return cfg, cfg.Validate()
}

func (cfg Config) Validate() error {
	switch cfg.Collision {
	case NativeFirst, UserFirst, Reject:
	default:
		return fmt.Errorf("config: unknown collision policy %q", cfg.Collision)
	}
	switch cfg.Indent {
	case AnyIndent, Spaces, Tabs:
	default:
		return fmt.Errorf("config: unknown indent unit %q", cfg.Indent)
	}
	for _, name := range cfg.Builtins {
		if !slices.Contains(KnownBuiltins, name) {
			return fmt.Errorf("config: unknown builtin %q (known builtins are %s)", name, strings.Join(KnownBuiltins, ", "))
		}
	}
	if _, e := ParseLevel(cfg.LogLevel); e != nil {
		return fmt.Errorf("config: %w", e)
	}
	return nil
}
