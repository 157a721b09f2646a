package model

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"regexp"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/encoding/yaml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/creasty/defaults"

	_ "embed"
)

const (
	DefaultAODFile      = "AO2D.root"
	DefaultKinePattern  = `sgn.*_Kine\.root`
	DefaultKineTree     = "o2sim"
	DefaultGroupPrefix  = "DF_"
	DefaultTablePattern = `^O2mccollision(_[0-9]+)?$`
)

// Config is the whole eventstat configuration. It is the single value
// passed into the pipeline.
type Config struct {
	Version    int        `json:"version" yaml:"version"` // fixed 0 for now
	AODFile    string     `json:"aod_file" yaml:"aod_file" default:"AO2D.root"`
	Kinematics Kinematics `json:"kinematics" yaml:"kinematics"`
	Collisions Collisions `json:"collisions" yaml:"collisions"`
	Stat       Stat       `json:"stat" yaml:"stat"`
	Strict     bool       `json:"strict" yaml:"strict"` // mismatch of counts is fatal
	Service    Service    `json:"service" yaml:"service"`
}

// Kinematics selects the GEANT kinematics files.
type Kinematics struct {
	Dir     string   `json:"dir" yaml:"dir" default:"."`
	Pattern string   `json:"pattern" yaml:"pattern" default:"sgn.*_Kine\\.root"` // matched against base names from the start
	Tree    string   `json:"tree" yaml:"tree" default:"o2sim"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"` // doublestar globs relative to Dir
}

// Collisions locates the MC collision tables inside an AO2D file.
type Collisions struct {
	GroupPrefix  string `json:"group_prefix" yaml:"group_prefix" default:"DF_"`
	TablePattern string `json:"table_pattern" yaml:"table_pattern" default:"^O2mccollision(_[0-9]+)?$"`
}

// Stat is the MonaLisa stat file output.
type Stat struct {
	Dir string `json:"dir" yaml:"dir" default:"."`
}

type Service struct {
	Verbose bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	Log     string `json:"log,omitempty" yaml:"log,omitempty" default:"stderr"` // "stderr"|"stdout"|"discard"|path
}

// Validate checks what the schema can't: regular expressions and globs.
func (c Config) Validate() error {
	var errs []error
	if _, err := regexp.Compile(c.Kinematics.Pattern); err != nil {
		errs = append(errs, fmt.Errorf("kinematics.pattern: %w", err))
	}
	if _, err := regexp.Compile(c.Collisions.TablePattern); err != nil {
		errs = append(errs, fmt.Errorf("collisions.table_pattern: %w", err))
	}
	for _, glob := range c.Kinematics.Exclude {
		if !doublestar.ValidatePattern(glob) {
			errs = append(errs, fmt.Errorf("kinematics.exclude: invalid pattern %q", glob))
		}
	}
	return errors.Join(errs...)
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		// struct tags are static, this can't fail at runtime
		panic(err)
	}
	return cfg
}

func expandEnvRecursive(pt *Config) {
	rv := reflect.ValueOf(pt).Elem()
	expandEnvValue(rv)
}

func expandEnvValue(v reflect.Value) {
	if !v.IsValid() {
		return
	}
	switch v.Kind() {
	case reflect.String:
		if v.CanSet() {
			v.SetString(os.ExpandEnv(v.String()))
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			expandEnvValue(v.Field(i))
		}
	case reflect.Pointer:
		if !v.IsNil() {
			expandEnvValue(v.Elem())
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			expandEnvValue(v.Index(i))
		}
	default:
		// other kinds ignored
	}
}

//go:embed config.cue
var cueSource []byte

var (
	cueCtx    *cue.Context
	cueConfig cue.Value
)

func init() {
	if len(cueSource) == 0 {
		panic("variable cueSource is empty")
	}
	cueCtx = cuecontext.New()
	compiled := cueCtx.CompileBytes(cueSource)
	if compiled.Err() != nil {
		panic(compiled.Err())
	}

	cueConfig = compiled.LookupPath(cue.ParsePath("#Config"))
	if cueConfig.Err() != nil {
		panic(cueConfig.Err())
	}
	if err := cueConfig.Validate(); err != nil {
		panic(err)
	}
}

// LoadConfig validates YAML from r against CUE schema and decodes to Config.
// NOT SAFE for multiple goroutines
// Return CueError in a case validation phase fails
func LoadConfig(r io.Reader) (Config, error) {
	var ret Config
	if err := loadConfig1(r, &ret); err != nil {
		return ret, err
	}
	return ret, nil
}

// LoadConfigFromPath is LoadConfig reading from a file, "-" means stdin.
func LoadConfigFromPath(path string) (Config, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("error opening config file: %w", err)
		}
		r = f
		defer func() {
			err := f.Close()
			if err != nil {
				slog.Error("can't close config file", "path", path, "error", err)
			}
		}()
	}
	cfg, err := LoadConfig(r)
	if err != nil {
		var cuerr CueError
		if errors.As(err, &cuerr) {
			for _, d := range cuerr.Details() {
				slog.Error("validation error", d.Attr("detail"))
			}
		}
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func loadConfig1(r io.Reader, pt *Config) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	// an empty document means all defaults
	unified := cueConfig
	if len(bytes.TrimSpace(b)) > 0 {
		yamlFile, err := yaml.Extract("eventstat.yaml", bytes.NewReader(b))
		if err != nil {
			return err
		}
		yamlValue := cueCtx.BuildFile(yamlFile)
		unified = cueConfig.Unify(yamlValue)
	}

	if err := unified.Validate(
		cue.All(),          // all constraints
		cue.Concrete(true), // no incomplete values
	); err != nil {
		return CueError{cuerr: err}
	}

	if err := unified.Decode(pt); err != nil {
		return err
	}

	expandEnvRecursive(pt)
	return pt.Validate()
}

// CueError provides more user friendly validation errors on top of
// those generated by cuelang itself
type CueError struct {
	cuerr error
}

// Error implements error interface, returns the string content of underlying
// cue error
func (e CueError) Error() string {
	return e.cuerr.Error()
}

// Unwrap allows one to get the original error via errors.As
func (e CueError) Unwrap() error {
	return e.cuerr
}

// CueErrorDetail is one validation problem at a config path.
type CueErrorDetail struct {
	Path    string
	Message string
}

func (d CueErrorDetail) Attr(key string) slog.Attr {
	return slog.Group(key,
		slog.String("path", d.Path),
		slog.String("message", d.Message),
	)
}

// Details provide human-friendlier error messages
func (e CueError) Details() []CueErrorDetail {
	errs := cueerrors.Errors(e.cuerr)
	ret := make([]CueErrorDetail, 0, len(errs))
	for _, ce := range errs {
		format, args := ce.Msg()
		ret = append(ret, CueErrorDetail{
			Path:    strings.Join(ce.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		})
	}
	return ret
}
