package model_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AliceO2Group/eventstat/internal/model"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const defaultJSON = `{
	"version": 0,
	"aod_file": "AO2D.root",
	"kinematics": {
		"dir": ".",
		"pattern": "sgn.*_Kine\\.root",
		"tree": "o2sim"
	},
	"collisions": {
		"group_prefix": "DF_",
		"table_pattern": "^O2mccollision(_[0-9]+)?$"
	},
	"stat": {
		"dir": "."
	},
	"strict": false,
	"service": {
		"log": "stderr"
	}
}`

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	var testCases = []struct {
		scenario     string
		yml          string
		expectedJSON string
	}{
		{
			scenario:     "empty",
			yml:          ``,
			expectedJSON: defaultJSON,
		},
		{
			scenario: "version only",
			yml: `
version: 0
`,
			expectedJSON: defaultJSON,
		},
		{
			scenario: "custom aod file and stat dir",
			yml: `
version: 0
aod_file: /alien/job/AO2D_merged.root
stat:
  dir: /tmp/accounting
strict: true
service:
  verbose: true
  log: discard
`,
			expectedJSON: `{
				"version": 0,
				"aod_file": "/alien/job/AO2D_merged.root",
				"kinematics": {
					"dir": ".",
					"pattern": "sgn.*_Kine\\.root",
					"tree": "o2sim"
				},
				"collisions": {
					"group_prefix": "DF_",
					"table_pattern": "^O2mccollision(_[0-9]+)?$"
				},
				"stat": {
					"dir": "/tmp/accounting"
				},
				"strict": true,
				"service": {
					"verbose": true,
					"log": "discard"
				}
			}`,
		},
		{
			scenario: "kinematics with excludes",
			yml: `
version: 0
kinematics:
  dir: /data/sim
  pattern: 'bkg.*_Kine\.root'
  exclude:
    - "**/tmp/**"
    - "old/*"
`,
			expectedJSON: `{
				"version": 0,
				"aod_file": "AO2D.root",
				"kinematics": {
					"dir": "/data/sim",
					"pattern": "bkg.*_Kine\\.root",
					"tree": "o2sim",
					"exclude": ["**/tmp/**", "old/*"]
				},
				"collisions": {
					"group_prefix": "DF_",
					"table_pattern": "^O2mccollision(_[0-9]+)?$"
				},
				"stat": {
					"dir": "."
				},
				"strict": false,
				"service": {
					"log": "stderr"
				}
			}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.scenario, func(t *testing.T) {
			t.Parallel()
			tmpDir := t.TempDir()

			t.Run("reader", func(t *testing.T) {
				cfg, err := model.LoadConfig(strings.NewReader(tc.yml))
				require.NoError(t, err)

				actualJSON, err := json.Marshal(cfg)
				require.NoError(t, err)
				require.JSONEq(t, tc.expectedJSON, string(actualJSON))
			})

			t.Run("path", func(t *testing.T) {
				abspath := filepath.Join(tmpDir, "eventstat.yaml")
				err := os.WriteFile(abspath, []byte(tc.yml), 0644)
				require.NoError(t, err)

				cfg, err := model.LoadConfigFromPath(abspath)
				require.NoError(t, err)

				actualJSON, err := json.Marshal(cfg)
				require.NoError(t, err)
				require.JSONEq(t, tc.expectedJSON, string(actualJSON))
			})
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := model.DefaultConfig()
	require.NoError(t, cfg.Validate())

	actualJSON, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.JSONEq(t, defaultJSON, string(actualJSON))

	loaded, err := model.LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, cfg.AODFile, loaded.AODFile)
	require.Equal(t, cfg.Kinematics, model.Kinematics{
		Dir:     loaded.Kinematics.Dir,
		Pattern: loaded.Kinematics.Pattern,
		Tree:    loaded.Kinematics.Tree,
	})
	require.Equal(t, cfg.Collisions, loaded.Collisions)
	require.Equal(t, cfg.Stat, loaded.Stat)

	require.Equal(t, model.DefaultAODFile, cfg.AODFile)
	require.Equal(t, model.DefaultKinePattern, cfg.Kinematics.Pattern)
	require.Equal(t, model.DefaultKineTree, cfg.Kinematics.Tree)
	require.Equal(t, model.DefaultGroupPrefix, cfg.Collisions.GroupPrefix)
	require.Equal(t, model.DefaultTablePattern, cfg.Collisions.TablePattern)
}

func TestDefaultConfigYAML(t *testing.T) {
	t.Parallel()
	b, err := yaml.Marshal(model.DefaultConfig())
	require.NoError(t, err)

	cfg, err := model.LoadConfig(strings.NewReader(string(b)))
	require.NoError(t, err)
	require.Equal(t, model.DefaultConfig().AODFile, cfg.AODFile)
	require.Equal(t, model.DefaultConfig().Collisions, cfg.Collisions)
}

func TestLoadConfig_Fail(t *testing.T) {
	t.Parallel()
	var testCases = []struct {
		scenario string
		given    string
		then     string
	}{
		{
			scenario: "extra",
			given: `
version: 0
extra: true
`,
			then: "extra",
		},
		{
			scenario: "unsupported version",
			given: `
version: 1
`,
			then: "version",
		},
		{
			scenario: "empty aod file",
			given: `
aod_file: ""
`,
			then: "aod_file",
		},
		{
			scenario: "wrong type",
			given: `
strict: "yes"
`,
			then: "strict",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.scenario, func(t *testing.T) {
			t.Parallel()
			_, err := model.LoadConfig(strings.NewReader(tc.given))
			require.Error(t, err)

			var cuerr model.CueError
			require.True(t, errors.As(err, &cuerr))
			require.Contains(t, err.Error(), tc.then)
			require.NotEmpty(t, cuerr.Details())
		})
	}
}

func TestLoadConfig_InvalidPatterns(t *testing.T) {
	t.Parallel()
	var testCases = []struct {
		scenario string
		given    string
		then     string
	}{
		{
			scenario: "kinematics pattern",
			given: `
kinematics:
  pattern: 'sgn(.*_Kine'
`,
			then: "kinematics.pattern",
		},
		{
			scenario: "table pattern",
			given: `
collisions:
  table_pattern: '^O2mccollision[$'
`,
			then: "collisions.table_pattern",
		},
		{
			scenario: "exclude glob",
			given: `
kinematics:
  exclude:
    - "tf[1"
`,
			then: "kinematics.exclude",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.scenario, func(t *testing.T) {
			t.Parallel()
			_, err := model.LoadConfig(strings.NewReader(tc.given))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.then)
		})
	}
}

func TestLoadConfigFromPath_Missing(t *testing.T) {
	t.Parallel()
	_, err := model.LoadConfigFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestExpandEnv(t *testing.T) {
	const inp = `
version: 0
aod_file: ${TEST_EE_JOB_DIR}/AO2D.root
kinematics:
  dir: $TEST_EE_JOB_DIR
  exclude:
    - ${TEST_EE_EXCLUDE}
stat:
  dir: ${TEST_EE_STAT_DIR_undefined}.
`
	t.Setenv("TEST_EE_JOB_DIR", "/alien/job")
	t.Setenv("TEST_EE_EXCLUDE", "tmp/**")

	cfg, err := model.LoadConfig(strings.NewReader(inp))
	require.NoError(t, err)

	require.Equal(t, "/alien/job/AO2D.root", cfg.AODFile)
	require.Equal(t, "/alien/job", cfg.Kinematics.Dir)
	require.Equal(t, []string{"tmp/**"}, cfg.Kinematics.Exclude)
	require.Equal(t, ".", cfg.Stat.Dir)
}
