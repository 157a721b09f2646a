package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/AliceO2Group/eventstat/internal/log"
	"github.com/AliceO2Group/eventstat/internal/model"
	"github.com/AliceO2Group/eventstat/internal/stats"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	configEnv  = "EVENTSTATCONFIG"
	configName = "eventstat.yaml"
)

var (
	userConfigPath string // $XDG_CONFIG_HOME/eventstat
	configPath     string // actual config file used (if loaded)

	flagConfigFilePath string // value of --config flag
	flagVerbose        bool   // value of --verbose flag
	flagAODFile        string // value of --aod-file flag
	flagKineDir        string // value of --kine-dir flag
	flagStatDir        string // value of --stat-dir flag

	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "eventstat",
	Short: "Counts the produced MC events and writes the MonaLisa stat file",
	Args:  cobra.NoArgs,
	RunE:  doRun,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run counts the events and writes the stat file (the default)",
	Args:  cobra.NoArgs,
	RunE:  doRun,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "config prints the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE:  doConfig,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "version provides a version of eventstat",
	RunE:  doVersion,
}

func init() {
	userConfigPath = filepath.Join(xdg.ConfigHome, "eventstat")
}

func main() {
	// root flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfigFilePath, "config", "", "Config file to load - default is "+configName+" in current directory or in "+userConfigPath)
	flags.BoolVar(&flagVerbose, "verbose", false, "verbose logging")
	flags.StringVarP(&flagAODFile, "aod-file", "f", model.DefaultAODFile, "AO2D file to count MC collisions in")
	flags.StringVar(&flagKineDir, "kine-dir", ".", "directory scanned for kinematics files")
	flags.StringVar(&flagStatDir, "stat-dir", ".", "directory receiving the stat file")

	// never print messages and usage
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		slog.Error("eventstat failed", "err", err)
		if strings.HasPrefix(err.Error(), "unknown command") {
			_ = rootCmd.Help()
		} else if strings.HasPrefix(err.Error(), "unknown") || strings.HasPrefix(err.Error(), "accepts") {
			_ = cmd.Help()
		}
	}
	if cerr := closeLog(); cerr != nil {
		fmt.Fprintf(os.Stderr, "closing log: %v\n", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func doVersion(cmd *cobra.Command, args []string) error {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return fmt.Errorf("eventstat: version info not available")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "eventstat: %s\n", info.Main.Version)
	fmt.Fprintf(out, "go:        %s\n", info.GoVersion)
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			fmt.Fprintf(out, "commit:    %s\n", s.Value)
		case "vcs.time":
			fmt.Fprintf(out, "date:      %s\n", s.Value)
		case "vcs.modified":
			fmt.Fprintf(out, "dirty:     %s\n", s.Value)
		}
	}
	fmt.Fprintln(out)

	return nil
}

func doConfig(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(config); err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	return enc.Close()
}

func doRun(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	attrs := slog.Group("eventstat",
		slog.String("cmd", cmd.Name()),
		slog.Int("pid", os.Getpid()),
		slog.String("run", uuid.NewString()),
	)
	ctx = log.ContextAttrs(ctx, attrs)
	slog.DebugContext(ctx, "", "configPath", configPath)
	slog.DebugContext(ctx, "", "config", config)

	eventstat, err := NewEventstat(ctx, config, stats.New("eventstat"))
	if err != nil {
		return err
	}
	path, err := eventstat.Do(ctx, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	slog.DebugContext(ctx, "done", "stat", path)
	return nil
}

// loadConfig finds and loads the configuration, applies the command line
// flags on top of it and initializes logging.
func loadConfig(cmd *cobra.Command) (model.Config, error) {
	env, _ := os.LookupEnv(configEnv)
	configPath = findConfig(env, flagConfigFilePath, ".", userConfigPath)

	var config model.Config
	if configPath == "" {
		config = model.DefaultConfig()
	} else {
		var err error
		config, err = model.LoadConfigFromPath(configPath)
		if err != nil {
			return config, err
		}
	}

	applyFlags(cmd, &config)
	if err := config.Validate(); err != nil {
		return config, err
	}

	if err := initLog(config.Service); err != nil {
		return config, err
	}
	return config, nil
}

// findConfig returns the config file to use: the environment variable, the
// flag, then the first eventstat.yaml found in dirs. Empty means defaults.
func findConfig(env, flag string, dirs ...string) string {
	if env != "" {
		return env
	}
	if flag != "" {
		return flag
	}
	for _, d := range dirs {
		path := filepath.Join(d, configName)
		if exists(path) {
			return path
		}
	}
	return ""
}

// applyFlags overrides config by the flags set on the command line,
// --verbose has a precedence over config file.
func applyFlags(cmd *cobra.Command, config *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("aod-file") {
		config.AODFile = flagAODFile
	}
	if flags.Changed("kine-dir") {
		config.Kinematics.Dir = flagKineDir
	}
	if flags.Changed("stat-dir") {
		config.Stat.Dir = flagStatDir
	}
	if flagVerbose {
		config.Service.Verbose = true
	}
}

func initLog(cfg model.Service) error {
	w, closer, err := log.Destination(cfg.Log)
	if err != nil {
		return err
	}
	closeLog = closer
	slog.SetDefault(log.NewWriter(w, cfg.Verbose))
	return nil
}

func exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
