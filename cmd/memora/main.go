package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/quantmind-br/memora/internal/config"
	"github.com/quantmind-br/memora/internal/manifest"
	"github.com/quantmind-br/memora/internal/repo"
	"github.com/quantmind-br/memora/internal/utils"
	"github.com/quantmind-br/memora/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger

	// Dependencies for testing
	lookupEnv = os.LookupEnv
	getwd     = os.Getwd
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "memora",
	Short: "Inspect memora build artifact cache manifests",
	Long: `memora reads the manifest of a build artifact cache. The manifest names
the cache root directory and every artifact together with the files it
depends on and the files it produces.

By default the manifest is Memora.yml at the root of the git repository
enclosing the working directory.`,
	Version:           version.Short(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.memora/config.yaml)")
	rootCmd.PersistentFlags().StringP("manifest", "m", "", "Manifest file (default is Memora.yml at the repository root)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log format (pretty or json)")

	_ = viper.BindPFlag("manifest.path", rootCmd.PersistentFlags().Lookup("manifest"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// setup loads the configuration and initializes the logger
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	utils.SetGlobalLevel(level)

	log = utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cmd.ErrOrStderr(),
		Verbose: verbose,
	})
	cmd.SetContext(withConfig(cmd.Context(), cfg))
	return nil
}

// logger returns the logger built by setup, or a default one when a command
// runs without it
func logger() *utils.Logger {
	if log == nil {
		return utils.NewDefaultLogger()
	}
	return log
}

// loaded is a manifest with its path and the base directory of its relative
// paths
type loaded struct {
	*manifest.Manifest
	Path string
	Root string
}

// locateManifest returns the manifest path and the base directory for its
// relative paths. An explicit path is used as given; its base is the
// enclosing repository root, or the manifest's directory outside a
// repository.
func locateManifest(cfg *config.Config) (path, root string, err error) {
	if cfg.Manifest.Path != "" {
		path = cfg.Manifest.Path
		root, err = repo.FindRoot(filepath.Dir(path))
		if errors.Is(err, repo.ErrNotRepository) {
			root, err = filepath.Abs(filepath.Dir(path))
		}
		if err != nil {
			return "", "", err
		}
		return path, root, nil
	}

	wd, err := getwd()
	if err != nil {
		return "", "", fmt.Errorf("failed to get working directory: %w", err)
	}
	root, err = repo.FindRoot(wd)
	if err != nil {
		return "", "", fmt.Errorf("cannot locate manifest (use --manifest): %w", err)
	}
	return repo.ManifestPath(root, cfg.Manifest.Name), root, nil
}

func loadManifest(cmd *cobra.Command) (*loaded, error) {
	cfg := configFrom(cmd.Context())

	path, root, err := locateManifest(cfg)
	if err != nil {
		return nil, err
	}

	mlog := logger().WithComponent("manifest").WithManifest(path)
	mlog.Debug().Str("root", root).Msg("Loading manifest")

	m, err := manifest.NewLoader().Load(path)
	if err != nil {
		mlog.Error().Err(err).Msg("Failed to load manifest")
		return nil, err
	}

	mlog.Debug().Int("artifacts", len(m.Artifacts)).Msg("Manifest loaded")
	return &loaded{Manifest: m, Path: path, Root: root}, nil
}

// cacheDisabled reports whether the manifest's disable variable is set in
// the environment
func cacheDisabled(m *manifest.Manifest) bool {
	if m.DisableEnvVar == "" {
		return false
	}
	_, ok := lookupEnv(m.DisableEnvVar)
	return ok
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the manifest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := loadManifest(cmd)
		if err != nil {
			return err
		}

		for _, a := range l.Artifacts {
			logger().WithArtifact(a.Name).Debug().
				Strs("inputs", a.Inputs).
				Strs("outputs", a.Outputs).
				Msg("Artifact")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: OK (%d artifacts)\n", l.Path, len(l.Artifacts))
		fmt.Fprintf(out, "cache root: %s\n", utils.DisplayPath(l.Root, l.ResolveCacheRoot(l.Root)))
		printDisabled(out, l.Manifest)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List artifacts in declaration order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := loadManifest(cmd)
		if err != nil {
			return err
		}
		for _, name := range l.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <artifact>",
	Short: "Show the inputs and outputs of an artifact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := loadManifest(cmd)
		if err != nil {
			return err
		}

		a, ok := l.Artifact(args[0])
		if !ok {
			return fmt.Errorf("no artifact %q in %s", args[0], l.Path)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "artifact: %s\n", a.Name)
		fmt.Fprintf(out, "cache root: %s\n", l.ResolveCacheRoot(l.Root))
		fmt.Fprintln(out, "inputs:")
		for _, in := range a.Inputs {
			fmt.Fprintf(out, "  %s\n", in)
		}
		fmt.Fprintln(out, "outputs:")
		for _, o := range a.Outputs {
			fmt.Fprintf(out, "  %s\n", o)
		}
		printDisabled(out, l.Manifest)
		return nil
	},
}

func printDisabled(out io.Writer, m *manifest.Manifest) {
	if cacheDisabled(m) {
		fmt.Fprintf(out, "cache disabled by $%s\n", m.DisableEnvVar)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// version needs no configuration; an invalid config must not block it
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}
