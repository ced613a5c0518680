package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/timbretag/config"
)

// app carries what every command shares. Tests swap fs and logger.
type app struct {
	configPath string
	verbose    bool

	fs     afero.Fs
	cfg    *config.Config
	logger *zap.Logger

	ownLogger bool
}

func newApp() *app {
	return &app{fs: afero.NewOsFs()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "timbretag",
		Short: "Outlier correction and augmentation for tagged synth patches",
		Long: `timbretag reads a library of tagged synth-patch presets, corrects
parameter values that contradict their tags, grows every category by
interpolation or noise injection and writes a labelled dataset to SQLite.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.ownLogger && a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "timbretag.yaml", "config file (YAML)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().String("library", "", "patch library directory (overrides library_dir)")

	root.AddCommand(
		newAugmentCmd(a),
		newInspectCmd(a),
		newThresholdsCmd(a),
	)
	return root
}

// init loads and validates configuration, applies flag overrides and
// builds the logger unless one was injected.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("library"); f != nil && f.Changed {
		cfg.LibraryDir = f.Value.String()
	}
	if err := applyAugmentFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		logger, err := cfg.Logging.Build(a.verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
		a.ownLogger = true
	}
	return nil
}
