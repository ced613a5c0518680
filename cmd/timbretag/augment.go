package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/timbretag/augment"
	"github.com/katalvlaran/timbretag/config"
	"github.com/katalvlaran/timbretag/export"
	"github.com/katalvlaran/timbretag/fetch"
	"github.com/katalvlaran/timbretag/format"
	"github.com/katalvlaran/timbretag/noise"
	"github.com/katalvlaran/timbretag/patch"
)

func newAugmentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "augment",
		Short: "Correct, augment and export the patch library",
		Long: `Loads every tagged patch of the library, replaces outlier values per
category, grows each category by the configured scale factor and writes the
shuffled train/validation split of both domains to the output database.`,
		Args: cobra.NoArgs,
		RunE: a.runAugment,
	}
	cmd.Flags().StringP("output", "o", "", "output SQLite database (overrides output_db)")
	cmd.Flags().StringP("mode", "m", "", "interpolate or inject_noise (overrides mode)")
	cmd.Flags().IntP("scale-factor", "s", 0, "growth factor (overrides scale_factor)")
	cmd.Flags().Int64("seed", 0, "random seed, 0 keeps the default (overrides seed)")
	return cmd
}

// applyAugmentFlags copies explicitly set augment flags onto cfg. Commands
// without those flags leave cfg untouched.
func applyAugmentFlags(cmd *cobra.Command, cfg *config.Config) error {
	set := func(name string) (string, bool) {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			return "", false
		}
		return f.Value.String(), true
	}

	if v, ok := set("output"); ok {
		cfg.OutputDB = v
	}
	if v, ok := set("mode"); ok {
		cfg.Mode = v
	}
	if v, ok := set("scale-factor"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("--scale-factor: %w", err)
		}
		cfg.ScaleFactor = n
	}
	if v, ok := set("seed"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("--seed: %w", err)
		}
		cfg.Seed = n
	}
	return nil
}

func (a *app) runAugment(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, log := a.cfg, a.logger

	loader := fetch.NewLoader(a.fs, cfg.LibraryDir, fetch.WithLogger(log))
	store, sum, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	log.Info("library loaded",
		zap.String("dir", cfg.LibraryDir),
		zap.Int("files", sum.Files),
		zap.Int("tagged", sum.Tagged),
		zap.Int("untagged", len(sum.Untagged)))

	opts, err := cfg.EngineOptions(log)
	if err != nil {
		return err
	}
	engine := augment.New(opts...)
	rep, err := engine.Run(store)
	if err != nil {
		return err
	}

	src := noise.NewSource(cfg.Seed)
	var parts []export.Part
	for _, d := range patch.Domains {
		ds := format.Flatten(store, d)
		if ds.Len() == 0 {
			continue
		}
		ds.Shuffle(src)
		train, val, err := ds.Split(cfg.TrainFraction)
		if err != nil {
			return err
		}
		parts = append(parts,
			export.Part{Split: format.Train, Dataset: train},
			export.Part{Split: format.Validate, Dataset: val})
	}

	out, err := export.Open(ctx, cfg.OutputDB)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	id, err := out.WriteRun(ctx, export.Run{
		Mode:        rep.Mode.String(),
		ScaleFactor: rep.ScaleFactor,
		Seed:        cfg.Seed,
		Source:      cfg.LibraryDir,
	}, parts...)
	if err != nil {
		return err
	}
	log.Info("dataset exported", zap.String("run", id), zap.String("db", out.Path()))

	return printReport(cmd, id, rep)
}

func printReport(cmd *cobra.Command, runID string, rep augment.Report) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "run %s (%s, scale %d)\n", runID, rep.Mode, rep.ScaleFactor)
	fmt.Fprintln(w, "CATEGORY\tBEFORE\tAFTER\tCORRECTED\tMEAN BEFORE\tMEAN AFTER\tMEAN GENERATED")
	for _, cr := range rep.Categories {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.3f\t%.3f\t%.3f\n",
			cr.Category, cr.Before, cr.After, cr.Corrections.Replaced(),
			cr.Comparison.Original, cr.Comparison.Augmented, cr.Comparison.Generated)
	}
	fmt.Fprintf(w, "total added\t%d\n", rep.Added())
	return w.Flush()
}
