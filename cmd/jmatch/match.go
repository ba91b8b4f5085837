package main

import (
	"fmt"
	"os"
	"path/filepath"

	"jmatch/internal/archivecache"
	"jmatch/internal/config"
	"jmatch/internal/errors"
	"jmatch/internal/heuristics"
	"jmatch/internal/logging"
	"jmatch/internal/match"
	"jmatch/internal/model"
	"jmatch/internal/rank"
	"jmatch/internal/reader"
	"jmatch/internal/reader/classfile"
	"jmatch/internal/report"

	"github.com/spf13/cobra"
)

var (
	minVotesFlag      int
	minGapFlag        int
	batchPercentFlag  float64
	floorClassesFlag  int
	floorFieldsFlag   int
	floorMethodsFlag  int
	maxIterationsFlag int
	hybridRankFlag    bool
	scipOutFlag       string
)

var matchCmd = &cobra.Command{
	Use:   "match <archiveA> <archiveB> [outputPath]",
	Short: "Match obfuscated classes, methods, and fields between two jar archives",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runMatch,
}

func init() {
	defaults := match.DefaultOptions()
	matchCmd.Flags().IntVar(&minVotesFlag, "min-votes", 0, fmt.Sprintf("minimum first-place vote count for promotion (default %d)", defaults.MinVotes))
	matchCmd.Flags().IntVar(&minGapFlag, "min-gap", -1, fmt.Sprintf("minimum first-minus-second vote gap for promotion (default %d)", defaults.MinGap))
	matchCmd.Flags().Float64Var(&batchPercentFlag, "batch-percent", 0, fmt.Sprintf("fraction of pending entries confirmable per cycle (default %.2f)", defaults.BatchPercent))
	matchCmd.Flags().IntVar(&floorClassesFlag, "floor-classes", 0, fmt.Sprintf("minimum class batch size regardless of batch-percent (default %d)", defaults.FloorClasses))
	matchCmd.Flags().IntVar(&floorFieldsFlag, "floor-fields", 0, fmt.Sprintf("minimum field batch size regardless of batch-percent (default %d)", defaults.FloorFields))
	matchCmd.Flags().IntVar(&floorMethodsFlag, "floor-methods", 0, fmt.Sprintf("minimum method batch size regardless of batch-percent (default %d)", defaults.FloorMethods))
	matchCmd.Flags().IntVar(&maxIterationsFlag, "max-iterations", 0, fmt.Sprintf("global bound on pipeline jumps (default %d)", defaults.MaxIterations))
	matchCmd.Flags().BoolVar(&hybridRankFlag, "hybrid-rank", true, "run the TF-IDF/KNN hybrid ranker over residual unmatched methods")
	matchCmd.Flags().StringVar(&scipOutFlag, "scip-out", "", "also write a SCIP index to this path")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	archiveA, archiveB := args[0], args[1]
	outputPath := "mappings.txt"
	if len(args) == 3 {
		outputPath = args[2]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := buildLogger(cfg)

	opts := optionsFromConfig(cfg, cmd.Flags())
	pred := model.NewPrefixObfuscationPredicate(cfg.Obfuscation.MeaningfulPrefixes)

	envA, envB, err := loadEnvironments(cfg, pred, logger, archiveA, archiveB)
	if err != nil {
		if jerr, ok := err.(*errors.JmatchError); ok {
			logger.LogJmatchError(jerr)
		} else {
			logger.Error("failed to load archives", map[string]interface{}{"error": err.Error()})
		}
		return err
	}

	runLogger := logger.WithFields(map[string]interface{}{
		"archiveA": envA.ArchiveName,
		"archiveB": envB.ArchiveName,
	})

	runHybridRank := hybridRankFlag
	if !cmd.Flags().Changed("hybrid-rank") {
		runHybridRank = cfg.Rank.Enabled
	}

	engine := match.NewEngine(envA, envB, opts, runLogger)
	heuristics.DefaultPipeline(engine)
	if runHybridRank {
		rankOpts := rank.Options{
			TfidfWeight:       cfg.Rank.TfidfWeight,
			KnnWeight:         cfg.Rank.KnnWeight,
			CombinedThreshold: cfg.Rank.CombinedThreshold,
			GapThreshold:      cfg.Rank.GapThreshold,
			TopK:              rank.DefaultTopK,
		}
		engine.AddPass(rank.NewPass(rankOpts, pred))
	}

	bundle, runErr := engine.Run()
	if runErr != nil {
		if jerr, ok := runErr.(*errors.JmatchError); ok && jerr.Code == errors.ConvergenceCapReached {
			runLogger.Warn("iteration cap reached before matching fully converged", map[string]interface{}{
				"iterations": bundle.Iterations,
			})
		} else {
			return runErr
		}
	}

	if err := report.WriteTextFile(outputPath, bundle); err != nil {
		return err
	}
	runLogger.Info("wrote mapping report", map[string]interface{}{
		"runID":   bundle.RunID,
		"path":    outputPath,
		"classes": len(bundle.Classes),
		"methods": len(bundle.Methods),
		"fields":  len(bundle.Fields),
	})

	if scipOutFlag != "" {
		if err := report.WriteSCIPFile(scipOutFlag, bundle); err != nil {
			return err
		}
		runLogger.Info("wrote SCIP index", map[string]interface{}{"path": scipOutFlag})
	}

	return nil
}

// optionsFromConfig builds match.Options from config, with any explicitly
// set CLI flag taking precedence.
func optionsFromConfig(cfg *config.Config, flags interface {
	Changed(string) bool
}) match.Options {
	opts := match.Options{
		MinVotes:      cfg.Engine.MinVotes,
		MinGap:        cfg.Engine.MinGap,
		BatchPercent:  cfg.Engine.BatchPercent,
		FloorClasses:  cfg.Engine.FloorClasses,
		FloorFields:   cfg.Engine.FloorFields,
		FloorMethods:  cfg.Engine.FloorMethods,
		MaxIterations: cfg.Engine.MaxIterations,
	}
	if flags.Changed("min-votes") {
		opts.MinVotes = minVotesFlag
	}
	if flags.Changed("min-gap") {
		opts.MinGap = minGapFlag
	}
	if flags.Changed("batch-percent") {
		opts.BatchPercent = batchPercentFlag
	}
	if flags.Changed("floor-classes") {
		opts.FloorClasses = floorClassesFlag
	}
	if flags.Changed("floor-fields") {
		opts.FloorFields = floorFieldsFlag
	}
	if flags.Changed("floor-methods") {
		opts.FloorMethods = floorMethodsFlag
	}
	if flags.Changed("max-iterations") {
		opts.MaxIterations = maxIterationsFlag
	}
	return opts
}

// loadEnvironments reads both archives through a shared classfile reader,
// wrapped in the on-disk cache when enabled.
func loadEnvironments(cfg *config.Config, pred model.ObfuscationPredicate, logger *logging.Logger, archiveA, archiveB string) (*model.Environment, *model.Environment, error) {
	var r reader.Reader = classfile.NewClassFileReader(pred)

	if cfg.Cache.Enabled {
		if dir := filepath.Dir(cfg.Cache.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, err
			}
		}
		db, err := archivecache.Open(cfg.Cache.Path, logger)
		if err != nil {
			return nil, nil, err
		}
		r = archivecache.NewCachingReader(r, archivecache.NewCache(db), pred)
	}

	envA, err := r.ReadArchive(archiveA)
	if err != nil {
		return nil, nil, err
	}
	envB, err := r.ReadArchive(archiveB)
	if err != nil {
		return nil, nil, err
	}
	return envA, envB, nil
}
