// Package main provides the CLI entrypoint for vdoseg.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sorranop01/vdo-content-sub000/internal/audio"
	"github.com/Sorranop01/vdo-content-sub000/internal/calibrate"
	"github.com/Sorranop01/vdo-content-sub000/internal/config"
	"github.com/Sorranop01/vdo-content-sub000/internal/lang"
	"github.com/Sorranop01/vdo-content-sub000/internal/model"
	"github.com/Sorranop01/vdo-content-sub000/internal/report"
	"github.com/Sorranop01/vdo-content-sub000/internal/scene"
	"github.com/Sorranop01/vdo-content-sub000/internal/segment"
	"github.com/Sorranop01/vdo-content-sub000/internal/store"
	"github.com/Sorranop01/vdo-content-sub000/internal/transcript"
	"github.com/Sorranop01/vdo-content-sub000/internal/validate"
)

const (
	defaultLang        = "th"
	defaultProfileKey  = "default"
	defaultCurveWindow = 3
	defaultHistoryLast = 20
	defaultSynthLen    = 30.0
	defaultSynthRate   = 2.5
	defaultSynthBreaks = 6
)

var (
	segmentBackend    string
	segmentScriptPath string
	segmentOut        string
	segmentLang       string
	segmentMax        float64
	segmentMin        float64
	segmentTolerance  float64
	segmentProfileKey string
	segmentDB         string
	segmentParticles  string
	segmentShowCuts   bool

	splitOut        string
	splitLang       string
	splitMax        float64
	splitMin        float64
	splitTolerance  float64
	splitProfileKey string
	splitDB         string
	splitParticles  string

	calibrateScenesPath string
	calibrateAudioPath  string
	calibrateLang       string
	calibrateProfileKey string
	calibrateDB         string
	calibrateDryRun     bool

	validateScenesPath string
	validateAudioPath  string
	validateSeconds    float64
	validateThreshold  float64

	statsCurveWindow int
	statsNoPlot      bool

	editScenesPath string
	editOut        string
	editLang       string
	editProfileKey string
	editDB         string
	mergeAt        int
	splitSceneAt   int
	reorderFrom    int
	reorderTo      int

	profilesDB        string
	profilesLang      string
	profilesKey       string
	profilesDeleteKey string
	profilesHistory   bool
	profilesLast      int

	synthDuration   float64
	synthRate       float64
	synthBreakEvery int
	synthLang       string
	synthSeed       int64
	synthOut        string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vdoseg",
		Short:         "Scene segmentation and narration calibration for video scripts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newSegmentCmd())
	rootCmd.AddCommand(newSplitCmd())
	rootCmd.AddCommand(newCalibrateCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newScenesCmd())
	rootCmd.AddCommand(newProfilesCmd())
	rootCmd.AddCommand(newSynthCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newSegmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segment <transcript.json>",
		Short: "Segment a timed transcript into scenes",
		Args:  cobra.ExactArgs(1),
		RunE:  runSegmentCmd,
	}
	cmd.Flags().StringVar(&segmentBackend, "backend", "auto", "transcript backend (auto, whisper, deepgram, elevenlabs, segments)")
	cmd.Flags().StringVar(&segmentScriptPath, "script", "", "script text fallback when the transcript has no tokens")
	cmd.Flags().StringVar(&segmentOut, "out", "", "scene JSON output path")
	cmd.Flags().StringVar(&segmentLang, "lang", defaultLang, "narration language code")
	cmd.Flags().Float64Var(&segmentMax, "max-duration", model.DefaultMaxDuration, "scene duration ceiling in seconds")
	cmd.Flags().Float64Var(&segmentMin, "min-duration", model.DefaultMinDuration, "accumulation target in seconds")
	cmd.Flags().Float64Var(&segmentTolerance, "merge-tolerance", model.DefaultMergeTolerance, "extra seconds allowed when merging a short tail")
	cmd.Flags().StringVar(&segmentProfileKey, "profile", defaultProfileKey, "calibration profile key")
	cmd.Flags().StringVar(&segmentDB, "db", "", "calibration database path (default: XDG data dir)")
	cmd.Flags().StringVar(&segmentParticles, "particles", "", "break particle override file")
	cmd.Flags().BoolVar(&segmentShowCuts, "cuts", false, "print the cut point summary")
	return cmd
}

func runSegmentCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &segmentLang, fileCfg.Segment.Lang)
	applyFloatConfig(cmd, "max-duration", &segmentMax, fileCfg.Segment.MaxDuration)
	applyFloatConfig(cmd, "min-duration", &segmentMin, fileCfg.Segment.MinDuration)
	applyFloatConfig(cmd, "merge-tolerance", &segmentTolerance, fileCfg.Segment.MergeTolerance)
	applyStringConfig(cmd, "particles", &segmentParticles, fileCfg.Segment.Particles)
	applyStringConfig(cmd, "profile", &segmentProfileKey, fileCfg.Calibrate.Profile)
	applyStringConfig(cmd, "db", &segmentDB, fileCfg.Calibrate.DB)

	c, err := buildConstraints(segmentMax, segmentMin, segmentTolerance)
	if err != nil {
		return err
	}
	p, err := resolveProfile(segmentLang, segmentParticles)
	if err != nil {
		return err
	}

	raw, err := readInput(args[0])
	if err != nil {
		return err
	}
	var tokens []model.Token
	backend := strings.TrimSpace(strings.ToLower(segmentBackend))
	if backend == "" || backend == "auto" {
		var matched string
		tokens, matched, err = transcript.DetectAndNormalize(raw)
		if err != nil {
			return err
		}
		if matched != "" {
			logErrf("Detected %s transcript\n", matched)
		}
	} else {
		tokens, err = transcript.ParseBackend(backend, raw)
		if err != nil {
			return err
		}
	}

	prof, err := loadCalibration(segmentDB, segmentProfileKey, p)
	if err != nil {
		return err
	}

	if len(tokens) == 0 {
		if segmentScriptPath == "" {
			logErrln("transcript has no usable tokens; nothing to segment")
			if segmentOut != "" {
				if err := scene.Save(segmentOut, []model.Scene{}); err != nil {
					return err
				}
				logErrf("Wrote %s\n", segmentOut)
			}
			return nil
		}
		logErrln("transcript has no usable tokens; falling back to script text")
		script, err := readInput(segmentScriptPath)
		if err != nil {
			return err
		}
		scenes := buildTextScenes(string(script), p, prof, c)
		return emitScenes(scenes, nil, segmentOut, c, false)
	}

	segments, cuts := segment.SplitTokens(tokens, p, c)
	scenes := scene.FromSegments(segments, prof)
	return emitScenes(scenes, cuts, segmentOut, c, segmentShowCuts)
}

func newSplitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <script.txt>",
		Short: "Split a narration script into estimated scenes",
		Args:  cobra.ExactArgs(1),
		RunE:  runSplitCmd,
	}
	cmd.Flags().StringVar(&splitOut, "out", "", "scene JSON output path")
	cmd.Flags().StringVar(&splitLang, "lang", defaultLang, "narration language code")
	cmd.Flags().Float64Var(&splitMax, "max-duration", model.DefaultMaxDuration, "scene duration ceiling in seconds")
	cmd.Flags().Float64Var(&splitMin, "min-duration", model.DefaultMinDuration, "accumulation target in seconds")
	cmd.Flags().Float64Var(&splitTolerance, "merge-tolerance", model.DefaultMergeTolerance, "extra seconds allowed when merging a short tail")
	cmd.Flags().StringVar(&splitProfileKey, "profile", defaultProfileKey, "calibration profile key")
	cmd.Flags().StringVar(&splitDB, "db", "", "calibration database path (default: XDG data dir)")
	cmd.Flags().StringVar(&splitParticles, "particles", "", "break particle override file")
	return cmd
}

func runSplitCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &splitLang, fileCfg.Segment.Lang)
	applyFloatConfig(cmd, "max-duration", &splitMax, fileCfg.Segment.MaxDuration)
	applyFloatConfig(cmd, "min-duration", &splitMin, fileCfg.Segment.MinDuration)
	applyFloatConfig(cmd, "merge-tolerance", &splitTolerance, fileCfg.Segment.MergeTolerance)
	applyStringConfig(cmd, "particles", &splitParticles, fileCfg.Segment.Particles)
	applyStringConfig(cmd, "profile", &splitProfileKey, fileCfg.Calibrate.Profile)
	applyStringConfig(cmd, "db", &splitDB, fileCfg.Calibrate.DB)

	c, err := buildConstraints(splitMax, splitMin, splitTolerance)
	if err != nil {
		return err
	}
	p, err := resolveProfile(splitLang, splitParticles)
	if err != nil {
		return err
	}

	script, err := readInput(args[0])
	if err != nil {
		return err
	}
	prof, err := loadCalibration(splitDB, splitProfileKey, p)
	if err != nil {
		return err
	}
	scenes := buildTextScenes(string(script), p, prof, c)
	return emitScenes(scenes, nil, splitOut, c, false)
}

func newCalibrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Calibrate the narration rate from timed scenes",
		Args:  cobra.NoArgs,
		RunE:  runCalibrateCmd,
	}
	cmd.Flags().StringVar(&calibrateScenesPath, "scenes", "", "scene JSON path with audio timing")
	cmd.Flags().StringVar(&calibrateAudioPath, "audio", "", "rendered narration WAV; calibration is skipped when it cannot be read")
	cmd.Flags().StringVar(&calibrateLang, "lang", defaultLang, "narration language code")
	cmd.Flags().StringVar(&calibrateProfileKey, "profile", defaultProfileKey, "calibration profile key")
	cmd.Flags().StringVar(&calibrateDB, "db", "", "calibration database path (default: XDG data dir)")
	cmd.Flags().BoolVar(&calibrateDryRun, "dry-run", false, "compute the rate without saving it")
	return cmd
}

func runCalibrateCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &calibrateLang, fileCfg.Segment.Lang)
	applyStringConfig(cmd, "profile", &calibrateProfileKey, fileCfg.Calibrate.Profile)
	applyStringConfig(cmd, "db", &calibrateDB, fileCfg.Calibrate.DB)

	if calibrateScenesPath == "" {
		return fmt.Errorf("--scenes is required")
	}
	scenes, err := scene.Load(calibrateScenesPath)
	if err != nil {
		return err
	}
	if calibrateAudioPath != "" {
		if _, err := audio.Duration(calibrateAudioPath); err != nil {
			logErrf("cannot read %s: %v; profile unchanged\n", calibrateAudioPath, err)
			return nil
		}
	}
	p := lang.Lookup(calibrateLang)

	st, err := store.Open(resolveDBPath(calibrateDB))
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	ctx := context.Background()
	previous, hadPrevious, err := st.LoadProfile(ctx, calibrateProfileKey, p.Code)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	prof, outcome, err := calibrate.Calibrate(scenes, p.Code, calibrate.WithWarnFunc(func(msg string) {
		logErrln(msg)
	}))
	if err != nil {
		if errors.Is(err, model.ErrInsufficientData) {
			logErrln("not enough timed scenes to calibrate; profile unchanged")
			return nil
		}
		return err
	}

	if calibrateDryRun {
		logErrln("Dry run; profile not saved")
	} else {
		if _, err := st.RecordCalibration(ctx, calibrateProfileKey, prof, outcome.Rate, outcome.TrimmedPerSide); err != nil {
			return fmt.Errorf("failed to record calibration: %w", err)
		}
	}
	return report.RenderCalibration(os.Stdout, p, previous, hadPrevious, outcome)
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check scene timing against the rendered audio",
		Args:  cobra.NoArgs,
		RunE:  runValidateCmd,
	}
	cmd.Flags().StringVar(&validateScenesPath, "scenes", "", "scene JSON path")
	cmd.Flags().StringVar(&validateAudioPath, "audio", "", "narration WAV path")
	cmd.Flags().Float64Var(&validateSeconds, "audio-seconds", 0, "measured audio length when no WAV is available")
	cmd.Flags().Float64Var(&validateThreshold, "threshold", validate.DefaultDriftThreshold, "allowed drift in seconds")
	return cmd
}

func runValidateCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "threshold", &validateThreshold, fileCfg.Calibrate.DriftThreshold)

	if validateScenesPath == "" {
		return fmt.Errorf("--scenes is required")
	}
	scenes, err := scene.Load(validateScenesPath)
	if err != nil {
		return err
	}

	seconds := validateSeconds
	if validateAudioPath != "" {
		seconds, err = audio.Duration(validateAudioPath)
		if err != nil {
			return err
		}
	}
	if seconds <= 0 {
		return fmt.Errorf("--audio or --audio-seconds is required")
	}

	rep := validate.CheckWithThreshold(scenes, seconds, validateThreshold)
	return report.RenderDrift(os.Stdout, rep)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <scenes.json>",
		Short: "Show scene statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsNoPlot, "no-plot", false, "skip the duration plot")
	return cmd
}

func runStatsCmd(_ *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c, err := constraintsFromConfig(fileCfg)
	if err != nil {
		return err
	}

	scenes, err := scene.Load(args[0])
	if err != nil {
		return err
	}

	if err := report.RenderStats(os.Stdout, scenes); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.RenderProblems(os.Stdout, scenes, c); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !statsNoPlot {
		if err := report.RenderDurationCurve(os.Stdout, scenes, c, statsCurveWindow, 0, 10, false); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newScenesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "Edit a scene document",
	}
	cmd.AddCommand(newScenesMergeCmd())
	cmd.AddCommand(newScenesSplitCmd())
	cmd.AddCommand(newScenesReorderCmd())
	return cmd
}

func newScenesMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge a scene with its successor",
		Args:  cobra.NoArgs,
		RunE:  runScenesMergeCmd,
	}
	cmd.Flags().StringVar(&editScenesPath, "scenes", "", "scene JSON path")
	cmd.Flags().StringVar(&editOut, "out", "", "output path (default: edit in place)")
	cmd.Flags().IntVar(&mergeAt, "at", 0, "scene number to merge with the next one")
	cmd.Flags().StringVar(&editLang, "lang", defaultLang, "narration language code")
	cmd.Flags().StringVar(&editProfileKey, "profile", defaultProfileKey, "calibration profile key")
	cmd.Flags().StringVar(&editDB, "db", "", "calibration database path (default: XDG data dir)")
	return cmd
}

func runScenesMergeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &editLang, fileCfg.Segment.Lang)
	applyStringConfig(cmd, "profile", &editProfileKey, fileCfg.Calibrate.Profile)
	applyStringConfig(cmd, "db", &editDB, fileCfg.Calibrate.DB)
	c, err := constraintsFromConfig(fileCfg)
	if err != nil {
		return err
	}

	scenes, err := loadScenesForEdit()
	if err != nil {
		return err
	}
	if mergeAt < 1 {
		return fmt.Errorf("--at must be >= 1")
	}
	prof, err := loadCalibration(editDB, editProfileKey, lang.Lookup(editLang))
	if err != nil {
		return err
	}
	edited, err := scene.Merge(scenes, mergeAt-1, prof, c)
	if err != nil {
		return err
	}
	return saveEditedScenes(edited, c)
}

func newScenesSplitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Re-split an oversized scene by its narration text",
		Args:  cobra.NoArgs,
		RunE:  runScenesSplitCmd,
	}
	cmd.Flags().StringVar(&editScenesPath, "scenes", "", "scene JSON path")
	cmd.Flags().StringVar(&editOut, "out", "", "output path (default: edit in place)")
	cmd.Flags().IntVar(&splitSceneAt, "at", 0, "scene number to split")
	cmd.Flags().StringVar(&editLang, "lang", defaultLang, "narration language code")
	cmd.Flags().StringVar(&editProfileKey, "profile", defaultProfileKey, "calibration profile key")
	cmd.Flags().StringVar(&editDB, "db", "", "calibration database path (default: XDG data dir)")
	return cmd
}

func runScenesSplitCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &editLang, fileCfg.Segment.Lang)
	applyStringConfig(cmd, "profile", &editProfileKey, fileCfg.Calibrate.Profile)
	applyStringConfig(cmd, "db", &editDB, fileCfg.Calibrate.DB)
	c, err := constraintsFromConfig(fileCfg)
	if err != nil {
		return err
	}

	scenes, err := loadScenesForEdit()
	if err != nil {
		return err
	}
	if splitSceneAt < 1 {
		return fmt.Errorf("--at must be >= 1")
	}
	p, err := resolveProfile(editLang, "")
	if err != nil {
		return err
	}
	prof, err := loadCalibration(editDB, editProfileKey, p)
	if err != nil {
		return err
	}
	edited, err := scene.Split(scenes, splitSceneAt-1, p, prof, c)
	if err != nil {
		return err
	}
	return saveEditedScenes(edited, c)
}

func newScenesReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "Move a scene to a new position",
		Args:  cobra.NoArgs,
		RunE:  runScenesReorderCmd,
	}
	cmd.Flags().StringVar(&editScenesPath, "scenes", "", "scene JSON path")
	cmd.Flags().StringVar(&editOut, "out", "", "output path (default: edit in place)")
	cmd.Flags().IntVar(&reorderFrom, "from", 0, "scene number to move")
	cmd.Flags().IntVar(&reorderTo, "to", 0, "destination scene number")
	return cmd
}

func runScenesReorderCmd(_ *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c, err := constraintsFromConfig(fileCfg)
	if err != nil {
		return err
	}

	scenes, err := loadScenesForEdit()
	if err != nil {
		return err
	}
	if reorderFrom < 1 || reorderTo < 1 {
		return fmt.Errorf("--from and --to must be >= 1")
	}
	edited, err := scene.Move(scenes, reorderFrom-1, reorderTo-1)
	if err != nil {
		return err
	}
	return saveEditedScenes(edited, c)
}

func newProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List stored calibration profiles",
		Args:  cobra.NoArgs,
		RunE:  runProfilesCmd,
	}
	cmd.Flags().StringVar(&profilesDB, "db", "", "calibration database path (default: XDG data dir)")
	cmd.Flags().StringVar(&profilesLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&profilesKey, "profile", defaultProfileKey, "calibration profile key")
	cmd.Flags().StringVar(&profilesDeleteKey, "delete", "", "delete the named profile")
	cmd.Flags().BoolVar(&profilesHistory, "history", false, "plot the calibration run history")
	cmd.Flags().IntVar(&profilesLast, "last", defaultHistoryLast, "limit history to the last N runs")
	return cmd
}

func runProfilesCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &profilesDB, fileCfg.Calibrate.DB)

	st, err := store.Open(resolveDBPath(profilesDB))
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)
	ctx := context.Background()

	switch {
	case profilesDeleteKey != "":
		if profilesLang == "" {
			return fmt.Errorf("--lang is required with --delete")
		}
		deleted, err := st.DeleteProfile(ctx, profilesDeleteKey, profilesLang)
		if err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
		if !deleted {
			return fmt.Errorf("no profile %q for language %q", profilesDeleteKey, profilesLang)
		}
		logErrf("Deleted profile %s (%s)\n", profilesDeleteKey, profilesLang)
		return nil
	case profilesHistory:
		runs, err := st.ListRuns(ctx, profilesKey, profilesLang, profilesLast)
		if err != nil {
			return fmt.Errorf("failed to list calibration runs: %w", err)
		}
		plotLang := profilesLang
		if plotLang == "" && len(runs) > 0 {
			plotLang = runs[len(runs)-1].Language
		}
		return report.RenderRateHistory(os.Stdout, runs, lang.Lookup(plotLang), 0, 10, false)
	default:
		profiles, err := st.ListProfiles(ctx)
		if err != nil {
			return fmt.Errorf("failed to list profiles: %w", err)
		}
		return report.RenderProfiles(os.Stdout, profiles)
	}
}

func newSynthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Generate a synthetic transcript for testing",
		Args:  cobra.NoArgs,
		RunE:  runSynthCmd,
	}
	cmd.Flags().Float64Var(&synthDuration, "duration", defaultSynthLen, "transcript length in seconds")
	cmd.Flags().Float64Var(&synthRate, "rate", defaultSynthRate, "speaking rate in words per second")
	cmd.Flags().IntVar(&synthBreakEvery, "break-every", defaultSynthBreaks, "append a break marker every Nth word")
	cmd.Flags().StringVar(&synthLang, "lang", defaultLang, "narration language code")
	cmd.Flags().Int64Var(&synthSeed, "seed", 0, "random seed")
	cmd.Flags().StringVar(&synthOut, "out", "", "output path (default: stdout)")
	return cmd
}

func runSynthCmd(_ *cobra.Command, _ []string) error {
	result := transcript.Synthesize(transcript.SynthConfig{
		Duration:    synthDuration,
		WordsPerSec: synthRate,
		BreakEvery:  synthBreakEvery,
		Language:    synthLang,
		Seed:        synthSeed,
	})
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode transcript: %w", err)
	}
	data = append(data, '\n')
	if synthOut == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(synthOut), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(synthOut, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", synthOut, err)
	}
	logErrf("Wrote %s\n", synthOut)
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func buildConstraints(maxDur, minDur, tolerance float64) (model.Constraints, error) {
	c := model.Constraints{
		MaxDuration:    maxDur,
		MinDuration:    minDur,
		MergeTolerance: tolerance,
	}
	if err := c.Validate(); err != nil {
		return model.Constraints{}, err
	}
	return c, nil
}

func constraintsFromConfig(fileCfg config.FileConfig) (model.Constraints, error) {
	c := model.DefaultConstraints()
	if v := fileCfg.Segment.MaxDuration; v != nil {
		c.MaxDuration = *v
	}
	if v := fileCfg.Segment.MinDuration; v != nil {
		c.MinDuration = *v
	}
	if v := fileCfg.Segment.MergeTolerance; v != nil {
		c.MergeTolerance = *v
	}
	if err := c.Validate(); err != nil {
		return model.Constraints{}, err
	}
	return c, nil
}

func resolveProfile(langCode, particlePath string) (lang.Profile, error) {
	p := lang.Lookup(langCode)
	path := particlePath
	if path == "" {
		path = config.DefaultParticlePath(p.Code)
	}
	return lang.LoadOverride(p, path)
}

func resolveDBPath(path string) string {
	if path == "" {
		return config.DefaultDBPath()
	}
	return path
}

func loadCalibration(dbPath, key string, p lang.Profile) (model.CalibrationProfile, error) {
	st, err := store.Open(resolveDBPath(dbPath))
	if err != nil {
		return model.CalibrationProfile{}, fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	prof, found, err := st.LoadProfile(context.Background(), key, p.Code)
	if err != nil {
		return model.CalibrationProfile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if !found {
		return p.DefaultCalibration(), nil
	}
	return prof, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func buildTextScenes(script string, p lang.Profile, prof model.CalibrationProfile, c model.Constraints) []model.Scene {
	segments := segment.SplitText(script, p, prof, c)
	return scene.FromSegments(segments, prof)
}

func emitScenes(scenes []model.Scene, cuts []model.CutRecord, outPath string, c model.Constraints, showCuts bool) error {
	if outPath != "" {
		if err := scene.Save(outPath, scenes); err != nil {
			return err
		}
		logErrf("Wrote %s\n", outPath)
	}
	if err := report.RenderScenes(os.Stdout, scenes, c); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if showCuts {
		if err := report.RenderCuts(os.Stdout, cuts); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func loadScenesForEdit() ([]model.Scene, error) {
	if editScenesPath == "" {
		return nil, fmt.Errorf("--scenes is required")
	}
	return scene.Load(editScenesPath)
}

func saveEditedScenes(scenes []model.Scene, c model.Constraints) error {
	outPath := editOut
	if outPath == "" {
		outPath = editScenesPath
	}
	if err := scene.Save(outPath, scenes); err != nil {
		return err
	}
	logErrf("Wrote %s\n", outPath)
	if err := report.RenderScenes(os.Stdout, scenes, c); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, model.ErrInputUnavailable)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# vdoseg configuration
# Uncomment a value to enable it. CLI flags override config values.

[segment]
# lang = %q               # Narration language code
# max-duration = %.1f     # Scene duration ceiling in seconds
# min-duration = %.1f     # Accumulation target in seconds
# merge-tolerance = %.1f  # Extra seconds allowed when merging a short tail
# particles = ""          # Break particle override file

[calibrate]
# profile = %q        # Calibration profile key
# drift-threshold = %.1f  # Allowed gap between scenes and audio in seconds
# db = ""                 # Calibration database path
`,
		defaultLang,
		model.DefaultMaxDuration,
		model.DefaultMinDuration,
		model.DefaultMergeTolerance,
		defaultProfileKey,
		validate.DefaultDriftThreshold,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
