package a11yscan

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/engine"
	"github.com/a11yscan/a11yscan/internal/logging"
	"github.com/a11yscan/a11yscan/internal/report"
	"github.com/a11yscan/a11yscan/internal/store"
	"github.com/a11yscan/a11yscan/internal/tui"
	"github.com/a11yscan/a11yscan/internal/types"
)

var (
	flagURLFile     string
	flagWCAGLevel   string
	flagSection508  bool
	flagBestPract   bool
	flagExperim     bool
	flagScreenshots bool
	flagEvidenceDir string
	flagInclude     string
	flagExclude     string
	flagNoBrowser   bool
	flagJSONOut     string
	flagCSVOut      string
	flagTUI         bool
	flagFailOn      string
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [urls...]",
		Short: "Scan urls for accessibility violations",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagURLFile, "file", "f", "", "read urls from file, one per line")
	cmd.Flags().StringVar(&flagWCAGLevel, "wcag", "", "wcag conformance level: a|aa|aaa (default aa)")
	cmd.Flags().BoolVar(&flagSection508, "section508", false, "enable Section 508 keyboard checks")
	cmd.Flags().BoolVar(&flagBestPract, "best-practices", true, "enable best-practice checks")
	cmd.Flags().BoolVar(&flagExperim, "experimental", false, "enable experimental layout heuristics")
	cmd.Flags().BoolVar(&flagScreenshots, "screenshots", false, "capture evidence screenshots during the rendered pass")
	cmd.Flags().StringVar(&flagEvidenceDir, "evidence-dir", "", "directory for captured screenshots (default a11yscan-evidence)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated url patterns to include (host/path globs)")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated url patterns to exclude")
	cmd.Flags().BoolVar(&flagNoBrowser, "no-browser", false, "skip the rendered pass (static analysis only)")
	cmd.Flags().StringVar(&flagJSONOut, "json", "", "write full results as JSON to this file (- for stdout)")
	cmd.Flags().StringVar(&flagCSVOut, "csv", "", "write findings as CSV to this file")
	cmd.Flags().BoolVar(&flagTUI, "tui", false, "browse findings interactively after the scan")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "exit non-zero when findings at or above this impact exist: critical|serious|moderate|minor")
}

func runScan(cmd *cobra.Command, args []string) error {
	urls := append([]string(nil), args...)
	if flagURLFile != "" {
		fromFile, err := readURLFile(flagURLFile)
		if err != nil {
			return err
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no urls given; pass them as arguments or via --file")
	}

	// Config precedence: CLI > local file > global file.
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if wd, err := os.Getwd(); err == nil {
		if c, err := config.LoadLocal(wd); err == nil {
			lcfg = c
		}
	}

	level, err := types.ParseWCAGLevel(pickString(flagWCAGLevel, lcfg.WCAGLevel, gcfg.WCAGLevel))
	if err != nil {
		return err
	}
	// --best-practices defaults to true, so the config file only applies when
	// the flag was not given explicitly.
	bestPract := flagBestPract
	if !cmd.Flags().Changed("best-practices") {
		if lcfg.BestPractices != nil {
			bestPract = *lcfg.BestPractices
		} else if gcfg.BestPractices != nil {
			bestPract = *gcfg.BestPractices
		}
	}
	opts := types.ComplianceOptions{
		WCAGLevel:          level,
		Section508:         pickBool(flagSection508, lcfg.Section508, gcfg.Section508),
		BestPractices:      bestPract,
		Experimental:       pickBool(flagExperim, lcfg.Experimental, gcfg.Experimental),
		CaptureScreenshots: pickBool(flagScreenshots, lcfg.Screenshots, gcfg.Screenshots),
	}

	log, err := logging.New(flagDebug)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	timeout := flagTimeout
	if !cmd.Flags().Changed("timeout") {
		if v := pickInt(0, lcfg.TimeoutSecs, gcfg.TimeoutSecs); v > 0 {
			timeout = v
		}
	}
	captureDir := pickString(flagEvidenceDir, lcfg.EvidenceDir, gcfg.EvidenceDir)
	if captureDir == "" {
		captureDir = "a11yscan-evidence"
	}
	cfg := engine.Config{
		Options:      opts,
		Threads:      pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		Timeout:      time.Duration(timeout) * time.Second,
		IncludeGlobs: pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs: pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		CaptureDir:   captureDir,
		SkipRendered: pickBool(flagNoBrowser, lcfg.NoBrowser, gcfg.NoBrowser),
		Log:          log,
	}

	batch, err := engine.Run(context.Background(), urls, cfg)
	if err != nil {
		return err
	}

	st := store.New()
	st.Replace(batch)

	if flagJSONOut != "" {
		if err := writeOut(flagJSONOut, func(f *os.File) error { return report.WriteJSON(f, batch) }); err != nil {
			return err
		}
	}
	if flagCSVOut != "" {
		if err := writeOut(flagCSVOut, func(f *os.File) error { return report.WriteCSV(f, batch) }); err != nil {
			return err
		}
	}
	if flagTUI {
		return tui.Run(st)
	}
	if flagJSONOut != "-" {
		report.PrintBatch(os.Stdout, batch, report.PrintOptions{
			NoColor: pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor),
		})
	}

	if flagFailOn != "" {
		threshold := types.Impact(strings.ToLower(flagFailOn))
		if !threshold.Valid() {
			return fmt.Errorf("unknown --fail-on level %q", flagFailOn)
		}
		for _, f := range batch.AllFindings() {
			if f.Impact.Rank() <= threshold.Rank() {
				return fmt.Errorf("findings at or above %s impact", threshold)
			}
		}
	}
	return nil
}

func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, sc.Err()
}

func writeOut(path string, write func(*os.File) error) error {
	if path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
