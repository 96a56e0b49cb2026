package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/app"
	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/report"
	"alfredoptarigan/resume-screener/internal/scoring"
	"alfredoptarigan/resume-screener/internal/services"
)

const stdoutPath = "-"

// stdinIsTerminal decides whether a missing job description may be asked for.
var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screen [paths...]",
		Short: "Screen PDF resumes and write a ranked CSV or Excel report",
		Long: "screen extracts contact details, skills, experience and education from PDF resumes,\n" +
			"scores them with the selected strategy and writes one row per resume.\n" +
			"Directories contribute their top-level *.pdf files.",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringP("strategy", "s", "", "scoring strategy: rule or semantic (default from SCORING_STRATEGY)")
	flags.String("job-description", "", "job description text used by semantic scoring")
	flags.String("job-description-file", "", "file containing the job description (plain text or HTML)")
	flags.StringP("format", "f", "", "report format: csv or xlsx (default from the output extension, else csv)")
	flags.StringP("layout", "l", "", "report layout: full or compact (default from REPORT_LAYOUT)")
	flags.StringP("output", "o", stdoutPath, "report destination, - for stdout")
	flags.Bool("no-sort", false, "keep input order instead of ranking by score")
	flags.Int("concurrency", 0, "resumes processed in parallel (default from WORKER_CONCURRENCY)")
	flags.String("vocabulary", "", "YAML file overriding the built-in keyword lists")
	flags.Bool("name-recognition", false, "ask Gemini for names the heuristics miss")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json", "j", false, "json format for logging")

	return cmd
}

func run(cmd *cobra.Command, paths []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadWithFlags(cmd.Flags())
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	jobDescription, err := readJobDescription(cmd, cfg)
	if err != nil {
		return err
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}

	docs, err := a.Uploads.ReadPaths(paths)
	if err != nil {
		return err
	}

	noSort, _ := cmd.Flags().GetBool("no-sort")
	screening, err := a.Screener.Screen(ctx, services.ScreenRequest{
		Documents:      docs,
		JobDescription: jobDescription,
		Strategy:       cfg.Scoring.Strategy,
		Sort:           cfg.Report.Sort && !noSort,
	})
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if err := writeReport(output, cmd.OutOrStdout(), format, report.Build(screening.Candidates, a.Layout)); err != nil {
		return err
	}

	logSummary(log, screening)
	return nil
}

// readJobDescription returns the job description from the flags. Semantic
// scoring without one prompts on a terminal and fails otherwise.
func readJobDescription(cmd *cobra.Command, cfg *config.Config) (string, error) {
	text, _ := cmd.Flags().GetString("job-description")

	if path, _ := cmd.Flags().GetString("job-description-file"); path != "" {
		if text != "" {
			return "", errors.New("use either --job-description or --job-description-file, not both")
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		text = string(raw)
	}

	if strings.TrimSpace(text) != "" || !strings.EqualFold(cfg.Scoring.Strategy, scoring.SemanticStrategyName) {
		return text, nil
	}
	if !stdinIsTerminal() {
		return "", scoring.ErrJobDescriptionRequired
	}

	prompt := promptui.Prompt{
		Label: "Job description",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return scoring.ErrJobDescriptionRequired
			}
			return nil
		},
	}
	return prompt.Run()
}

// outputFormat resolves --format, falling back to the output file extension.
func outputFormat(cmd *cobra.Command) (report.Format, error) {
	name, _ := cmd.Flags().GetString("format")
	if name == "" {
		output, _ := cmd.Flags().GetString("output")
		if output != stdoutPath {
			name = strings.TrimPrefix(filepath.Ext(output), ".")
		}
	}

	format, err := report.ParseFormat(name)
	if err != nil && !cmd.Flags().Changed("format") {
		// unknown extension, e.g. report.txt
		return report.FormatCSV, nil
	}
	return format, err
}

func writeReport(output string, stdout io.Writer, format report.Format, table report.Table) error {
	if output == stdoutPath {
		return report.Write(stdout, format, table)
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := report.Write(file, format, table); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func logSummary(log *zap.Logger, screening *models.Screening) {
	log = logger.WithScreening(log, screening.ID.String(), screening.Strategy)

	for i, c := range screening.Candidates {
		log.Info("candidate",
			zap.Int("rank", i+1),
			zap.String(logger.FieldFile, c.FileName),
			zap.String("name", c.Name),
			zap.Float64("score", c.Score),
			zap.String("decision", c.Decision),
		)
	}
}
