package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Rudra2712/Plagiarism-detection-system/internal/output"
	"github.com/Rudra2712/Plagiarism-detection-system/internal/progress"
	"github.com/Rudra2712/Plagiarism-detection-system/internal/scanner"
	"github.com/Rudra2712/Plagiarism-detection-system/pkg/detector"
)

var checkCmd = &cobra.Command{
	Use:   "check [corpus-dir]",
	Short: "Check a corpus of assignments for plagiarism",
	Long: `Walks the corpus directory (one subdirectory per assignment),
fingerprints every source file, and reports assignment pairs whose
cross-file similarity exceeds the configured thresholds.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("k", 0, "Shingle width in tokens (overrides config)")
	checkCmd.Flags().Int("w", 0, "Winnowing window size (overrides config)")
	checkCmd.Flags().Float64("file-threshold", -1, "File-level Jaccard threshold in [0,1]")
	checkCmd.Flags().Float64("assignment-threshold", -1, "Assignment-level fraction threshold in [0,1]")
	checkCmd.Flags().Int("top", 0, "Matches to keep per direction in details")
	checkCmd.Flags().Bool("details", false, "Show top file match details per assignment pair")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	corpusDir := "corpus"
	if len(args) > 0 {
		corpusDir = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if k, _ := cmd.Flags().GetInt("k"); k != 0 {
		cfg.Detect.K = k
	}
	if w, _ := cmd.Flags().GetInt("w"); w != 0 {
		cfg.Detect.W = w
	}
	if ft, _ := cmd.Flags().GetFloat64("file-threshold"); ft >= 0 {
		cfg.Detect.FileThreshold = ft
	}
	if at, _ := cmd.Flags().GetFloat64("assignment-threshold"); at >= 0 {
		cfg.Detect.AssignmentThreshold = at
	}
	if top, _ := cmd.Flags().GetInt("top"); top != 0 {
		cfg.Detect.TopMatches = top
	}
	showDetails, _ := cmd.Flags().GetBool("details")

	log := newLogger()

	corpus, err := detector.New(cfg.Detect, detector.WithLogger(log))
	if err != nil {
		return err
	}
	defer corpus.Reset()

	scan := scanner.New(cfg)
	assignments, err := scan.CollectAssignments(corpusDir)
	if err != nil {
		return err
	}

	var subs []detector.Submission
	for _, a := range assignments {
		for _, path := range a.Files {
			raw, err := os.ReadFile(path)
			if err != nil {
				log.Warn().Str("file", path).Err(err).Msg("unreadable file skipped")
				continue
			}
			subs = append(subs, detector.Submission{
				Assignment: a.Name,
				FileID:     path,
				Hint:       path,
				Raw:        raw,
			})
		}
	}
	if len(subs) == 0 {
		color.Yellow("No source files found under %s", corpusDir)
		return nil
	}

	tracker := progress.NewTracker("Fingerprinting files...", len(subs))
	if err := corpus.IngestAll(cmd.Context(), subs, tracker.Tick); err != nil {
		tracker.Finish()
		return err
	}
	tracker.Finish()

	result, err := corpus.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("detection run failed: %w", err)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(cfg.Output.Format), outputFlag, cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON {
		return formatter.Output(result)
	}
	return formatter.Output(buildReport(result, showDetails))
}

// buildReport renders the run result as tables: suspicious pairs, optional
// per-pair top matches, and a footer of run statistics.
func buildReport(result *detector.RunResult, showDetails bool) *output.Report {
	report := &output.Report{Title: "Plagiarism Check", Data: result}

	var suspiciousRows [][]string
	for _, pair := range result.SuspiciousPairs {
		suspiciousRows = append(suspiciousRows, []string{pair[0], pair[1]})
	}
	report.Sections = append(report.Sections, output.NewTable(
		"Suspicious Assignment Pairs",
		[]string{"Assignment A", "Assignment B"},
		suspiciousRows,
		[]string{
			fmt.Sprintf("Assignments: %d", result.Summary.Assignments),
			fmt.Sprintf("Suspicious: %d", len(result.SuspiciousPairs)),
		},
		result,
	))

	if showDetails {
		for _, detail := range result.Details {
			var rows [][]string
			for _, m := range detail.TopAToB {
				rows = append(rows, []string{"A -> B", m.Left, m.Right, fmt.Sprintf("%.2f%%", m.SimilarityPct)})
			}
			for _, m := range detail.TopBToA {
				rows = append(rows, []string{"B -> A", m.Left, m.Right, fmt.Sprintf("%.2f%%", m.SimilarityPct)})
			}
			report.Sections = append(report.Sections, output.NewTable(
				fmt.Sprintf("Details: %s <-> %s", detail.Pair[0], detail.Pair[1]),
				[]string{"Direction", "File", "Best Match", "Similarity"},
				rows,
				nil,
				detail,
			))
		}
	}

	if len(result.Failures) > 0 {
		var rows [][]string
		for _, f := range result.Failures {
			rows = append(rows, []string{f.File, f.Reason})
		}
		report.Sections = append(report.Sections, output.NewTable(
			"Excluded Files",
			[]string{"File", "Reason"},
			rows,
			nil,
			result.Failures,
		))
	}

	return report
}
