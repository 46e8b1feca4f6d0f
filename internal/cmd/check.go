package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/display"
	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/gitcheck"
	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/history"
	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/logger"
	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/matcher"
	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/report"
	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/spec"
)

// NewCheckCommand creates and returns the check subcommand.
func NewCheckCommand() *cobra.Command {
	var (
		specPath    string
		candidate   string
		ignoreExtra bool
		noHistory   bool
	)

	cmd := &cobra.Command{
		Use:   "check <submission-dir>...",
		Short: "Validate one or more submission directories",
		Long: `Validate each submission directory against the assignment specification,
reporting:
  - FATAL structural problems (missing submission root, unusable git root,
    ambiguous variable-named directories)
  - WARNINGs for missing compulsory files and required subdirectories
  - INFORMATION about unexpected files and directories

Each submission is checked independently; a fatal problem in one does not
stop the others.

Exit code: 0 if every submission is clean, 1 otherwise`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, specPath, candidate, ignoreExtra, noHistory, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&specPath, "spec", "s", "", "path to the specification document (overrides the config file)")
	cmd.Flags().StringVar(&candidate, "candidate-number", "", "your 8-digit candidate number, checked against the submission folder name")
	cmd.Flags().BoolVar(&ignoreExtra, "ignore-extra-files", false, "do not report unexpected files and directories")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this run in the history database")

	return cmd
}

func runCheck(cmd *cobra.Command, paths []string, specPath, candidate string, ignoreExtra, noHistory bool, out io.Writer) error {
	cfg, err := loadConfigFromCmd(cmd)
	if err != nil {
		return err
	}

	opts := display.Options{
		Color:               display.DetectColor(out),
		SuppressInformation: ignoreExtra || cfg.IgnoreExtraFiles,
	}
	log := logger.NewConsole(cmd.ErrOrStderr(), cfg.LogLevel, display.DetectColor(cmd.ErrOrStderr()))

	if specPath == "" {
		specPath = cfg.SpecPath
	}
	if specPath == "" {
		return fmt.Errorf("no specification document given: pass --spec or set spec_path in the config file")
	}

	assignment, err := spec.Load(specPath)
	if err != nil {
		return err
	}
	log.Debugf("loaded specification for %s from %s", assignment.Name(), specPath)

	check := matcher.New(gitcheck.NewChecker())
	check.MarkingBranch = assignment.Branch()

	var store *history.Store
	if cfg.History.Enabled && !noHistory {
		store, err = history.NewStore(cfg.History.DBPath)
		if err != nil {
			log.Warnf("run history disabled: %v", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	failed := 0
	for i, path := range paths {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "Checking %s against %s\n\n", path, assignment.Name())

		for _, notice := range candidateNotices(path, candidate) {
			notice.Display(out, opts)
		}

		rendered := report.Assemble(check.Match(assignment.Structure, path))
		display.RenderReport(out, rendered, opts)

		if store != nil {
			fatal, warnings, information := rendered.Counts()
			run := &history.Run{
				Assignment:      assignment.Name(),
				Submission:      path,
				CandidateNumber: candidate,
				Fatal:           fatal,
				Warnings:        warnings,
				Information:     information,
			}
			if err := store.RecordRun(cmd.Context(), run); err != nil {
				log.Warnf("failed to record run: %v", err)
			}
		}

		if !rendered.IsClean() {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d submission(s) failed validation", failed, len(paths))
	}
	return nil
}

// candidateNotices checks the submission folder name the way submissions are
// named for marking: the base name should be the student's 8-digit candidate
// number, and should agree with the number they believe is theirs.
func candidateNotices(submission, expected string) []display.Notice {
	name := filepath.Base(filepath.Clean(submission))
	// Tolerate archive-derived names such as 12345678.tar.gz.
	name = strings.SplitN(name, ".", 2)[0]

	if len(name) != 8 || !allDigits(name) {
		return []display.Notice{{
			Title:      fmt.Sprintf("submission is named %q: this is not an 8-digit number", name),
			Message:    "The submission folder should be named with your candidate number (8 digits) and no further characters.",
			Suggestion: "Rename the folder to your candidate number before submitting.",
		}}
	}

	if expected != "" && name != expected {
		return []display.Notice{{
			Title:   "submission name and candidate number do not match",
			Message: fmt.Sprintf("Submission is named %s but your candidate number is %s.", name, expected),
		}}
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
