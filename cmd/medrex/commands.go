package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oxhq/medrex/cohort"
	"github.com/oxhq/medrex/finder"
	"github.com/oxhq/medrex/internal/config"
	"github.com/oxhq/medrex/internal/redact"
	"github.com/oxhq/medrex/internal/scan"
	"github.com/oxhq/medrex/medcode"
	"github.com/oxhq/medrex/pattern"
)

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List registered pattern names",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range pattern.Names() {
				e, err := pattern.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", name, e.Source)
			}
			return nil
		},
	}
}

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match NAME TEXT",
		Short: "Match the entire text against a named pattern",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := pattern.FullMatch(args[0], args[1])
			if err != nil {
				return err
			}
			return printMatch(cmd.OutOrStdout(), m)
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search NAME TEXT",
		Short: "Find the first occurrence of a named pattern",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := pattern.Search(args[0], args[1])
			if err != nil {
				return err
			}
			return printMatch(cmd.OutOrStdout(), m)
		},
	}
}

func newFindAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "findall NAME TEXT",
		Short: "Find every occurrence of a named pattern",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := pattern.FindAll(args[0], args[1])
			if err != nil {
				return err
			}
			for i := range matches {
				if err := printMatch(cmd.OutOrStdout(), &matches[i]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printMatch(w io.Writer, m *pattern.Match) error {
	if m == nil {
		_, err := fmt.Fprintln(w, "no match")
		return err
	}
	_, err := fmt.Fprintf(w, "%s [%d:%d] %s\n", m.Pattern, m.Start, m.End, m.Text)
	if err != nil {
		return err
	}
	if len(m.Groups) > 0 {
		names := make([]string, 0, len(m.Groups))
		for name := range m.Groups {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, err := fmt.Fprintf(w, "  %s=%s\n", name, m.Groups[name]); err != nil {
				return err
			}
		}
	}
	return nil
}

func newExtractCmd(cfg *config.Config) *cobra.Command {
	var (
		inputPath  string
		jsonOutput bool
	)
	cmd := &cobra.Command{
		Use:   "extract NAME [NAME...]",
		Short: "Apply patterns over records (one per line), first match wins",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, source, err := readRecords(cmd.InOrStdin(), inputPath)
			if err != nil {
				return err
			}

			results, err := cohort.Extract(records, args...)
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := json.NewEncoder(cmd.OutOrStdout()).Encode(results); err != nil {
					return err
				}
			} else {
				for _, rm := range results {
					if rm.Match == nil {
						fmt.Fprintf(cmd.OutOrStdout(), "%d\t-\n", rm.Index)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t[%d:%d]\t%s\n",
						rm.Index, rm.Match.Pattern, rm.Match.Start, rm.Match.End, rm.Match.Text)
				}
			}

			recordHistory(cfg, "extract", source, args, len(records), extractHits(results, source))
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Read records from file instead of stdin")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

func readRecords(stdin io.Reader, inputPath string) ([]string, string, error) {
	source := "stdin"
	reader := stdin
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return nil, "", fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		reader = f
		source = inputPath
	}

	var records []string
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		records = append(records, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, "", fmt.Errorf("reading records: %w", err)
	}
	return records, source, nil
}

func newScanCmd(cfg *config.Config) *cobra.Command {
	var (
		include    []string
		exclude    []string
		jsonOutput bool
	)
	cmd := &cobra.Command{
		Use:   "scan DIR NAME [NAME...]",
		Short: "Scan a directory of note files with the given patterns",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := scan.Scope{Root: args[0], Include: include, Exclude: exclude}
			names := args[1:]

			scanner := scan.NewScanner(pattern.Default)
			results, err := scanner.Scan(cmd.Context(), scope, names...)
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := json.NewEncoder(cmd.OutOrStdout()).Encode(results); err != nil {
					return err
				}
			} else {
				for _, fr := range results {
					for _, rm := range fr.Records {
						fmt.Fprintf(cmd.OutOrStdout(), "%s:%d\t%s\t%s\n",
							fr.Path, rm.Index+1, rm.Match.Pattern, rm.Match.Text)
					}
				}
			}

			lineCount := 0
			for _, fr := range results {
				lineCount += fr.Lines
			}
			recordHistory(cfg, "scan", scope.Root, names, lineCount, scanHits(results))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&include, "include", nil, "Glob patterns for files to include (e.g. '**/*.txt')")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Glob patterns for files to exclude")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

func newRedactCmd() *cobra.Command {
	var showDiff bool
	cmd := &cobra.Command{
		Use:   "redact NAME [NAME...]",
		Short: "Replace pattern matches in stdin text with placeholders",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			original := string(data)

			redacted, err := redact.Redact(pattern.Default, original, args...)
			if err != nil {
				return err
			}

			if showDiff {
				fmt.Fprint(cmd.OutOrStdout(), redact.Diff(original, redacted))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), redacted)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showDiff, "diff", false, "Show a unified diff instead of the redacted text")
	return cmd
}

func newCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes [TEXT]",
		Short: "Extract medical codes from text (stdin if omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := argOrStdin(cmd, args)
			if err != nil {
				return err
			}
			for _, c := range medcode.Extract(text) {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", c.System, c.Value)
			}
			return nil
		},
	}
}

func newLogicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logic [TEXT]",
		Short: "Detect cohort-definition logic in text (stdin if omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := argOrStdin(cmd, args)
			if err != nil {
				return err
			}
			for _, s := range cohort.FindCohortLogic(text) {
				fmt.Fprintf(cmd.OutOrStdout(), "[%d:%d] %s\n", s.Start, s.End, s.Text)
			}
			return nil
		},
	}
}

var finderTopics = map[string]map[string]finder.Func{
	"trial-registration":   finder.TrialRegistrationFinders,
	"eligibility-criteria": finder.EligibilityCriteriaFinders,
}

func newFinderCmd() *cobra.Command {
	var tier string
	cmd := &cobra.Command{
		Use:   "find TOPIC [TEXT]",
		Short: "Run a clinical-trial finder ladder over text (stdin if omitted)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ladder, ok := finderTopics[args[0]]
			if !ok {
				topics := make([]string, 0, len(finderTopics))
				for t := range finderTopics {
					topics = append(topics, t)
				}
				sort.Strings(topics)
				return fmt.Errorf("unknown topic %q, available: %s", args[0], strings.Join(topics, ", "))
			}
			fn, ok := ladder[tier]
			if !ok {
				return fmt.Errorf("unknown tier %q, available: v1-v5", tier)
			}

			text, err := argOrStdin(cmd, args[1:])
			if err != nil {
				return err
			}
			for _, r := range fn(text) {
				fmt.Fprintf(cmd.OutOrStdout(), "words %d-%d\t%s\n", r.StartWord, r.EndWord, r.Snippet)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tier, "tier", "v1", "Precision tier (v1 high recall ... v5 high precision)")
	return cmd
}

func argOrStdin(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}
