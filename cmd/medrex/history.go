package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/datatypes"

	"github.com/oxhq/medrex/cohort"
	"github.com/oxhq/medrex/db"
	"github.com/oxhq/medrex/internal/config"
	"github.com/oxhq/medrex/internal/scan"
	"github.com/oxhq/medrex/models"
)

// recordHistory persists a run when history is enabled. A history failure
// never fails the command; the results were already printed.
func recordHistory(cfg *config.Config, op, source string, names []string, recordCount int, hits []models.Hit) {
	if !cfg.History {
		return
	}

	gdb, err := db.Connect(cfg.DBPath, cfg.DBDebug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", err)
		return
	}

	patterns, _ := json.Marshal(names)
	hostname, _ := os.Hostname()
	clientInfo, _ := json.Marshal(map[string]string{"hostname": hostname, "version": version})

	run := &models.Run{
		ID:          db.NewRunID(),
		Operation:   op,
		Patterns:    datatypes.JSON(patterns),
		Source:      source,
		RecordCount: recordCount,
		ClientInfo:  datatypes.JSON(clientInfo),
		StartedAt:   time.Now(),
	}

	if err := db.SaveRun(gdb, run, hits); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record run: %v\n", err)
	}
}

func extractHits(results []cohort.RecordMatch, source string) []models.Hit {
	var hits []models.Hit
	for _, rm := range results {
		if rm.Match == nil {
			continue
		}
		hits = append(hits, hitFromMatch(rm, source))
	}
	return hits
}

func scanHits(results []scan.FileResult) []models.Hit {
	var hits []models.Hit
	for _, fr := range results {
		for _, rm := range fr.Records {
			hits = append(hits, hitFromMatch(rm, fr.Path))
		}
	}
	return hits
}

func hitFromMatch(rm cohort.RecordMatch, source string) models.Hit {
	groups, _ := json.Marshal(rm.Match.Groups)
	return models.Hit{
		RecordIndex: rm.Index,
		Source:      source,
		Pattern:     rm.Match.Pattern,
		MatchedText: rm.Match.Text,
		StartOffset: rm.Match.Start,
		EndOffset:   rm.Match.End,
		Groups:      datatypes.JSON(groups),
	}
}

func newHistoryCmd(cfg *config.Config) *cobra.Command {
	var showHits bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent extract and scan runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := db.Connect(cfg.DBPath, cfg.DBDebug)
			if err != nil {
				return err
			}

			runs, err := db.RecentRuns(gdb, cfg.HistoryMax)
			if err != nil {
				return err
			}

			for _, run := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s %-30s records=%d matches=%d  %s\n",
					run.ID, run.Operation, run.Source, run.RecordCount, run.MatchCount,
					run.StartedAt.Format(time.RFC3339))
				if !showHits {
					continue
				}
				hits, err := db.RunHits(gdb, run.ID)
				if err != nil {
					return err
				}
				for _, h := range hits {
					fmt.Fprintf(cmd.OutOrStdout(), "    %d\t%s\t[%d:%d]\t%s\n",
						h.RecordIndex, h.Pattern, h.StartOffset, h.EndOffset, h.MatchedText)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showHits, "hits", false, "Show per-record hits for each run")
	return cmd
}
