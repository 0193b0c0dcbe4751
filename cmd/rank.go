package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/spigell/cv-screener/internal/filtering"
	"github.com/spigell/cv-screener/internal/ranking"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score candidates against the criteria and print the ranked list",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	addCandidatesFlag(rankCmd)
	addFilterFlags(rankCmd)
	rankCmd.Flags().StringP("sort", "s", "", "sort key: score, experience or name")
	rankCmd.Flags().String("locale", "", "locale used to collate names (default from config or en)")
	rankCmd.Flags().Bool("json", false, "print the ranked view as JSON")
}

func rank(cmd *cobra.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	opts, err := s.rankOptions(cmd)
	if err != nil {
		return err
	}

	filtered, err := s.filter(cmd, filtering.Default())
	if err != nil {
		return err
	}

	// The chain already applied query and threshold.
	view := ranking.Apply(filtered, ranking.Options{SortBy: opts.SortBy, Locale: opts.Locale})
	view.Total = len(s.scored)

	s.logger.Info("candidates ranked",
		zap.Int("total", view.Total),
		zap.Int("shown", view.Len()),
		zap.String("sort", string(opts.SortBy)),
	)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(cmd.OutOrStdout(), view)
	}

	w := newTable(cmd.OutOrStdout())
	writeRow(w, "#", "ID", "NAME", "SCORE", "MATCH", "EXP", "EDUCATION", "REQUIRED", "PREFERRED")
	for _, e := range view.Entries {
		position := fmt.Sprint(e.Position)
		if e.Top {
			position += "*"
		}
		writeRow(w,
			position,
			e.ID,
			e.Name,
			e.Score,
			e.Badge,
			e.Experience,
			orDash(e.Education.String()),
			orDash(strings.Join(e.MatchedRequired, ", ")),
			orDash(strings.Join(e.MatchedPreferred, ", ")),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d candidates shown, * marks top candidates\n", view.Len(), view.Total)
	return nil
}

func (s *session) rankOptions(cmd *cobra.Command) (ranking.Options, error) {
	r := s.ranking()

	sortKey := r.Sort
	if cmd.Flags().Changed("sort") {
		sortKey, _ = cmd.Flags().GetString("sort")
	}
	key, err := ranking.ParseSortKey(sortKey)
	if err != nil {
		return ranking.Options{}, err
	}

	locale := r.Locale
	if cmd.Flags().Changed("locale") {
		locale, _ = cmd.Flags().GetString("locale")
	}
	tag := language.English
	if locale = strings.TrimSpace(locale); locale != "" {
		tag, err = language.Parse(locale)
		if err != nil {
			return ranking.Options{}, fmt.Errorf("parse locale %q: %w", locale, err)
		}
	}

	return ranking.Options{SortBy: key, Locale: tag}, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
