package cmd

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/candidate"
	"github.com/spigell/cv-screener/internal/outreach"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the outreach message for one candidate without sending it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return preview(cmd)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	addCandidatesFlag(previewCmd)
	previewCmd.Flags().String("id", "", "candidate id to render the message for")
	previewCmd.Flags().StringP("template", "t", "", "built-in template name (see the templates command)")
	previewCmd.MarkFlagRequired("id")
}

func preview(cmd *cobra.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	id, _ := cmd.Flags().GetString("id")
	id = strings.TrimSpace(id)

	var selected []candidate.Scored
	for i := range s.scored {
		if s.scored[i].ID == id {
			selected = append(selected, s.scored[i])
			break
		}
	}
	if len(selected) == 0 {
		return fmt.Errorf("there is no candidate with id %q", id)
	}

	plan, err := s.plan(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	if selected[0].Score < plan.MinScore {
		s.logger.Info("candidate is below the outreach threshold and would not be contacted",
			zap.Int("score", selected[0].Score),
			zap.Int("min_score", plan.MinScore),
		)
	}
	plan.MinScore = math.MinInt

	items, err := outreach.Prepare(cmd.Context(), selected, plan)
	if err != nil {
		return err
	}
	if len(items) != 1 {
		return errors.New("message was not rendered")
	}

	printItem(cmd, items[0])
	return nil
}

func printItem(cmd *cobra.Command, item *outreach.Item) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "To: %s <%s>\n", item.CandidateName, item.CandidateEmail)
	fmt.Fprintf(out, "Subject: %s\n\n", item.Subject)
	fmt.Fprintln(out, item.Body)
}
