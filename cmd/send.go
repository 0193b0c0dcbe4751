package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/cv-screener/internal/candidate"
	"github.com/spigell/cv-screener/internal/delivery"
	"github.com/spigell/cv-screener/internal/filtering"
	"github.com/spigell/cv-screener/internal/outreach"
)

const (
	PromptYes     = "Yes"
	PromptNo      = "No"
	PromptPreview = "Preview recipients"
	PromptFirst   = "Show the first message"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Send messages?",
	Items: []string{PromptYes, PromptNo, PromptPreview, PromptFirst},
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send personalized messages to candidates above the outreach threshold",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return send(cmd)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	addCandidatesFlag(sendCmd)
	sendCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	sendCmd.Flags().StringP("template", "t", "", "built-in template name (see the templates command)")
	sendCmd.Flags().Int("min-score", 0, "send only to candidates scoring at least this value (default from config or 80)")
	sendCmd.Flags().String("expression", "", "CEL expression over 'candidate' that must evaluate to true")
	sendCmd.Flags().StringP("exclude-file", "e", "", "file with already contacted candidates; sent candidates are appended")
	sendCmd.Flags().StringSlice("disable-step", nil, "filter steps to skip (exclude_file, expression)")
}

func send(cmd *cobra.Command) error {
	ctx := cmd.Context()

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	// Search and score thresholds of the ranking view do not apply to outreach.
	steps := []filtering.Filter{filtering.NewExcludeFile(), filtering.NewExpression()}
	pool, err := s.filter(cmd, steps)
	if err != nil {
		return err
	}

	plan, err := s.plan(ctx, cmd)
	if err != nil {
		return err
	}

	items, err := outreach.Prepare(ctx, pool, plan)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		s.logger.Info("exiting", zap.String("reason", "no candidates above the outreach threshold"), zap.Int("min_score", plan.MinScore))
		return nil
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		if err := confirm(cmd, items); err != nil {
			if errors.Is(err, errExit) {
				s.logger.Info("exiting", zap.String("reason", "got no from prompt"))
				return nil
			}
			return err
		}
	}

	cfg := s.outreach()
	sender, err := delivery.New(cfg.Sender, s.logger)
	if err != nil {
		return err
	}
	timeout, err := s.sendTimeout()
	if err != nil {
		return err
	}

	dispatcher := outreach.NewDispatcher(sender,
		outreach.WithConcurrency(cfg.Concurrency),
		outreach.WithTimeout(timeout),
		outreach.WithLogger(s.logger),
		outreach.WithProgress(func(p outreach.Progress) {
			s.logger.Info("sending messages",
				zap.Int("done", p.Done),
				zap.Int("total", p.Total),
				zap.Int("sent", p.Sent),
				zap.Int("failed", p.Failed),
			)
		}),
	)

	report := dispatcher.Dispatch(ctx, items)
	if err := printReport(cmd, report); err != nil {
		return err
	}

	if err := s.recordContacted(cmd, report); err != nil {
		return err
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d of %d messages failed", report.Failed, len(report.Items))
	}
	return nil
}

func confirm(cmd *cobra.Command, items []*outreach.Item) error {
	for {
		fmt.Fprintf(cmd.OutOrStdout(), "%d messages are ready\n", len(items))

		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptYes:
			return nil
		case PromptNo:
			return errExit
		case PromptPreview:
			w := newTable(cmd.OutOrStdout())
			writeRow(w, "ID", "NAME", "EMAIL", "SCORE", "SUBJECT")
			for _, item := range items {
				writeRow(w, item.CandidateID, item.CandidateName, orDash(item.CandidateEmail), item.Score, item.Subject)
			}
			if err := w.Flush(); err != nil {
				return err
			}
		case PromptFirst:
			printItem(cmd, items[0])
		default:
			return fmt.Errorf("invalid action: %s", action)
		}
	}
}

func printReport(cmd *cobra.Command, report *outreach.Report) error {
	w := newTable(cmd.OutOrStdout())
	writeRow(w, "ID", "NAME", "EMAIL", "STATUS", "ERROR")
	for _, item := range report.Items {
		writeRow(w, item.CandidateID, item.CandidateName, orDash(item.CandidateEmail), item.Status, orDash(item.Error))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nsent: %d, failed: %d, took %s\n", report.Sent, report.Failed, report.Duration.Round(time.Millisecond))
	return nil
}

// recordContacted appends delivered candidates to the exclude file so the next
// run skips them.
func (s *session) recordContacted(cmd *cobra.Command, report *outreach.Report) error {
	path := s.excludeFile()
	if cmd.Flags().Changed("exclude-file") {
		path, _ = cmd.Flags().GetString("exclude-file")
	}
	sent := report.SentItems()
	if path == "" || len(sent) == 0 {
		return nil
	}

	byID := make(map[string]candidate.Candidate, len(s.scored))
	for _, c := range s.scored {
		byID[c.ID] = c.Candidate
	}
	delivered := make([]candidate.Candidate, 0, len(sent))
	for _, item := range sent {
		delivered = append(delivered, byID[item.CandidateID])
	}

	contacted, err := candidate.LoadContacted(path)
	if err != nil {
		return err
	}
	contacted.Append(candidate.NewContacted(time.Now(), delivered...))

	if err := contacted.ToFile(path); err != nil {
		return err
	}

	s.logger.Info("appended to exclude file", zap.String("filename", path), zap.Int("count", len(delivered)))
	return nil
}
