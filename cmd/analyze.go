package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/cv-screener/internal/analytics"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print statistics about the scored candidate pool",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		summary := analytics.Summarize(s.scored)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), summary)
		}

		out := cmd.OutOrStdout()
		w := newTable(out)
		writeRow(w, "Candidates", summary.Count)
		writeRow(w, "Average score", summary.AverageScore)
		writeRow(w, "Average experience", fmt.Sprintf("%d years", summary.AverageExperience))
		writeRow(w, "Excellent (80+)", summary.Excellent)
		writeRow(w, "Good (60-79)", summary.Good)
		writeRow(w, "Other", summary.Other)
		if err := w.Flush(); err != nil {
			return err
		}

		printBuckets(cmd, "Score distribution", summary.ScoreDistribution)
		printBuckets(cmd, "Experience distribution (years)", summary.ExperienceDistribution)

		fmt.Fprintln(out, "\nTop skills")
		w = newTable(out)
		for _, sc := range summary.TopSkills {
			writeRow(w, "  "+sc.Skill, fmt.Sprintf("%d/%d", sc.Count, summary.Count))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	addCandidatesFlag(analyzeCmd)
	analyzeCmd.Flags().Bool("json", false, "print the summary as JSON")
}

func printBuckets(cmd *cobra.Command, title string, buckets []analytics.Bucket) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s\n", title)
	w := newTable(out)
	for _, b := range buckets {
		writeRow(w, "  "+b.Label, b.Count)
	}
	w.Flush()
}
