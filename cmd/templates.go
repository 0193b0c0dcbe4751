package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spigell/cv-screener/internal/templating"
)

var templatesCmd = &cobra.Command{
	Use:   "templates [name]",
	Short: "List built-in message templates or print one of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			tpl, err := templating.Builtin(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Subject: %s\n\n%s\n", tpl.Subject, tpl.Body)
			return nil
		}

		w := newTable(out)
		writeRow(w, "NAME", "SUBJECT", "PLACEHOLDERS")
		for _, name := range templating.BuiltinNames() {
			tpl, err := templating.Builtin(name)
			if err != nil {
				return err
			}
			writeRow(w, name, tpl.Subject, strings.Join(tpl.Placeholders(), ", "))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
