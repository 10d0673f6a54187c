package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"openday/internal/enroll"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Print team counts and teams over capacity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		roster, err := a.svc.Roster(cmd.Context())
		if err != nil {
			return err
		}
		return printRoster(cmd.OutOrStdout(), roster)
	},
}

func printRoster(w io.Writer, r *enroll.Roster) error {
	challenge := 0
	for _, reg := range r.Registrations {
		if reg.Challenge {
			challenge++
		}
	}
	fmt.Fprintf(w, "Registrations: %d (challenge: %d, open day only: %d)\n",
		len(r.Registrations), challenge, len(r.Registrations)-challenge)
	fmt.Fprintf(w, "Team capacity: %d\n\n", r.Capacity)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEAM\tMEMBERS\t")
	for _, tc := range r.Teams {
		mark := ""
		if tc.Members > r.Capacity {
			mark = "over capacity"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", tc.TeamName, tc.Members, mark)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.OverCapacity) > 0 {
		fmt.Fprintf(w, "\n%d team(s) over capacity\n", len(r.OverCapacity))
	}
	return nil
}
