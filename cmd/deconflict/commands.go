package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"deconfliction-service/internal/api/dto"
	"deconfliction-service/internal/config"
	"deconfliction-service/internal/domain"
)

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check a mission against scheduled flights",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, in, cleanup, err := a.setup(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			verdict, err := svc.Check(cmd.Context(), in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.v.GetBool("json") {
				return printJSON(out, dto.NewVerdictResponse(verdict, svc.Location))
			}
			printVerdict(out, verdict, svc.Location, a.v.GetInt("limit"))
			return nil
		},
	}
}

func (a *app) resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Delay a mission in fixed steps until it is conflict-free",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, in, cleanup, err := a.setup(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.Resolve(cmd.Context(), in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.v.GetBool("json") {
				return printJSON(out, dto.NewResolutionResponse(res, svc.Location))
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(out)
			tw.AppendHeader(table.Row{"Attempt", "Start", "End", "Status", "Conflicts"})
			for _, at := range res.Attempts {
				tw.AppendRow(table.Row{
					at.Number,
					at.Start.Format(domain.WindowLayout),
					at.End.Format(domain.WindowLayout),
					at.Status,
					at.Conflicts,
				})
			}
			if len(res.Attempts) > 0 {
				tw.Render()
			}

			if res.Resolved() {
				fmt.Fprintf(out, "Resolved: new window %s to %s\n",
					res.Start.Format(domain.WindowLayout), res.End.Format(domain.WindowLayout))
			} else {
				fmt.Fprintf(out, "Unresolved after %d attempts: last window %s to %s\n",
					len(res.Attempts), res.Start.Format(domain.WindowLayout), res.End.Format(domain.WindowLayout))
			}
			printVerdict(out, res.Verdict, svc.Location, a.v.GetInt("limit"))
			return nil
		},
	}

	defaults := config.Params()
	cmd.Flags().String("delay-step", defaults.DelayStep.String(), "delay applied per attempt (Go duration or seconds)")
	cmd.Flags().Int("max-attempts", defaults.MaxAttempts, "maximum number of delays")
	_ = a.v.BindPFlag("delay-step", cmd.Flags().Lookup("delay-step"))
	_ = a.v.BindPFlag("max-attempts", cmd.Flags().Lookup("max-attempts"))
	return cmd
}

func (a *app) trajectoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trajectories",
		Short: "Sample the mission and every flight for rendering",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, in, cleanup, err := a.setup(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			set, err := svc.Trajectories(cmd.Context(), in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.v.GetBool("json") {
				return printJSON(out, dto.NewTrajectoriesResponse(set))
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(out)
			tw.AppendHeader(table.Row{"ID", "Dims", "Samples", "Start", "End"})
			appendTrajectoryRow(tw, "primary", set.Primary, svc.Location)
			for _, f := range set.Flights {
				appendTrajectoryRow(tw, f.ID, f.Trajectory, svc.Location)
			}
			tw.Render()
			return nil
		},
	}
}

func appendTrajectoryRow(tw table.Writer, id string, t domain.Trajectory, loc *time.Location) {
	start, end, ok := t.Span()
	if !ok {
		tw.AppendRow(table.Row{id, t.Dims, 0, "", ""})
		return
	}
	tw.AppendRow(table.Row{
		id,
		t.Dims,
		t.Len(),
		domain.FromSeconds(start, loc).Format(domain.WindowLayout),
		domain.FromSeconds(end, loc).Format(domain.WindowLayout),
	})
}

// printVerdict writes the status line and at most limit conflict rows.
func printVerdict(out io.Writer, v domain.Verdict, loc *time.Location, limit int) {
	if v.Clear() {
		fmt.Fprintln(out, "Status: clear")
		return
	}
	fmt.Fprintf(out, "Status: %s (%d conflicts)\n", v.Status, len(v.Conflicts))

	rows := v.Conflicts
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.AppendHeader(table.Row{"Flight", "Time", "Primary", "Other", "Distance"})
	for _, c := range rows {
		tw.AppendRow(table.Row{
			c.OtherID,
			domain.FromSeconds(c.Time, loc).Format(domain.WindowLayout),
			formatPoint(c.PrimaryPos),
			formatPoint(c.OtherPos),
			strconv.FormatFloat(c.Distance, 'f', 2, 64),
		})
	}
	if len(rows) < len(v.Conflicts) {
		tw.AppendFooter(table.Row{"", fmt.Sprintf("%d more", len(v.Conflicts)-len(rows))})
	}
	tw.Render()
}

func formatPoint(p domain.Point) string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", p[0], p[1], p[2])
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
