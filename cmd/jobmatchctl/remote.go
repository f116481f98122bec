package main

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	jobmatch "github.com/kailas-cloud/jobmatch/pkg/sdk"
)

func (c *cli) recommendCmd() *cobra.Command {
	var (
		cvPath   string
		keywords []string
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Show recommended jobs for the active CV, an uploaded CV or explicit keywords",
		Example: `  jobmatchctl recommend --user u1
  jobmatchctl recommend --user u1 --cv resume.pdf
  jobmatchctl recommend --user u1 -k "go developer"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}
			recs := client.Recommendations()

			var out jobmatch.Recommendations
			switch {
			case cvPath != "":
				f, err := os.Open(cvPath) //nolint:gosec // path comes from the operator
				if err != nil {
					return fmt.Errorf("open cv: %w", err)
				}
				defer func() { _ = f.Close() }()
				out, err = recs.AnalyzeCV(cmd.Context(), filepath.Base(cvPath), f)
				if err != nil {
					return err
				}
			case len(keywords) > 0:
				out, err = recs.ForKeywords(cmd.Context(), keywords)
			default:
				out, err = recs.Active(cmd.Context())
			}
			if err != nil {
				return err
			}
			c.printRecommendations(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&cvPath, "cv", "", "CV file to analyze (pdf, doc, docx, txt)")
	cmd.Flags().StringArrayVarP(&keywords, "keyword", "k", nil, "keyword to rank against (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("cv", "keyword")
	return cmd
}

func (c *cli) printRecommendations(r jobmatch.Recommendations) {
	if r.NoSignal() {
		c.println(dimStyle.Render("No keywords yet. Upload a CV with --cv to get recommendations."))
		return
	}
	c.println(titleStyle.Render(fmt.Sprintf("%d recommended jobs", len(r.Matches))))
	if len(r.Keywords) > 0 {
		c.printf("%s %s\n\n", labelStyle.Render("keywords:"), strings.Join(r.Keywords, ", "))
	}
	for _, m := range r.Matches {
		c.printf("%s  %s %s\n", renderPercent(m.Percent), m.Job.Title, dimStyle.Render("· "+m.Job.Company+" · "+m.Job.ID))
	}
}

func (c *cli) savedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "List and toggle saved jobs",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}
			saved, err := client.SavedJobs().List(cmd.Context())
			if err != nil {
				return err
			}
			c.println(titleStyle.Render(fmt.Sprintf("%d saved jobs", len(saved.IDs))))
			for _, j := range saved.Jobs {
				c.printf("  %s %s %s\n", labelStyle.Render("★"), j.Title, dimStyle.Render("· "+j.Company+" · "+j.ID))
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <job-id>",
		Short: "Save a job, or unsave it if already saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}
			toggler, err := client.SavedJobs().Toggler(cmd.Context(), nil)
			if err != nil {
				return err
			}
			if err := toggler.Toggle(cmd.Context(), args[0]).Wait(cmd.Context()); err != nil {
				return fmt.Errorf("toggle %s: %w", args[0], err)
			}
			if toggler.Saved().Contains(args[0]) {
				c.printf("%s %s\n", labelStyle.Render("saved"), args[0])
			} else {
				c.printf("%s %s\n", dimStyle.Render("unsaved"), args[0])
			}
			return nil
		},
	})
	return cmd
}

func (c *cli) appsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apps",
		Aliases: []string{"applications"},
		Short:   "Track job applications",
	}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List applications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}
			apps, err := client.Applications().List(cmd.Context(), status)
			if err != nil {
				return err
			}
			c.println(titleStyle.Render(fmt.Sprintf("%d applications", len(apps))))
			for _, a := range apps {
				c.printApplication(a)
			}
			return nil
		},
	}
	list.Flags().StringVar(&status, "status", "", "only this status")

	board := &cobra.Command{
		Use:   "board",
		Short: "Show applications grouped by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}
			cols, err := client.Applications().Board(cmd.Context())
			if err != nil {
				return err
			}
			for _, col := range cols {
				c.printf("%s (%d)\n", labelStyle.Render(strings.ToUpper(col.Status)), col.Count)
				for _, a := range col.Items {
					c.printf("  • %s at %s %s\n", a.Title, a.Company, dimStyle.Render(a.ID))
				}
			}
			return nil
		},
	}

	var notes string
	apply := &cobra.Command{
		Use:   "apply <job-id>",
		Short: "Apply to a catalog job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}
			app, err := client.Applications().Apply(cmd.Context(), args[0], notes, "")
			if errors.Is(err, jobmatch.ErrAlreadyApplied) {
				return fmt.Errorf("already applied to %s", args[0])
			}
			if err != nil {
				return err
			}
			c.printApplication(app)
			return nil
		},
	}
	apply.Flags().StringVar(&notes, "notes", "", "private notes")

	move := &cobra.Command{
		Use:     "move <application-id> <status>",
		Short:   "Change an application's status",
		Example: `  jobmatchctl apps move 6f1c... interview`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}
			app, err := client.Applications().Move(cmd.Context(), args[0], args[1])
			var apiErr *jobmatch.APIError
			if errors.As(err, &apiErr) && errors.Is(err, jobmatch.ErrIllegalTransition) {
				return fmt.Errorf("cannot move from %s to %s", apiErr.From, apiErr.To)
			}
			if err != nil {
				return err
			}
			c.printApplication(app)
			return nil
		},
	}

	cmd.AddCommand(list, board, apply, move)
	return cmd
}

func (c *cli) printApplication(a jobmatch.Application) {
	c.printf("  %s %s at %s\n", labelStyle.Render(fmt.Sprintf("[%s]", a.Status)), a.Title, a.Company)
	c.printf("    %s %s | applied %s\n", dimStyle.Render("id:"), a.ID, a.AppliedAt.Format("2006-01-02"))
	if a.Notes != "" {
		c.printf("    %s %s\n", dimStyle.Render("notes:"), a.Notes)
	}
}

func (c *cli) alertsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Show new jobs matching your CV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.client()
			if err != nil {
				return err
			}
			alerts, err := client.Alerts().Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			c.println(titleStyle.Render(fmt.Sprintf("%d alerts", len(alerts))))
			for _, a := range alerts {
				c.printf("%s  %s %s\n", renderPercent(a.Percent), a.Title,
					dimStyle.Render("· "+a.Company+" · "+a.CreatedAt.Format("2006-01-02 15:04")))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum alerts to show")
	return cmd
}

func (c *cli) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := jobmatch.New(c.v.GetString(keyServer), "healthcheck",
				jobmatch.WithAPIKey(c.v.GetString(keyAPIKey)))
			if err != nil {
				return err
			}
			hs, err := client.Health(cmd.Context())
			if err != nil {
				return err
			}
			c.printf("%s %s\n", labelStyle.Render("status:"), hs.Status)
			for _, name := range slices.Sorted(maps.Keys(hs.Checks)) {
				c.printf("  %-10s %s\n", name, hs.Checks[name])
			}
			return nil
		},
	}
}
