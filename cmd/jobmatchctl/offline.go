package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/jobmatch/internal/domain/job"
	"github.com/kailas-cloud/jobmatch/internal/domain/match"
)

func (c *cli) scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <job-title> <keyword>...",
		Short: "Score a job title against keywords without a server",
		Example: `  jobmatchctl score "Senior Software Engineer" "software engineer"
  jobmatchctl score "Data Analyst" "python developer" "analyst"`,
		Args: cobra.MinimumNArgs(2),
		Run: func(_ *cobra.Command, args []string) {
			title, keywords := args[0], args[1:]
			for _, kw := range keywords {
				sim := match.Score(title, kw)
				c.printf("%s  %-30s %s\n", renderPercent(sim.Percent), kw, dimStyle.Render(string(sim.Strategy)))
			}
			if len(keywords) > 1 {
				best, kw, ok := match.Best(title, keywords)
				if ok {
					c.printf("\n%s %s %s\n", labelStyle.Render("best:"), renderPercent(best.Percent), kw)
				}
			}
		},
	}
}

// jobFile is one posting in a rank --jobs file.
type jobFile struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	TitleEN  string    `json:"title_en"`
	Company  string    `json:"company"`
	Location string    `json:"location"`
	Status   string    `json:"status"`
	PostedAt time.Time `json:"posted_at"`
}

func loadJobs(path string) ([]job.Job, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("read jobs: %w", err)
	}
	var raw []jobFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse jobs %s: %w", path, err)
	}

	jobs := make([]job.Job, 0, len(raw))
	for i, r := range raw {
		j, err := job.New(r.ID, r.Title, job.Details{
			TitleEN:  r.TitleEN,
			Company:  r.Company,
			Location: r.Location,
		}, job.Status(r.Status), r.PostedAt)
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func (c *cli) rankCmd() *cobra.Command {
	var (
		jobsPath  string
		keywords  []string
		threshold int
	)
	cmd := &cobra.Command{
		Use:     "rank",
		Short:   "Rank a JSON file of postings against keywords without a server",
		Example: `  jobmatchctl rank --jobs jobs.json --keyword "go developer" --keyword "sre"`,
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			jobs, err := loadJobs(jobsPath)
			if err != nil {
				return err
			}
			results := match.Rank(jobs, keywords, threshold)
			c.printMatches(len(jobs), results)
			return nil
		},
	}
	cmd.Flags().StringVar(&jobsPath, "jobs", "", "JSON array of postings")
	cmd.Flags().StringArrayVarP(&keywords, "keyword", "k", nil, "keyword to match (repeatable)")
	cmd.Flags().IntVar(&threshold, "threshold", match.DefaultThreshold, "minimum match percentage")
	_ = cmd.MarkFlagRequired("jobs")
	_ = cmd.MarkFlagRequired("keyword")
	return cmd
}

func (c *cli) printMatches(total int, results []match.Result) {
	c.println(titleStyle.Render(fmt.Sprintf("%d of %d jobs match", len(results), total)))
	for _, r := range results {
		d := r.Job().Details()
		c.printf("%s  %s %s\n", renderPercent(r.Percent()), r.Job().Title(), dimStyle.Render("· "+d.Company))
		c.printf("      %s %s (%s)\n", labelStyle.Render("via"), r.Keyword(), r.Strategy())
	}
}
