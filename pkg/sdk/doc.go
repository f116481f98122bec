// Package jobmatch is a Go client for the jobmatch HTTP API.
//
// A Client is bound to one user and talks to a running jobmatch server.
//
//	client, _ := jobmatch.New("http://localhost:8080", "user-42",
//	    jobmatch.WithAPIKey(os.Getenv("JOBMATCH_API_KEY")),
//	)
//	recs, _ := client.Recommendations().Active(ctx)
//	for _, m := range recs.Matches {
//	    fmt.Println(m.Percent, m.Job.Title)
//	}
//
// # Optimistic saved jobs
//
// SavedJobToggler flips a bookmark locally before the server confirms it and
// reverts only that flip if the request fails:
//
//	toggler, _ := client.SavedJobs().Toggler(ctx, func(s savedjob.Set) { render(s) })
//	pending := toggler.Toggle(ctx, "job-1")
//	_ = pending.Wait(ctx)
//
// # Recommendation feed
//
// RecommendationFeed tags every refresh with a token and drops responses that
// arrive after a newer refresh was started.
package jobmatch
