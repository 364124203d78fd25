package preflight

import (
	"context"

	"trimline/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config. Track source
// checks run only when the database opens cleanly.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))
	if cfg.Paths.LogDir != "" && cfg.Paths.LogDir != cfg.Paths.DataDir {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	st, dbResult := CheckDatabase(cfg)
	results = append(results, dbResult)
	if st == nil {
		return results
	}
	defer st.Close()

	tracks, err := st.ListTracks(ctx)
	if err != nil {
		return append(results, Result{Name: "Tracks", Detail: err.Error()})
	}
	for _, track := range tracks {
		results = append(results, CheckTrackSource(track))
	}
	return results
}
