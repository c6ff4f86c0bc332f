// Package assets loads the exporter's JSON bundle from the local filesystem.
package assets

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"

	"github.com/cricsight/cricsight/internal/infrastructure/snapshot"
)

// Paths names the three bundle files on disk. SeriesPath is optional: when
// empty, series names are taken from the match list alone.
type Paths struct {
	PlayerStatsPath  string
	MatchResultsPath string
	SeriesPath       string
}

// Load reads and decodes the bundle files concurrently.
func Load(ctx context.Context, paths Paths) (snapshot.Bundle, error) {
	if paths.PlayerStatsPath == "" {
		return snapshot.Bundle{}, errors.New("player stats path is required")
	}
	if paths.MatchResultsPath == "" {
		return snapshot.Bundle{}, errors.New("match results path is required")
	}

	var bundle snapshot.Bundle

	p := pool.New().WithErrors().WithContext(ctx)

	p.Go(func(context.Context) error {
		data, err := os.ReadFile(paths.PlayerStatsPath)
		if err != nil {
			return errors.Wrapf(err, "read player stats %q", paths.PlayerStatsPath)
		}
		players, err := snapshot.DecodePlayers(data)
		if err != nil {
			return errors.Wrapf(err, "decode player stats %q", paths.PlayerStatsPath)
		}
		bundle.Players = players
		return nil
	})

	p.Go(func(context.Context) error {
		data, err := os.ReadFile(paths.MatchResultsPath)
		if err != nil {
			return errors.Wrapf(err, "read match results %q", paths.MatchResultsPath)
		}
		matches, err := snapshot.DecodeMatches(data)
		if err != nil {
			return errors.Wrapf(err, "decode match results %q", paths.MatchResultsPath)
		}
		bundle.Matches = matches
		return nil
	})

	if paths.SeriesPath != "" {
		p.Go(func(context.Context) error {
			data, err := os.ReadFile(paths.SeriesPath)
			if err != nil {
				return errors.Wrapf(err, "read series list %q", paths.SeriesPath)
			}
			series, err := snapshot.DecodeSeries(data)
			if err != nil {
				return errors.Wrapf(err, "decode series list %q", paths.SeriesPath)
			}
			bundle.Series = series
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return snapshot.Bundle{}, err
	}

	return bundle, nil
}
