package quiz

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/abhisek/quizup/internal/rankcache"
)

// LeaderboardEntry is one ranked student.
type LeaderboardEntry struct {
	Rank         int     `json:"rank"`
	UserID       string  `json:"id"`
	Name         string  `json:"name"`
	TotalScore   int     `json:"totalScore"`
	TotalQuizzes int     `json:"totalQuizzes"`
	AverageScore float64 `json:"averageScore"`
}

// Leaderboard ranks every student with at least one result by average
// score, highest first. Ties are broken by name then ID so the order is
// stable. A built rank cache is served as is; a stale or failing one is
// rebuilt from the database.
func (s *Service) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	entries, err := s.ranks.Top(ctx, 0)
	if err == nil {
		return rank(entries), nil
	}
	if !errors.Is(err, rankcache.ErrDisabled) && !errors.Is(err, rankcache.ErrStale) {
		fmt.Fprintf(os.Stderr, "warning: leaderboard cache: %v\n", err)
	}

	entries, err = s.rankEntries(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.ranks.Rebuild(ctx, entries); err != nil {
		fmt.Fprintf(os.Stderr, "warning: rebuild leaderboard cache: %v\n", err)
	}
	return rank(entries), nil
}

// RebuildLeaderboardCache reloads the rank cache from stored results. It
// runs when the cache connects, since results may have been stored while
// it was unavailable.
func (s *Service) RebuildLeaderboardCache(ctx context.Context) error {
	entries, err := s.rankEntries(ctx)
	if err != nil {
		return err
	}
	return s.ranks.Rebuild(ctx, entries)
}

func (s *Service) rankEntries(ctx context.Context) ([]rankcache.Entry, error) {
	rows, err := s.results.LeaderboardRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	entries := make([]rankcache.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, rankcache.Entry{UserID: r.UserID, Name: r.Name, Quizzes: r.Quizzes, TotalScore: r.TotalScore})
	}
	return entries, nil
}

func rank(entries []rankcache.Entry) []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if e.Quizzes == 0 {
			continue
		}
		out = append(out, LeaderboardEntry{
			UserID:       e.UserID,
			Name:         e.Name,
			TotalScore:   e.TotalScore,
			TotalQuizzes: e.Quizzes,
			AverageScore: e.Average(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.AverageScore != b.AverageScore {
			return a.AverageScore > b.AverageScore
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.UserID < b.UserID
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
