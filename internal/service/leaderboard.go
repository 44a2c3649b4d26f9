package service

import (
	"math"
	"sort"
	"time"

	"talent-be/internal/domain"
)

// weightedTally pairs a contestant's raw tally with its weighted score
type weightedTally struct {
	domain.ContestantTally
	weighted float64
}

// weightedVotes scales the online channel by the competition's integer
// percent weight and adds unscaled in-person votes. The weight caps the
// online channel's contribution to rank, never the number of votes logged.
// In-person-only competitions ignore any online events that slipped in.
func weightedVotes(t domain.ContestantTally, onlineVoteWeight int, inPersonOnly bool) float64 {
	if inPersonOnly {
		return float64(t.InPerson)
	}
	return float64(t.OnlineVotes)*float64(onlineVoteWeight)/100.0 + float64(t.InPerson)
}

// buildLeaderboard ranks contestants by weighted votes, descending. Ties
// break by earlier application time, then by contestant ID, so the ordering
// is fully deterministic. Percentages are rounded to one decimal and are 0
// when the competition has no weighted votes at all.
func buildLeaderboard(competition *domain.Competition, tallies []domain.ContestantTally, now time.Time) *domain.Leaderboard {
	weighted := make([]weightedTally, 0, len(tallies))
	var totalWeighted float64
	for _, t := range tallies {
		w := weightedVotes(t, competition.OnlineVoteWeight, competition.InPersonOnly)
		totalWeighted += w
		weighted = append(weighted, weightedTally{ContestantTally: t, weighted: w})
	}

	sort.Slice(weighted, func(i, j int) bool {
		if weighted[i].weighted != weighted[j].weighted {
			return weighted[i].weighted > weighted[j].weighted
		}
		if !weighted[i].AppliedAt.Equal(weighted[j].AppliedAt) {
			return weighted[i].AppliedAt.Before(weighted[j].AppliedAt)
		}
		return weighted[i].ContestantID < weighted[j].ContestantID
	})

	entries := make([]domain.LeaderboardEntry, len(weighted))
	for i, w := range weighted {
		percentage := 0.0
		if totalWeighted > 0 {
			percentage = roundToDecimal(w.weighted / totalWeighted * 100)
		}
		entries[i] = domain.LeaderboardEntry{
			Rank:           i + 1,
			ContestantID:   w.ContestantID,
			Name:           w.Name,
			OnlineVotes:    w.OnlineVotes,
			InPersonVotes:  w.InPerson,
			WeightedVotes:  w.weighted,
			VotePercentage: percentage,
		}
	}

	return &domain.Leaderboard{
		CompetitionID:      competition.ID,
		OnlineVoteWeight:   competition.OnlineVoteWeight,
		TotalWeightedVotes: totalWeighted,
		Entries:            entries,
		LastUpdate:         now,
	}
}

// roundToDecimal rounds to one decimal place
func roundToDecimal(x float64) float64 {
	return math.Round(x*10) / 10
}
