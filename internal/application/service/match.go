package service

import (
	"sort"

	"github.com/garyjia/memories-nativex/internal/domain/entity"
)

// GroupByDay partitions pending items by day and returns the day IDs in ascending order
func GroupByDay(pending []entity.PendingRemoteCheck) ([]int64, map[int64][]entity.PendingRemoteCheck) {
	groups := make(map[int64][]entity.PendingRemoteCheck)
	for _, p := range pending {
		groups[p.DayID] = append(groups[p.DayID], p)
	}

	dayIDs := make([]int64, 0, len(groups))
	for dayID := range groups {
		dayIDs = append(dayIDs, dayID)
	}
	sort.Slice(dayIDs, func(i, j int) bool { return dayIDs[i] < dayIDs[j] })

	return dayIDs, groups
}

// MatchDay classifies the pending items of one day against the server listing.
// An item matches on its auid first; only when that fails is its buid tried.
// Empty identifiers never match.
func MatchDay(dayID int64, pending []entity.PendingRemoteCheck, server []entity.ServerPhoto) entity.DayMatch {
	serverAUIDs := make(map[string]struct{}, len(server))
	serverBUIDs := make(map[string]struct{}, len(server))
	for _, photo := range server {
		if photo.AUID != "" {
			serverAUIDs[photo.AUID] = struct{}{}
		}
		if photo.BUID != "" {
			serverBUIDs[photo.BUID] = struct{}{}
		}
	}

	match := entity.DayMatch{
		DayID:    dayID,
		Outcome:  entity.DayOutcomeReconciled,
		MatchesA: []string{},
		MatchesB: []string{},
	}

	for _, p := range pending {
		if _, ok := serverAUIDs[p.AUID]; ok && p.AUID != "" {
			match.MatchesA = append(match.MatchesA, p.AUID)
		} else if _, ok := serverBUIDs[p.BUID]; ok && p.BUID != "" {
			match.MatchesB = append(match.MatchesB, p.BUID)
		} else {
			match.Unmatched++
		}
	}

	return match
}
