package services

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/perlasplay/bingo-backend/game"
	"github.com/perlasplay/bingo-backend/utils/logger"
)

const leaderboardKey = "bingo:leaderboard"

// Leaderboard keeps a rolling winners ranking in Redis.
type Leaderboard struct {
	rdb *redis.Client
}

func NewLeaderboard(rdb *redis.Client) *Leaderboard {
	return &Leaderboard{rdb: rdb}
}

// RecordWin bumps the winner's tally. Wired as part of the arbiter's
// accept hook; failures are logged and never affect the claim.
func (l *Leaderboard) RecordWin(claim game.Claim) {
	if l.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	member := strconv.FormatUint(uint64(claim.UserID), 10)
	if err := l.rdb.ZIncrBy(ctx, leaderboardKey, 1, member).Err(); err != nil {
		logger.Errorf("[leaderboard] record win for user %d: %v", claim.UserID, err)
	}
}

type LeaderboardEntry struct {
	UserID uint    `json:"userId"`
	Wins   float64 `json:"wins"`
}

// Top returns the highest win counts, best first.
func (l *Leaderboard) Top(ctx context.Context, n int64) ([]LeaderboardEntry, error) {
	if l.rdb == nil {
		return nil, nil
	}
	zs, err := l.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{UserID: uint(id), Wins: z.Score})
	}
	return entries, nil
}
