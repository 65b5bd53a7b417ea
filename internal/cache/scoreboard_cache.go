package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ScoreBoard ranks graded submissions of a form by awarded points (Redis ZSET)
type ScoreBoard interface {
	Record(ctx context.Context, formID, submissionID string, points int) error
	Top(ctx context.Context, formID string, limit int) ([]ScoreEntry, error)
	Rank(ctx context.Context, formID, submissionID string) (int64, error)
	Clear(ctx context.Context, formID string) error
}

// ScoreEntry is one row of the scoreboard
type ScoreEntry struct {
	SubmissionID string `json:"submissionId"`
	Points       int    `json:"points"`
	Rank         int    `json:"rank"`
}

type scoreBoard struct {
	client *redis.Client
}

// NewScoreBoard creates a new scoreboard
func NewScoreBoard(client *redis.Client) ScoreBoard {
	return &scoreBoard{
		client: client,
	}
}

func (c *scoreBoard) key(formID string) string {
	return fmt.Sprintf("form:%s:scores", formID)
}

func (c *scoreBoard) Record(ctx context.Context, formID, submissionID string, points int) error {
	return c.client.ZAdd(ctx, c.key(formID), redis.Z{
		Score:  float64(points),
		Member: submissionID,
	}).Err()
}

func (c *scoreBoard) Top(ctx context.Context, formID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(formID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]ScoreEntry, len(results))
	for i, z := range results {
		member, _ := z.Member.(string)
		entries[i] = ScoreEntry{
			SubmissionID: member,
			Points:       int(z.Score),
			Rank:         i + 1,
		}
	}
	return entries, nil
}

func (c *scoreBoard) Rank(ctx context.Context, formID, submissionID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, c.key(formID), submissionID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return rank + 1, nil // 1-indexed
}

func (c *scoreBoard) Clear(ctx context.Context, formID string) error {
	return c.client.Del(ctx, c.key(formID)).Err()
}
