package corpus

import (
	"time"

	"github.com/google/uuid"

	"voice-ghostwriter/internal/domain"
	"voice-ghostwriter/internal/textkit"
)

// Filter configures the ingestion-time cleaning pipeline.
type Filter struct {
	MinWords int
	Since    *time.Time
	Until    *time.Time
}

// Result reports what the pipeline kept and why posts were dropped. The
// ingestion tools surface the counters in their summary output.
type Result struct {
	Kept              []domain.Post
	SkippedEmpty      int
	SkippedShort      int
	SkippedNoDate     int
	SkippedOutOfRange int
	SkippedDuplicate  int
}

// Clean normalizes post texts and applies min-word, date-window, and
// dedup filtering. Posts without a resolvable date are dropped only when a
// date window is requested. The first occurrence of a duplicate wins.
func Clean(posts []domain.Post, filter Filter) Result {
	var res Result
	seen := make(map[string]struct{}, len(posts))
	dateBound := filter.Since != nil || filter.Until != nil

	for _, post := range posts {
		post.Text = textkit.Normalize(post.Text)
		if post.Text == "" {
			res.SkippedEmpty++
			continue
		}
		if filter.MinWords > 0 && len(textkit.Tokenize(post.Text)) < filter.MinWords {
			res.SkippedShort++
			continue
		}
		if dateBound {
			if post.CreatedAt == nil {
				res.SkippedNoDate++
				continue
			}
			if filter.Since != nil && post.CreatedAt.Before(*filter.Since) {
				res.SkippedOutOfRange++
				continue
			}
			if filter.Until != nil && post.CreatedAt.After(*filter.Until) {
				res.SkippedOutOfRange++
				continue
			}
		}
		key := post.DedupKey()
		if _, dup := seen[key]; dup {
			res.SkippedDuplicate++
			continue
		}
		seen[key] = struct{}{}
		if post.ID == "" {
			post.ID = uuid.NewString()
		}
		res.Kept = append(res.Kept, post)
	}
	return res
}
