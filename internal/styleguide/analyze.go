// Package styleguide owns the style-profile document: loading and saving the
// hand-authored voice rules and computing the derived statistics section.
package styleguide

import (
	"math"
	"sort"
	"strings"
	"time"

	"voice-ghostwriter/internal/domain"
	"voice-ghostwriter/internal/textkit"
)

// Closed stopword set used to drop contentless phrases.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "if": {},
	"then": {}, "this": {}, "that": {}, "these": {}, "those": {}, "is": {},
	"are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"to": {}, "of": {}, "in": {}, "on": {}, "for": {}, "with": {}, "as": {},
	"at": {}, "by": {}, "from": {}, "it": {}, "its": {}, "we": {}, "our": {},
	"you": {}, "your": {}, "i": {}, "me": {}, "my": {}, "us": {},
}

const (
	topOpeners = 8
	topClosers = 8
	topPhrases = 12
)

// Analyze computes per-platform derived statistics from a corpus snapshot.
// Platforms other than x and linkedin are ignored. A platform with zero posts
// is omitted from every map except SampleSize, which always reports both.
func Analyze(posts []domain.Post) domain.DerivedStats {
	perPlatform := map[string][]domain.Post{
		domain.PlatformX:        nil,
		domain.PlatformLinkedIn: nil,
	}
	for _, post := range posts {
		if _, ok := perPlatform[post.Platform]; ok {
			perPlatform[post.Platform] = append(perPlatform[post.Platform], post)
		}
	}

	derived := domain.DerivedStats{
		AnalysisDate:     time.Now().UTC().Format("2006-01-02"),
		SampleSize:       map[string]int{},
		AvgWordsPerPost:  map[string]float64{},
		AvgSentenceWords: map[string]float64{},
		QuestionRate:     map[string]float64{},
		EmojiRate:        map[string]float64{},
		LinkRate:         map[string]float64{},
		CommonOpeners:    map[string][]string{},
		CommonClosers:    map[string][]string{},
		CommonPhrases:    map[string][]string{},
	}

	for platform, items := range perPlatform {
		derived.SampleSize[platform] = len(items)
		if len(items) == 0 {
			continue
		}

		var wordCounts []int
		var sentenceLengths []int
		questionPosts := 0
		emojiPosts := 0
		linkPosts := 0
		openers := newCounter()
		closers := newCounter()
		phrases := newCounter()

		for _, post := range items {
			text := textkit.Normalize(post.Text)
			if text == "" {
				continue
			}
			words := textkit.Tokenize(text)
			wordCounts = append(wordCounts, len(words))
			for _, sentence := range textkit.SplitSentences(text) {
				sentenceLengths = append(sentenceLengths, len(textkit.Tokenize(sentence)))
			}
			if strings.Contains(text, "?") {
				questionPosts++
			}
			if textkit.HasEmoji(text) {
				emojiPosts++
			}
			// Link rate looks at the raw text: URLs are stripped by Normalize.
			if strings.Contains(post.Text, "http") || strings.Contains(post.Text, "www.") {
				linkPosts++
			}

			if len(words) >= 3 {
				openers.add(strings.Join(words[:3], " "))
				closers.add(strings.Join(words[len(words)-3:], " "))
			}
			for i := 0; i+2 < len(words); i++ {
				phrase := words[i : i+3]
				if allStopwords(phrase) {
					continue
				}
				phrases.add(strings.Join(phrase, " "))
			}
		}

		derived.AvgWordsPerPost[platform] = round2(avgInts(wordCounts))
		derived.AvgSentenceWords[platform] = round2(avgInts(sentenceLengths))
		derived.QuestionRate[platform] = round3(float64(questionPosts) / float64(len(items)))
		derived.EmojiRate[platform] = round3(float64(emojiPosts) / float64(len(items)))
		derived.LinkRate[platform] = round3(float64(linkPosts) / float64(len(items)))
		derived.CommonOpeners[platform] = openers.top(topOpeners)
		derived.CommonClosers[platform] = closers.top(topClosers)
		derived.CommonPhrases[platform] = phrases.top(topPhrases)
	}

	return derived
}

func allStopwords(words []string) bool {
	for _, w := range words {
		if _, ok := stopwords[w]; !ok {
			return false
		}
	}
	return true
}

func avgInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// counter tallies string frequencies while remembering first-seen order so
// that ties rank in encounter order.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) top(n int) []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
