package textstats

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Tweet is one record of a tweet collection: the abridged text plus the
// entity lists attached to it (hashtags, user mentions, urls). Entity
// values that are not strings are ignored by [Entities].
type Tweet struct {
	AbridgedText string                      `json:"abridged_text"`
	Entities     map[string][]map[string]any `json:"entities"`
}

// LoadTweets reads a JSON array of tweets from path.
func LoadTweets(path string) ([]Tweet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tweets: %w", err)
	}
	var tweets []Tweet
	if err := json.Unmarshal(data, &tweets); err != nil {
		return nil, fmt.Errorf("decode tweets: %w", err)
	}
	return tweets, nil
}

// Entities collects one entity field across the collection, for example
// key "hashtags" with subkey "text", or key "user_mentions" with subkey
// "screen_name". Values are lowercased unless caseSensitive; entries
// missing the subkey are skipped.
func Entities(tweets []Tweet, key, subkey string, caseSensitive bool) []string {
	var values []string
	for _, t := range tweets {
		for _, entity := range t.Entities[key] {
			value, ok := entity[subkey].(string)
			if !ok {
				continue
			}
			if !caseSensitive {
				value = strings.ToLower(value)
			}
			values = append(values, value)
		}
	}
	return values
}

// Texts preprocesses every tweet's abridged text into a token document,
// ready for [Salient], [InverseDocFreq], or [FrequencyTree].
func Texts(tweets []Tweet, caseSensitive, removeStop bool) [][]string {
	docs := make([][]string, len(tweets))
	for i, t := range tweets {
		docs[i] = Preprocess(t.AbridgedText, caseSensitive, removeStop)
	}
	return docs
}
