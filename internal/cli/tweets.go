package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/textstats"
)

// maxSalientDocs caps how many per-tweet salient term lines are printed.
const maxSalientDocs = 20

// tweetsOpts holds the command-line flags for the tweets command.
type tweetsOpts struct {
	top           int     // size of the frequency ranking
	minCount      int     // rank by minimum count instead of top-k
	ngrams        int     // rank n-grams instead of single terms
	entity        string  // rank an entity field, "key/subkey"
	salient       float64 // tf-idf threshold for per-tweet salient terms
	caseSensitive bool    // keep the original casing
	keepStop      bool    // keep stop words and stop prefixes
	treemap       string  // write a term frequency treemap here
}

// tweetsCommand creates the tweets command for term statistics.
func (c *CLI) tweetsCommand() *cobra.Command {
	var opts tweetsOpts

	cmd := &cobra.Command{
		Use:   "tweets [tweets.json]",
		Short: "Rank terms across a tweet collection",
		Long: `Rank terms across a tweet collection.

The input is a JSON array of tweets with abridged_text and entities
fields. Texts are tokenized, lowercased and stripped of stop words and
stop prefixes (mentions, hashtags, links) unless told otherwise.

By default the top terms are printed with their counts. --ngrams ranks
word windows, --min-count switches to a count threshold, --entity ranks
an entity field such as hashtags/text, and --salient prints each
tweet's high tf-idf terms. With --treemap the term frequencies are
written as a treemap.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTweets(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.top, "top", 10, "number of terms in the ranking")
	cmd.Flags().IntVar(&opts.minCount, "min-count", 0, "rank every term appearing at least this often")
	cmd.Flags().IntVar(&opts.ngrams, "ngrams", 0, "rank n-grams of this length instead of terms")
	cmd.Flags().StringVar(&opts.entity, "entity", "", "rank an entity field, e.g. hashtags/text or user_mentions/screen_name")
	cmd.Flags().Float64Var(&opts.salient, "salient", 0, "print per-tweet terms with tf-idf above this threshold")
	cmd.Flags().BoolVar(&opts.caseSensitive, "case-sensitive", false, "keep the original casing")
	cmd.Flags().BoolVar(&opts.keepStop, "keep-stop-words", false, "keep stop words and stop prefixes")
	cmd.Flags().StringVar(&opts.treemap, "treemap", "", "write a term frequency treemap to this file")

	return cmd
}

// runTweets loads the collection and prints the requested ranking.
func (c *CLI) runTweets(ctx context.Context, path string, opts tweetsOpts) error {
	prog := newProgress(c.Logger)
	tweets, err := textstats.LoadTweets(path)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d tweets", len(tweets)))

	docs := textstats.Texts(tweets, opts.caseSensitive, !opts.keepStop)

	switch {
	case opts.salient > 0:
		if err := printSalient(docs, opts.salient); err != nil {
			return err
		}

	case opts.ngrams > 0:
		var grams []string
		for _, doc := range docs {
			g, err := textstats.NGrams(doc, opts.ngrams)
			if err != nil {
				return err
			}
			grams = append(grams, g...)
		}
		if err := printRanked(fmt.Sprintf("Top %d-grams", opts.ngrams), grams, opts.top); err != nil {
			return err
		}

	case opts.entity != "":
		key, subkey, ok := strings.Cut(opts.entity, "/")
		if !ok || key == "" || subkey == "" {
			return errors.New(errors.ErrCodeInvalidParams,
				"entity must be key/subkey, e.g. hashtags/text")
		}
		values := textstats.Entities(tweets, key, subkey, opts.caseSensitive)
		if err := printRanked("Top "+key, values, opts.top); err != nil {
			return err
		}

	case opts.minCount > 0:
		all := flattenDocs(docs)
		terms, err := textstats.MinCount(all, opts.minCount)
		if err != nil {
			return err
		}
		counts := textstats.CountTokens(all)
		printInfo("Terms appearing at least %d times", opts.minCount)
		for _, tok := range terms {
			printDetail("%5d  %s", counts[tok], tok)
		}

	default:
		if err := printRanked("Top terms", flattenDocs(docs), opts.top); err != nil {
			return err
		}
	}

	if opts.treemap == "" {
		return nil
	}
	root, err := textstats.FrequencyTree(docs, opts.top)
	if err != nil {
		return err
	}
	return c.writeSummaryTree(ctx, root, opts.treemap, "Term frequencies")
}

// printRanked prints the k most frequent tokens with their counts.
func printRanked(title string, tokens []string, k int) error {
	top, err := textstats.TopK(tokens, k)
	if err != nil {
		return err
	}
	counts := textstats.CountTokens(tokens)
	printInfo("%s", title)
	for _, tok := range top {
		printDetail("%5d  %s", counts[tok], tok)
	}
	return nil
}

// printSalient prints each tweet's salient terms, capped so a large
// collection stays readable.
func printSalient(docs [][]string, threshold float64) error {
	salient := textstats.Salient(docs, threshold)

	var nonEmpty int
	for _, terms := range salient {
		if len(terms) > 0 {
			nonEmpty++
		}
	}

	printInfo("Salient terms (tf-idf above %g)", threshold)
	shown := 0
	for i, terms := range salient {
		if len(terms) == 0 {
			continue
		}
		if shown == maxSalientDocs {
			printDetail("... %d more tweets with salient terms", nonEmpty-maxSalientDocs)
			break
		}
		printDetail("tweet %d: %s", i, strings.Join(sortedTerms(terms), ", "))
		shown++
	}
	return nil
}

// sortedTerms flattens a term set into a sorted slice for stable output.
func sortedTerms(set map[string]bool) []string {
	terms := make([]string, 0, len(set))
	for t := range set {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// flattenDocs concatenates the token documents into one token stream.
func flattenDocs(docs [][]string) []string {
	var all []string
	for _, doc := range docs {
		all = append(all, doc...)
	}
	return all
}
