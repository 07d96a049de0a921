// Package entropy provides a coarse word-entropy heuristic for judging
// whether text reads like machine output.
//
// The heuristic is a crude approximation, not a classifier: it is
// unreliable for short texts and makes no guarantee of detecting any
// particular watermarking scheme. Repetitive word choice lowers Shannon
// entropy, which the heuristic reads as a weak signal of generated text.
package entropy

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/dshills/textwash/internal/engine/buffer"
)

// Tunable constants. The thresholds are empirical, carried over from the
// heuristic's original calibration; they are not learned values.
const (
	likelihoodHighBelow   = 3.5 // entropy below this reads as High
	likelihoodMediumBelow = 4.5 // entropy below this reads as Medium
	topWordLimit          = 10
	progressChunk         = 4096 // code points between progress reports
)

// Likelihood is the verdict band derived from word entropy.
type Likelihood uint8

const (
	// LikelihoodIndeterminate means there were no words to measure.
	LikelihoodIndeterminate Likelihood = iota
	LikelihoodLow
	LikelihoodMedium
	LikelihoodHigh
)

// String returns the band name.
func (l Likelihood) String() string {
	switch l {
	case LikelihoodLow:
		return "Low"
	case LikelihoodMedium:
		return "Medium"
	case LikelihoodHigh:
		return "High"
	default:
		return "Indeterminate"
	}
}

// WordCount pairs a word with its occurrence count.
type WordCount struct {
	Word  string
	Count int
}

// Result holds the outcome of one analysis pass.
type Result struct {
	// WordEntropy is the Shannon entropy of the word frequency
	// distribution, in bits. Zero for empty input.
	WordEntropy float64

	Likelihood Likelihood

	// TopWords lists the most frequent words in descending count order,
	// ties broken by first occurrence, capped at ten entries.
	TopWords []WordCount

	// TotalWords is the number of words measured.
	TotalWords int
}

// ProgressFunc receives the number of code points processed so far and
// the total. Called roughly every few thousand code points during the
// scan so an interactive front end can drive a progress bar.
type ProgressFunc func(processed, total int)

// Analyze computes word entropy over the buffer. The context is checked
// between chunks of the linear pass; on cancellation the partial result
// is discarded and ctx.Err() returned. progress may be nil.
func Analyze(ctx context.Context, buf buffer.Buffer, progress ProgressFunc) (Result, error) {
	runes := buf.Runes()
	total := len(runes)

	counts := make(map[string]int)
	var order []string // first-occurrence order
	totalWords := 0

	var word strings.Builder
	flush := func() {
		if word.Len() == 0 {
			return
		}
		w := normalizeWord(word.String())
		word.Reset()
		if w == "" {
			return
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
		totalWords++
	}

	for i, r := range runes {
		if i%progressChunk == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			if progress != nil {
				progress(i, total)
			}
		}
		if unicode.IsSpace(r) {
			flush()
			continue
		}
		word.WriteRune(r)
	}
	flush()
	if progress != nil {
		progress(total, total)
	}

	if totalWords == 0 {
		return Result{Likelihood: LikelihoodIndeterminate}, nil
	}

	h := 0.0
	for _, c := range counts {
		p := float64(c) / float64(totalWords)
		h -= p * math.Log2(p)
	}

	top := make([]WordCount, 0, len(order))
	for _, w := range order {
		top = append(top, WordCount{Word: w, Count: counts[w]})
	}
	// Stable sort keeps first-occurrence order among equal counts.
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	if len(top) > topWordLimit {
		top = top[:topWordLimit]
	}

	return Result{
		WordEntropy: h,
		Likelihood:  likelihoodFor(h),
		TopWords:    top,
		TotalWords:  totalWords,
	}, nil
}

// likelihoodFor maps entropy to a verdict band.
func likelihoodFor(h float64) Likelihood {
	switch {
	case h < likelihoodHighBelow:
		return LikelihoodHigh
	case h < likelihoodMediumBelow:
		return LikelihoodMedium
	default:
		return LikelihoodLow
	}
}

// normalizeWord lowercases a word and strips leading and trailing
// punctuation. Words with no letters or digits vanish entirely.
func normalizeWord(w string) string {
	w = strings.ToLower(w)
	return strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
