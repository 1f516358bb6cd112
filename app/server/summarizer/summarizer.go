// Package summarizer digests raw text or a fetched article into the title,
// summary and keywords a post stores. Handlers only see the Summarizer
// interface; the bundled implementation is a plain frequency-based
// extractive pass.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
	"unicode"
)

type Digest struct {
	Title    string
	Summary  string
	Body     string
	Keywords []string
}

type Summarizer interface {
	// FromText digests pasted text, keeping at most the given number of
	// summary sentences.
	FromText(ctx context.Context, text string, sentences int) (*Digest, error)
	// FromURL fetches the page at url and digests its readable text.
	FromURL(ctx context.Context, url string) (*Digest, error)
}

const (
	fetchTimeout  = 15 * time.Second
	maxFetchBytes = 2 << 20
	keywordCount  = 5
)

type Extractive struct {
	client *http.Client
}

var _ Summarizer = (*Extractive)(nil)

func NewExtractive() *Extractive {
	return &Extractive{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

func (e *Extractive) FromText(_ context.Context, text string, sentences int) (*Digest, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("empty text")
	}
	if sentences < 1 {
		sentences = 3
	}

	split := splitSentences(text)
	freq := wordFrequencies(text)

	return &Digest{
		Title:    clipTitle(split[0]),
		Summary:  strings.Join(topSentences(split, freq, sentences), " "),
		Body:     text,
		Keywords: topKeywords(freq, keywordCount),
	}, nil
}

func (e *Extractive) FromURL(ctx context.Context, url string) (*Digest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build article request: %w", err)
	}

	res, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch article: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch article: unexpected status %d", res.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("read article: %w", err)
	}

	title, text := stripHTML(string(raw))
	digest, err := e.FromText(ctx, text, 3)
	if err != nil {
		return nil, err
	}
	if title != "" {
		digest.Title = clipTitle(title)
	}

	return digest, nil
}

// stripHTML pulls the document title and flattens the markup into plain
// text, dropping script and style content wholesale.
func stripHTML(doc string) (title, text string) {
	var (
		b       strings.Builder
		inTag   bool
		skip    string // closing tag we are waiting for
		tagName strings.Builder
	)

	lower := strings.ToLower(doc)
	if start := strings.Index(lower, "<title>"); start >= 0 {
		if end := strings.Index(lower[start:], "</title>"); end > 0 {
			title = strings.TrimSpace(doc[start+len("<title>") : start+end])
		}
	}

	for i := 0; i < len(doc); i++ {
		ch := doc[i]
		if inTag {
			if ch == '>' {
				inTag = false
				name := strings.ToLower(strings.TrimSpace(tagName.String()))
				switch {
				case skip == "" && (name == "script" || name == "style"):
					skip = "/" + name
				case skip != "" && name == skip:
					skip = ""
				}
				tagName.Reset()
			} else {
				tagName.WriteByte(ch)
			}
			continue
		}
		if ch == '<' {
			inTag = true
			b.WriteByte(' ')
			continue
		}
		if skip == "" {
			b.WriteByte(ch)
		}
	}

	return title, strings.Join(strings.Fields(b.String()), " ")
}

func splitSentences(text string) []string {
	var out []string
	var cur strings.Builder

	for _, r := range text {
		cur.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(cur.String()); s != "" {
				out = append(out, s)
			}
			cur.Reset()
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		out = append(out, s)
	}

	return out
}

func wordFrequencies(text string) map[string]int {
	freq := make(map[string]int)
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		if len(w) < 3 || stopwords[w] {
			continue
		}
		freq[w]++
	}
	return freq
}

// topSentences scores each sentence by the frequencies of its words and
// returns the best n in original document order.
func topSentences(sentences []string, freq map[string]int, n int) []string {
	if len(sentences) <= n {
		return sentences
	}

	type scored struct {
		index int
		score int
	}
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		sum := 0
		for w := range wordFrequencies(s) {
			sum += freq[w]
		}
		ranked[i] = scored{index: i, score: sum}
	}

	sort.Slice(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	ranked = ranked[:n]
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].index < ranked[j].index })

	out := make([]string, 0, n)
	for _, r := range ranked {
		out = append(out, sentences[r.index])
	}
	return out
}

func topKeywords(freq map[string]int, n int) []string {
	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > n {
		words = words[:n]
	}
	return words
}

func clipTitle(s string) string {
	s = strings.TrimRight(strings.TrimSpace(s), ".!?")
	if len(s) > 80 {
		s = strings.TrimSpace(s[:80])
	}
	return s
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "her": true,
	"was": true, "one": true, "our": true, "out": true, "his": true,
	"has": true, "had": true, "have": true, "this": true, "that": true,
	"with": true, "they": true, "them": true, "from": true, "she": true,
	"will": true, "would": true, "there": true, "their": true, "what": true,
	"about": true, "which": true, "when": true, "were": true, "been": true,
	"into": true, "more": true, "also": true, "some": true, "than": true,
	"its": true, "your": true, "who": true, "how": true, "other": true,
}
