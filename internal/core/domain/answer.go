package domain

// SnippetMaxLen bounds the length of citation snippets in bytes.
const SnippetMaxLen = 160

// Citation references one chunk that was forwarded to generation.
type Citation struct {
	// DocumentID identifies the cited document.
	DocumentID string

	// DocumentName is the human-readable source name.
	DocumentName string

	// ChunkIndex is the chunk's sequence index within the document.
	ChunkIndex int

	// Snippet is a bounded-length excerpt from the chunk text.
	Snippet string
}

// Answer is the query-time response.
type Answer struct {
	// Text is the generated answer, or the abstention message.
	Text string

	// Confidence is the gate's normalised confidence in [0,1].
	Confidence float64

	// Abstained is true when the confidence gate withheld generation.
	Abstained bool

	// Citations reference exactly the chunks forwarded to generation,
	// in presentation order. Empty when abstained.
	Citations []Citation

	// LatencyMS is the end-to-end request latency in milliseconds.
	LatencyMS int64

	// FromCache is true when the answer was served from the response cache.
	FromCache bool
}

// Snippet extracts a citation snippet from chunk text, truncated at a
// word boundary to at most SnippetMaxLen bytes.
func Snippet(text string) string {
	if len(text) <= SnippetMaxLen {
		return text
	}
	cut := SnippetMaxLen
	for cut > 0 && text[cut] != ' ' && text[cut] != '\n' && text[cut] != '\t' {
		cut--
	}
	if cut == 0 {
		cut = SnippetMaxLen
	}
	return text[:cut] + "..."
}
