package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/numan-developer-2/RAGSystem-Company/internal/core/domain"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/ports/driven"
	"github.com/numan-developer-2/RAGSystem-Company/internal/core/ports/driving"
	"github.com/numan-developer-2/RAGSystem-Company/internal/index/lexical"
	"github.com/numan-developer-2/RAGSystem-Company/internal/index/snapshot"
	"github.com/numan-developer-2/RAGSystem-Company/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// AbstentionText is returned instead of a generated answer when the
// confidence gate withholds generation.
const AbstentionText = "I don't have enough information in the indexed documents to answer that confidently."

// systemPrompt instructs the model to stay inside the provided passages.
const systemPrompt = `You are a question answering assistant. Answer using ONLY the numbered passages provided. ` +
	`Cite passages by number, like [1]. If the passages do not contain the answer, say you don't know.`

// QueryService answers questions against the published snapshot.
type QueryService struct {
	holder   *snapshot.Holder
	embedder driven.EmbeddingService
	llm      driven.LLMService
	reranker driven.Reranker
	cache    driven.AnswerCache

	minConfidence float64
	ambiguityGap  float64
	maxTurns      int
}

// QueryOption configures the service.
type QueryOption func(*QueryService)

// WithReranker wires the optional cross-encoder stage.
func WithReranker(r driven.Reranker) QueryOption {
	return func(s *QueryService) { s.reranker = r }
}

// WithCache wires the answer cache.
func WithCache(c driven.AnswerCache) QueryOption {
	return func(s *QueryService) { s.cache = c }
}

// WithConfidenceGate overrides the abstention thresholds.
func WithConfidenceGate(minConfidence, ambiguityGap float64) QueryOption {
	return func(s *QueryService) {
		s.minConfidence = minConfidence
		s.ambiguityGap = ambiguityGap
	}
}

// WithMaxTurns bounds the conversation context forwarded to generation.
func WithMaxTurns(n int) QueryOption {
	return func(s *QueryService) {
		if n > 0 {
			s.maxTurns = n
		}
	}
}

// NewQueryService creates a query service.
func NewQueryService(
	holder *snapshot.Holder,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	opts ...QueryOption,
) *QueryService {
	s := &QueryService{
		holder:        holder,
		embedder:      embedder,
		llm:           llm,
		minConfidence: domain.DefaultMinConfidence,
		ambiguityGap:  domain.DefaultAmbiguityGap,
		maxTurns:      domain.DefaultMaxTurns,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// vecHit is one vector search result carried into fusion.
type vecHit struct {
	ord int
	sim float64
}

// candidate is one chunk ordinal moving through the retrieval stages.
// vectorRaw keeps the un-normalised cosine similarity for the gate.
type candidate struct {
	ord       int
	lexical   float64
	vector    float64
	vectorRaw float64
	fused     float64
	final     float64
	reranked  bool
}

// Ask runs the full query pipeline: retrieval, re-ranking, the
// confidence gate and generation. An abstention is a successful answer
// with Abstained set, not an error.
func (s *QueryService) Ask(ctx context.Context, req domain.QueryRequest) (*domain.Answer, error) {
	started := time.Now()

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}
	opts := s.fillDefaults(req.Options)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	key := cacheKey(question, opts)
	if s.cache != nil && len(req.Context) == 0 {
		if cached, ok := s.cache.Get(key); ok {
			logger.Debug("Answer cache hit")
			hit := *cached
			hit.FromCache = true
			hit.LatencyMS = time.Since(started).Milliseconds()
			return &hit, nil
		}
	}

	snap, result, err := s.retrieve(ctx, question, opts)
	if err != nil {
		return nil, err
	}

	answer := s.gate(result)
	if answer == nil {
		answer, err = s.generate(ctx, snap, question, req, result)
		if err != nil {
			return nil, err
		}
	}
	answer.LatencyMS = time.Since(started).Milliseconds()

	// Conversational answers depend on prior turns, so only standalone
	// questions are cacheable.
	if s.cache != nil && len(req.Context) == 0 {
		s.cache.Set(key, answer)
	}
	return answer, nil
}

// Retrieve runs retrieval and re-ranking only, without generation.
func (s *QueryService) Retrieve(ctx context.Context, question string, opts domain.RetrievalOptions) (*domain.RetrievalResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}
	opts = s.fillDefaults(opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	_, result, err := s.retrieve(ctx, question, opts)
	return result, err
}

// fillDefaults replaces an unset top_k with the configured default.
// Alpha and Rerank pass through untouched: zero alpha is pure lexical
// weighting and false disables re-ranking, both meaningful settings
// rather than gaps to repair. Callers wanting the standard parameters
// start from DefaultRetrievalOptions.
func (s *QueryService) fillDefaults(opts domain.RetrievalOptions) domain.RetrievalOptions {
	if opts.TopK == 0 {
		opts.TopK = domain.DefaultTopK
	}
	return opts
}

// rerankDepth bounds how many fused candidates the cross-encoder sees.
func rerankDepth(topK int) int {
	depth := 3 * topK
	if depth > domain.MaxRerankCandidates {
		depth = domain.MaxRerankCandidates
	}
	return depth
}

// retrieve runs both retrieval signals in parallel, fuses them and
// optionally re-ranks, returning candidates best first.
func (s *QueryService) retrieve(ctx context.Context, question string, opts domain.RetrievalOptions) (*snapshot.Snapshot, *domain.RetrievalResult, error) {
	snap := s.holder.Load()
	if snap == nil {
		return nil, nil, domain.ErrNoSnapshot
	}

	logger.Section("Retrieval")
	logger.Debug("Question: %q, top_k=%d, alpha=%.2f, rerank=%t", question, opts.TopK, opts.Alpha, opts.Rerank)

	depth := opts.TopK
	if opts.Rerank && s.reranker != nil {
		depth = rerankDepth(opts.TopK)
	}

	// Both signals read the same immutable snapshot, so they can run
	// concurrently with no locking.
	var lexScores map[int]float64
	var vecHits []vecHit
	var vecErr error

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		lexScores = snap.Lexical.Scores(lexical.Tokenize(question))
	}()

	go func() {
		defer wg.Done()
		embedding, err := s.embedder.Embed(ctx, question)
		if err != nil {
			vecErr = fmt.Errorf("embed query: %w", err)
			return
		}
		hits, err := snap.Vector.Search(embedding, depth)
		if err != nil {
			vecErr = fmt.Errorf("vector search: %w", err)
			return
		}
		for _, h := range hits {
			vecHits = append(vecHits, vecHit{ord: h.Ord, sim: h.Similarity})
		}
	}()

	wg.Wait()

	// An embedding failure fails this request only; the snapshot and
	// other in-flight queries are untouched.
	if vecErr != nil {
		return nil, nil, vecErr
	}
	logger.Debug("Signals: %d lexical matches, %d vector hits", len(lexScores), len(vecHits))

	candidates := fuse(lexScores, vecHits, opts.Alpha)
	if len(candidates) > depth {
		candidates = candidates[:depth]
	}

	if opts.Rerank && s.reranker != nil && len(candidates) > 0 {
		s.rerank(ctx, snap, question, candidates)
	}

	sortByFinal(candidates)
	if len(candidates) > opts.TopK {
		candidates = candidates[:opts.TopK]
	}

	result := &domain.RetrievalResult{Chunks: make([]domain.RetrievedChunk, len(candidates))}
	for i, c := range candidates {
		chunk := snap.ChunkAt(c.ord)
		result.Chunks[i] = domain.RetrievedChunk{
			Chunk:        chunk,
			Score:        c.final,
			LexicalScore: c.lexical,
			VectorScore:  c.vector,
			Reranked:     c.reranked,
		}
		logger.Debug("  %d. %s#%d score=%.3f lexical=%.3f vector=%.3f reranked=%t",
			i+1, chunk.DocumentName, chunk.Seq, c.final, c.lexical, c.vector, c.reranked)
	}
	if len(candidates) > 0 {
		result.Confidence = confidence(candidates[0], vecHits)
	}
	logger.Info("Retrieved %d chunks, confidence %.3f", len(result.Chunks), result.Confidence)
	return snap, result, nil
}

// confidence extracts the absolute evidence strength of the top
// candidate. Fused scores are relative to the candidate set, so the
// gate needs either the cross-encoder score or a raw similarity. A
// winner carried by the lexical signal alone has no similarity of its
// own; the gate then uses the best similarity the query reached
// anywhere in the corpus, so exact-term evidence is not discarded as
// zero.
func confidence(top *candidate, vecHits []vecHit) float64 {
	if top.reranked {
		return clamp01(top.final)
	}
	if top.vectorRaw == 0 {
		var best float64
		for _, h := range vecHits {
			if h.sim > best {
				best = h.sim
			}
		}
		return clamp01(best)
	}
	return clamp01(top.vectorRaw)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// fuse min-max normalises each signal over the candidate union and
// combines them as alpha*vector + (1-alpha)*lexical, sorted best first
// with ordinal tie-breaks.
func fuse(lexScores map[int]float64, vecHits []vecHit, alpha float64) []*candidate {
	byOrd := make(map[int]*candidate)
	for ord, score := range lexScores {
		byOrd[ord] = &candidate{ord: ord, lexical: score}
	}
	for _, h := range vecHits {
		c, ok := byOrd[h.ord]
		if !ok {
			c = &candidate{ord: h.ord}
			byOrd[h.ord] = c
		}
		c.vector = h.sim
		c.vectorRaw = h.sim
	}

	candidates := make([]*candidate, 0, len(byOrd))
	for _, c := range byOrd {
		candidates = append(candidates, c)
	}

	normalise(candidates, func(c *candidate) float64 { return c.lexical }, func(c *candidate, v float64) { c.lexical = v })
	normalise(candidates, func(c *candidate) float64 { return c.vector }, func(c *candidate, v float64) { c.vector = v })

	for _, c := range candidates {
		c.fused = alpha*c.vector + (1-alpha)*c.lexical
		c.final = c.fused
	}

	sortByFinal(candidates)
	return candidates
}

// normalise rescales one signal to [0,1] across the candidate set.
// A flat signal carries no ordering information: all-zero stays zero,
// uniformly positive maps to one.
func normalise(candidates []*candidate, get func(*candidate) float64, set func(*candidate, float64)) {
	if len(candidates) == 0 {
		return
	}
	min, max := get(candidates[0]), get(candidates[0])
	for _, c := range candidates[1:] {
		v := get(c)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if max == min {
		if max > 0 {
			for _, c := range candidates {
				set(c, 1)
			}
		}
		return
	}
	for _, c := range candidates {
		set(c, (get(c)-min)/(max-min))
	}
}

// rerank replaces fused scores with cross-encoder scores. Failure keeps
// the fused order: degraded but functional, never fatal.
func (s *QueryService) rerank(ctx context.Context, snap *snapshot.Snapshot, question string, candidates []*candidate) {
	passages := make([]string, len(candidates))
	for i, c := range candidates {
		passages[i] = snap.ChunkAt(c.ord).Text
	}

	scores, err := s.reranker.Score(ctx, question, passages)
	if err != nil || len(scores) != len(candidates) {
		logger.Warn("Re-ranking unavailable, keeping fused order: %v", err)
		return
	}

	for i, c := range candidates {
		c.final = scores[i]
		c.reranked = true
	}
	logger.Debug("Re-ranked %d candidates", len(candidates))
}

// sortByFinal orders candidates best first, ties broken by chunk
// ordinal so equal scores have a deterministic order.
func sortByFinal(candidates []*candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].final != candidates[j].final {
			return candidates[i].final > candidates[j].final
		}
		return candidates[i].ord < candidates[j].ord
	})
}

// gate applies the confidence gate. A non-nil return is an abstention;
// nil means generation may proceed. Confidence exactly at the threshold
// answers; only strictly-below abstains.
func (s *QueryService) gate(result *domain.RetrievalResult) *domain.Answer {
	if len(result.Chunks) == 0 {
		logger.Info("No candidates, abstaining")
		return &domain.Answer{Text: AbstentionText, Abstained: true}
	}

	conf := result.Confidence
	if conf < s.minConfidence {
		logger.Info("Confidence %.3f below threshold %.3f, abstaining", conf, s.minConfidence)
		return &domain.Answer{Text: AbstentionText, Abstained: true, Confidence: conf}
	}

	// A marginal best that barely leads the runner-up is a guess, not
	// an answer. Strong evidence with a close runner-up still answers.
	if len(result.Chunks) > 1 {
		gap := result.Chunks[0].Score - result.Chunks[1].Score
		if conf < s.minConfidence+s.ambiguityGap && gap < s.ambiguityGap {
			logger.Info("Marginal confidence %.3f with gap %.3f, abstaining", conf, gap)
			return &domain.Answer{Text: AbstentionText, Abstained: true, Confidence: conf}
		}
	}
	return nil
}

// generate assembles the grounded prompt, calls the model and attaches
// citations for exactly the forwarded chunks.
func (s *QueryService) generate(ctx context.Context, snap *snapshot.Snapshot, question string, req domain.QueryRequest, result *domain.RetrievalResult) (*domain.Answer, error) {
	var prompt strings.Builder
	prompt.WriteString(systemPrompt)
	prompt.WriteString("\n\nPassages:\n")
	for i, rc := range result.Chunks {
		fmt.Fprintf(&prompt, "[%d] (%s) %s\n", i+1, rc.Chunk.DocumentName, rc.Chunk.Text)
	}

	messages := []driven.ChatMessage{{Role: "system", Content: prompt.String()}}

	// Oldest turns beyond the ring fall off; the most recent context
	// stays adjacent to the question.
	turns := req.Context
	if len(turns) > s.maxTurns {
		turns = turns[len(turns)-s.maxTurns:]
	}
	for _, turn := range turns {
		messages = append(messages,
			driven.ChatMessage{Role: "user", Content: turn.Question},
			driven.ChatMessage{Role: "assistant", Content: turn.Answer},
		)
	}
	messages = append(messages, driven.ChatMessage{Role: "user", Content: question})

	logger.Section("Generation")
	logger.Debug("Prompting %s with %d passages, %d prior turns", s.llm.ModelName(), len(result.Chunks), len(turns))

	text, err := s.llm.Chat(ctx, messages, driven.GenerateOptions{Params: req.ModelParams})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	citations := make([]domain.Citation, len(result.Chunks))
	for i, rc := range result.Chunks {
		citations[i] = domain.Citation{
			DocumentID:   rc.Chunk.DocumentID,
			DocumentName: rc.Chunk.DocumentName,
			ChunkIndex:   rc.Chunk.Seq,
			Snippet:      domain.Snippet(rc.Chunk.Text),
		}
	}

	return &domain.Answer{
		Text:       strings.TrimSpace(text),
		Confidence: result.Confidence,
		Citations:  citations,
	}, nil
}

// cacheKey derives the answer cache key from the normalised question
// and every parameter that changes retrieval.
func cacheKey(question string, opts domain.RetrievalOptions) string {
	return fmt.Sprintf("%s|k=%d|a=%.4f|r=%t", strings.ToLower(question), opts.TopK, opts.Alpha, opts.Rerank)
}
