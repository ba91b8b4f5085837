package rank

import (
	"math"
	"sort"
)

// document is one method's token-frequency map plus its total token count,
// cached so query-time TF-IDF doesn't retokenize.
type document struct {
	key string
	tf  map[string]int
	len int
}

// Index is a TF-IDF corpus over one archive's candidate methods: a
// document-frequency table built once, queried many times against the
// other archive's residual methods.
type Index struct {
	docs []document
	df   map[string]int
}

// NewIndex builds a TF-IDF index over methods from their pre-tokenized
// bags; it does no tokenizing itself.
func NewIndex(methods []MethodDoc) *Index {
	idx := &Index{df: make(map[string]int)}
	for _, md := range methods {
		tf := termFrequencies(md.Tokens)
		idx.docs = append(idx.docs, document{key: md.Key, tf: tf, len: len(md.Tokens)})
		for token := range tf {
			idx.df[token]++
		}
	}
	return idx
}

// MethodDoc pairs a method's identity key with its pre-tokenized bag, the
// unit NewIndex and Query operate on so callers control tokenization once.
type MethodDoc struct {
	Key    string
	Tokens []string
}

// idf returns the inverse document frequency for a token against this
// corpus: log(N/df), or 0 for a token never seen in the corpus.
func (idx *Index) idf(token string) float64 {
	df := idx.df[token]
	if df == 0 {
		return 0
	}
	return math.Log(float64(len(idx.docs)) / float64(df))
}

// vector renders a token-frequency map as a sparse TF-IDF vector against
// this index's document frequencies.
func (idx *Index) vector(tf map[string]int, length int) map[string]float64 {
	if length == 0 {
		return nil
	}
	v := make(map[string]float64, len(tf))
	for token, count := range tf {
		w := (float64(count) / float64(length)) * idx.idf(token)
		if w != 0 {
			v[token] = w
		}
	}
	return v
}

// cosineSparse computes cosine similarity between two sparse vectors,
// returning 0 when either norm is zero rather than dividing by it —
// methods with empty instruction/constant streams still tokenize to a
// nonempty DESC/SIZE pair, but a defensive zero keeps the combiner total
// well-defined regardless.
func cosineSparse(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for token, wa := range a {
		normA += wa * wa
		if wb, ok := b[token]; ok {
			dot += wa * wb
		}
	}
	for _, wb := range b {
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Candidate is one scored result from a Query.
type Candidate struct {
	Key   string
	Score float64
}

// Query scores every document in the index against queryTokens and
// returns the top-k by descending cosine similarity, breaking ties by key
// for determinism.
func (idx *Index) Query(queryTokens []string, topK int) []Candidate {
	qtf := termFrequencies(queryTokens)
	qv := idx.vector(qtf, len(queryTokens))

	candidates := make([]Candidate, 0, len(idx.docs))
	for _, d := range idx.docs {
		dv := idx.vector(d.tf, d.len)
		score := cosineSparse(qv, dv)
		if score > 0 {
			candidates = append(candidates, Candidate{Key: d.key, Score: score})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Key < candidates[j].Key
	})
	if topK > 0 && len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates
}

// DefaultTopK is the default number of candidates a TF-IDF query returns.
const DefaultTopK = 20
