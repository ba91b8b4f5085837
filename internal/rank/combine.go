package rank

import "sort"

// Options tunes the Hybrid Ranker: the TF-IDF/KNN combiner weights and the
// acceptance thresholds. Shares its weight and threshold fields with
// config.RankConfig; TopK has no config field, and RankConfig.Enabled has
// no counterpart here.
type Options struct {
	TfidfWeight       float64
	KnnWeight         float64
	CombinedThreshold float64
	GapThreshold      float64
	TopK              int
}

// DefaultOptions returns the Hybrid Ranker's published defaults.
func DefaultOptions() Options {
	return Options{
		TfidfWeight:       0.4,
		KnnWeight:         0.6,
		CombinedThreshold: 0.7,
		GapThreshold:      0.15,
		TopK:              DefaultTopK,
	}
}

// scored is one candidate target with its combined score, used internally
// to find the first- and second-place results for the gap check.
type scored struct {
	key      string
	combined float64
}

// Decide picks the best candidate from scores against opts' acceptance
// thresholds. Returns ("", false) when there are no candidates, or the
// winner fails either the combined-score floor or the first-second gap.
func (o Options) Decide(scores map[string]float64) (string, bool) {
	if len(scores) == 0 {
		return "", false
	}

	var ranked []scored
	for key, s := range scores {
		ranked = append(ranked, scored{key: key, combined: s})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].combined != ranked[j].combined {
			return ranked[i].combined > ranked[j].combined
		}
		return ranked[i].key < ranked[j].key
	})

	best := ranked[0]
	if best.combined < o.CombinedThreshold {
		return "", false
	}
	if len(ranked) > 1 {
		gap := best.combined - ranked[1].combined
		if gap < o.GapThreshold {
			return "", false
		}
	}
	return best.key, true
}

// Combined blends a TF-IDF and a KNN similarity score per opts' weights.
func (o Options) Combined(tfidf, knn float64) float64 {
	return o.TfidfWeight*tfidf + o.KnnWeight*knn
}
