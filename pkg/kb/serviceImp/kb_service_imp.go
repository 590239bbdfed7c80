package serviceImp

import (
	"math"
	"sort"
	"strings"

	"agrocredit/entities"
	"agrocredit/pkg/kb/embedder"
	"agrocredit/pkg/kb/repository"
)

type Svc struct {
	r   repository.AdvisoryRepository
	emb *embedder.Client
}

func New(r repository.AdvisoryRepository, e *embedder.Client) *Svc { return &Svc{r: r, emb: e} }

// chunkText splits on newline boundaries once a chunk reaches maxRunes.
func chunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = 1000
	}
	var parts []string
	cur := strings.Builder{}
	count := 0
	for _, r := range text {
		cur.WriteRune(r)
		count++
		if count >= maxRunes && r == '\n' {
			parts = append(parts, cur.String())
			cur.Reset()
			count = 0
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

func (s *Svc) UpsertDocument(title, tags, text, sourceURL string) (*entities.AdvisoryDoc, int, error) {
	d := &entities.AdvisoryDoc{Title: title, Tags: tags, SourceURL: sourceURL}
	if err := s.r.CreateDoc(d); err != nil {
		return nil, 0, err
	}

	chs := chunkText(text, 1000)
	if len(chs) == 0 {
		return d, 0, nil
	}

	var embs [][]float32
	if s.emb.Enabled() {
		// failed embeddings are dropped, keyword search still works
		embs, _ = s.emb.Embed(chs)
	}

	rows := make([]entities.AdvisoryChunk, len(chs))
	for i := range chs {
		var embBytes []byte
		if i < len(embs) {
			embBytes = embedder.FloatsToBytes(embs[i])
		}
		rows[i] = entities.AdvisoryChunk{DocID: d.DocID, Ord: i, Text: chs[i], Embedding: embBytes}
	}
	if err := s.r.BulkInsertChunks(rows); err != nil {
		return nil, 0, err
	}
	return d, len(rows), nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := 0; i < len(a) && i < len(b); i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Search ranks chunks by embedding cosine similarity when the embedder is
// configured, otherwise by keyword hits on the query terms.
func (s *Svc) Search(query string, k int) ([]entities.AdvisoryChunk, error) {
	q := strings.TrimSpace(query)
	if q == "" || k <= 0 {
		return nil, nil
	}

	var qvec []float32
	if s.emb.Enabled() {
		if vecs, err := s.emb.Embed([]string{q}); err == nil && len(vecs) > 0 {
			qvec = vecs[0]
		}
	}

	chunks, err := s.r.AllChunks()
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	type scored struct {
		ch entities.AdvisoryChunk
		sc float64
	}
	list := make([]scored, 0, len(chunks))

	if len(qvec) > 0 {
		for _, ch := range chunks {
			v := embedder.BytesToFloats(ch.Embedding)
			if len(v) != len(qvec) {
				continue
			}
			if sc := cosine(qvec, v); sc > 0 {
				list = append(list, scored{ch, sc})
			}
		}
	} else {
		terms := strings.Fields(strings.ToLower(q))
		for _, ch := range chunks {
			low := strings.ToLower(ch.Text)
			sc := 0.0
			for _, t := range terms {
				if strings.Contains(low, t) {
					sc++
				}
			}
			if sc > 0 {
				list = append(list, scored{ch, sc})
			}
		}
	}

	sort.Slice(list, func(i, j int) bool { return list[i].sc > list[j].sc })
	if k > len(list) {
		k = len(list)
	}
	out := make([]entities.AdvisoryChunk, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, list[i].ch)
	}
	return out, nil
}

func (s *Svc) DocsMeta(ids []uint) (map[uint]entities.AdvisoryDoc, error) {
	return s.r.DocsByIDs(ids)
}

func (s *Svc) ListDocs() ([]entities.AdvisoryDoc, error) { return s.r.ListDocs() }
