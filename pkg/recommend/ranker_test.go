package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vocabEmbedder struct {
	vocab []string
	calls []string
	err   error
}

func newVocabEmbedder() *vocabEmbedder {
	return &vocabEmbedder{vocab: []string{"python", "sql", "guitar", "cooking"}}
}

func (e *vocabEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	e.calls = append(e.calls, text)
	if e.err != nil {
		return nil, e.err
	}
	v := make([]float64, len(e.vocab))
	for _, w := range strings.Fields(text) {
		for i, term := range e.vocab {
			if w == term {
				v[i]++
			}
		}
	}
	return v, nil
}

func ids(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.GroupID
	}
	return out
}

func TestRank_PopularFallback(t *testing.T) {
	embedder := newVocabEmbedder()
	ranker := NewRanker(embedder, Options{})
	groups := []Group{
		{ID: "g-low", Name: "Low", Category: "Cooking", Skills: []string{"cooking"}, Similarity: 0.4},
		{ID: "g-high", Name: "High", Category: "Data", Skills: []string{"sql"}, Similarity: 0.7},
	}

	recs, err := ranker.Rank(context.Background(), nil, groups, map[string]bool{})
	require.NoError(t, err)

	assert.Equal(t, []string{"g-high", "g-low"}, ids(recs))
	assert.Equal(t, 0.7, recs[0].Similarity)
	assert.Equal(t, 0.4, recs[1].Similarity)
	assert.Empty(t, embedder.calls, "fallback path never embeds")
}

func TestRank_PopularFallbackSkipsUnscoredGroups(t *testing.T) {
	ranker := NewRanker(newVocabEmbedder(), Options{})
	groups := []Group{
		{ID: "a", Similarity: 0},
		{ID: "b", Similarity: 0.2},
	}

	recs, err := ranker.Rank(context.Background(), []string{"!!"}, groups, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(recs))
}

func TestRank_ExcludesJoinedGroups(t *testing.T) {
	ranker := NewRanker(newVocabEmbedder(), Options{})
	groups := []Group{
		{ID: "mine", Skills: []string{"sql"}, Similarity: 0.9},
		{ID: "other", Skills: []string{"python"}, Similarity: 0.5},
	}

	for _, userSkills := range [][]string{nil, {"python"}} {
		recs, err := ranker.Rank(context.Background(), userSkills, groups, map[string]bool{"mine": true})
		require.NoError(t, err)
		assert.NotContains(t, ids(recs), "mine")
	}
}

func TestRank_CapAndOrder(t *testing.T) {
	ranker := NewRanker(newVocabEmbedder(), Options{})
	groups := []Group{
		{ID: "g1", Skills: []string{"guitar"}},
		{ID: "g2", Skills: []string{"python", "sql"}},
		{ID: "g3", Skills: []string{"python"}},
		{ID: "g4", Skills: []string{"python", "guitar"}},
		{ID: "g5", Skills: []string{"cooking"}},
	}

	recs, err := ranker.Rank(context.Background(), []string{"Python", "SQL"}, groups, nil)
	require.NoError(t, err)

	require.Len(t, recs, 3)
	assert.Equal(t, "g2", recs[0].GroupID)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Similarity, recs[i].Similarity)
	}
}

func TestRank_SkilllessGroupGetsDefaultSimilarity(t *testing.T) {
	embedder := newVocabEmbedder()
	ranker := NewRanker(embedder, Options{})
	groups := []Group{
		{ID: "empty", Skills: []string{}},
		{ID: "punct", Skills: []string{"??"}},
		{ID: "unrelated", Skills: []string{"cooking"}},
	}

	recs, err := ranker.Rank(context.Background(), []string{"python"}, groups, nil)
	require.NoError(t, err)

	require.Len(t, recs, 3)
	assert.Equal(t, "empty", recs[0].GroupID)
	assert.Equal(t, 0.3, recs[0].Similarity)
	assert.Equal(t, "punct", recs[1].GroupID)
	assert.Equal(t, 0.3, recs[1].Similarity)
	assert.Equal(t, []string{}, recs[0].Skills)
	assert.Equal(t, []string{"python", "cooking"}, embedder.calls)
}

func TestRank_UsesSkillsOfJoinedGroups(t *testing.T) {
	embedder := newVocabEmbedder()
	ranker := NewRanker(embedder, Options{Limit: 5})
	groups := []Group{
		{ID: "joined", Skills: []string{"Guitar", "SQL"}},
		{ID: "candidate", Skills: []string{"guitar"}},
	}

	_, err := ranker.Rank(context.Background(), []string{"SQL", "Python"}, groups, map[string]bool{"joined": true})
	require.NoError(t, err)
	assert.Equal(t, "sql python guitar", embedder.calls[0])
}

func TestRank_EmbedErrorIsReturned(t *testing.T) {
	embedder := newVocabEmbedder()
	embedder.err = errors.New("offline")
	ranker := NewRanker(embedder, Options{})

	_, err := ranker.Rank(context.Background(), []string{"python"}, []Group{{ID: "g", Skills: []string{"sql"}}}, nil)
	assert.Error(t, err)
}

func TestMergeSkills(t *testing.T) {
	groups := []Group{
		{ID: "a", Skills: []string{"SQL", "Go"}},
		{ID: "b", Skills: []string{"Rust"}},
	}
	got := MergeSkills([]string{"Python", "SQL"}, groups, map[string]bool{"a": true})
	assert.Equal(t, []string{"Python", "SQL", "Go"}, got)
}
