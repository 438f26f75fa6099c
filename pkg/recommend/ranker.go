package recommend

import (
	"context"
	"fmt"
	"sort"

	"skill-exchange-ai/pkg/classifier"
	"skill-exchange-ai/pkg/embedding"
	"skill-exchange-ai/pkg/utils"
)

const (
	DefaultLimit      = 3
	DefaultSimilarity = 0.3
)

// Group is a classified group as seen by the ranker.
type Group struct {
	ID         string
	Name       string
	Category   string
	Skills     []string
	Similarity float64
}

type Recommendation struct {
	GroupID    string
	GroupName  string
	Category   string
	Skills     []string
	Similarity float64
}

type Options struct {
	// Limit caps the number of recommendations.
	Limit int
	// DefaultSimilarity scores groups whose skill set is empty.
	DefaultSimilarity float64
}

type Ranker struct {
	embedder          embedding.TextEmbedder
	limit             int
	defaultSimilarity float64
}

func NewRanker(embedder embedding.TextEmbedder, opts Options) *Ranker {
	r := &Ranker{
		embedder:          embedder,
		limit:             opts.Limit,
		defaultSimilarity: opts.DefaultSimilarity,
	}
	if r.limit <= 0 {
		r.limit = DefaultLimit
	}
	if r.defaultSimilarity <= 0 {
		r.defaultSimilarity = DefaultSimilarity
	}
	return r
}

// MergeSkills unions the user's skills with those of the groups they belong to,
// keeping first-seen order and dropping duplicates.
func MergeSkills(userSkills []string, groups []Group, joined map[string]bool) []string {
	seen := make(map[string]bool)
	merged := make([]string, 0, len(userSkills))
	add := func(skill string) {
		if seen[skill] {
			return
		}
		seen[skill] = true
		merged = append(merged, skill)
	}

	for _, s := range userSkills {
		add(s)
	}
	for _, g := range groups {
		if !joined[g.ID] {
			continue
		}
		for _, s := range g.Skills {
			add(s)
		}
	}
	return merged
}

// Rank orders the groups the user has not joined. With no usable skill text it falls
// back to the groups' own classification scores; otherwise each group is scored by
// the similarity between the user's skills and the group's skills.
// The result is sorted by similarity, ties keep the order of groups.
func (r *Ranker) Rank(ctx context.Context, userSkills []string, groups []Group, joined map[string]bool) ([]Recommendation, error) {
	userText := utils.NormalizeJoin(MergeSkills(userSkills, groups, joined))

	var recs []Recommendation
	if userText == "" {
		recs = r.popular(groups, joined)
	} else {
		scored, err := r.bySkills(ctx, userText, groups, joined)
		if err != nil {
			return nil, err
		}
		recs = scored
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Similarity > recs[j].Similarity
	})
	if len(recs) > r.limit {
		recs = recs[:r.limit]
	}
	return recs, nil
}

func (r *Ranker) popular(groups []Group, joined map[string]bool) []Recommendation {
	recs := make([]Recommendation, 0, len(groups))
	for _, g := range groups {
		if joined[g.ID] || g.Similarity <= 0 {
			continue
		}
		recs = append(recs, toRecommendation(g, g.Similarity))
	}
	return recs
}

func (r *Ranker) bySkills(ctx context.Context, userText string, groups []Group, joined map[string]bool) ([]Recommendation, error) {
	userVector, err := r.embedder.Embed(ctx, userText)
	if err != nil {
		return nil, fmt.Errorf("embed user skills: %w", err)
	}

	recs := make([]Recommendation, 0, len(groups))
	for _, g := range groups {
		if joined[g.ID] {
			continue
		}

		groupText := utils.NormalizeJoin(g.Skills)
		if groupText == "" {
			recs = append(recs, toRecommendation(g, r.defaultSimilarity))
			continue
		}

		groupVector, err := r.embedder.Embed(ctx, groupText)
		if err != nil {
			return nil, fmt.Errorf("embed skills of group %s: %w", g.ID, err)
		}
		recs = append(recs, toRecommendation(g, classifier.Cosine(userVector, groupVector)))
	}
	return recs, nil
}

func toRecommendation(g Group, similarity float64) Recommendation {
	skills := g.Skills
	if skills == nil {
		skills = []string{}
	}
	return Recommendation{
		GroupID:    g.ID,
		GroupName:  g.Name,
		Category:   g.Category,
		Skills:     skills,
		Similarity: similarity,
	}
}
