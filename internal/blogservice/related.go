package blogservice

import (
	"sort"
	"strings"
)

const DefaultRelatedLimit = 3

// rankRelated orders candidates by the number of tags they share with tags,
// then by publication date and id, newest first. Candidates sharing no tag are
// dropped.
func rankRelated(tags []string, candidates []Blog, limit int) []Blog {
	want := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		want[normalizeTag(t)] = struct{}{}
	}

	type scored struct {
		blog  Blog
		score int
	}

	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		score := 0
		for _, t := range c.Tags {
			if _, ok := want[normalizeTag(t)]; ok {
				score++
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{blog: c, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if ta, tb := publishedUnix(a.blog), publishedUnix(b.blog); ta != tb {
			return ta > tb
		}
		return a.blog.ID > b.blog.ID
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	blogs := make([]Blog, len(ranked))
	for i, r := range ranked {
		blogs[i] = r.blog
	}

	return blogs
}

func publishedUnix(b Blog) int64 {
	if b.PublishedAt == nil {
		return 0
	}
	return b.PublishedAt.Unix()
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

// normalizeTags lower-cases, trims and de-duplicates tags, keeping order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = normalizeTag(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
