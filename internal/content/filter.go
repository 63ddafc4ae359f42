package content

import "strings"

const AllCategories = "All"

// Categories are the blog filter tabs in display order.
var Categories = []string{AllCategories, "AI Automation", "Lead Generation", "Revenue Intelligence", "Case Studies"}

// FilterPosts keeps posts in category (or any, for "All"/"") whose title or
// summary contains query, case-insensitively. The query is matched as typed;
// surrounding spaces are significant.
func FilterPosts(posts []BlogPost, category, query string) []BlogPost {
	category = strings.TrimSpace(category)
	q := strings.ToLower(query)

	out := make([]BlogPost, 0, len(posts))
	for _, p := range posts {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Summary), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}
