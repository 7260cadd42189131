package extract

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// articleTypes are schema.org types describing the article itself
var articleTypes = map[string]bool{
	"newsarticle":          true,
	"article":              true,
	"reportagenewsarticle": true,
	"analysisnewsarticle":  true,
	"opinionnewsarticle":   true,
	"reviewnewsarticle":    true,
	"blogposting":          true,
	"liveblogposting":      true,
}

// jsonLD holds all structured data nodes of a page, flattened from arrays and @graph
type jsonLD struct {
	nodes []map[string]any
	byID  map[string]map[string]any
}

func parseJSONLD(doc *goquery.Document) *jsonLD {
	ld := &jsonLD{byID: map[string]map[string]any{}}
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var v any
		if err := json.Unmarshal([]byte(strings.TrimSpace(s.Text())), &v); err != nil {
			return // broken blocks are common, other blocks may still be fine
		}
		ld.add(v)
	})
	return ld
}

func (ld *jsonLD) add(v any) {
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			ld.add(item)
		}
	case map[string]any:
		if graph, ok := val["@graph"]; ok {
			ld.add(graph)
		}
		ld.nodes = append(ld.nodes, val)
		if id, ok := val["@id"].(string); ok && id != "" {
			ld.byID[id] = val
		}
	}
}

// article returns the first node typed as an article
func (ld *jsonLD) article() map[string]any {
	for _, n := range ld.nodes {
		for _, t := range types(n) {
			if articleTypes[strings.ToLower(t)] {
				return n
			}
		}
	}
	return nil
}

// ofType returns the first node with the given type
func (ld *jsonLD) ofType(typ string) map[string]any {
	for _, n := range ld.nodes {
		for _, t := range types(n) {
			if strings.EqualFold(t, typ) {
				return n
			}
		}
	}
	return nil
}

// deref resolves {"@id": "..."} references to the full node when it is present on the page
func (ld *jsonLD) deref(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	id, ok := m["@id"].(string)
	if !ok || len(m) > 1 {
		return v
	}
	if full, ok := ld.byID[id]; ok {
		return full
	}
	return v
}

// headline returns the article headline
func (ld *jsonLD) headline() string {
	return text(ld.article(), "headline")
}

// description returns the article description
func (ld *jsonLD) description() string {
	return text(ld.article(), "description")
}

// articleBody returns the raw article body
func (ld *jsonLD) articleBody() string {
	return text(ld.article(), "articleBody")
}

// authors returns names of the article authors. Author may be a string, a Person
// or Organization object, an @id reference or an array of any of those.
func (ld *jsonLD) authors() []string {
	art := ld.article()
	if art == nil {
		return nil
	}
	var names []string
	var collect func(v any)
	collect = func(v any) {
		switch val := ld.deref(v).(type) {
		case string:
			if s := strings.TrimSpace(val); s != "" {
				names = append(names, s)
			}
		case map[string]any:
			if s := text(val, "name"); s != "" {
				names = append(names, s)
			}
		case []any:
			for _, item := range val {
				collect(item)
			}
		}
	}
	collect(art["author"])
	return names
}

// image returns the article image url. Image may be a string, an ImageObject,
// an @id reference or an array of any of those, the first one wins.
func (ld *jsonLD) image() string {
	art := ld.article()
	if art == nil {
		return ""
	}
	var find func(v any) string
	find = func(v any) string {
		switch val := ld.deref(v).(type) {
		case string:
			return strings.TrimSpace(val)
		case map[string]any:
			if s := text(val, "url"); s != "" {
				return s
			}
			return text(val, "contentUrl")
		case []any:
			for _, item := range val {
				if s := find(item); s != "" {
					return s
				}
			}
		}
		return ""
	}
	return find(art["image"])
}

// breadcrumbs returns names of BreadcrumbList entries ordered by position
func (ld *jsonLD) breadcrumbs() []string {
	list := ld.ofType("BreadcrumbList")
	if list == nil {
		return nil
	}
	items, ok := list["itemListElement"].([]any)
	if !ok {
		return nil
	}

	type crumb struct {
		pos  float64
		name string
	}
	crumbs := make([]crumb, 0, len(items))
	for i, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		name := text(m, "name")
		if name == "" {
			if item, ok := ld.deref(m["item"]).(map[string]any); ok {
				name = text(item, "name")
			}
		}
		if name == "" {
			continue
		}
		pos, ok := m["position"].(float64)
		if !ok {
			pos = float64(i + 1)
		}
		crumbs = append(crumbs, crumb{pos: pos, name: name})
	}
	sort.SliceStable(crumbs, func(i, j int) bool { return crumbs[i].pos < crumbs[j].pos })

	res := make([]string, len(crumbs))
	for i, c := range crumbs {
		res[i] = c.name
	}
	return res
}

func types(n map[string]any) []string {
	switch t := n["@type"].(type) {
	case string:
		return []string{t}
	case []any:
		res := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				res = append(res, s)
			}
		}
		return res
	}
	return nil
}

// text returns a trimmed string field, arrays yield their first string
func text(n map[string]any, key string) string {
	if n == nil {
		return ""
	}
	switch v := n[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
