package gallery

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yrbane/photosort/internal/catalog"
)

// photoEntry is one photograph's projection into the gallery's embedded
// JSON literal.
type photoEntry struct {
	Src    string
	Year   string
	Name   string
	Tags   []string
	Rating *int
}

// GenerateHTML renders a complete, self-contained gallery page for idx,
// annotated with metadata's tags and ratings.
func GenerateHTML(idx catalog.Index, metadata catalog.Metadata) (string, error) {
	years := idx.Years()
	if idx.TotalPhotos() == 0 {
		return "", fmt.Errorf("no photographs found")
	}

	var entries []photoEntry
	tagSet := make(map[string]bool)
	for _, year := range years {
		for _, rel := range idx.ByYear[year] {
			info := metadata.Files[rel]
			entries = append(entries, photoEntry{
				Src:    rel,
				Year:   year,
				Name:   lastSegment(rel),
				Tags:   info.Tags,
				Rating: info.Rating,
			})
			for _, t := range info.Tags {
				tagSet[t] = true
			}
		}
	}

	photosJSON := renderPhotosJSON(entries)
	gridHTML := renderGridHTML(years, idx, metadata)
	tagsFilterHTML := renderTagsFilterHTML(tagSet)

	html := strings.NewReplacer(
		"__PHOTOS_JSON__", photosJSON,
		"__GRID_HTML__", gridHTML,
		"__TAGS_FILTER_HTML__", tagsFilterHTML,
	).Replace(pageTemplate)

	return html, nil
}

func lastSegment(rel string) string {
	i := strings.LastIndexByte(rel, '/')
	if i < 0 {
		return rel
	}
	return rel[i+1:]
}

func renderPhotosJSON(entries []photoEntry) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range entries {
		if i > 0 {
			b.WriteByte(',')
		}
		rating := "null"
		if e.Rating != nil {
			rating = strconv.Itoa(*e.Rating)
		}
		tagsJSON := make([]string, len(e.Tags))
		for j, t := range e.Tags {
			tagsJSON[j] = fmt.Sprintf(`"%s"`, escapeJS(t))
		}
		fmt.Fprintf(&b, `{"src":"%s","year":"%s","name":"%s","tags":[%s],"rating":%s,"idx":%d}`,
			escapeJS(e.Src), escapeJS(e.Year), escapeJS(e.Name), strings.Join(tagsJSON, ","), rating, i)
	}
	b.WriteByte(']')
	return b.String()
}

func renderGridHTML(years []string, idx catalog.Index, metadata catalog.Metadata) string {
	var b strings.Builder
	idxCounter := 0
	for _, year := range years {
		fmt.Fprintf(&b, `<h2 class="year-header" data-year="%s">%s</h2>`, escapeHTML(year), escapeHTML(year))
		fmt.Fprintf(&b, `<div class="grid" data-year="%s">`, escapeHTML(year))
		for _, rel := range idx.ByYear[year] {
			info := metadata.Files[rel]
			rating := 0
			if info.Rating != nil {
				rating = *info.Rating
			}
			fmt.Fprintf(&b,
				`<div class="thumb" data-idx="%d" data-tags="%s" data-rating="%d">`+
					`<img src="/thumb/%s" alt="%s" loading="lazy">`+
					`<div class="thumb-stars">%s</div>`+
					`<div class="info">%s</div></div>`,
				idxCounter, escapeHTML(strings.Join(info.Tags, ",")), rating,
				escapeHTML(rel), escapeHTML(lastSegment(rel)),
				strings.Repeat("★", rating), escapeHTML(lastSegment(rel)))
			idxCounter++
		}
		b.WriteString(`</div>`)
	}
	return b.String()
}

func renderTagsFilterHTML(tagSet map[string]bool) string {
	tags := make([]string, 0, len(tagSet))
	for t := range tagSet {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	var b strings.Builder
	b.WriteString(`<button class="tag-btn active" data-tag="">Tous</button>`)
	for _, t := range tags {
		fmt.Fprintf(&b, `<button class="tag-btn" data-tag="%s">%s</button>`, escapeHTML(t), escapeHTML(t))
	}
	return b.String()
}
