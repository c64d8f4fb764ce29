package feed

import "classfeed/models"

type FilterType string

const (
	FilterByAuthor FilterType = "author"
	FilterByTag    FilterType = "tag"
)

// ActiveFilter narrows the feed to posts matching one field by exact
// equality. Only one filter is active at a time; a nil filter means no
// narrowing.
type ActiveFilter struct {
	Type  FilterType `json:"type"`
	Value string     `json:"value"`
}

// Filter returns the posts matching f, preserving order. A nil filter is the
// identity. An unknown filter type matches everything rather than hiding the
// whole feed.
func Filter(posts []models.Post, f *ActiveFilter) []models.Post {
	if f == nil {
		return posts
	}

	matched := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		switch f.Type {
		case FilterByAuthor:
			if post.AuthorName == f.Value {
				matched = append(matched, post)
			}
		case FilterByTag:
			if post.ProgramTag == f.Value {
				matched = append(matched, post)
			}
		default:
			matched = append(matched, post)
		}
	}
	return matched
}

type FilterOptions struct {
	Authors []string `json:"authors"`
	Tags    []string `json:"tags"`
}

// Options collects the distinct author names and program tags across the
// current posts, in first-seen order. These are the values a client may
// filter by; the sets change live as posts arrive.
func Options(posts []models.Post) FilterOptions {
	opts := FilterOptions{
		Authors: []string{},
		Tags:    []string{},
	}

	seenAuthors := make(map[string]bool)
	seenTags := make(map[string]bool)
	for _, post := range posts {
		if !seenAuthors[post.AuthorName] {
			seenAuthors[post.AuthorName] = true
			opts.Authors = append(opts.Authors, post.AuthorName)
		}
		if !seenTags[post.ProgramTag] {
			seenTags[post.ProgramTag] = true
			opts.Tags = append(opts.Tags, post.ProgramTag)
		}
	}
	return opts
}
