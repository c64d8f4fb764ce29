package feed

import (
	"strings"

	"classfeed/models"
)

const (
	MediaKindImage = "image"
	MediaKindEmbed = "embed"

	cardTitleLimit = 40
)

// Extensions rendered as an inline <img>; anything else gets an embedded
// frame in detail view and a placeholder at card level. The match is
// case-sensitive on purpose: uppercase extensions embed.
var imageExtensions = []string{".jpeg", ".jpg", ".gif", ".png"}

func MediaKind(mediaURL string) string {
	for _, ext := range imageExtensions {
		if strings.HasSuffix(mediaURL, ext) {
			return MediaKindImage
		}
	}
	return MediaKindEmbed
}

// CardTitle truncates the achieved text to the first 40 characters plus an
// ellipsis marker. Detail view always shows the untruncated text.
func CardTitle(achievedText string) string {
	runes := []rune(achievedText)
	if len(runes) <= cardTitleLimit {
		return achievedText
	}
	return string(runes[:cardTitleLimit]) + "..."
}

// Card is the summary shape rendered in the feed grid.
type Card struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	AuthorName string `json:"authorName"`
	MediaURL   string `json:"mediaUrl"`
	MediaKind  string `json:"mediaKind"`
	CreatedAt  int64  `json:"createdAt"`
	IsFeatured bool   `json:"isFeatured"`
}

func NewCard(post models.Post) Card {
	return Card{
		ID:         post.ID.Hex(),
		Title:      CardTitle(post.AchievedText),
		AuthorName: post.AuthorName,
		MediaURL:   post.MediaURL,
		MediaKind:  MediaKind(post.MediaURL),
		CreatedAt:  post.CreatedAt,
		IsFeatured: post.IsFeatured,
	}
}

func Cards(posts []models.Post) []Card {
	cards := make([]Card, len(posts))
	for i, post := range posts {
		cards[i] = NewCard(post)
	}
	return cards
}
