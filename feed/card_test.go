package feed

import (
	"strings"
	"testing"

	"classfeed/models"

	"github.com/stretchr/testify/assert"
)

func TestCardTitleShortTextUnmodified(t *testing.T) {
	assert.Equal(t, "Shipped v1", CardTitle("Shipped v1"))

	exactly40 := strings.Repeat("a", 40)
	assert.Equal(t, exactly40, CardTitle(exactly40))
}

func TestCardTitleTruncation(t *testing.T) {
	long := strings.Repeat("a", 41)
	got := CardTitle(long)

	assert.Equal(t, strings.Repeat("a", 40)+"...", got)
}

func TestCardTitleTruncationIsRuneSafe(t *testing.T) {
	long := strings.Repeat("é", 50)
	got := CardTitle(long)

	assert.Equal(t, strings.Repeat("é", 40)+"...", got)
}

func TestMediaKind(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"http://x/a.png", MediaKindImage},
		{"http://x/a.jpg", MediaKindImage},
		{"http://x/a.jpeg", MediaKindImage},
		{"http://x/a.gif", MediaKindImage},
		{"http://x/a.PNG", MediaKindEmbed}, // match is case-sensitive
		{"http://x/a.mp4", MediaKindEmbed},
		{"https://docs.google.com/presentation/d/abc", MediaKindEmbed},
		{"", MediaKindEmbed},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MediaKind(tc.url), "url %q", tc.url)
	}
}

func TestNewCard(t *testing.T) {
	post := models.Post{
		AuthorName:   "Ada",
		AchievedText: strings.Repeat("x", 50),
		MediaURL:     "http://x/pic.png",
		CreatedAt:    1700000000,
	}

	card := NewCard(post)

	assert.Equal(t, strings.Repeat("x", 40)+"...", card.Title)
	assert.Equal(t, "Ada", card.AuthorName)
	assert.Equal(t, MediaKindImage, card.MediaKind)
	assert.Equal(t, int64(1700000000), card.CreatedAt)
	assert.False(t, card.IsFeatured)
}

func TestCardsLength(t *testing.T) {
	cards := Cards(samplePosts())
	assert.Len(t, cards, 4)
	assert.Equal(t, "Shipped v1", cards[0].Title)
}
