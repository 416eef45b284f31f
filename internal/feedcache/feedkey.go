package feedcache

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind names a feed family.
type Kind string

const (
	KindPublic      Kind = "public"
	KindPopular     Kind = "popular"
	KindRecommended Kind = "recommended"
	KindUser        Kind = "user"
	KindBook        Kind = "book"
)

// FeedKey identifies one cached feed. Subject is the username for
// recommended and user feeds and the book ID for book feeds.
type FeedKey struct {
	Kind    Kind   `json:"kind"`
	Subject string `json:"subject,omitempty"`
}

// PublicFeed is the newest public recipes.
func PublicFeed() FeedKey { return FeedKey{Kind: KindPublic} }
// PopularFeed is public recipes by average stars.
func PopularFeed() FeedKey { return FeedKey{Kind: KindPopular} }
// RecommendedFeed is the recommendation feed for user.
func RecommendedFeed(user string) FeedKey { return FeedKey{Kind: KindRecommended, Subject: user} }
// UserFeed is user's public recipes.
func UserFeed(user string) FeedKey { return FeedKey{Kind: KindUser, Subject: user} }
// BookFeed is the recipes of book id.
func BookFeed(id uuid.UUID) FeedKey { return FeedKey{Kind: KindBook, Subject: id.String()} }

// String is the key's store key and CLI form, e.g. "user:ada".
func (k FeedKey) String() string {
	if k.Subject == "" {
		return string(k.Kind)
	}
	return string(k.Kind) + ":" + k.Subject
}

// Validate reports whether k names a feed the server offers.
func (k FeedKey) Validate() error {
	switch k.Kind {
	case KindPublic, KindPopular:
		if k.Subject != "" {
			return fmt.Errorf("feed %q takes no subject", k.Kind)
		}
	case KindRecommended, KindUser:
		if k.Subject == "" {
			return fmt.Errorf("feed %q needs a username", k.Kind)
		}
	case KindBook:
		if _, err := uuid.Parse(k.Subject); err != nil {
			return fmt.Errorf("feed %q needs a book id: %w", k.Kind, err)
		}
	default:
		return fmt.Errorf("unknown feed kind %q", k.Kind)
	}
	return nil
}

// ParseFeedKey parses the String form of a FeedKey.
func ParseFeedKey(s string) (FeedKey, error) {
	kind, subject, _ := strings.Cut(strings.TrimSpace(s), ":")
	k := FeedKey{Kind: Kind(kind), Subject: subject}
	if err := k.Validate(); err != nil {
		return FeedKey{}, err
	}
	return k, nil
}
