package resolve

import (
	"regexp"
	"strings"

	"github.com/zekog/hipotify-sub000/internal/models"
)

// InputClass is the first classification of raw user input.
type InputClass int

const (
	ClassQuery InputClass = iota
	ClassOwnLink
	ClassForeignLink
)

func (c InputClass) String() string {
	switch c {
	case ClassOwnLink:
		return "own_link"
	case ClassForeignLink:
		return "foreign_link"
	default:
		return "query"
	}
}

// Link is the parsed form of a share-link (or plain query) input.
type Link struct {
	Class  InputClass
	Entity models.Kind // set for link classes
	ID     string      // set for link classes
	URL    string      // original input
}

var (
	// Foreign share links: open.<platform>.com/{entity}/{id}
	foreignLinkRe = regexp.MustCompile(`open\.[a-z0-9]+\.com/(track|album|artist|playlist)/([A-Za-z0-9]+)`)

	// Entity path of an own-platform link: .../{entity}/{id}
	entityPathRe = regexp.MustCompile(`/(track|album|artist|playlist)/([A-Za-z0-9-]+)`)
)

// Classify pattern-matches raw input into an own link, a foreign link, or a
// plain free-text query. ownHost identifies this platform's share domain.
func Classify(input, ownHost string) Link {
	input = strings.TrimSpace(input)
	link := Link{Class: ClassQuery, URL: input}

	if m := foreignLinkRe.FindStringSubmatch(input); m != nil {
		link.Class = ClassForeignLink
		link.Entity = models.KindFromString(m[1])
		link.ID = m[2]
		return link
	}

	if ownHost != "" && strings.Contains(input, ownHost) {
		if m := entityPathRe.FindStringSubmatch(input); m != nil {
			link.Class = ClassOwnLink
			link.Entity = models.KindFromString(m[1])
			link.ID = m[2]
			return link
		}
	}

	return link
}
