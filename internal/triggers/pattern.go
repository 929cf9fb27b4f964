package triggers

import (
	"fmt"
	"strings"
)

// Document path patterns the handlers subscribe to.
var (
	FriendRequestPath = MustPattern("Users/{userId}/FriendRequests/{requestId}")
	PostPath          = MustPattern("Posts/{postId}")
	CommentPath       = MustPattern("Posts/{postId}/Comments/{commentId}")
)

// Pattern matches Firestore document paths such as "Posts/{postId}".
type Pattern struct {
	raw      string
	segments []string
}

// ParsePattern parses a slash separated pattern; {name} segments capture.
func ParsePattern(raw string) (Pattern, error) {
	segments := strings.Split(strings.Trim(raw, "/"), "/")
	for _, seg := range segments {
		if seg == "" {
			return Pattern{}, fmt.Errorf("pattern %q has an empty segment", raw)
		}
	}
	if len(segments)%2 != 0 {
		return Pattern{}, fmt.Errorf("pattern %q does not name a document", raw)
	}
	return Pattern{raw: raw, segments: segments}, nil
}

// MustPattern is ParsePattern for package-level patterns.
func MustPattern(raw string) Pattern {
	p, err := ParsePattern(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pattern) String() string { return p.raw }

// Match extracts the captured params from a document name. Full resource names
// ("projects/p/databases/(default)/documents/Posts/p1") are accepted.
func (p Pattern) Match(name string) (map[string]string, bool) {
	if _, rel, ok := strings.Cut(name, "/documents/"); ok {
		name = rel
	}
	parts := strings.Split(strings.Trim(name, "/"), "/")
	if len(parts) != len(p.segments) {
		return nil, false
	}

	params := make(map[string]string)
	for i, seg := range p.segments {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if parts[i] == "" {
				return nil, false
			}
			params[seg[1:len(seg)-1]] = parts[i]
			continue
		}
		if seg != parts[i] {
			return nil, false
		}
	}
	return params, true
}
