package models

// Post is a Posts/{postId} document. Likes holds the ids of users who liked it.
type Post struct {
	ID        string   `json:"id" firestore:"-"`
	UserEmail string   `json:"userEmail" firestore:"userEmail"`
	Name      string   `json:"name,omitempty" firestore:"name,omitempty"`
	Likes     []string `json:"likes,omitempty" firestore:"likes,omitempty"`
}

// PostFromData reads a post out of a loosely typed document map.
// A missing likes field is treated as an empty set.
func PostFromData(id string, data map[string]any) Post {
	return Post{
		ID:        id,
		UserEmail: StringField(data, "userEmail"),
		Name:      StringField(data, "name"),
		Likes:     StringSliceField(data, "likes"),
	}
}

// DisplayName is the label used in notification bodies.
func (p Post) DisplayName() string {
	if p.Name == "" {
		return "your post"
	}
	return p.Name
}
