package models

// Comment is a Posts/{postId}/Comments/{commentId} document.
type Comment struct {
	ID        string `json:"id" firestore:"-"`
	PostID    string `json:"postId" firestore:"-"`
	UserEmail string `json:"userEmail" firestore:"userEmail"`
	Username  string `json:"username,omitempty" firestore:"username,omitempty"`
	Text      string `json:"text" firestore:"text"`
}

// CommentFromData reads a comment out of a loosely typed document map.
func CommentFromData(postID, id string, data map[string]any) Comment {
	return Comment{
		ID:        id,
		PostID:    postID,
		UserEmail: StringField(data, "userEmail"),
		Username:  StringField(data, "username"),
		Text:      StringField(data, "text"),
	}
}
