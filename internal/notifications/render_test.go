package notifications

import (
	"strings"
	"testing"

	"github.com/anonto42/forager-notifier/internal/models"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "short", input: "Great find!", want: "Great find!"},
		{name: "exactly fifty", input: strings.Repeat("x", 50), want: strings.Repeat("x", 50)},
		{name: "fifty one", input: strings.Repeat("x", 51), want: strings.Repeat("x", 50) + "..."},
		{name: "multibyte counts characters", input: strings.Repeat("é", 51), want: strings.Repeat("é", 50) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input); got != tt.want {
				t.Errorf("Truncate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderFriendRequest(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		wantBody string
	}{
		{name: "no message", wantBody: "Ana wants to connect with you!"},
		{name: "blank message", message: "   \t", wantBody: "Ana wants to connect with you!"},
		{name: "message", message: "Saw you at the creek", wantBody: `Ana: "Saw you at the creek"`},
		{name: "long message", message: strings.Repeat("m", 51), wantBody: `Ana: "` + strings.Repeat("m", 50) + `..."`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := models.FriendRequest{FromEmail: "ana@example.com", Status: models.FriendRequestPending, Message: tt.message}
			got := RenderFriendRequest("req-1", req, "Ana")

			if got.Title != "New Friend Request" {
				t.Errorf("title = %q", got.Title)
			}
			if got.Body != tt.wantBody {
				t.Errorf("body = %q, want %q", got.Body, tt.wantBody)
			}
			if got.Priority != PriorityHigh {
				t.Errorf("priority = %q, want high", got.Priority)
			}
			wantData := map[string]string{
				"type":            "friend_request",
				"requestId":       "req-1",
				"fromEmail":       "ana@example.com",
				"fromDisplayName": "Ana",
			}
			assertData(t, got.Data, wantData)
		})
	}
}

func TestRenderFriendAccepted(t *testing.T) {
	got := RenderFriendAccepted("bo@example.com", "Bo")

	if got.Title != "Friend Request Accepted" || got.Body != "Bo accepted your friend request!" {
		t.Errorf("got %q / %q", got.Title, got.Body)
	}
	if got.Priority != PriorityHigh {
		t.Errorf("priority = %q, want high", got.Priority)
	}
	assertData(t, got.Data, map[string]string{
		"type":            "friend_accepted",
		"friendEmail":     "bo@example.com",
		"fromEmail":       "bo@example.com",
		"fromDisplayName": "Bo",
	})
}

func TestRenderPostLike(t *testing.T) {
	tests := []struct {
		name     string
		postName string
		wantBody string
	}{
		{name: "named post", postName: "Chanterelles", wantBody: `Cy liked "Chanterelles"`},
		{name: "unnamed post", wantBody: `Cy liked "your post"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := models.Post{ID: "p1", UserEmail: "owner@example.com", Name: tt.postName}
			got := RenderPostLike(post, "cy@example.com", "Cy")

			if got.Title != "Someone liked your post" {
				t.Errorf("title = %q", got.Title)
			}
			if got.Body != tt.wantBody {
				t.Errorf("body = %q, want %q", got.Body, tt.wantBody)
			}
			if got.Priority != PriorityNormal {
				t.Errorf("priority = %q, want normal", got.Priority)
			}
			assertData(t, got.Data, map[string]string{
				"type":            "post_like",
				"postId":          "p1",
				"likerEmail":      "cy@example.com",
				"fromEmail":       "cy@example.com",
				"fromDisplayName": "Cy",
			})
		})
	}
}

func TestRenderPostComment(t *testing.T) {
	comment := models.Comment{ID: "c1", PostID: "p1", UserEmail: "bird@example.com", Text: strings.Repeat("y", 51)}
	got := RenderPostComment(comment, "birdwatcher22")

	if got.Title != "New comment on your post" {
		t.Errorf("title = %q", got.Title)
	}
	if want := "birdwatcher22: " + strings.Repeat("y", 50) + "..."; got.Body != want {
		t.Errorf("body = %q, want %q", got.Body, want)
	}
	if got.Priority != PriorityNormal {
		t.Errorf("priority = %q, want normal", got.Priority)
	}
	assertData(t, got.Data, map[string]string{
		"type":            "post_comment",
		"postId":          "p1",
		"commentId":       "c1",
		"commenterEmail":  "bird@example.com",
		"fromEmail":       "bird@example.com",
		"fromDisplayName": "birdwatcher22",
	})
}

func assertData(t *testing.T, got, want map[string]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("payload has %d keys, want %d: %v", len(got), len(want), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("payload[%q] = %q, want %q", k, got[k], v)
		}
	}
}
