package triggers

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPatternMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern Pattern
		doc     string
		want    map[string]string
		ok      bool
	}{
		{
			name:    "friend request full resource name",
			pattern: FriendRequestPath,
			doc:     "projects/forager/databases/(default)/documents/Users/a@example.com/FriendRequests/r1",
			want:    map[string]string{"userId": "a@example.com", "requestId": "r1"},
			ok:      true,
		},
		{
			name:    "relative path",
			pattern: PostPath,
			doc:     "Posts/p1",
			want:    map[string]string{"postId": "p1"},
			ok:      true,
		},
		{
			name:    "comment",
			pattern: CommentPath,
			doc:     "projects/forager/databases/(default)/documents/Posts/p1/Comments/c9",
			want:    map[string]string{"postId": "p1", "commentId": "c9"},
			ok:      true,
		},
		{name: "wrong collection", pattern: PostPath, doc: "Users/p1"},
		{name: "subcollection does not match post", pattern: PostPath, doc: "Posts/p1/Comments/c1"},
		{name: "post does not match comment", pattern: CommentPath, doc: "Posts/p1"},
		{name: "wrong subcollection", pattern: FriendRequestPath, doc: "Users/a/Notifications/n1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.pattern.Match(tt.doc)
			if ok != tt.ok {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.doc, ok, tt.ok)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("param %s = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestParsePatternRejectsCollections(t *testing.T) {
	for _, raw := range []string{"Posts", "Users/{userId}/FriendRequests", "Posts//x"} {
		if _, err := ParsePattern(raw); err == nil {
			t.Errorf("ParsePattern(%q) succeeded, want error", raw)
		}
	}
}

const updateEnvelope = `{
  "oldValue": {
    "name": "projects/forager/databases/(default)/documents/Posts/p1",
    "fields": {
      "userEmail": {"stringValue": "owner@example.com"},
      "likes": {"arrayValue": {"values": [{"stringValue": "a@example.com"}]}}
    }
  },
  "value": {
    "name": "projects/forager/databases/(default)/documents/Posts/p1",
    "fields": {
      "userEmail": {"stringValue": "owner@example.com"},
      "name": {"stringValue": "Morels"},
      "likes": {"arrayValue": {"values": [{"stringValue": "a@example.com"}, {"stringValue": "b@example.com"}]}},
      "likeCount": {"integerValue": "2"},
      "rating": {"doubleValue": 4.5},
      "public": {"booleanValue": true},
      "deletedAt": {"nullValue": null},
      "postedAt": {"timestampValue": "2026-04-02T10:00:00.5Z"},
      "location": {"mapValue": {"fields": {"state": {"stringValue": "OR"}}}}
    }
  },
  "updateMask": {"fieldPaths": ["likes"]}
}`

func TestEnvelopeToEvent(t *testing.T) {
	var env Envelope
	if err := json.Unmarshal([]byte(updateEnvelope), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	ev, err := env.ToEvent(PostPath)
	if err != nil {
		t.Fatalf("ToEvent: %v", err)
	}
	if ev.Params["postId"] != "p1" {
		t.Errorf("postId = %q", ev.Params["postId"])
	}

	before, ok := ev.Before["likes"].([]any)
	if !ok || len(before) != 1 || before[0] != "a@example.com" {
		t.Errorf("before likes = %#v", ev.Before["likes"])
	}
	after := ev.After
	if after["name"] != "Morels" || after["likeCount"] != int64(2) || after["rating"] != 4.5 || after["public"] != true {
		t.Errorf("after = %#v", after)
	}
	if v, present := after["deletedAt"]; !present || v != nil {
		t.Errorf("deletedAt = %#v, present %v", v, present)
	}
	wantTime := time.Date(2026, 4, 2, 10, 0, 0, 500_000_000, time.UTC)
	if ts, ok := after["postedAt"].(time.Time); !ok || !ts.Equal(wantTime) {
		t.Errorf("postedAt = %#v", after["postedAt"])
	}
	loc, ok := after["location"].(map[string]any)
	if !ok || loc["state"] != "OR" {
		t.Errorf("location = %#v", after["location"])
	}
}

func TestEnvelopeToEventCreate(t *testing.T) {
	env := Envelope{Value: &Document{
		Name: "projects/forager/databases/(default)/documents/Users/owner@example.com/FriendRequests/r1",
		Fields: map[string]Value{
			"status": {StringValue: strPtr("pending")},
		},
	}}

	ev, err := env.ToEvent(FriendRequestPath)
	if err != nil {
		t.Fatalf("ToEvent: %v", err)
	}
	if ev.Before != nil {
		t.Errorf("before = %#v, want nil for a create", ev.Before)
	}
	if ev.After["status"] != "pending" {
		t.Errorf("after = %#v", ev.After)
	}
	if ev.Params["userId"] != "owner@example.com" || ev.Params["requestId"] != "r1" {
		t.Errorf("params = %v", ev.Params)
	}
}

func TestEnvelopeExplicitParamsOverride(t *testing.T) {
	env := Envelope{
		Value:  &Document{Name: "Posts/p1"},
		Params: map[string]string{"postId": "p2"},
	}
	ev, err := env.ToEvent(PostPath)
	if err != nil {
		t.Fatalf("ToEvent: %v", err)
	}
	if ev.Params["postId"] != "p2" {
		t.Errorf("postId = %q, want p2", ev.Params["postId"])
	}
	if ev.After == nil {
		t.Error("an empty document still counts as present")
	}
}

func TestEnvelopeToEventErrors(t *testing.T) {
	tests := []struct {
		name string
		env  Envelope
	}{
		{name: "pattern mismatch", env: Envelope{Value: &Document{Name: "Users/a"}}},
		{name: "no document", env: Envelope{Params: map[string]string{"postId": "p1"}}},
		{name: "unnamed document", env: Envelope{Value: &Document{}}},
		{name: "bad integer", env: Envelope{Value: &Document{Name: "Posts/p1", Fields: map[string]Value{
			"n": {IntegerValue: strPtr("two")},
		}}}},
		{name: "bad timestamp in array", env: Envelope{Value: &Document{Name: "Posts/p1", Fields: map[string]Value{
			"ts": {ArrayValue: &ArrayValue{Values: []Value{{TimestampValue: strPtr("yesterday")}}}},
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.env.ToEvent(PostPath); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func strPtr(s string) *string { return &s }
