package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetMe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bottest-token/getMe" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":{"id":99,"is_bot":true,"first_name":"Sales Bot","username":"sales_counter_bot"}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-token", server.URL)
	me, err := client.GetMe(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if me.Username != "sales_counter_bot" || !me.IsBot {
		t.Errorf("me = %+v", me)
	}
}

func TestGetUpdates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("offset"); got != "7" {
			t.Errorf("offset = %q, want 7", got)
		}
		if got := r.URL.Query().Get("timeout"); got != "25" {
			t.Errorf("timeout = %q, want 25", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":[
			{"update_id":7,"message":{"message_id":1,"from":{"id":42,"first_name":"Ada"},"chat":{"id":42,"type":"private"},"text":"/mysales"}},
			{"update_id":8}
		]}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-token", server.URL)
	updates, err := client.GetUpdates(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("got %d updates, want 2", len(updates))
	}
	if updates[0].Message == nil || updates[0].Message.Text != "/mysales" {
		t.Errorf("first update = %+v", updates[0])
	}
	// Non-message updates decode with a nil message.
	if updates[1].Message != nil {
		t.Errorf("second update should have nil message, got %+v", updates[1].Message)
	}
}

func TestAPIErrorSurfacesDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("bad-token", server.URL)
	_, err := client.GetUpdates(context.Background(), 0)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Unauthorized") {
		t.Errorf("error %q should carry the API description", err)
	}
}

func TestSendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || !strings.HasSuffix(r.URL.Path, "/sendMessage") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var payload struct {
			ChatID int64  `json:"chat_id"`
			Text   string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		if payload.ChatID != 42 || payload.Text != "hello" {
			t.Errorf("payload = %+v", payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":{"message_id":10}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-token", server.URL)
	if err := client.SendMessage(context.Background(), 42, "hello"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNonJSONFailureIncludesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-token", server.URL)
	err := client.SendMessage(context.Background(), 42, "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error %q should include the HTTP status", err)
	}
}

func TestMessageCommand(t *testing.T) {
	cases := []struct {
		text     string
		wantName string
		wantArgs []string
	}{
		{"/start", "start", nil},
		{"/mysales@sales_counter_bot", "mysales", nil},
		{"/SETNAME John Smith", "setname", []string{"John", "Smith"}},
		{"/testdate  2025-11-15  ", "testdate", []string{"2025-11-15"}},
		{"hello there", "", nil},
		{"", "", nil},
	}
	for _, tc := range cases {
		msg := &Message{Text: tc.text}
		name, args := msg.Command()
		if name != tc.wantName {
			t.Errorf("Command(%q) name = %q, want %q", tc.text, name, tc.wantName)
		}
		if len(args) != len(tc.wantArgs) {
			t.Errorf("Command(%q) args = %v, want %v", tc.text, args, tc.wantArgs)
			continue
		}
		for i := range args {
			if args[i] != tc.wantArgs[i] {
				t.Errorf("Command(%q) args = %v, want %v", tc.text, args, tc.wantArgs)
				break
			}
		}
	}

	var nilMsg *Message
	if name, _ := nilMsg.Command(); name != "" {
		t.Errorf("nil message command = %q", name)
	}
}

func TestUserFullName(t *testing.T) {
	if got := (&User{FirstName: "Ada"}).FullName(); got != "Ada" {
		t.Errorf("FullName = %q", got)
	}
	if got := (&User{FirstName: "Ada", LastName: "Lovelace"}).FullName(); got != "Ada Lovelace" {
		t.Errorf("FullName = %q", got)
	}
	var nobody *User
	if got := nobody.FullName(); got != "" {
		t.Errorf("nil FullName = %q", got)
	}
}
