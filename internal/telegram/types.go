package telegram

import "strings"

// User is the sender of a message.
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// FullName joins first and last name the way Telegram clients display them.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from"`
	Chat      Chat   `json:"chat"`
	Date      int64  `json:"date"`
	Text      string `json:"text"`
}

// Command splits a "/command arg..." message into its name and arguments.
// The "@botname" suffix added in group chats is dropped. An empty name means
// the message is not a command.
func (m *Message) Command() (string, []string) {
	if m == nil || !strings.HasPrefix(m.Text, "/") {
		return "", nil
	}
	fields := strings.Fields(m.Text)
	name := strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	return strings.ToLower(name), fields[1:]
}

// Update is one entry from getUpdates. Only message updates matter here;
// everything else decodes with a nil Message and is skipped.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}
