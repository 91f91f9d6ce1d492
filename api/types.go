// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamp wraps time.Time with the wire codec the Driftline API
// uses: epoch seconds in "_ts"-suffixed fields. A zero value
// marshals as null; null and 0 unmarshal to the zero value.
type Timestamp struct {
	time.Time
}

// Unix builds a Timestamp from epoch seconds.
func Unix(seconds int64) Timestamp {
	return Timestamp{time.Unix(seconds, 0).UTC()}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, t.Time.Unix(), 10), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	value := strings.TrimSpace(string(data))
	if value == "null" || value == "0" {
		t.Time = time.Time{}
		return nil
	}
	// The server emits integers but some endpoints historically sent
	// fractional seconds; accept both.
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("api: invalid timestamp %q: %w", value, err)
	}
	t.Time = time.Unix(int64(seconds), 0).UTC()
	return nil
}

// User is a Driftline account.
type User struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email,omitempty"`
	AvatarID string    `json:"avatar_id,omitempty"`
	Timezone string    `json:"timezone,omitempty"`
	Bot      bool      `json:"bot,omitempty"`
	Removed  bool      `json:"removed,omitempty"`
	Joined   Timestamp `json:"joined_ts"`
}

// Workspace is a team: the container for channels, conversations, and
// groups.
type Workspace struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Creator        int64     `json:"creator"`
	DefaultChannel int64     `json:"default_channel,omitempty"`
	Created        Timestamp `json:"created_ts"`
}

// Channel is a named public or invite-only stream of threads.
type Channel struct {
	ID          int64     `json:"id"`
	WorkspaceID int64     `json:"workspace_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Creator     int64     `json:"creator"`
	UserIDs     []int64   `json:"user_ids,omitempty"`
	Public      bool      `json:"public,omitempty"`
	Archived    bool      `json:"archived,omitempty"`
	Created     Timestamp `json:"created_ts"`
}

// Thread is a titled discussion inside a channel.
type Thread struct {
	ID           int64     `json:"id"`
	ChannelID    int64     `json:"channel_id"`
	WorkspaceID  int64     `json:"workspace_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content,omitempty"`
	Creator      int64     `json:"creator"`
	CommentCount int       `json:"comment_count,omitempty"`
	Starred      bool      `json:"starred,omitempty"`
	Posted       Timestamp `json:"posted_ts"`
	LastUpdated  Timestamp `json:"last_updated_ts"`
}

// Comment is one reply inside a thread.
type Comment struct {
	ID         int64     `json:"id"`
	ThreadID   int64     `json:"thread_id"`
	Content    string    `json:"content"`
	Creator    int64     `json:"creator"`
	Posted     Timestamp `json:"posted_ts"`
	LastEdited Timestamp `json:"last_edited_ts"`
}

// Conversation is a private message thread between a fixed set of
// users, outside any channel.
type Conversation struct {
	ID           int64     `json:"id"`
	WorkspaceID  int64     `json:"workspace_id"`
	Title        string    `json:"title,omitempty"`
	UserIDs      []int64   `json:"user_ids"`
	MessageCount int       `json:"message_count,omitempty"`
	Archived     bool      `json:"archived,omitempty"`
	LastActive   Timestamp `json:"last_active_ts"`
	Created      Timestamp `json:"created_ts"`
}

// Message is one message inside a conversation.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	Content        string    `json:"content"`
	Creator        int64     `json:"creator"`
	Posted         Timestamp `json:"posted_ts"`
}

// Group is a named set of workspace users, usable wherever a user
// list is accepted.
type Group struct {
	ID          int64   `json:"id"`
	WorkspaceID int64   `json:"workspace_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	UserIDs     []int64 `json:"user_ids,omitempty"`
}
