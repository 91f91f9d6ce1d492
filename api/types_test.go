// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"epoch seconds", "1700000000", time.Unix(1700000000, 0).UTC()},
		{"fractional seconds", "1700000000.75", time.Unix(1700000000, 0).UTC()},
		{"null", "null", time.Time{}},
		{"zero", "0", time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.input), &ts); err != nil {
				t.Fatalf("Unmarshal(%q): %v", tt.input, err)
			}
			if !ts.Time.Equal(tt.want) {
				t.Errorf("Unmarshal(%q) = %v, want %v", tt.input, ts.Time, tt.want)
			}
		})
	}
}

func TestTimestampUnmarshalRejectsGarbage(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"soon"`), &ts); err == nil {
		t.Fatal("expected an error for a non-numeric timestamp")
	}
}

func TestTimestampMarshal(t *testing.T) {
	encoded, err := json.Marshal(Unix(1700000000))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(encoded) != "1700000000" {
		t.Errorf("Marshal = %s, want epoch seconds", encoded)
	}

	encoded, err = json.Marshal(Timestamp{})
	if err != nil {
		t.Fatalf("Marshal zero: %v", err)
	}
	if string(encoded) != "null" {
		t.Errorf("Marshal zero = %s, want null", encoded)
	}
}

func TestUserDecodesWireShape(t *testing.T) {
	body := `{"id": 42, "name": "ada", "bot": false, "joined_ts": 1700000000}`
	var user User
	if err := json.Unmarshal([]byte(body), &user); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if user.ID != 42 || user.Name != "ada" {
		t.Errorf("decoded user = %+v", user)
	}
	if user.Joined.Time.Unix() != 1700000000 {
		t.Errorf("Joined = %v, want epoch 1700000000", user.Joined)
	}
}
