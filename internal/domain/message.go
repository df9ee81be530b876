package domain

import (
	"fmt"
	"time"
)

// Role identifies the speaker of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole converts s into a Role, rejecting anything outside the three known roles.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// UnmarshalText rejects unknown roles when decoding snapshots.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// AudioPayload is base64 encoded audio attached to a message.
type AudioPayload struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// Message is a single entry in a session's transcript. Messages are never
// modified once appended.
type Message struct {
	ID        string        `json:"id"`
	Role      Role          `json:"role"`
	Text      string        `json:"text"`
	Audio     *AudioPayload `json:"audio"`
	CreatedAt time.Time     `json:"created_at"`
}
