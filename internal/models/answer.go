package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UserResponse is the wire shape persisted between the front and back of a card.
// Answer is kind-dependent and untyped at the boundary: nil, a string, a list of
// strings or a left-id -> right-id map.
type UserResponse struct {
	Answer           interface{} `json:"answer"`
	DeclaredDontKnow bool        `json:"idk"`
}

// DefaultUserResponse is what the back side assumes when nothing was stored.
func DefaultUserResponse() UserResponse {
	return UserResponse{Answer: nil, DeclaredDontKnow: true}
}

// ParseUserResponse decodes the persisted JSON; a blank payload yields DefaultUserResponse.
func ParseUserResponse(data []byte) (UserResponse, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return DefaultUserResponse(), nil
	}
	var resp UserResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return DefaultUserResponse(), fmt.Errorf("invalid user response: %w", err)
	}
	return resp, nil
}

// IsAnswerEmpty reports whether an answer is functionally empty: nil, an empty
// list, a list holding a single blank entry, or an empty map.
func IsAnswerEmpty(answer interface{}) bool {
	switch a := answer.(type) {
	case nil:
		return true
	case []string:
		return len(a) == 0 || (len(a) == 1 && a[0] == "")
	case []interface{}:
		if len(a) == 0 {
			return true
		}
		if len(a) == 1 {
			if a[0] == nil {
				return true
			}
			if s, ok := a[0].(string); ok && s == "" {
				return true
			}
		}
		return false
	case map[string]interface{}:
		return len(a) == 0
	case map[string]string:
		return len(a) == 0
	default:
		return false
	}
}

// AnswerStrings coerces an answer into an ordered list of strings. A bare
// string becomes a one-element list; anything else yields nil.
func AnswerStrings(answer interface{}) []string {
	switch a := answer.(type) {
	case string:
		return []string{a}
	case []string:
		return a
	case []interface{}:
		out := make([]string, len(a))
		for i, v := range a {
			if s, ok := v.(string); ok {
				out[i] = s
			} else if v != nil {
				out[i] = fmt.Sprint(v)
			}
		}
		return out
	default:
		return nil
	}
}

// AnswerMap coerces an answer into a left-id -> right-id map; non-map answers yield nil.
func AnswerMap(answer interface{}) map[string]string {
	switch a := answer.(type) {
	case map[string]string:
		return a
	case map[string]interface{}:
		out := make(map[string]string, len(a))
		for k, v := range a {
			switch val := v.(type) {
			case string:
				out[k] = val
			case nil:
				out[k] = ""
			default:
				out[k] = fmt.Sprint(val)
			}
		}
		return out
	default:
		return nil
	}
}
