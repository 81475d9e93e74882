package models

import (
	"encoding/json"
	"fmt"
)

// Explanation is either a GeneralExplanation or PerOptionExplanations.
type Explanation interface {
	isExplanation()
}

// GeneralExplanation applies to the whole question.
type GeneralExplanation string

// PerOptionExplanations maps an option id to its explanation.
type PerOptionExplanations map[string]string

func (GeneralExplanation) isExplanation()    {}
func (PerOptionExplanations) isExplanation() {}

func (e GeneralExplanation) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"general": string(e)})
}

func (e PerOptionExplanations) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]map[string]string{"per_option": e})
}

type explanationJSON struct {
	General   *string           `json:"general"`
	PerOption map[string]string `json:"per_option"`
}

func decodeExplanation(data json.RawMessage) (Explanation, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var raw explanationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid explanation: %w", err)
	}

	switch {
	case raw.PerOption != nil:
		return PerOptionExplanations(raw.PerOption), nil
	case raw.General != nil:
		return GeneralExplanation(*raw.General), nil
	default:
		return nil, nil
	}
}
