package schema

import (
	"encoding/json"
	"fmt"
)

// Spec is one laboratory specification entry in the specs import
// payload.
type Spec struct {
	Name         string  `json:"name"`
	Type         *int64  `json:"type"`
	Status       *int64  `json:"status"`
	Archiviert   *int64  `json:"archiviert"`
	Order        *string `json:"order"`
	Translations *string `json:"translations"`
}

// ActionSpec wraps a Spec in the action/data command envelope.
type ActionSpec struct {
	Action string `json:"action"`
	Data   Spec   `json:"data"`
}

// SpecsPayload is the top-level specs document.
type SpecsPayload struct {
	Specs []ActionSpec `json:"specs"`
}

// specTranslations is the inner structure the LIMS expects inside the
// translations field. The field itself is a JSON-encoded STRING
// (double-encoded JSON), not a nested object.
type specTranslations struct {
	EN specTranslationEntry `json:"en"`
}

type specTranslationEntry struct {
	Name                     string `json:"name"`
	DefaultTextOK            string `json:"DDF_Defaulttext_OK"`
	DefaultTextNotOK         string `json:"DDF_Defaulttext_NOT_OK"`
	DefaultTextToleranzNotOK string `json:"DDF_Defaulttext_Toleranzbereich_NOT_OK"`
}

// EncodeSpecTranslations builds the canonical translations blob for a
// spec name and returns it as the JSON string the wire format requires.
func EncodeSpecTranslations(name string) string {
	// Marshal of this plain struct cannot fail.
	raw, _ := json.Marshal(specTranslations{
		EN: specTranslationEntry{
			Name:                     name,
			DefaultTextOK:            "NULL",
			DefaultTextNotOK:         "NULL",
			DefaultTextToleranzNotOK: "NULL",
		},
	})
	return string(raw)
}

// DecodeSpecTranslations parses a translations string back into a
// generic map. The blob is only semantically valid after this second
// JSON parse; round-tripping a payload keeps the string untouched.
func DecodeSpecTranslations(blob string) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal([]byte(blob), &out); err != nil {
		return nil, fmt.Errorf("decode spec translations: %w", err)
	}
	return out, nil
}
