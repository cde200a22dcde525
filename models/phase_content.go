package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Phase content arrives from the generation webhook (or the editor) as
// raw JSON. The external service's output shape is not trusted: content
// is checked against the expectations of its phase before it is saved.

var errContentNotObject = errors.New("content must be a JSON object")

// ValidatePhaseContent checks that raw is an acceptable content payload
// for the named phase. It rejects non-JSON and non-object payloads; for
// script interpretation it additionally requires the scenes and elements
// sections, when present, to be mappings. A one-element array wrapper
// around the object is accepted (some workflow runs emit it).
func ValidatePhaseContent(name PhaseName, raw []byte) error {
	if !ValidPhaseName(name) {
		return fmt.Errorf("unknown phase name: %s", name)
	}

	if len(raw) == 0 {
		return errors.New("content payload is empty")
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("content is not valid JSON: %w", err)
	}

	// Unwrap the optional one-element array wrapper
	if arr, ok := value.([]interface{}); ok {
		if len(arr) != 1 {
			return errContentNotObject
		}
		value = arr[0]
	}

	obj, ok := value.(map[string]interface{})
	if !ok {
		return errContentNotObject
	}

	if name == PhaseScriptInterpretation {
		for _, key := range []string{"scenes", "elements"} {
			if section, exists := obj[key]; exists && section != nil {
				if _, isMap := section.(map[string]interface{}); !isMap {
					return fmt.Errorf("%s section must be a mapping", key)
				}
			}
		}
	}

	return nil
}
