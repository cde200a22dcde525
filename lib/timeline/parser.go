// Package timeline reshapes the master document produced by the
// generation workflow (scenes and elements keyed by ad hoc identifiers)
// into display-ready records for the dashboard. Parsing is a pure
// function: no I/O, no hidden state, and malformed input degrades to an
// empty-but-valid result instead of an error.
package timeline

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Parse converts a raw master document into a normalized Result. The
// document may optionally be wrapped in a one-element array.
func Parse(raw []byte) Result {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return degraded()
	}
	return ParseDocument(value)
}

// ParseDocument converts an already-decoded master document. Elements
// are deduplicated by their mapping key; scenes come out sorted by
// ordinal with deterministic tie-breaking.
func ParseDocument(value interface{}) Result {
	if arr, ok := value.([]interface{}); ok && len(arr) > 0 {
		value = arr[0]
	}

	doc, ok := value.(map[string]interface{})
	if !ok {
		return degraded()
	}

	result := Result{
		Title:            "Untitled Project",
		Style:            "Loading...",
		GlobalStyle:      map[string]interface{}{},
		Scenes:           []Scene{},
		Elements:         []Element{},
		StyleProgression: []StyleStage{},
	}

	if info, ok := doc["project_info"].(map[string]interface{}); ok {
		result.Title = getString(info, []string{"title", "name", "project_name"}, result.Title)
	}

	if style, ok := doc["global_style"].(map[string]interface{}); ok {
		result.GlobalStyle = style
		result.Style = getString(style, []string{"overall_style", "style", "description"}, result.Style)
	}

	result.Scenes = extractScenes(doc["scenes"])
	result.TotalScenes = len(result.Scenes)
	result.Elements = extractElements(doc["elements"])
	result.StyleProgression = extractStyleProgression(doc["style_progression"])

	return result
}

// UsagePercent returns how often an element appears, as a rounded percent
// of all scenes. Zero scenes means zero percent, never a division error.
func UsagePercent(frequency, totalScenes int) int {
	if totalScenes <= 0 {
		return 0
	}
	return int(math.Round(float64(frequency) / float64(totalScenes) * 100))
}

// degraded is the safe empty state the presentation layer can always render
func degraded() Result {
	return Result{
		Title:            "Parsing Error",
		Style:            "Loading...",
		GlobalStyle:      map[string]interface{}{},
		Scenes:           []Scene{},
		Elements:         []Element{},
		StyleProgression: []StyleStage{},
	}
}

func extractScenes(section interface{}) []Scene {
	mapping, ok := section.(map[string]interface{})
	if !ok {
		// Missing or malformed scenes section: empty list, not an error
		return []Scene{}
	}

	scenes := make([]Scene, 0, len(mapping))
	for _, key := range sortedKeys(mapping) {
		entry, ok := mapping[key].(map[string]interface{})
		if !ok {
			continue
		}

		scene := Scene{
			Ordinal:      sceneOrdinal(key, entry),
			Duration:     getString(entry, []string{"duration"}, "3 seconds"),
			CameraType:   getString(entry, []string{"camera_type", "camera"}, ""),
			Mood:         getString(entry, []string{"mood"}, "neutral"),
			Description:  getString(entry, []string{"description"}, ""),
			Dialogue:     getString(entry, []string{"dialogue", "dialogue_text"}, ""),
			Elements:     stringList(entry["elements_present"]),
			Interactions: stringList(entry["element_interactions"]),
		}
		scenes = append(scenes, scene)
	}

	// Ascending by ordinal; stable keeps document order on (unexpected) ties
	sort.SliceStable(scenes, func(i, j int) bool {
		return scenes[i].Ordinal < scenes[j].Ordinal
	})

	return scenes
}

func extractElements(section interface{}) []Element {
	mapping, ok := section.(map[string]interface{})
	if !ok {
		return []Element{}
	}

	elements := make([]Element, 0, len(mapping))
	for _, id := range sortedKeys(mapping) {
		entry, ok := mapping[id].(map[string]interface{})
		if !ok {
			continue
		}

		elementType := strings.ToLower(getString(entry, []string{"type"}, ""))
		sceneRefs := intList(entry["scenes"])

		frequency := getInt(entry, []string{"frequency"}, len(sceneRefs))
		ruleCount := countRules(entry)

		element := Element{
			ID:          id,
			Name:        getString(entry, []string{"name", "display_name"}, displayName(id)),
			Type:        elementType,
			Subtype:     getString(entry, []string{"subtype", "category"}, ""),
			Frequency:   frequency,
			Scenes:      sceneRefs,
			Consistency: consistencyScore(frequency, ruleCount),
			Color:       colorForType(elementType),
			Icon:        iconFor(id, elementType),
		}
		elements = append(elements, element)
	}

	return elements
}

func extractStyleProgression(section interface{}) []StyleStage {
	mapping, ok := section.(map[string]interface{})
	if !ok {
		return []StyleStage{}
	}

	stages := make([]StyleStage, 0, len(mapping))
	for _, key := range sortedKeys(mapping) {
		entry, ok := mapping[key].(map[string]interface{})
		if !ok {
			continue
		}
		stages = append(stages, StyleStage{
			Stage:       key,
			Scenes:      getString(entry, []string{"scenes", "scene_range"}, ""),
			Description: getString(entry, []string{"style_emphasis", "description"}, ""),
		})
	}

	return stages
}

// consistencyScore derives the quality label for an element. The
// thresholds are load-bearing: downstream views key off the exact labels.
func consistencyScore(frequency, ruleCount int) string {
	if frequency >= 8 && ruleCount >= 3 {
		return ScoreExcellent
	}
	if frequency >= 4 && ruleCount >= 2 {
		return ScoreGood
	}
	return ScoreReview
}

// colorForType maps an element type to its fixed display color
func colorForType(elementType string) string {
	switch elementType {
	case TypeCharacter:
		return "blue"
	case TypeLocation:
		return "green"
	case TypeProp:
		return "orange"
	case TypeAtmosphere:
		return "purple"
	default:
		return "gray"
	}
}

// iconSubstrings maps identifier fragments to icons; checked before the
// type fallback so named characters get a recognizable face.
var iconSubstrings = []struct {
	fragment string
	icon     string
}{
	{"girl", "👧"},
	{"boy", "👦"},
	{"woman", "👩"},
	{"man", "👨"},
	{"child", "🧒"},
	{"dog", "🐕"},
	{"cat", "🐈"},
	{"bird", "🐦"},
	{"robot", "🤖"},
	{"forest", "🌲"},
	{"house", "🏠"},
	{"city", "🏙️"},
}

var iconByType = map[string]string{
	TypeCharacter:  "👤",
	TypeLocation:   "📍",
	TypeProp:       "📦",
	TypeAtmosphere: "🌫️",
}

func iconFor(id string, elementType string) string {
	lowered := strings.ToLower(id)
	for _, candidate := range iconSubstrings {
		if strings.Contains(lowered, candidate.fragment) {
			return candidate.icon
		}
	}
	if icon, ok := iconByType[elementType]; ok {
		return icon
	}
	return "❓"
}

// sceneOrdinal resolves a scene's numeric ordinal: an explicit
// scene_number field wins, otherwise the trailing digits of the key
// ("scene_12" -> 12).
func sceneOrdinal(key string, entry map[string]interface{}) int {
	if n := getInt(entry, []string{"scene_number", "ordinal"}, 0); n > 0 {
		return n
	}

	digits := ""
	for _, r := range key {
		if r >= '0' && r <= '9' {
			digits += string(r)
		} else {
			digits = ""
		}
	}
	if digits != "" {
		var n int
		fmt.Sscanf(digits, "%d", &n)
		return n
	}
	return 0
}

func countRules(entry map[string]interface{}) int {
	switch rules := entry["consistency_rules"].(type) {
	case []interface{}:
		return len(rules)
	case map[string]interface{}:
		return len(rules)
	case float64:
		return int(rules)
	}
	return getInt(entry, []string{"rule_count"}, 0)
}

// displayName prettifies an identifier used as a fallback element name
func displayName(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// sortedKeys walks a decoded JSON object in a deterministic order. Key
// order in a Go map is random, so keys are sorted; ties in the scene
// sort therefore resolve the same way on every read.
func sortedKeys(mapping map[string]interface{}) []string {
	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func getString(entry map[string]interface{}, keys []string, fallback string) string {
	for _, key := range keys {
		if value, ok := entry[key].(string); ok && value != "" {
			return value
		}
	}
	return fallback
}

func getInt(entry map[string]interface{}, keys []string, fallback int) int {
	for _, key := range keys {
		if value, ok := entry[key].(float64); ok {
			return int(value)
		}
	}
	return fallback
}

func stringList(value interface{}) []string {
	items, ok := value.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case map[string]interface{}:
			// Interactions sometimes arrive as {"description": ...} objects
			if desc := getString(v, []string{"description", "interaction"}, ""); desc != "" {
				out = append(out, desc)
			}
		}
	}
	return out
}

func intList(value interface{}) []int {
	items, ok := value.([]interface{})
	if !ok {
		return []int{}
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case float64:
			out = append(out, int(v))
		case string:
			var n int
			if _, err := fmt.Sscanf(strings.TrimFunc(v, func(r rune) bool {
				return r < '0' || r > '9'
			}), "%d", &n); err == nil {
				out = append(out, n)
			}
		}
	}
	return out
}
