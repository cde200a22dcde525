package timeline

// Consistency score labels for elements
const (
	ScoreExcellent = "excellent"
	ScoreGood      = "good"
	ScoreReview    = "review"
)

// Element type labels
const (
	TypeCharacter  = "character"
	TypeLocation   = "location"
	TypeProp       = "prop"
	TypeAtmosphere = "atmosphere"
)

// Scene is one display-ready scene extracted from the master document
type Scene struct {
	Ordinal      int      `json:"ordinal"`
	Duration     string   `json:"duration"`
	CameraType   string   `json:"cameraType"`
	Mood         string   `json:"mood"`
	Description  string   `json:"description"`
	Dialogue     string   `json:"dialogue"`
	Elements     []string `json:"elements"`
	Interactions []string `json:"interactions"`
}

// Element is one deduplicated recurring entity with derived display fields
type Element struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Subtype     string `json:"subtype"`
	Frequency   int    `json:"frequency"`
	Scenes      []int  `json:"scenes"`
	Consistency string `json:"consistency"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// StyleStage is one entry of the derived style progression summary
type StyleStage struct {
	Stage       string `json:"stage"`
	Scenes      string `json:"scenes"`
	Description string `json:"description"`
}

// Result is the normalized, display-ready view of a master document.
// It is always valid: malformed input degrades to placeholder metadata
// and empty lists, never to an error.
type Result struct {
	Title            string                 `json:"title"`
	Style            string                 `json:"style"`
	GlobalStyle      map[string]interface{} `json:"globalStyle"`
	Scenes           []Scene                `json:"scenes"`
	Elements         []Element              `json:"elements"`
	StyleProgression []StyleStage           `json:"styleProgression"`
	TotalScenes      int                    `json:"totalScenes"`
}
