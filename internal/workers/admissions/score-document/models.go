// internal/workers/admissions/score-document/models.go
package scoredocument

type Input struct {
	// Document is the file content, base64 encoded.
	Document string `json:"document"`
	Filename string `json:"filename"`
	Kind     string `json:"kind"`
}

type Output struct {
	DocumentScore   float64                `json:"documentScore"`
	DocumentDetails map[string]interface{} `json:"documentDetails"`
	Fallback        bool                   `json:"documentFallback"`
	Cached          bool                   `json:"documentCached"`
}
