// FilePath: internal/models/models.setting.go
package models

// Setting is a flat string key/value pair for global configuration.
// Settings have no history; the aggregation engine never touches them.
type Setting struct {
	ID    string `json:"id" db:"id"`
	Value string `json:"value" db:"value"`
}

// Audiofile is an uploaded audio file playable inside an enclosure.
type Audiofile struct {
	ID       string  `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Filename string  `json:"filename" db:"filename"`
	Duration float64 `json:"duration" db:"duration"`
	Filesize float64 `json:"filesize" db:"filesize"`
}
