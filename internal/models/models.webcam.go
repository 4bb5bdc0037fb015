// FilePath: internal/models/models.webcam.go
package models

import (
	"strings"
	"time"
)

const liveSuffix = "-live"

type Webcam struct {
	ID              string    `json:"id" db:"id"`
	Hardware        string    `json:"hardware" db:"hardware" writexs:"owner,system"`
	Name            string    `json:"name" db:"name" writexs:"owner,system"`
	Address         string    `json:"address" db:"address" writexs:"owner,system"`
	Width           int       `json:"width" db:"width" writexs:"owner,system"`
	Height          int       `json:"height" db:"height" writexs:"owner,system"`
	Rotation        string    `json:"rotation" db:"rotation" writexs:"owner,system"`
	AWB             string    `json:"awb" db:"awb" writexs:"owner,system"`
	Archive         string    `json:"archive" db:"archive" writexs:"owner,system"`
	ArchiveDoor     string    `json:"archive_door" db:"archive_door" writexs:"owner,system"`
	ArchiveLight    string    `json:"archive_light" db:"archive_light" writexs:"owner,system"`
	MotionBoxes     string    `json:"motion_boxes" db:"motion_boxes" writexs:"owner,system"`
	MotionThreshold int       `json:"motion_threshold" db:"motion_threshold" writexs:"owner,system"`
	MotionArea      int       `json:"motion_area" db:"motion_area" writexs:"owner,system"`
	MotionFrame     string    `json:"motion_frame" db:"motion_frame" writexs:"owner,system"`
	Markers         JSON      `json:"markers" db:"markers" writexs:"owner,system"`
	LiveStream      bool      `json:"live_stream" db:"live_stream" writexs:"system"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// RefreshCapabilities derives the live-stream flag from the hardware kind.
func (w *Webcam) RefreshCapabilities() {
	w.LiveStream = strings.HasSuffix(w.Hardware, liveSuffix)
}

// ArchivePath returns the relative archive directory for this webcam.
func (w *Webcam) ArchivePath() string {
	return "webcam/archive/" + w.ID
}
