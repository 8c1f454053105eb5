// Package protocol defines the wire types of the scan scoring API.
package protocol

const ProtocolVersion = "1.0"

// Message types.
const (
	TypeScan   = "SCAN"
	TypeResult = "RESULT"
	TypeError  = "ERROR"
)

// Box mirrors the recognizer's bounding box in normalized image coordinates.
// cx/cy/w/h are redundant with the corners; the scorer re-derives them.
type Box struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
	CX float64 `json:"cx,omitempty"`
	CY float64 `json:"cy,omitempty"`
	W  float64 `json:"w,omitempty"`
	H  float64 `json:"h,omitempty"`
}

// DetectedCard is one recognizer hit: "<entityId>:<attachmentSymbol>" label,
// similarity score and box. The similarity score is carried for logging only.
type DetectedCard struct {
	Label string  `json:"label"`
	Score float64 `json:"score,omitempty"`
	Box   Box     `json:"box"`
}

type ScanPlayer struct {
	Name  string         `json:"name"`
	Cards []DetectedCard `json:"cards"`
}

type ScanRequest struct {
	Type    string       `json:"type,omitempty"`
	Players []ScanPlayer `json:"players"`
}

// CardScore is one scored card in display order. Group is "Structure N" in
// reading order and empty for unattached cards.
type CardScore struct {
	Label  string `json:"label"`
	Title  string `json:"title"`
	Points int    `json:"points"`
	Reason string `json:"reason"`
	Group  string `json:"group,omitempty"`
}

type PlayerScore struct {
	Name  string      `json:"name"`
	Total int         `json:"total"`
	Cards []CardScore `json:"cards"`
}

type ScanResult struct {
	Type          string        `json:"type"`
	RunID         string        `json:"run_id,omitempty"`
	CatalogDigest string        `json:"catalog_digest,omitempty"`
	Players       []PlayerScore `json:"players"`
}

type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewError(code, msg string) ErrorMsg {
	return ErrorMsg{Type: TypeError, Code: code, Message: msg}
}
