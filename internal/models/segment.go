package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// pendingPrefix marks client-generated segment IDs that have not been
// assigned a server ID yet.
const pendingPrefix = "temp-"

// SegmentID identifies a segment either by its server-assigned integer ID
// (persisted) or by a client-generated temporary ID (pending). Reconciling a
// pending segment after a successful create is an explicit state transition.
type SegmentID struct {
	server   int64
	clientID string
}

// NewPersistedID creates a SegmentID backed by a server-assigned ID.
func NewPersistedID(id int64) SegmentID {
	return SegmentID{server: id}
}

// NewPendingID creates a fresh client-side temporary SegmentID.
func NewPendingID() SegmentID {
	return SegmentID{clientID: pendingPrefix + uuid.New().String()}
}

// ParseSegmentID parses a wire representation: either an integer or a
// "temp-" prefixed client ID. Anything else is treated as a pending ID so
// that unknown identifiers never collide with server IDs.
func ParseSegmentID(s string) SegmentID {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return SegmentID{server: n}
	}
	if strings.HasPrefix(s, pendingPrefix) {
		return SegmentID{clientID: s}
	}
	return SegmentID{clientID: pendingPrefix + s}
}

// Persisted returns the server ID and true when the segment has been saved.
func (id SegmentID) Persisted() (int64, bool) {
	return id.server, id.clientID == ""
}

// Pending returns the client ID and true when the segment has not been saved.
func (id SegmentID) Pending() (string, bool) {
	return id.clientID, id.clientID != ""
}

// IsZero reports whether the ID carries no identity at all.
func (id SegmentID) IsZero() bool {
	return id.server == 0 && id.clientID == ""
}

func (id SegmentID) String() string {
	if id.clientID != "" {
		return id.clientID
	}
	return strconv.FormatInt(id.server, 10)
}

// MarshalJSON encodes persisted IDs as JSON numbers and pending IDs as
// strings, matching the backend's wire format.
func (id SegmentID) MarshalJSON() ([]byte, error) {
	if id.clientID != "" {
		return json.Marshal(id.clientID)
	}
	return json.Marshal(id.server)
}

// UnmarshalJSON accepts both numeric and string representations.
func (id *SegmentID) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*id = SegmentID{server: int64(v)}
	case string:
		*id = ParseSegmentID(v)
	case nil:
		*id = SegmentID{}
	default:
		return fmt.Errorf("invalid segment id: %s", string(data))
	}
	return nil
}

// Segment is a labeled time interval within a video with a confidence score.
// Times are in seconds; frame numbers are what the backend actually stores.
type Segment struct {
	ID            SegmentID `json:"id"`
	VideoID       int64     `json:"video_id,omitempty"`
	LabelID       int64     `json:"label_id,omitempty"`
	Label         string    `json:"label"`
	StartTime     float64   `json:"start_time"`
	EndTime       float64   `json:"end_time"`
	AvgConfidence float64   `json:"avg_confidence"`
	StartFrame    int64     `json:"start_frame_number,omitempty"`
	EndFrame      int64     `json:"end_frame_number,omitempty"`
}

// Validate checks the segment time invariant.
func (s *Segment) Validate() error {
	if s.StartTime < 0 {
		return fmt.Errorf("start time must not be negative")
	}
	if s.StartTime > s.EndTime {
		return fmt.Errorf("start time must not be after end time")
	}
	return nil
}

// Duration returns the segment length in seconds.
func (s *Segment) Duration() float64 {
	return s.EndTime - s.StartTime
}
