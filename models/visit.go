// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// VisitID is the server-assigned identifier of a confirmed visit.
// The API may send it either as a JSON string or as a JSON number, so
// VisitID accepts both and always stores the textual form.
type VisitID string

// UnmarshalJSON implements [json.Unmarshaler].
func (id *VisitID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = VisitID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("visit id must be a string or a number: %w", err)
	}
	*id = VisitID(n.String())
	return nil
}

// Visit is a check-in at a landmark as acknowledged by the server.
type Visit struct {
	// ID is the server identifier of the visit.
	ID VisitID `json:"id"`

	// UserID is the owner of the visit, if the server reports it.
	UserID int64 `json:"user_id,omitempty"`

	// LandmarkID is the business key of the visit.
	LandmarkID string `json:"landmark_id"`

	// CreatedAt is the server-side creation time.
	CreatedAt time.Time `json:"created_at"`

	// Points is the score the server awarded for this visit.
	Points int `json:"points,omitempty"`
}

// PendingVisit is a visit-creation intent recorded locally and not yet
// confirmed by the server.
//
// Once Synced becomes true the record is kept as an audit entry and is
// ignored by pending counts and replay.
type PendingVisit struct {
	// ID is client-generated, formatted as pending_<unix millis>_<random>,
	// and never reused.
	ID string `json:"id"`

	// LandmarkID is the business key the intent refers to. At most one
	// unsynced PendingVisit exists per LandmarkID.
	LandmarkID string `json:"landmark_id"`

	// Timestamp is the creation time taken from the client clock.
	Timestamp time.Time `json:"timestamp"`

	// Synced is false until the server accepted (or already had) the visit.
	Synced bool `json:"synced"`
}

// VisitKind tells which variant a [CachedVisit] holds.
type VisitKind int

const (
	// VisitKindConfirmed marks a visit that came from the server.
	VisitKindConfirmed VisitKind = iota + 1
	// VisitKindPending marks an optimistic shadow of a queued visit.
	VisitKindPending
)

// ErrEmptyCachedVisit is returned when a CachedVisit holds neither variant.
var ErrEmptyCachedVisit = errors.New("cached visit holds neither a confirmed nor a pending visit")

// CachedVisit is one entry of the cached visit list. Exactly one of
// Confirmed or Pending is set. Use [CachedVisit.Match] to handle both cases.
type CachedVisit struct {
	Confirmed *Visit
	Pending   *PendingVisit
}

// ConfirmedVisit wraps a server visit into a CachedVisit.
func ConfirmedVisit(v Visit) CachedVisit {
	return CachedVisit{Confirmed: &v}
}

// ShadowVisit wraps a queued visit into a CachedVisit.
func ShadowVisit(p PendingVisit) CachedVisit {
	return CachedVisit{Pending: &p}
}

// Kind reports which variant is set, or 0 for an empty value.
func (c CachedVisit) Kind() VisitKind {
	switch {
	case c.Confirmed != nil:
		return VisitKindConfirmed
	case c.Pending != nil:
		return VisitKindPending
	default:
		return 0
	}
}

// LandmarkID returns the landmark of whichever variant is set.
func (c CachedVisit) LandmarkID() string {
	switch c.Kind() {
	case VisitKindConfirmed:
		return c.Confirmed.LandmarkID
	case VisitKindPending:
		return c.Pending.LandmarkID
	default:
		return ""
	}
}

// Match calls exactly one of the handlers depending on the variant.
// It returns [ErrEmptyCachedVisit] when neither variant is set.
func (c CachedVisit) Match(confirmed func(Visit), pending func(PendingVisit)) error {
	switch c.Kind() {
	case VisitKindConfirmed:
		confirmed(*c.Confirmed)
	case VisitKindPending:
		pending(*c.Pending)
	default:
		return ErrEmptyCachedVisit
	}
	return nil
}

// shadowVisitJSON is the persisted shape of an optimistic shadow record.
type shadowVisitJSON struct {
	PendingID  string    `json:"pending_id"`
	LandmarkID string    `json:"landmark_id"`
	CreatedAt  time.Time `json:"created_at"`
	IsPending  bool      `json:"is_pending"`
}

// MarshalJSON implements [json.Marshaler]. Confirmed visits are written as
// plain visit objects; shadows carry "is_pending": true.
func (c CachedVisit) MarshalJSON() ([]byte, error) {
	switch c.Kind() {
	case VisitKindConfirmed:
		return json.Marshal(c.Confirmed)
	case VisitKindPending:
		return json.Marshal(shadowVisitJSON{
			PendingID:  c.Pending.ID,
			LandmarkID: c.Pending.LandmarkID,
			CreatedAt:  c.Pending.Timestamp,
			IsPending:  true,
		})
	default:
		return nil, ErrEmptyCachedVisit
	}
}

// UnmarshalJSON implements [json.Unmarshaler].
func (c *CachedVisit) UnmarshalJSON(b []byte) error {
	var probe struct {
		IsPending bool `json:"is_pending"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}

	if probe.IsPending {
		var s shadowVisitJSON
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = ShadowVisit(PendingVisit{ID: s.PendingID, LandmarkID: s.LandmarkID, Timestamp: s.CreatedAt})
		return nil
	}

	var v Visit
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*c = ConfirmedVisit(v)
	return nil
}
