package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound      = errors.New("content not found")
	ErrBlankTitle    = errors.New("title must not be blank")
	ErrMissingStatus = errors.New("status is required")
	ErrMissingType   = errors.New("contentType is required")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidType   = errors.New("invalid content type")
)

// Status is the editorial state of a calendar item.
type Status string

const (
	StatusIdea       Status = "IDEA"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
	StatusPublished  Status = "PUBLISHED"
)

var statuses = []Status{StatusIdea, StatusInProgress, StatusDone, StatusPublished}

func ParseStatus(s string) (Status, error) {
	for _, st := range statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

func (s *Status) UnmarshalText(b []byte) error {
	st, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Type is the medium of a calendar item.
type Type string

const (
	TypeArticle        Type = "ARTICLE"
	TypeVideo          Type = "VIDEO"
	TypeCourse         Type = "COURSE"
	TypeConferenceTalk Type = "CONFERENCE_TALK"
)

var types = []Type{TypeArticle, TypeVideo, TypeCourse, TypeConferenceTalk}

func ParseType(s string) (Type, error) {
	for _, t := range types {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
}

func (t Type) Valid() bool {
	_, err := ParseType(string(t))
	return err == nil
}

func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Content is one row of the content table. A nil ID means the record has not
// been persisted yet.
type Content struct {
	ID          *int       `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Desc        string     `db:"description" json:"desc"`
	Status      Status     `db:"status" json:"status"`
	ContentType Type       `db:"content_type" json:"contentType"`
	DateCreated time.Time  `db:"date_created" json:"dateCreated"`
	DateUpdated *time.Time `db:"date_updated" json:"dateUpdated"`
	URL         string     `db:"url" json:"url"`
}

// UnmarshalJSON decodes the timestamps with ParseTimestamp.
func (c *Content) UnmarshalJSON(b []byte) error {
	type plain Content
	aux := struct {
		*plain
		DateCreated Timestamp  `json:"dateCreated"`
		DateUpdated *Timestamp `json:"dateUpdated"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	c.DateCreated = aux.DateCreated.Time
	c.DateUpdated = aux.DateUpdated.Ptr()
	return nil
}

// Validate checks the fields that must be present before a write reaches the store.
func (c *Content) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrBlankTitle
	}
	if c.Status == "" {
		return ErrMissingStatus
	}
	if !c.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, c.Status)
	}
	if c.ContentType == "" {
		return ErrMissingType
	}
	if !c.ContentType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, c.ContentType)
	}
	return nil
}

// IntPtr is a helper for building records with a known id.
func IntPtr(v int) *int {
	return &v
}
