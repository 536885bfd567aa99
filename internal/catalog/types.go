package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind tags an identifier with the list it belongs to.
type Kind int

const (
	KindUser Kind = iota + 1
	KindAlbum
	KindPhoto
)

// Prefix returns the identifier prefix used both for rendered handles and
// for child-list query parameters ("userId", "albumId", "photoId").
func (k Kind) Prefix() string {
	switch k {
	case KindUser:
		return "userId"
	case KindAlbum:
		return "albumId"
	case KindPhoto:
		return "photoId"
	default:
		return "unknownId"
	}
}

// String returns the singular kind name.
func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindAlbum:
		return "album"
	case KindPhoto:
		return "photo"
	default:
		return "unknown"
	}
}

// ID is a typed item identifier: kind tag plus numeric id.
type ID struct {
	Kind  Kind
	Value int64
}

// NewID builds an identifier.
func NewID(kind Kind, value int64) ID {
	return ID{Kind: kind, Value: value}
}

// IsZero reports whether the identifier is unset.
func (id ID) IsZero() bool {
	return id.Kind == 0 && id.Value == 0
}

// String formats the identifier as "<prefix>=<value>", e.g. "photoId=5".
func (id ID) String() string {
	return id.Kind.Prefix() + "=" + strconv.FormatInt(id.Value, 10)
}

// ParseID is the inverse of ID.String.
func ParseID(s string) (ID, error) {
	prefix, value, ok := strings.Cut(strings.TrimSpace(s), "=")
	if !ok {
		return ID{}, fmt.Errorf("parse id %q: missing '='", s)
	}
	var kind Kind
	for _, k := range []Kind{KindUser, KindAlbum, KindPhoto} {
		if k.Prefix() == prefix {
			kind = k
			break
		}
	}
	if kind == 0 {
		return ID{}, fmt.Errorf("parse id %q: unknown prefix %q", s, prefix)
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return ID{}, fmt.Errorf("parse id %q: %w", s, err)
	}
	return ID{Kind: kind, Value: n}, nil
}

// FlexInt decodes an id that the API may send either as a number or as a
// quoted string. The string must hold an integer: ids double as numeric
// query parameters, so a non-numeric id fails its item's decode.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return fmt.Errorf("id %q is not numeric: %w", s, err)
		}
		*f = FlexInt(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

// Record is one item returned by the data source.
type Record interface {
	Key() ID
	// Field returns the value of a named JSON field.
	Field(name string) (any, bool)
}

// User mirrors an entry of the users collection.
type User struct {
	ID       FlexInt `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
}

// Key implements Record.
func (u User) Key() ID { return NewID(KindUser, int64(u.ID)) }

// Field implements Record.
func (u User) Field(name string) (any, bool) {
	switch name {
	case "id":
		return int64(u.ID), true
	case "name":
		return u.Name, true
	case "username":
		return u.Username, true
	case "email":
		return u.Email, true
	}
	return nil, false
}

// Album mirrors an entry of the albums collection.
type Album struct {
	ID     FlexInt `json:"id"`
	UserID FlexInt `json:"userId"`
	Title  string  `json:"title"`
}

// Key implements Record.
func (a Album) Key() ID { return NewID(KindAlbum, int64(a.ID)) }

// Field implements Record.
func (a Album) Field(name string) (any, bool) {
	switch name {
	case "id":
		return int64(a.ID), true
	case "userId":
		return int64(a.UserID), true
	case "title":
		return a.Title, true
	}
	return nil, false
}

// Photo mirrors an entry of the photos collection.
type Photo struct {
	ID           FlexInt `json:"id"`
	AlbumID      FlexInt `json:"albumId"`
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	ThumbnailURL string  `json:"thumbnailUrl"`
}

// Key implements Record.
func (p Photo) Key() ID { return NewID(KindPhoto, int64(p.ID)) }

// Field implements Record.
func (p Photo) Field(name string) (any, bool) {
	switch name {
	case "id":
		return int64(p.ID), true
	case "albumId":
		return int64(p.AlbumID), true
	case "title":
		return p.Title, true
	case "url":
		return p.URL, true
	case "thumbnailUrl":
		return p.ThumbnailURL, true
	}
	return nil, false
}

// ImageInfo describes an image that finished loading.
type ImageInfo struct {
	URL    string
	Format string
	Width  int
	Height int
}
