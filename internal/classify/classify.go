// Package classify turns raw ledger records into typed content entities.
//
// A record's attribute list is normalized into a key/value map exactly once
// per record. The ledger does not guarantee unique attribute keys; the
// first occurrence of a key wins and later duplicates are ignored.
package classify

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/mintfeed/mintfeed/internal/ledger"
	"github.com/mintfeed/mintfeed/internal/models"
)

// Attribute keys recognized on ledger records.
const (
	AttrType       = "type"
	AttrAuthor     = "author"
	AttrTimestamp  = "timestamp"
	AttrUsername   = "username"
	AttrParentPost = "parent_post"
)

// Normalize flattens an attribute list into a map, first occurrence wins.
// Numeric values are rendered without a trailing fraction when integral.
func Normalize(attrs []ledger.Attribute) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if _, seen := m[a.TraitType]; seen {
			continue
		}
		m[a.TraitType] = attrString(a.Value)
	}
	return m
}

func attrString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case nil:
		return ""
	default:
		return ""
	}
}

// Classify maps a record onto exactly one derived entity. Records with a
// missing or unrecognized type attribute return ok=false and are skipped
// silently: the collection address space is shared, so foreign records are
// expected, not errors.
//
// Classification is total for recognized types. Missing fields default
// (empty author, creation time now) rather than rejecting the record;
// relationship-dependent queries exclude entities with missing links.
func Classify(r ledger.ContentRecord) (models.Entity, bool) {
	attrs := Normalize(r.Attributes)

	switch models.ContentKind(attrs[AttrType]) {
	case models.KindProfile:
		return models.Profile{
			ID:           r.ID,
			Username:     attrs[AttrUsername],
			Bio:          r.Description,
			ImageURL:     r.Image,
			OwnerAddress: attrs[AttrAuthor],
			CreatedAt:    parseTimestamp(attrs[AttrTimestamp]),
		}, true
	case models.KindPost:
		return models.Post{
			ID:            r.ID,
			Content:       r.Description,
			ImageURL:      r.Image,
			AuthorAddress: attrs[AttrAuthor],
			CreatedAt:     parseTimestamp(attrs[AttrTimestamp]),
		}, true
	case models.KindReply:
		return models.Reply{
			ID:            r.ID,
			Content:       r.Description,
			AuthorAddress: attrs[AttrAuthor],
			CreatedAt:     parseTimestamp(attrs[AttrTimestamp]),
			ParentPostID:  attrs[AttrParentPost],
		}, true
	}
	return nil, false
}

// parseTimestamp converts an epoch-seconds attribute to a time value.
// Absent or unparseable timestamps default to the current time.
func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Now()
	}
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Now()
	}
	return time.Unix(int64(secs), 0)
}
