package services

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/aarondl/null/v8"

	"github.com/MakMD/floor-boss-work-sub000/internal/entities"
)

// LegacyUpdateFallback is rendered for records that predate the action_type
// column and carry no message either.
const LegacyUpdateFallback = "Legacy update"

type changePair struct {
	Field string
	Value string
}

// RenderActivityMessage maps a stored activity payload to display text. It is
// total: malformed or unknown shapes degrade to a generic fallback, never an
// error.
func RenderActivityMessage(actionType null.String, message null.String, details json.RawMessage) string {
	if !actionType.Valid || actionType.String == "" {
		if message.Valid && message.String != "" {
			return message.String
		}
		return LegacyUpdateFallback
	}

	switch actionType.String {
	case entities.ActionStatusChanged:
		if changes := parseChanges(details); len(changes) > 0 {
			parts := make([]string, 0, len(changes))
			for _, ch := range changes {
				field := strings.ReplaceAll(ch.Field, "_", " ")
				parts = append(parts, "changed "+field+" to "+ch.Value)
			}
			return strings.Join(parts, ", ")
		}
		return genericActionText(actionType.String, message)
	case entities.ActionNoteAdded:
		return "added a new note."
	default:
		return genericActionText(actionType.String, message)
	}
}

func genericActionText(actionType string, message null.String) string {
	if message.Valid && message.String != "" {
		return message.String
	}
	return strings.ReplaceAll(strings.ToLower(actionType), "_", " ")
}

// parseChanges extracts details.changes as ordered (field, value) pairs.
// encoding/json maps do not keep key order, so the object is walked with a
// token decoder instead.
func parseChanges(details json.RawMessage) []changePair {
	if len(details) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(details))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil
		}

		if key != "changes" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil
			}
			continue
		}

		return parseChangePairs(dec)
	}
	return nil
}

func parseChangePairs(dec *json.Decoder) []changePair {
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var pairs []changePair
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil
		}

		pairs = append(pairs, changePair{Field: key, Value: rawToText(raw)})
	}
	return pairs
}

func rawToText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
