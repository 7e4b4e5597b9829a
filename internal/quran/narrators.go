package quran

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// NarratorList keeps the narrators in the key order of the source "audio" object.
// encoding/json drops object order when decoding into a map, so the
// object is walked token by token instead.
type NarratorList []NarratorTrack

// UnmarshalJSON implements json.Unmarshaler.
func (l *NarratorList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("audio: expected object")
	}

	var out NarratorList
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("audio: unexpected key %v", tok)
		}
		var track NarratorTrack
		if err := dec.Decode(&track); err != nil {
			return fmt.Errorf("audio %q: %w", key, err)
		}
		track.ID = key
		out = append(out, track)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = out
	return nil
}

// MarshalJSON writes the list back as an ordered object.
func (l NarratorList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(n.ID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
