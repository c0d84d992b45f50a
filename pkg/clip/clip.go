// Package clip moves drag payloads through the system clipboard as text.
//
// A payload is written as "<format>;base64,<data>" so it survives any
// clipboard that only carries plain text.
package clip

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"tableflip.dev/treedrag/pkg/tree/viewmodel"
)

const sep = ";base64,"

// ErrNoPayload is returned when the clipboard holds something other than
// an encoded payload.
var ErrNoPayload = errors.New("clip: clipboard holds no payload")

// Encode renders p as clipboard text.
func Encode(p viewmodel.Payload) string {
	return p.Format + sep + base64.StdEncoding.EncodeToString(p.Data)
}

// Decode parses text produced by Encode.
func Decode(text string) (viewmodel.Payload, error) {
	format, data, ok := strings.Cut(strings.TrimSpace(text), sep)
	if !ok || format == "" {
		return viewmodel.Payload{}, ErrNoPayload
	}
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return viewmodel.Payload{}, fmt.Errorf("%w: %v", ErrNoPayload, err)
	}
	return viewmodel.Payload{Format: format, Data: b}, nil
}

// Write puts p on the system clipboard.
func Write(p viewmodel.Payload) error {
	if clipboard.Unsupported {
		return errors.New("clip: no clipboard available")
	}
	return clipboard.WriteAll(Encode(p))
}

// Read takes a payload from the system clipboard.
func Read() (viewmodel.Payload, error) {
	if clipboard.Unsupported {
		return viewmodel.Payload{}, errors.New("clip: no clipboard available")
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return viewmodel.Payload{}, fmt.Errorf("clip: read clipboard: %w", err)
	}
	return Decode(text)
}
