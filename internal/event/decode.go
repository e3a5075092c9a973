package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyPayload is returned when an event carries no payload at all
var ErrEmptyPayload = errors.New(ErrMsgEmptyPayload)

// DecodePayload returns the payload as T. Events published on the MemoryBus
// carry the typed struct (or a pointer to it); payloads read back from the
// dead-letter file arrive as generic JSON maps and are converted.
func DecodePayload[T any](input interface{}) (T, error) {
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var out T
	if input == nil {
		return out, fmt.Errorf(ErrMsgDecodePayload, out, ErrEmptyPayload)
	}
	raw, err := json.Marshal(input)
	if err != nil {
		return out, fmt.Errorf(ErrMsgDecodePayload, out, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf(ErrMsgDecodePayload, out, err)
	}
	return out, nil
}
