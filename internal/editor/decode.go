package editor

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownAction is returned by DecodeAction for an unrecognised name.
var ErrUnknownAction = errors.New("unknown action")

// DecodeAction builds a typed action from its wire name and JSON payload.
// Payload-less actions ignore payload; an empty payload decodes to the zero
// value of the action. The reset payload is a bare DocumentState.
func DecodeAction(name string, payload []byte) (Action, error) {
	switch name {
	case NameReset:
		// The reset payload is the document itself rather than a wrapper.
		var r Reset
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &r.State); err != nil {
				return nil, fmt.Errorf("decode %s payload: %w", name, err)
			}
		}
		return r, nil
	case NameSelect:
		return decodeInto[Select](name, payload)
	case NameInsert:
		return decodeInto[Insert](name, payload)
	case NameUpdateProps:
		return decodeInto[UpdateProps](name, payload)
	case NameSetHidden:
		return decodeInto[SetHidden](name, payload)
	case NameToggleLocked:
		return decodeInto[ToggleLocked](name, payload)
	case NameDeleteSelected:
		return DeleteSelected{}, nil
	case NameCopySelected:
		return CopySelected{}, nil
	case NamePasteCopied:
		return PasteCopied{}, nil
	case NameSelectPrev:
		return SelectPrev{}, nil
	case NameSelectNext:
		return SelectNext{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

func decodeInto[T Action](name string, payload []byte) (Action, error) {
	var a T
	if len(payload) == 0 {
		return a, nil
	}
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", name, err)
	}
	return a, nil
}
