package todoconnect

import (
	"encoding/json"
	"fmt"
)

// CodecName is registered for the application/json and application/connect+json content types.
const CodecName = "json"

// jsonCodec lets Connect carry plain Go structs instead of protobuf messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return CodecName }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
