package wire

import (
	"bytes"
	"encoding/gob"
)

// EncodeServerMessage gob-encodes a ServerMessage into one binary
// payload, suitable as a single gorilla/websocket binary frame.
func EncodeServerMessage(m *ServerMessage) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeClientMessage decodes one binary frame into a ClientMessage.
func DecodeClientMessage(data []byte) (*ClientMessage, error) {
	var m ClientMessage
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}
