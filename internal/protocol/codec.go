package protocol

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// Frame layout on the wire:
//
//	u32 total_size  (big-endian)  -- bytes of (json + binary) that follow the two headers
//	u32 json_size   (big-endian)  -- bytes of JSON that follow
//	json bytes      (UTF-8)       -- Fragment envelope
//	binary bytes    (opaque)      -- payload of (total_size - json_size) bytes
//
// json_size <= total_size is a framing invariant; violating it is a fatal
// protocol error and the connection must be dropped.

// Send writes fragment and payload to w as one framed message. It writes all
// four parts sequentially and fails with an I/O error if any write fails.
func Send(w io.Writer, fragment Fragment, payload []byte) error {
	jsonBytes, err := json.Marshal(fragment)
	if err != nil {
		return fmt.Errorf("protocol: encoding fragment: %w", err)
	}

	jsonSize := uint32(len(jsonBytes))
	totalSize := jsonSize + uint32(len(payload))

	var header [8]byte
	binary.BigEndian.PutUint32(header[0:4], totalSize)
	binary.BigEndian.PutUint32(header[4:8], jsonSize)

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("protocol: writing header: %w", err)
	}
	if _, err := w.Write(jsonBytes); err != nil {
		return fmt.Errorf("protocol: writing json: %w", err)
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("protocol: writing payload: %w", err)
		}
	}
	return nil
}

// Read blocks reading exactly total_size+8 bytes from r and returns the
// decoded fragment and its trailing binary payload, or a protocol/I/O error.
// A frame with no payload bytes yields a nil payload.
func Read(r io.Reader) (Fragment, []byte, error) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Fragment{}, nil, fmt.Errorf("protocol: reading header: %w", err)
	}
	totalSize := binary.BigEndian.Uint32(header[0:4])
	jsonSize := binary.BigEndian.Uint32(header[4:8])

	if jsonSize > totalSize {
		return Fragment{}, nil, fmt.Errorf("protocol: framing violation: json_size %d exceeds total_size %d", jsonSize, totalSize)
	}

	jsonBytes := make([]byte, jsonSize)
	if _, err := io.ReadFull(r, jsonBytes); err != nil {
		return Fragment{}, nil, fmt.Errorf("protocol: reading json: %w", err)
	}

	var fragment Fragment
	if err := json.Unmarshal(jsonBytes, &fragment); err != nil {
		return Fragment{}, nil, fmt.Errorf("protocol: decoding fragment: %w", err)
	}

	var payload []byte
	if n := totalSize - jsonSize; n > 0 {
		payload = make([]byte, n)
		if _, err := io.ReadFull(r, payload); err != nil {
			return Fragment{}, nil, fmt.Errorf("protocol: reading payload: %w", err)
		}
	}

	return fragment, payload, nil
}
