package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads one snapshot tree from r.
func Decode(r io.Reader) (*Node, error) {
	var n Node
	dec := json.NewDecoder(r)
	if err := dec.Decode(&n); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	return &n, nil
}

// DecodeBytes parses a snapshot tree from raw JSON.
func DecodeBytes(data []byte) (*Node, error) {
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	return &n, nil
}

// Encode writes the tree to w as indented JSON.
func Encode(w io.Writer, n *Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(n); err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return nil
}
