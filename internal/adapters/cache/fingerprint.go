package cache

import (
	"bytes"
	"deconfliction-service/internal/ports"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Fingerprint hashes the msgpack encoding of a check key. Struct fields are
// encoded in declaration order, so equal keys always hash equally.
func Fingerprint(key ports.CheckKey) (uint64, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseArrayEncodedStructs(true)
	if err := enc.Encode(key); err != nil {
		return 0, fmt.Errorf("fingerprint: encode key: %w", err)
	}
	return xxhash.Sum64(buf.Bytes()), nil
}
