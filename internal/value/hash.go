package value

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainValue prefixes value hashes. The version suffix allows the encoding
// to change without colliding with old digests.
const DomainValue = "mathjs/value/v1"

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash returns a content-addressed identifier for v, computed over its
// deterministic JSON encoding. BigDecimals are reduced first, so "1.0" and
// "1" hash equally even though they marshal differently.
func Hash(v Value) (string, error) {
	data, err := Marshal(hashForm(v))
	if err != nil {
		return "", fmt.Errorf("hash value: %w", err)
	}
	return hashWithDomain(DomainValue, data), nil
}

// hashForm returns v with every BigDecimal replaced by its reduced form.
func hashForm(v Value) Value {
	switch val := v.(type) {
	case BigDecimal:
		return val.reduced()
	case Array:
		out := make(Array, len(val))
		for i, elem := range val {
			out[i] = hashForm(elem)
		}
		return out
	case Matrix:
		return Matrix{data: hashForm(val.data).(Array), size: val.size}
	}
	return v
}
