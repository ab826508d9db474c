// Package share implements the peer-to-peer state exchange protocol: a Trip
// serialized into a compact URL-safe token, embedded in a link fragment as
// "#trip=<token>", decoded on the receiving device, and merged with any local
// copy of the same trip.
//
// Decoding is deliberately forgiving: any malformed token, fragment, or URL
// yields nil rather than an error, so callers treat "no valid trip in this
// link" as a normal checked case and the system never fails on untrusted
// input.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tripweave/backend/internal/domain"
)

// fragmentKey marks the trip token inside a share link's hash fragment.
const fragmentKey = "trip="

// Encode serializes a Trip into a URL-safe share token. The token is a
// reversible byte-for-byte transform (JSON then unpadded URL-safe base64);
// Decode(Encode(t)) reproduces t.
func Encode(t domain.Trip) (string, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("share.Encode: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode is the inverse of Encode. It returns nil on any malformed input —
// bad base64, bad JSON, or a payload that is not a trip — never an error or
// a panic.
func Decode(token string) *domain.Trip {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return nil
	}

	var t domain.Trip
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil
	}
	// Valid JSON that is not a trip (e.g. "{}" or an unrelated object)
	// decodes to a zero value; treat it as malformed too.
	if t.ID == "" || t.Name == "" {
		return nil
	}
	return &t
}

// FromURL extracts and decodes the trip token from a share link.
// Any other fragment content is ignored, and a link without the "trip="
// marker — or anything unparsable along the way — returns nil, not an error.
func FromURL(raw string) *domain.Trip {
	_, fragment, ok := strings.Cut(raw, "#")
	if !ok {
		return nil
	}
	for _, part := range strings.Split(fragment, "&") {
		if token, found := strings.CutPrefix(part, fragmentKey); found {
			return Decode(token)
		}
	}
	return nil
}

// URL builds the shareable link for a trip: <base>#trip=<token>.
func URL(base string, t domain.Trip) (string, error) {
	token, err := Encode(t)
	if err != nil {
		return "", err
	}
	return base + "#" + fragmentKey + token, nil
}
