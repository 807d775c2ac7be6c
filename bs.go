package blobstore

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// BlobID is the id of a blob: the xxHash64 of its content.
// Callers should treat it as an opaque handle.
type BlobID uint64

// Sum computes the BlobID of a byte sequence.
func Sum(b []byte) BlobID {
	return BlobID(xxhash.Sum64(b))
}

// String renders id as 0x followed by 16 lowercase hex digits.
func (id BlobID) String() string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(id))
	return "0x" + hex.EncodeToString(buf[:])
}

// ParseBlobID parses either the output of BlobID.String
// (hex with a 0x prefix, of any length up to 16 digits)
// or a plain decimal number.
func ParseBlobID(s string) (BlobID, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "parsing hex blob id %q", s)
		}
		return BlobID(n), nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing blob id %q", s)
	}
	return BlobID(n), nil
}

// Metadata is a read-only projection of a stored blob.
type Metadata struct {
	Size uint64
	Tags []string // sorted; nil when there are none
}
