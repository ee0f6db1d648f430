// Package fingerprint computes a digest that identifies a set of input icons.
//
// The digest covers the number of icons and, in collection order, each
// icon's path and byte size. It is reported to the user and in logs; a
// build never skips work because a digest is unchanged.
package fingerprint

import (
	"fmt"
	"hash/crc64"
	"os"
	"strconv"

	"github.com/conneroisu/iconfont/internal/collector"
	"github.com/conneroisu/iconfont/internal/errors"
)

// Digest is a 16 hex digit run fingerprint.
type Digest string

var table = crc64.MakeTable(crc64.ECMA)

// Record is one (path, size) pair fed into the digest.
type Record struct {
	Path string
	Size int64
}

// Compute returns the digest of the given icons.
func Compute(icons []*collector.SourceIcon) Digest {
	records := make([]Record, len(icons))
	for i, icon := range icons {
		records[i] = Record{Path: icon.Path, Size: icon.Size}
	}
	return Of(records)
}

// OfPaths stats every path and returns the digest without reading content.
func OfPaths(paths []string) (Digest, error) {
	records := make([]Record, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return "", errors.NewAssemblyError("", "failed to stat icon", err).WithFile(path)
		}
		records = append(records, Record{Path: path, Size: info.Size()})
	}
	return Of(records), nil
}

// Of returns the digest of records, in order.
func Of(records []Record) Digest {
	h := crc64.New(table)
	buf := make([]byte, 0, 64)

	buf = strconv.AppendInt(buf, int64(len(records)), 10)
	buf = append(buf, '\n')
	h.Write(buf)

	for _, r := range records {
		buf = buf[:0]
		buf = append(buf, r.Path...)
		buf = append(buf, 0)
		buf = strconv.AppendInt(buf, r.Size, 10)
		buf = append(buf, '\n')
		h.Write(buf)
	}

	return Digest(fmt.Sprintf("%016x", h.Sum64()))
}
