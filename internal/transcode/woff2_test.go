package transcode

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/sfnt/header"

	"github.com/conneroisu/iconfont/internal/errors"
)

type woff2Entry struct {
	tag    string
	length uint32
}

// decodeWOFF2 reads a WOFF2 file written with null transforms.
func decodeWOFF2(t *testing.T, data []byte) (woff2Header, map[string][]byte) {
	t.Helper()

	r := bytes.NewReader(data)
	var hdr woff2Header
	require.NoError(t, binary.Read(r, binary.BigEndian, &hdr))

	entries := make([]woff2Entry, hdr.NumTables)
	for i := range entries {
		flags, err := r.ReadByte()
		require.NoError(t, err)
		require.Zero(t, flags>>6, "transform version")

		if idx := flags & 0x3f; idx == arbitraryTag {
			tag := make([]byte, 4)
			_, err := io.ReadFull(r, tag)
			require.NoError(t, err)
			entries[i].tag = string(tag)
		} else {
			entries[i].tag = knownTags[idx]
		}

		var v uint32
		for {
			b, err := r.ReadByte()
			require.NoError(t, err)
			v = v<<7 | uint32(b&0x7f)
			if b&0x80 == 0 {
				break
			}
		}
		entries[i].length = v
	}

	offset := len(data) - r.Len()
	stream := data[offset : offset+int(hdr.TotalCompressedSize)]
	payload, err := io.ReadAll(brotli.NewReader(bytes.NewReader(stream)))
	require.NoError(t, err)

	tables := make(map[string][]byte)
	for _, e := range entries {
		require.GreaterOrEqual(t, len(payload), int(e.length))
		tables[e.tag] = payload[:e.length]
		payload = payload[e.length:]
	}
	assert.Empty(t, payload)
	return hdr, tables
}

func TestToWOFF2(t *testing.T) {
	otf, err := ToOpenType([]byte(sampleDoc))
	require.NoError(t, err)

	woff, err := ToWOFF2(otf)
	require.NoError(t, err)
	assert.Equal(t, []byte("wOF2"), woff[:4])
	assert.Zero(t, len(woff)%4)

	hdr, tables := decodeWOFF2(t, woff)
	assert.Equal(t, uint32(0x4F54544F), hdr.Flavor)
	assert.Equal(t, uint32(len(woff)), hdr.Length)
	assert.Equal(t, uint16(1), hdr.MajorVersion)

	r := bytes.NewReader(otf)
	info, err := header.Read(r)
	require.NoError(t, err)
	require.Len(t, tables, len(info.Toc))
	assert.Contains(t, tables, "CFF ")
	assert.Contains(t, tables, "cmap")

	var sfntSize uint32 = 12 + 16*uint32(len(info.Toc))
	for tag := range info.Toc {
		want, err := info.ReadTableBytes(r, tag)
		require.NoError(t, err)
		assert.Equal(t, want, tables[tag], "table %q", tag)
		sfntSize += pad4(uint32(len(want)))
	}
	assert.Equal(t, sfntSize, hdr.TotalSfntSize)
}

func TestToWOFF2Invalid(t *testing.T) {
	_, err := ToWOFF2([]byte("not a font"))
	assert.Error(t, err)
}

func TestAppendUIntBase128(t *testing.T) {
	testCases := []struct {
		value    uint32
		expected []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7f}},
		{128, []byte{0x81, 0x00}},
		{16383, []byte{0xff, 0x7f}},
		{16384, []byte{0x81, 0x80, 0x00}},
		{0xFFFFFFFF, []byte{0x8f, 0xff, 0xff, 0xff, 0x7f}},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, appendUIntBase128(nil, tc.value), "value %d", tc.value)
	}
}

func TestTranscode(t *testing.T) {
	res, err := Transcode([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Equal(t, ".woff2", res.WOFF2.Ext)
	assert.Equal(t, "woff2", res.WOFF2.Format)
	assert.Equal(t, ".otf", res.OpenType.Ext)
	assert.NotEmpty(t, res.OpenType.Data)
	assert.NotEmpty(t, res.WOFF2.Data)

	_, err = Transcode([]byte("<svg></svg>"))
	require.Error(t, err)
	assert.True(t, errors.IsTranscodeError(err))
}
