package transcode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/andybalholm/brotli"
	"seehuhn.de/go/sfnt/header"
)

const woff2Signature = 0x774F4632 // "wOF2"

// arbitraryTag marks a table directory entry followed by an explicit tag.
const arbitraryTag = 63

// knownTags lists the tags with a fixed index in the WOFF2 table directory.
var knownTags = []string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca", "prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern", "LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS", "GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL", "SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar", "fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar", "mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat", "Gloc", "Feat", "Sill",
}

var knownTagIndex = func() map[string]byte {
	m := make(map[string]byte, len(knownTags))
	for i, tag := range knownTags {
		m[tag] = byte(i)
	}
	return m
}()

type woff2Header struct {
	Signature           uint32
	Flavor              uint32
	Length              uint32
	NumTables           uint16
	Reserved            uint16
	TotalSfntSize       uint32
	TotalCompressedSize uint32
	MajorVersion        uint16
	MinorVersion        uint16
	MetaOffset          uint32
	MetaLength          uint32
	MetaOrigLength      uint32
	PrivOffset          uint32
	PrivLength          uint32
}

// ToWOFF2 packs an OpenType font into a WOFF2 container.
//
// Every table is stored untransformed. This is valid for all tables of a
// CFF-flavoured font, which has no glyf or loca table.
func ToWOFF2(otf []byte) ([]byte, error) {
	r := bytes.NewReader(otf)
	info, err := header.Read(r)
	if err != nil {
		return nil, fmt.Errorf("read OpenType header: %w", err)
	}

	tags := make([]string, 0, len(info.Toc))
	for tag := range info.Toc {
		if tag == "glyf" || tag == "loca" {
			return nil, fmt.Errorf("TrueType outlines are not supported")
		}
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var (
		directory []byte
		payload   bytes.Buffer
		sfntSize  = uint32(12 + 16*len(tags))
	)
	for _, tag := range tags {
		data, err := info.ReadTableBytes(r, tag)
		if err != nil {
			return nil, fmt.Errorf("read table %q: %w", tag, err)
		}

		if idx, ok := knownTagIndex[tag]; ok {
			directory = append(directory, idx)
		} else {
			directory = append(directory, arbitraryTag)
			directory = append(directory, tag...)
		}
		directory = appendUIntBase128(directory, uint32(len(data)))

		payload.Write(data)
		sfntSize += pad4(uint32(len(data)))
	}

	var compressed bytes.Buffer
	bw := brotli.NewWriterLevel(&compressed, brotli.BestCompression)
	if _, err := bw.Write(payload.Bytes()); err != nil {
		return nil, fmt.Errorf("compress tables: %w", err)
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("compress tables: %w", err)
	}

	hdr := woff2Header{
		Signature:           woff2Signature,
		Flavor:              info.ScalerType,
		NumTables:           uint16(len(tags)),
		TotalSfntSize:       sfntSize,
		TotalCompressedSize: uint32(compressed.Len()),
		MajorVersion:        1,
	}
	unpadded := uint32(binary.Size(hdr) + len(directory) + compressed.Len())
	hdr.Length = pad4(unpadded)

	out := bytes.NewBuffer(make([]byte, 0, hdr.Length))
	_ = binary.Write(out, binary.BigEndian, hdr)
	out.Write(directory)
	out.Write(compressed.Bytes())
	out.Write(make([]byte, hdr.Length-unpadded))
	return out.Bytes(), nil
}

func pad4(n uint32) uint32 {
	return (n + 3) &^ 3
}

// appendUIntBase128 appends v as a big-endian base-128 number, seven bits
// per byte with the high bit set on all bytes but the last.
func appendUIntBase128(b []byte, v uint32) []byte {
	var tmp [5]byte
	i := len(tmp) - 1
	tmp[i] = byte(v & 0x7f)
	for v >>= 7; v != 0; v >>= 7 {
		i--
		tmp[i] = byte(v&0x7f) | 0x80
	}
	return append(b, tmp[i:]...)
}
