// Package transcode converts an SVG font document into binary font
// containers: first a CFF-flavoured OpenType font, then a WOFF2 file
// wrapping it.
//
// Both stages are pure functions of their input.
package transcode

import (
	"github.com/conneroisu/iconfont/internal/errors"
)

// Asset is one encoded font file.
type Asset struct {
	Format string
	Ext    string
	Data   []byte
}

// Result holds the intermediate OpenType font and the delivery font.
type Result struct {
	OpenType Asset
	WOFF2    Asset
}

// Transcode runs both conversion stages on an SVG font document.
func Transcode(doc []byte) (*Result, error) {
	otf, err := ToOpenType(doc)
	if err != nil {
		return nil, errors.NewTranscodeError("failed to build OpenType font", err)
	}

	woff2, err := ToWOFF2(otf)
	if err != nil {
		return nil, errors.NewTranscodeError("failed to build WOFF2 font", err)
	}

	return &Result{
		OpenType: Asset{Format: "opentype", Ext: ".otf", Data: otf},
		WOFF2:    Asset{Format: "woff2", Ext: ".woff2", Data: woff2},
	}, nil
}
