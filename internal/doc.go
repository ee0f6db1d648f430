// Package internal contains the core implementation packages for iconfont.
//
// The packages follow the order of a build: collector finds the icons, glyph
// names them and assigns code points, svgfont assembles them into an SVG
// font, transcode turns that into OpenType and WOFF2, and stylesheet emits the
// CSS. pipeline drives the stages and owns the run state.
package internal
