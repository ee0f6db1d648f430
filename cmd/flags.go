package cmd

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/conneroisu/iconfont/internal/config"
)

// buildFlagKeys maps configuration keys to the flags that set them
var buildFlagKeys = map[string]string{
	"input.dir":       "input",
	"output.dir":      "output",
	"output.force":    "yes",
	"output.manifest": "manifest",
	"output.otf":      "otf",
	"font.name":       "font-name",
	"font.prefix":     "prefix",
	"font.collisions": "collisions",
}

// addBuildFlags adds the flags shared by every command that builds a font
func addBuildFlags(fs *pflag.FlagSet) {
	fs.StringP("input", "i", config.DefaultInputDir, "Directory containing the .svg icons")
	fs.StringP("output", "o", config.DefaultOutputDir, "Directory the font and stylesheet are written to")
	fs.String("font-name", config.DefaultFontName, "Font family and output file base name")
	fs.String("prefix", config.DefaultPrefix, "CSS class name prefix")
	fs.BoolP("yes", "y", false, "Overwrite existing output without asking")
	fs.Bool("manifest", false, "Also write a YAML glyph manifest")
	fs.Bool("otf", false, "Also write the intermediate OpenType font")
	fs.String("collisions", config.CollisionSuffix, "Duplicate glyph name policy (suffix, error, allow)")
}

func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		_ = viper.BindPFlag(key, fs.Lookup(name))
	}
}
