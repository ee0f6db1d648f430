package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/conneroisu/iconfont/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Build the icon font and stylesheet",
	Long: `Build the icon font from every .svg file in the input directory.

The run writes <font-name>.woff2 and <font-name>.css to the output
directory. If either file already exists you are asked before it is
overwritten, unless --yes is given.

Examples:
  iconfont build                          # icons/*.svg -> dist/icons.{woff2,css}
  iconfont build -i assets/svg -o public  # Custom directories
  iconfont build --font-name brand --prefix br
  iconfont build --otf --manifest         # Also write brand.otf and brand.yml`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res, err := pipeline.Run(ctx, pipeline.Options{
		Config:  cfg,
		Confirm: stdinConfirm(cmd.InOrStdin(), cmd.ErrOrStderr()),
		Logger:  newLogger(cfg),
	})
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), res)
	return nil
}

func printResult(w io.Writer, res *pipeline.Result) {
	fmt.Fprintf(w, "Generated %d glyph(s) in %dms (fingerprint %s)\n",
		len(res.Glyphs), res.Duration.Milliseconds(), res.Fingerprint)
	for _, f := range res.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
}
