package main

import (
	"os"

	"github.com/conneroisu/iconfont/cmd"
	"github.com/conneroisu/iconfont/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cmd.PrintError(err)
		os.Exit(errors.ExitCode(err))
	}
}
