package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/conneroisu/iconfont/internal/pipeline"
)

// stdinConfirm asks on out and reads the answer from in. Only "y" and "yes"
// accept; an empty answer or end of input declines.
func stdinConfirm(in io.Reader, out io.Writer) pipeline.ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(prompt string) (bool, error) {
		fmt.Fprintf(out, "%s [y/N]: ", prompt)

		input, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, fmt.Errorf("failed to read input: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(input)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}
