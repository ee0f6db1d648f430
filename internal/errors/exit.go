package errors

import (
	"errors"
)

// Process exit codes.
const (
	ExitOK                = 0
	ExitFailure           = 1
	ExitDirectoryNotFound = 2
	ExitNoInputFiles      = 3
	ExitUserAborted       = 4
)

// ExitCode maps an error returned by a run to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	switch CodeOf(err) {
	case ErrCodeDirectoryNotFound:
		return ExitDirectoryNotFound
	case ErrCodeNoInputFiles:
		return ExitNoInputFiles
	case ErrCodeUserAborted:
		return ExitUserAborted
	default:
		return ExitFailure
	}
}

// ErrorSuggestion represents a suggestion for fixing an error
type ErrorSuggestion struct {
	Title   string
	Command string
}

// Suggest returns hints for the failure classes a user can act on.
func Suggest(err error) []ErrorSuggestion {
	var ie *IconError
	if !errors.As(err, &ie) {
		return nil
	}

	switch ie.Code {
	case ErrCodeDirectoryNotFound:
		return []ErrorSuggestion{
			{Title: "Create the input directory and put your .svg icons in it", Command: "mkdir -p " + ie.FilePath},
			{Title: "Point the build at another directory", Command: "iconfont build --input <dir>"},
		}
	case ErrCodeNoInputFiles:
		return []ErrorSuggestion{
			{Title: "Only files ending in .svg are collected; subdirectories are not scanned"},
		}
	case ErrCodeGlyphNameCollision:
		return []ErrorSuggestion{
			{Title: "Rename one of the icons, or let duplicates get a numeric suffix", Command: "iconfont build --collisions suffix"},
		}
	case ErrCodeGlyphCapacity:
		return []ErrorSuggestion{
			{Title: "Split the icon set into several fonts"},
		}
	case ErrCodeUserAborted:
		return []ErrorSuggestion{
			{Title: "Skip the confirmation when overwriting is intended", Command: "iconfont build --yes"},
		}
	}

	return nil
}
