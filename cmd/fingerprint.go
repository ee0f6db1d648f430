package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conneroisu/iconfont/internal/collector"
	"github.com/conneroisu/iconfont/internal/errors"
	"github.com/conneroisu/iconfont/internal/fingerprint"
	"github.com/conneroisu/iconfont/internal/manifest"
)

var (
	fingerprintFormat string
	fingerprintCheck  bool
)

var fingerprintCmd = &cobra.Command{
	Use:     "fingerprint",
	Aliases: []string{"fp"},
	Short:   "Print the digest of the input icons",
	Long: `Print a digest of the input directory computed from the number of icons
and each icon's path and size. The digest changes whenever an icon is
added, removed, renamed or resized. Icons are not read.

With --check the digest is compared with the one recorded in the manifest
of the last build (<output>/<font-name>.yml, written by build --manifest).
The command fails when they differ, so scripts can skip up to date builds.

Examples:
  iconfont fingerprint
  iconfont fingerprint -i assets/svg --format json
  iconfont fingerprint --check || iconfont build --manifest -y`,
	RunE: runFingerprint,
}

func init() {
	rootCmd.AddCommand(fingerprintCmd)

	fingerprintCmd.Flags().StringVarP(&fingerprintFormat, "format", "f", "text", "Output format (text, json)")
	fingerprintCmd.Flags().BoolVar(&fingerprintCheck, "check", false, "Fail if the inputs changed since the manifest was written")
}

func runFingerprint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	paths, err := collector.Collect(cfg.Input.Dir)
	if err != nil {
		return err
	}
	digest, err := fingerprint.OfPaths(paths)
	if err != nil {
		return err
	}

	var status *manifestStatus
	if fingerprintCheck {
		status, err = checkManifest(filepath.Join(cfg.Output.Dir, cfg.ManifestFile()), digest)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch fingerprintFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Input       string          `json:"input"`
			Icons       int             `json:"icons"`
			Fingerprint string          `json:"fingerprint"`
			Manifest    *manifestStatus `json:"manifest,omitempty"`
		}{cfg.Input.Dir, len(paths), string(digest), status}); err != nil {
			return err
		}
	case "text":
		fmt.Fprintln(out, digest)
		if status != nil && status.UpToDate {
			fmt.Fprintf(out, "%s is up to date\n", status.Path)
		}
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", fingerprintFormat)
	}

	if status != nil && !status.UpToDate {
		return fmt.Errorf("%s is stale: recorded fingerprint %s, inputs are %s",
			status.Path, status.Fingerprint, digest)
	}
	return nil
}

type manifestStatus struct {
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
	UpToDate    bool   `json:"up_to_date"`
}

// checkManifest compares digest with the fingerprint recorded at path.
func checkManifest(path string, digest fingerprint.Digest) (*manifestStatus, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeReadInput, "failed to read manifest", err).WithFile(path)
	}
	return &manifestStatus{
		Path:        path,
		Fingerprint: m.Fingerprint,
		UpToDate:    m.Fingerprint == string(digest),
	}, nil
}
