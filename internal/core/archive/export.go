// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Export writes files under dir on fs, creating folders as needed.
// Existing files at the same paths are overwritten.
func Export(fs afero.Fs, dir string, files []File) error {
	root := filepath.Clean(dir)

	for _, file := range files {
		target := filepath.Join(root, filepath.FromSlash(file.Path))
		if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
			return fmt.Errorf("archive: path %q escapes %q", file.Path, root)
		}

		if err := fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("archive: mkdir for %q: %w", file.Path, err)
		}
		if err := afero.WriteFile(fs, target, []byte(file.Content), os.FileMode(0o644)); err != nil {
			return fmt.Errorf("archive: write %q: %w", file.Path, err)
		}
	}

	return nil
}
