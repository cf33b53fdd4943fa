/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// AutosaveCrashSnapshot writes the in-memory manifest plus copies of every
// script file into a timestamped directory under backups/. It is called from
// the panic recovery path, so it must not depend on the regular Save flow
// (whose validation could reject the very state that caused the crash).
// Returns the snapshot directory path.
func AutosaveCrashSnapshot(ph *ProjectHandle) (string, error) {
	if ph == nil {
		return "", errors.New("nil ProjectHandle")
	}
	if ph.Root == "" {
		return "", errors.New("invalid ProjectHandle: missing root")
	}
	stamp := time.Now().Format("20060102-150405")
	dir := filepath.Join(ph.Root, BackupsDirName, "autosave-"+stamp)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create autosave dir: %w", err)
	}

	data, err := json.MarshalIndent(ph.Project, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), data, 0o644); err != nil {
		return "", fmt.Errorf("write autosave manifest: %w", err)
	}

	// Best-effort copy of the script files; a missing script dir is fine.
	sdir := filepath.Join(ph.Root, ScriptDirName)
	if ents, err := os.ReadDir(sdir); err == nil {
		for _, e := range ents {
			if e.IsDir() {
				continue
			}
			src := filepath.Join(sdir, e.Name())
			dst := filepath.Join(dir, e.Name())
			if cerr := copyFile(src, dst); cerr != nil {
				return dir, fmt.Errorf("copy script %s: %w", e.Name(), cerr)
			}
		}
	}
	return dir, nil
}
