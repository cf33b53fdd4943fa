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
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultScriptExt is the extension used for script files the manifest does
// not name explicitly.
const DefaultScriptExt = ".gsw"

// ScriptFilePath returns the on-disk path of the script with the given slug.
// The manifest entry's file name wins; an unknown slug maps to
// <root>/script/<slug>.gsw so a script can be written before it is
// registered. Returns "" for a nil handle.
func ScriptFilePath(ph *ProjectHandle, slug string) string {
	if ph == nil {
		return ""
	}
	file := slug + DefaultScriptExt
	if s := ph.Project.FindScript(slug); s != nil && s.File != "" {
		file = s.File
	}
	return filepath.Join(ph.Root, ScriptDirName, file)
}

// ReadScript returns the full text of the script with the given slug. A
// missing file reads as empty content, not an error; a new script starts
// blank.
func ReadScript(ph *ProjectHandle, slug string) (string, error) {
	if ph == nil {
		return "", errors.New("nil ProjectHandle")
	}
	p := ScriptFilePath(ph, slug)
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read script %s: %w", slug, err)
	}
	return string(b), nil
}

// WriteScript writes the full text of the script with the given slug,
// creating the script directory if needed. The write is transactional: temp
// file plus rename, same as the manifest.
func WriteScript(ph *ProjectHandle, slug, text string) error {
	if ph == nil {
		return errors.New("nil ProjectHandle")
	}
	p := ScriptFilePath(ph, slug)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("ensure script dir: %w", err)
	}
	temp := p + ".tmp"
	if err := writeFileSync(temp, []byte(text)); err != nil {
		return fmt.Errorf("write temp script: %w", err)
	}
	if _, err := os.Stat(p); err == nil {
		_ = os.Remove(p)
	}
	if err := os.Rename(temp, p); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace script %s: %w", slug, err)
	}
	return nil
}

// ListScriptFiles returns the file names present in the script directory,
// including scripts not yet registered in the manifest.
func ListScriptFiles(ph *ProjectHandle) ([]string, error) {
	if ph == nil {
		return nil, errors.New("nil ProjectHandle")
	}
	ents, err := os.ReadDir(filepath.Join(ph.Root, ScriptDirName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read script dir: %w", err)
	}
	var out []string
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		out = append(out, e.Name())
	}
	return out, nil
}
