/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// StyleSheet provides hierarchical resolution of TextStyle presets.
// It supports three scopes:
//   - Global: app defaults or builtins
//   - Project: styles defined for the current screenplay project
//   - Script: overrides specific to a single script file
//
// Resolution precedence is Script > Project > Global > Builtin.
// Builtins are provided by styles.go (builtinStyles map).
//
// This is an in-memory helper to keep UI and storage decoupled; project code
// can populate the Project and Script maps as needed.

type StyleSheet struct {
	Global  map[string]TextStyle
	Project map[string]TextStyle
	Script  map[string]TextStyle
}

// NewStyleSheet creates a stylesheet with empty scopes and builtin styles
// copied into Global for convenience.
func NewStyleSheet() *StyleSheet {
	ss := &StyleSheet{
		Global:  map[string]TextStyle{},
		Project: map[string]TextStyle{},
		Script:  map[string]TextStyle{},
	}
	for _, name := range ListStyles() {
		if st, ok := GetStyle(name); ok {
			ss.Global[name] = st
		}
	}
	return ss
}

// WithProject returns a shallow copy with the provided project-level overrides merged.
func (s *StyleSheet) WithProject(over map[string]TextStyle) *StyleSheet {
	cp := s.clone()
	for k, v := range over {
		cp.Project[k] = v
	}
	return cp
}

// WithScript returns a shallow copy with the provided script-level overrides merged.
func (s *StyleSheet) WithScript(over map[string]TextStyle) *StyleSheet {
	cp := s.clone()
	for k, v := range over {
		cp.Script[k] = v
	}
	return cp
}

// Resolve returns the effective TextStyle by name using precedence
// Script > Project > Global > Builtin. The second return value is false if
// the name cannot be resolved at any level.
func (s *StyleSheet) Resolve(name string) (TextStyle, bool) {
	if s == nil {
		return TextStyle{}, false
	}
	if st, ok := s.Script[name]; ok {
		return st, true
	}
	if st, ok := s.Project[name]; ok {
		return st, true
	}
	if st, ok := s.Global[name]; ok {
		return st, true
	}
	return GetStyle(name)
}

func (s *StyleSheet) clone() *StyleSheet {
	cp := &StyleSheet{
		Global:  make(map[string]TextStyle, len(s.Global)),
		Project: make(map[string]TextStyle, len(s.Project)),
		Script:  make(map[string]TextStyle, len(s.Script)),
	}
	for k, v := range s.Global {
		cp.Global[k] = v
	}
	for k, v := range s.Project {
		cp.Project[k] = v
	}
	for k, v := range s.Script {
		cp.Script[k] = v
	}
	return cp
}
