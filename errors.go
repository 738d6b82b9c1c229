// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package convertflow

import (
	"errors"
	"fmt"
)

// UnsupportedPairError is returned by a transform when the requested target
// is outside its whitelist.
type UnsupportedPairError struct {
	Source Subcategory
	Target string
}

func (e *UnsupportedPairError) Error() string {
	return fmt.Sprintf("%s to %s not supported", e.Source, e.Target)
}

// CollaboratorError records a failure inside a codec or parser the engine
// delegates to, such as a corrupt PDF or an undecodable image.
type CollaboratorError struct {
	Collaborator string
	Op           string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Collaborator, e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// DispatchError is the only error shape returned to callers of the engine.
// It names the file and wraps the original cause.
type DispatchError struct {
	File   string
	Target string
	Err    error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("failed to convert %s: %v", e.File, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// IsUnsupportedPair reports whether err wraps an UnsupportedPairError.
func IsUnsupportedPair(err error) bool {
	var target *UnsupportedPairError
	return errors.As(err, &target)
}

// IsCollaboratorFailure reports whether err wraps a CollaboratorError.
func IsCollaboratorFailure(err error) bool {
	var target *CollaboratorError
	return errors.As(err, &target)
}

func unsupported(source Subcategory, target string) error {
	return &UnsupportedPairError{Source: source, Target: target}
}

func collaboratorErr(collaborator, op string, err error) error {
	return &CollaboratorError{Collaborator: collaborator, Op: op, Err: err}
}
