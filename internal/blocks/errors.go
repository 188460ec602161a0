// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package blocks

// ValidationError reports caller input that fails a precondition. It is
// always raised before any storage access, so a validation failure never
// leaves partial state.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
