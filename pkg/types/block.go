// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Block is a stored question/answer pair with its linked tags.
type Block struct {
	// ID is the store-assigned identity, monotonically increasing.
	ID int64 `json:"id" yaml:"id"`

	// Question is the prompt side of the block, stored trimmed.
	Question string `json:"question" yaml:"question"`

	// Answer is the response side of the block, stored trimmed.
	Answer string `json:"answer" yaml:"answer"`

	// Tags are the names of tags linked to this block. Sorted by name on
	// create; first-seen aggregation order on list and query reads.
	Tags []string `json:"tags" yaml:"tags"`
}
