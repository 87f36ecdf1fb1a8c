// Package kernel provides the shared domain primitives used by every aggregate:
//   - UUID: identifier value object with validation and comparison
//   - Email: normalized (trimmed, lowercased) address value object
//
// Both are immutable and safe for concurrent use.
package kernel
