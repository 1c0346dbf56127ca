// Package domain defines the core business entities for the résumé screener.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Candidate: A résumé submitted to a workspace
//   - Chunk: A searchable unit of résumé text
//   - RetrievalCandidate: A ranked passage returned for a recruiter question
//   - Turn: One message of a recruiter conversation
//   - Interval: A busy or free period of a work day
//   - WorkflowResult: The staged outcome of an interview booking
//   - Intent: What a recruiter message asks the assistant to do
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
