// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - EmbeddingService: Generates vectors for chunks and query expansions
//   - VectorStore: Per-workspace chunk collections with nearest-neighbour queries
//   - SessionStore: Conversation turn persistence
//   - JobDescriptionStore: Job description persistence
//   - ConfigStore: Application configuration
//   - PostProcessor: Chunk pipeline stages
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Without it, query expansion and answers use deterministic fallbacks.
//   - CalendarService: Without it, availability and booking report the calendar as unavailable.
//   - EmailTransport: Without it, invitations are rendered for manual sending.
//   - PromptStore: Without it, built-in prompt templates are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
