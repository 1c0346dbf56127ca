// Package services implements the driving port interfaces.
// Services hold the screening logic: chunked ingestion, query expansion,
// hybrid retrieval, conversation memory, intent routing, availability and
// the interview booking workflow. They reach the outside world only
// through driven ports.
package services
