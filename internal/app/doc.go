// Package app provides the application service layer.
//
// Orchestrates use cases: single-review analysis, batch scoring, theme
// tagging, persistence of augmented records. Sits between HTTP handlers and
// the engine/repositories. Depends on domain interfaces, not concrete
// implementations.
package app
