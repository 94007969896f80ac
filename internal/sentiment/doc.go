// Package sentiment implements the sentiment reconciliation engine.
//
// Three scorers each produce a signed scalar in [-1, 1]; the engine combines
// them into an equal-weight ensemble score and label, measures scorer
// disagreement, resolves the label against the declared star rating, and
// flags reviews where signals and rating disagree beyond a tolerance.
// No mutable state is shared across invocations; scorer resources are
// immutable after construction.
package sentiment
