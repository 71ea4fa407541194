// Package multipliers implements persistence for the operator-tuned multipliers.
//
// The FileRepository stores and loads the multipliers record as JSON on disk and
// exposes a Repository interface that the tuning store depends on.
package multipliers
