// Package normalize turns raw producer records into the normalized expression
// set consumed by the avatar mapper.
//
// Raw values are carried forward: a side whose validity flag is false keeps the
// values it last received. The heuristic corrections are then applied to a copy
// of the carried values, so an invalid tick reproduces the previous output
// exactly instead of compounding the corrections.
package normalize
