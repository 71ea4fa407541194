// Package mapper converts a normalized expression snapshot into the per-eye and
// mouth records consumed by the host once per frame.
//
// The mapper never writes a NaN or infinite value into a sink: a non-finite
// result leaves the previous sink value in place. Two behaviors inherited from
// the original driver are kept on purpose:
//
//   - the combined eye first mirrors a single tracking eye and is then
//     unconditionally overwritten with the average of both eyes;
//   - with LegacyRightEyeRotation set, the right eye rotation reuses the left
//     eye x/y/z components with its own w.
package mapper
