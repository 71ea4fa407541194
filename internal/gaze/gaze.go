package gaze

import "math"

// QuaternionToYawPitch returns the gaze yaw and pitch of the rotation (x, y, z, w),
// in degrees. Yaw is the rotation about the X axis and pitch the rotation about
// the Y axis; roll is not computed. The quaternion must be normalized. NaN inputs
// produce NaN outputs and are left to the caller to filter.
func QuaternionToYawPitch(x, y, z, w float64) (yaw, pitch float64) {
	yaw = math.Atan2(2*(y*z+w*x), w*w-x*x-y*y+z*z)
	pitch = math.Asin(-2 * (x*z - w*y))

	return yaw * 180 / math.Pi, pitch * 180 / math.Pi
}
