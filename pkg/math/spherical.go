package math

import "github.com/chewxy/math32"

// Pi is float32 pi.
const Pi = math32.Pi

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float32) float32 {
	return rad * 180 / Pi
}

// SphericalToCartesian converts physics-convention spherical coordinates to a
// point. polar is measured from +Y (0 is straight up) and azimuth around +Y,
// starting at +Z.
func SphericalToCartesian(radius, azimuth, polar float32) Vec3 {
	sinPolar, cosPolar := math32.Sincos(polar)
	sinAzimuth, cosAzimuth := math32.Sincos(azimuth)
	return Vec3{
		X: radius * sinPolar * sinAzimuth,
		Y: radius * cosPolar,
		Z: radius * sinPolar * cosAzimuth,
	}
}

// CartesianToSpherical is the inverse of SphericalToCartesian. The zero vector
// yields all-zero coordinates.
func CartesianToSpherical(v Vec3) (radius, azimuth, polar float32) {
	radius = v.Length()
	if radius == 0 {
		return 0, 0, 0
	}
	azimuth = math32.Atan2(v.X, v.Z)
	polar = math32.Atan2(math32.Hypot(v.X, v.Z), v.Y)
	return radius, azimuth, polar
}
