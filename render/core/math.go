package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func LerpVec2(a, b mgl32.Vec2, t float32) mgl32.Vec2 {
	return mgl32.Vec2{Lerp(a.X(), b.X(), t), Lerp(a.Y(), b.Y(), t)}
}

func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{Lerp(a.X(), b.X(), t), Lerp(a.Y(), b.Y(), t), Lerp(a.Z(), b.Z(), t)}
}

// CylToCartesian converts cylindrical coordinates (Y-up) to a point.
func CylToCartesian(r, theta, y float32) mgl32.Vec3 {
	return mgl32.Vec3{r * math32.Cos(theta), y, r * math32.Sin(theta)}
}
