package scene

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	atmosphereRadius  = 1.04
	atmosphereFalloff = 0.62
	atmosphereGain    = 0.6
)

var atmosphereColor = mgl32.Vec3{0.45, 0.6, 1.0}

// srgbToLinear maps 8-bit sRGB channel values to linear light.
var srgbToLinear [256]float32

func init() {
	for i := range srgbToLinear {
		r, _, _ := colorful.Color{R: float64(i) / 255}.LinearRgb()
		srgbToLinear[i] = float32(r)
	}
}

// camera looks down -z from (0, 0, dist) with a vertical field of view.
type camera struct {
	eye     mgl32.Vec3
	tanHalf float32
	aspect  float32
	w, h    int
}

func newCamera(w, h int, dist, fovDeg float64) camera {
	return camera{
		eye:     mgl32.Vec3{0, 0, float32(dist)},
		tanHalf: math32.Tan(mgl32.DegToRad(float32(fovDeg)) / 2),
		aspect:  float32(w) / float32(h),
		w:       w,
		h:       h,
	}
}

// ray returns the view direction through the center of pixel (px, py).
func (c camera) ray(px, py int) mgl32.Vec3 {
	x := (2*(float32(px)+0.5)/float32(c.w) - 1) * c.tanHalf * c.aspect
	y := (1 - 2*(float32(py)+0.5)/float32(c.h)) * c.tanHalf
	return mgl32.Vec3{x, y, -1}.Normalize()
}

// project maps a world point to pixel coordinates. scale is the number of
// pixels one world unit spans at the point's depth.
func (c camera) project(p mgl32.Vec3) (x, y, scale float64) {
	d := c.eye[2] - p[2]
	if d < 1e-3 {
		d = 1e-3
	}
	sx := p[0] / d / (c.tanHalf * c.aspect)
	sy := p[1] / d / c.tanHalf
	x = float64((sx + 1) / 2 * float32(c.w))
	y = float64((1 - sy) / 2 * float32(c.h))
	scale = float64(float32(c.h) / (2 * c.tanHalf * d))
	return x, y, scale
}

// hitSphere intersects a ray with a sphere of radius r at the origin.
func hitSphere(o, d mgl32.Vec3, r float32) (near, far float32, ok bool) {
	b := o.Dot(d)
	c := o.Dot(o) - r*r
	disc := b*b - c
	if disc < 0 {
		return 0, 0, false
	}
	s := math32.Sqrt(disc)
	return -b - s, -b + s, true
}

// sphereUV maps a point on the unit sphere to equirectangular texture
// coordinates. The texture center faces +z.
func sphereUV(p mgl32.Vec3) (u, v float32) {
	u = 0.5 + math32.Atan2(p[0], p[2])/(2*math32.Pi)
	v = math32.Acos(mgl32.Clamp(p[1], -1, 1)) / math32.Pi
	return u, v
}

// surface shades the planet: albedo from the texture, normal perturbed by
// the bump map, lit by the scene lights.
type surface struct {
	tex       *image.RGBA
	bump      *image.Gray
	toWorld   mgl32.Mat3
	toLocal   mgl32.Mat3
	lights    []Light
	ambient   mgl32.Vec3
	bumpScale float32
}

func (s *surface) shade(p mgl32.Vec3) mgl32.Vec3 {
	local := s.toLocal.Mul3x1(p)
	u, v := sphereUV(local)
	albedo := s.albedo(u, v)
	n := s.toWorld.Mul3x1(s.normal(local, u, v))

	light := s.ambient
	for _, l := range s.lights {
		if ndl := n.Dot(l.dir()); ndl > 0 {
			light = light.Add(l.radiance().Mul(ndl))
		}
	}
	return mgl32.Vec3{albedo[0] * light[0], albedo[1] * light[1], albedo[2] * light[2]}
}

// albedo samples the texture bilinearly in linear light, repeating
// horizontally and clamping at the poles.
func (s *surface) albedo(u, v float32) mgl32.Vec3 {
	b := s.tex.Rect
	w, h := b.Dx(), b.Dy()
	fx := u*float32(w) - 0.5
	fy := mgl32.Clamp(v*float32(h)-0.5, 0, float32(h-1))
	x0 := int(math32.Floor(fx))
	y0 := int(fy)
	tx := fx - float32(x0)
	ty := fy - float32(y0)
	y1 := min(y0+1, h-1)

	texel := func(x, y int) mgl32.Vec3 {
		x = ((x % w) + w) % w
		i := s.tex.PixOffset(b.Min.X+x, b.Min.Y+y)
		px := s.tex.Pix[i : i+3 : i+3]
		return mgl32.Vec3{srgbToLinear[px[0]], srgbToLinear[px[1]], srgbToLinear[px[2]]}
	}
	top := texel(x0, y0).Mul(1 - tx).Add(texel(x0+1, y0).Mul(tx))
	bot := texel(x0, y1).Mul(1 - tx).Add(texel(x0+1, y1).Mul(tx))
	return top.Mul(1 - ty).Add(bot.Mul(ty))
}

// normal tilts the local sphere normal against the bump map gradient.
func (s *surface) normal(local mgl32.Vec3, u, v float32) mgl32.Vec3 {
	if s.bump == nil || s.bumpScale == 0 {
		return local
	}
	b := s.bump.Rect
	w, h := b.Dx(), b.Dy()
	x := int(u*float32(w)) % w
	y := min(int(v*float32(h)), h-1)
	height := func(x, y int) float32 {
		x = ((x % w) + w) % w
		y = min(max(y, 0), h-1)
		return float32(s.bump.GrayAt(b.Min.X+x, b.Min.Y+y).Y) / 255
	}
	// one texel spans 2*pi/w radians in both directions
	k := s.bumpScale * float32(w) / (2 * math32.Pi)
	du := (height(x+1, y) - height(x-1, y)) / 2 * k
	dv := (height(x, y+1) - height(x, y-1)) / 2 * k
	if du == 0 && dv == 0 {
		return local
	}

	lon := (u - 0.5) * 2 * math32.Pi
	lat := v * math32.Pi
	east := mgl32.Vec3{math32.Cos(lon), 0, -math32.Sin(lon)}
	south := mgl32.Vec3{math32.Cos(lat) * math32.Sin(lon), -math32.Sin(lat), math32.Cos(lat) * math32.Cos(lon)}
	return local.Sub(east.Mul(du)).Sub(south.Mul(dv)).Normalize()
}

// atmosphere returns the additive rim glow for a ray that misses the
// planet, read from the back face of a slightly larger shell.
func atmosphere(o, d mgl32.Vec3) mgl32.Vec3 {
	_, far, ok := hitSphere(o, d, atmosphereRadius)
	if !ok || far <= 0 {
		return mgl32.Vec3{}
	}
	n := o.Add(d.Mul(far)).Mul(1 / atmosphereRadius)
	i := atmosphereFalloff - n[2]
	if i <= 0 {
		return mgl32.Vec3{}
	}
	return atmosphereColor.Mul(i * i * i * atmosphereGain)
}

// acesFilm is the Narkowicz fit of the ACES filmic curve.
func acesFilm(x float32) float32 {
	v := x * (2.51*x + 0.03) / (x*(2.43*x+0.59) + 0.14)
	return mgl32.Clamp(v, 0, 1)
}

// toneMap converts linear radiance to display sRGB.
func toneMap(c mgl32.Vec3, exposure float32) colorful.Color {
	return colorful.LinearRgb(
		float64(acesFilm(c[0]*exposure)),
		float64(acesFilm(c[1]*exposure)),
		float64(acesFilm(c[2]*exposure)),
	).Clamped()
}
