// Package scene displays planet textures: a session object holding the
// texture, lights, accessory and camera orbit, and a software renderer
// that produces still snapshots of the planet in space.
package scene

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"
	"github.com/kiesman99/planetize/internal/accessory"
	"github.com/kiesman99/planetize/pkg/texture"
	"github.com/lucasb-eyer/go-colorful"
)

// Defaults of the planet view.
const (
	DefaultTilt      = 23.4 // degrees
	DefaultFOV       = 45   // degrees, vertical
	DefaultExposure  = 1.2
	DefaultBumpScale = 0.015
	DefaultStars     = 260
	MaxSnapshotSide  = 8192
)

// ErrNoTexture is returned when a snapshot is requested before any
// texture was set.
var ErrNoTexture = errors.New("scene has no texture")

// Light is a directional light. Position points from the planet toward
// the light and need not be normalized.
type Light struct {
	Position  mgl32.Vec3
	Color     colorful.Color
	Intensity float32
}

func (l Light) dir() mgl32.Vec3 { return l.Position.Normalize() }

func (l Light) radiance() mgl32.Vec3 {
	r, g, b := l.Color.LinearRgb()
	return mgl32.Vec3{float32(r), float32(g), float32(b)}.Mul(l.Intensity)
}

func hexColor(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultLights is the warm key, cool fill and rim rig.
func DefaultLights() []Light {
	return []Light{
		{Position: mgl32.Vec3{5, 2, 3}, Color: hexColor("#fff4e0"), Intensity: 2.2},
		{Position: mgl32.Vec3{-5, -1, -2}, Color: hexColor("#4466aa"), Intensity: 0.15},
		{Position: mgl32.Vec3{-3, 0, -5}, Color: hexColor("#ffd475"), Intensity: 0.5},
	}
}

// DefaultAmbient is the dim ambient term.
func DefaultAmbient() Light {
	return Light{Color: hexColor("#222244"), Intensity: 0.2}
}

// Scene is one planet viewing session. It is not safe for concurrent use.
type Scene struct {
	Orbit     *Orbit
	Accessory accessory.Accessory
	// Tilt is the axial tilt in degrees.
	Tilt       float64
	FOV        float64
	Lights     []Light
	Ambient    Light
	Exposure   float64
	BumpScale  float64
	Stars      int
	Seed       int64
	Background color.RGBA

	tex  *image.RGBA
	bump *image.Gray
}

// New returns a scene with the default rig and no texture.
func New() *Scene {
	return &Scene{
		Orbit:      NewOrbit(),
		Tilt:       DefaultTilt,
		FOV:        DefaultFOV,
		Lights:     DefaultLights(),
		Ambient:    DefaultAmbient(),
		Exposure:   DefaultExposure,
		BumpScale:  DefaultBumpScale,
		Stars:      DefaultStars,
		Background: color.RGBA{5, 3, 15, 255},
	}
}

// SetTexture replaces the planet surface. A nil bump is derived from tex.
func (s *Scene) SetTexture(tex *image.RGBA, bump *image.Gray) {
	if tex != nil && bump == nil {
		bump = texture.BumpMap(tex, texture.DefaultContrast)
	}
	s.tex, s.bump = tex, bump
}

// Texture returns the current surface texture.
func (s *Scene) Texture() *image.RGBA { return s.tex }

// rotation returns the planet's local-to-world rotation: axial tilt, then
// yaw, then pitch.
func (s *Scene) rotation() mgl32.Mat3 {
	tilt := mgl32.DegToRad(float32(s.Tilt))
	return mgl32.Rotate3DX(float32(s.Orbit.Pitch)).
		Mul3(mgl32.Rotate3DY(float32(s.Orbit.Yaw))).
		Mul3(mgl32.Rotate3DZ(tilt))
}

// Snapshot renders one w x h still of the planet: starfield, accessories
// and the lit sphere with its atmosphere.
func (s *Scene) Snapshot(w, h int) (*image.RGBA, error) {
	if s.tex == nil {
		return nil, ErrNoTexture
	}
	if w <= 0 || h <= 0 || w > MaxSnapshotSide || h > MaxSnapshotSide {
		return nil, &texture.DimensionError{Width: w, Height: h, Reason: fmt.Sprintf("snapshot sides must be in [1, %d]", MaxSnapshotSide)}
	}

	cam := newCamera(w, h, s.Orbit.Distance, s.FOV)
	rot := s.rotation()
	props := s.props(rot)

	bg := gg.NewContext(w, h)
	defer bg.Close()
	bg.ClearWithColor(gg.FromColor(s.Background))
	if err := s.drawStars(bg); err != nil {
		return nil, fmt.Errorf("draw stars: %w", err)
	}
	if err := props.draw(bg, cam, false); err != nil {
		return nil, fmt.Errorf("draw accessories: %w", err)
	}

	img, err := rgbaOf(bg)
	if err != nil {
		return nil, err
	}
	s.renderPlanet(img, cam, rot)

	fg := gg.NewContextForImage(img)
	defer fg.Close()
	if err := props.draw(fg, cam, true); err != nil {
		return nil, fmt.Errorf("draw accessories: %w", err)
	}
	return rgbaOf(fg)
}

func rgbaOf(dc *gg.Context) (*image.RGBA, error) {
	img := dc.Image()
	out, ok := img.(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("unexpected canvas image type %T", img)
	}
	return out, nil
}

func (s *Scene) renderPlanet(img *image.RGBA, cam camera, rot mgl32.Mat3) {
	amb := s.Ambient.radiance()
	surf := &surface{
		tex:       s.tex,
		bump:      s.bump,
		toWorld:   rot,
		toLocal:   rot.Transpose(),
		lights:    s.Lights,
		ambient:   amb,
		bumpScale: float32(s.BumpScale),
	}
	exposure := float32(s.Exposure)

	for py := 0; py < cam.h; py++ {
		for px := 0; px < cam.w; px++ {
			d := cam.ray(px, py)
			i := img.PixOffset(px, py)
			p := img.Pix[i : i+4 : i+4]

			if near, _, ok := hitSphere(cam.eye, d, 1); ok && near > 0 {
				c := toneMap(surf.shade(cam.eye.Add(d.Mul(near))), exposure)
				p[0], p[1], p[2] = c.RGB255()
				p[3] = 255
				continue
			}
			if glow := atmosphere(cam.eye, d); glow != (mgl32.Vec3{}) {
				for ch := 0; ch < 3; ch++ {
					p[ch] = uint8(math.Min(255, float64(p[ch])+math.Round(float64(glow[ch])*255)))
				}
			}
		}
	}
}
