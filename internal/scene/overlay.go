package scene

import (
	"math"

	"cogentcore.org/lab/base/randx"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	starColor   = hexColor("#f0e6ff")
	hullColor   = hexColor("#e8e8f0")
	trimColor   = hexColor("#e04848")
	windowColor = hexColor("#4aa3ff")
	flameColor  = hexColor("#ffb347")
	saucerColor = hexColor("#b8c0cc")
	domeColor   = hexColor("#8fe3ff")
	beaconColor = hexColor("#ffe066")
)

const ringSegments = 120

type ringBand struct {
	inner, outer float32
	alpha        float64
}

var ringBands = []ringBand{
	{1.35, 1.55, 0.35},
	{1.60, 1.85, 0.55},
	{1.90, 2.10, 0.30},
}

type rock struct {
	pos   mgl32.Vec3
	size  float64
	color colorful.Color
}

type craft struct {
	pos, vel mgl32.Vec3
	size     float64
}

// props is the accessory geometry of one snapshot, in world space.
type props struct {
	rot       mgl32.Mat3
	rings     bool
	ringColor colorful.Color
	rocks     []rock
	rocket    *craft
	ufo       *craft
}

func setColor(dc *gg.Context, c colorful.Color, alpha float64) {
	dc.SetRGBA(c.R, c.G, c.B, alpha)
}

// poleColor is the texture's top-left texel, the fade color after
// synthesis.
func (s *Scene) poleColor() colorful.Color {
	c, _ := colorful.MakeColor(s.tex.RGBAAt(s.tex.Rect.Min.X, s.tex.Rect.Min.Y))
	return c
}

func (s *Scene) props(rot mgl32.Mat3) *props {
	rnd := randx.NewSysRand(s.Seed + 1)
	pole := s.poleColor()
	pr := &props{
		rot:       rot,
		rings:     s.Accessory.HasRings(),
		ringColor: pole.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, 0.55),
	}

	if s.Accessory.HasBelt() {
		for i := 0; i < 220; i++ {
			a := rnd.Float64() * 2 * math.Pi
			r := 1.55 + rnd.Float64()*0.45
			y := (rnd.Float64() - 0.5) * 0.08
			local := mgl32.Vec3{float32(r * math.Cos(a)), float32(y), float32(r * math.Sin(a))}
			gray := 0.35 + rnd.Float64()*0.3
			pr.rocks = append(pr.rocks, rock{
				pos:   rot.Mul3x1(local),
				size:  0.006 + rnd.Float64()*0.014,
				color: colorful.Color{R: gray, G: gray, B: gray}.BlendRgb(pole, 0.2),
			})
		}
	}
	if s.Accessory.HasRocket() {
		pr.rocket = orbiter(1.55, 0.35, rnd.Float64()*2*math.Pi, 0.16)
	}
	if s.Accessory.HasUFO() {
		pr.ufo = orbiter(1.7, -0.2, rnd.Float64()*2*math.Pi, 0.2)
	}
	return pr
}

// orbiter places a craft on a circular orbit inclined about the x axis.
func orbiter(radius, incl, angle, size float64) *craft {
	tilt := mgl32.Rotate3DX(float32(incl))
	sin, cos := math.Sincos(angle)
	return &craft{
		pos:  tilt.Mul3x1(mgl32.Vec3{float32(radius * cos), 0, float32(radius * sin)}),
		vel:  tilt.Mul3x1(mgl32.Vec3{float32(-sin), 0, float32(cos)}),
		size: size,
	}
}

// draw paints the parts of the accessories on one side of the planet:
// front parts lie nearer to the camera than the planet's center.
func (pr *props) draw(dc *gg.Context, cam camera, front bool) error {
	if pr.rings {
		if err := pr.drawRings(dc, cam, front); err != nil {
			return err
		}
	}
	for _, r := range pr.rocks {
		if (r.pos[2] >= 0) != front {
			continue
		}
		x, y, scale := cam.project(r.pos)
		setColor(dc, r.color, 1)
		dc.DrawCircle(x, y, max(0.6, r.size*scale))
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	if c := pr.rocket; c != nil && (c.pos[2] >= 0) == front {
		if err := drawCraft(dc, cam, c, rocketGlyph, true); err != nil {
			return err
		}
	}
	if c := pr.ufo; c != nil && (c.pos[2] >= 0) == front {
		if err := drawCraft(dc, cam, c, saucerGlyph, false); err != nil {
			return err
		}
	}
	return nil
}

func (pr *props) drawRings(dc *gg.Context, cam camera, front bool) error {
	step := 2 * math.Pi / ringSegments
	for _, band := range ringBands {
		n := 0
		for i := 0; i < ringSegments; i++ {
			a0, a1 := float64(i)*step, float64(i+1)*step
			mid := pr.ringPoint((band.inner+band.outer)/2, (a0+a1)/2)
			if (mid[2] >= 0) != front {
				continue
			}
			quad := [4]mgl32.Vec3{
				pr.ringPoint(band.inner, a0),
				pr.ringPoint(band.outer, a0),
				pr.ringPoint(band.outer, a1),
				pr.ringPoint(band.inner, a1),
			}
			for j, p := range quad {
				x, y, _ := cam.project(p)
				if j == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.ClosePath()
			n++
		}
		if n == 0 {
			continue
		}
		setColor(dc, pr.ringColor, band.alpha)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

func (pr *props) ringPoint(r float32, angle float64) mgl32.Vec3 {
	sin, cos := math.Sincos(angle)
	return pr.rot.Mul3x1(mgl32.Vec3{r * float32(cos), 0, r * float32(sin)})
}

// drawCraft draws a glyph at the craft's projected position, scaled to
// its size and, when turn is set, rotated to its screen-space heading.
// Glyphs are drawn in unit coordinates pointing along +x.
func drawCraft(dc *gg.Context, cam camera, c *craft, glyph func(*gg.Context) error, turn bool) error {
	x, y, scale := cam.project(c.pos)
	dc.Push()
	defer dc.Pop()
	dc.Translate(x, y)
	if turn {
		hx, hy, _ := cam.project(c.pos.Add(c.vel.Mul(0.1)))
		dc.Rotate(math.Atan2(hy-y, hx-x))
	}
	size := max(4, c.size*scale)
	dc.Scale(size, size)
	return glyph(dc)
}

func rocketGlyph(dc *gg.Context) error {
	shapes := []struct {
		color colorful.Color
		pts   [][2]float64
	}{
		{flameColor, [][2]float64{{-0.5, -0.07}, {-0.78, 0}, {-0.5, 0.07}}},
		{trimColor, [][2]float64{{-0.5, -0.12}, {-0.32, -0.12}, {-0.5, -0.26}}},
		{trimColor, [][2]float64{{-0.5, 0.12}, {-0.32, 0.12}, {-0.5, 0.26}}},
		{hullColor, [][2]float64{{-0.5, -0.12}, {0.3, -0.12}, {0.3, 0.12}, {-0.5, 0.12}}},
		{trimColor, [][2]float64{{0.3, -0.12}, {0.55, 0}, {0.3, 0.12}}},
	}
	for _, sh := range shapes {
		for i, p := range sh.pts {
			if i == 0 {
				dc.MoveTo(p[0], p[1])
			} else {
				dc.LineTo(p[0], p[1])
			}
		}
		dc.ClosePath()
		setColor(dc, sh.color, 1)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	setColor(dc, windowColor, 1)
	dc.DrawCircle(0.05, 0, 0.06)
	return dc.Fill()
}

func saucerGlyph(dc *gg.Context) error {
	setColor(dc, domeColor, 0.85)
	dc.DrawEllipse(0, -0.08, 0.2, 0.16)
	if err := dc.Fill(); err != nil {
		return err
	}
	setColor(dc, saucerColor, 1)
	dc.DrawEllipse(0, 0, 0.5, 0.14)
	if err := dc.Fill(); err != nil {
		return err
	}
	setColor(dc, beaconColor, 1)
	for i := -2; i <= 2; i++ {
		dc.DrawCircle(float64(i)*0.18, 0.02, 0.035)
	}
	return dc.Fill()
}

// drawStars scatters the seeded starfield over the background.
func (s *Scene) drawStars(dc *gg.Context) error {
	rnd := randx.NewSysRand(s.Seed)
	w, h := float64(dc.Width()), float64(dc.Height())
	for i := 0; i < s.Stars; i++ {
		x := rnd.Float64() * w
		y := rnd.Float64() * h
		r := rnd.Float64()*1.4 + 0.3
		a := rnd.Float64()
		flicker := 0.5 + 0.5*math.Sin(rnd.Float64()*2*math.Pi)
		setColor(dc, starColor, a*flicker*0.8)
		dc.DrawCircle(x, y, r)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}
