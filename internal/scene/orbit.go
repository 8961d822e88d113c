package scene

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Orbit interaction constants, per animation frame at FPS.
const (
	FPS             = 60
	AutoRotateSpeed = 0.002
	DragSensitivity = 0.005
	IdleDelay       = 2 * time.Second
	MinDistance     = 1.8
	MaxDistance     = 6.0
	StartDistance   = 3.0

	// MaxFrames caps the frames one Spin runs.
	MaxFrames = 10 * 60 * FPS
)

// Orbit is the camera controller around the planet: drag to spin with
// inertia, slow auto-rotation while idle.
type Orbit struct {
	Yaw, Pitch float64
	Distance   float64

	yawVel, pitchVel float64
	yawAcc, pitchAcc float64
	spring           harmonica.Spring

	dragging    bool
	interacting bool
	idleFrames  int
}

// NewOrbit returns an orbit at the start distance.
func NewOrbit() *Orbit {
	return &Orbit{
		Distance: StartDistance,
		// critically damped, decays a flick in about a second
		spring: harmonica.NewSpring(harmonica.FPS(FPS), 4.0, 1.0),
	}
}

func idleFrameCount() int {
	return int(math.Ceil(IdleDelay.Seconds() * FPS))
}

// BeginDrag starts a pointer drag; auto-rotation pauses.
func (o *Orbit) BeginDrag() {
	o.dragging = true
	o.interacting = true
	o.idleFrames = 0
}

// Drag moves the planet by a pointer delta in pixels. It is ignored when
// no drag is in progress.
func (o *Orbit) Drag(dx, dy float64) {
	if !o.dragging {
		return
	}
	o.yawVel = dx * DragSensitivity
	o.pitchVel = dy * DragSensitivity
	o.yawAcc, o.pitchAcc = 0, 0
	o.Yaw += o.yawVel
	o.Pitch += o.pitchVel
}

// EndDrag releases the pointer. The planet keeps spinning with the last
// drag velocity and auto-rotation resumes after IdleDelay.
func (o *Orbit) EndDrag() {
	o.dragging = false
	o.idleFrames = 0
}

// Dragging reports whether a drag is in progress.
func (o *Orbit) Dragging() bool { return o.dragging }

// Idle reports whether auto-rotation is active.
func (o *Orbit) Idle() bool { return !o.interacting }

// Zoom sets the camera distance, clamped to [MinDistance, MaxDistance].
func (o *Orbit) Zoom(d float64) {
	o.Distance = min(max(d, MinDistance), MaxDistance)
}

// Step advances one animation frame.
func (o *Orbit) Step() {
	if o.dragging {
		return
	}
	if o.interacting {
		o.idleFrames++
		if o.idleFrames >= idleFrameCount() {
			o.interacting = false
		}
	} else {
		o.Yaw += AutoRotateSpeed
	}

	o.Yaw += o.yawVel
	o.Pitch += o.pitchVel
	o.yawVel, o.yawAcc = o.spring.Update(o.yawVel, o.yawAcc, 0)
	o.pitchVel, o.pitchAcc = o.spring.Update(o.pitchVel, o.pitchAcc, 0)
}

// Advance runs n frames.
func (o *Orbit) Advance(n int) {
	for i := 0; i < n; i++ {
		o.Step()
	}
}

// Spin flicks the planet by a drag of (dx, dy) pixels, releases it and
// lets the animation run for frames frames, clamped to [0, MaxFrames].
func (o *Orbit) Spin(dx, dy float64, frames int) {
	if dx != 0 || dy != 0 {
		o.BeginDrag()
		o.Drag(dx, dy)
		o.EndDrag()
	}
	o.Advance(min(max(frames, 0), MaxFrames))
}
