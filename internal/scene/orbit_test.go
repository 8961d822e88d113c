package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrbitAutoRotate(t *testing.T) {
	o := NewOrbit()
	assert.True(t, o.Idle())
	o.Step()
	assert.InDelta(t, AutoRotateSpeed, o.Yaw, 1e-12)
	o.Advance(9)
	assert.InDelta(t, 10*AutoRotateSpeed, o.Yaw, 1e-12)
	assert.Equal(t, 0.0, o.Pitch)
}

func TestOrbitDrag(t *testing.T) {
	o := NewOrbit()
	o.Drag(100, 100)
	assert.Equal(t, 0.0, o.Yaw, "drag without a pointer down is ignored")

	o.BeginDrag()
	o.Drag(100, -40)
	assert.InDelta(t, 0.5, o.Yaw, 1e-12)
	assert.InDelta(t, -0.2, o.Pitch, 1e-12)

	o.Advance(10)
	assert.InDelta(t, 0.5, o.Yaw, 1e-12, "no motion while the pointer is held")
	assert.True(t, o.Dragging())
	assert.False(t, o.Idle())
}

func TestOrbitInertia(t *testing.T) {
	o := NewOrbit()
	o.BeginDrag()
	o.Drag(20, 0)
	o.EndDrag()

	o.Step()
	assert.InDelta(t, 0.2, o.Yaw, 1e-9)

	prev := o.yawVel
	for i := 0; i < 60; i++ {
		o.Step()
		v := o.yawVel
		assert.LessOrEqual(t, v, prev+1e-12, "frame %d", i)
		assert.GreaterOrEqual(t, v, -1e-9, "no overshoot")
		prev = v
	}
	o.Advance(240)
	assert.Less(t, math.Abs(o.yawVel), 1e-4)
	assert.Greater(t, o.Yaw, 0.3)
}

func TestOrbitIdleDelay(t *testing.T) {
	o := NewOrbit()
	o.BeginDrag()
	o.EndDrag()

	o.Advance(idleFrameCount())
	assert.Equal(t, 0.0, o.Yaw)
	assert.True(t, o.Idle())

	o.Step()
	assert.InDelta(t, AutoRotateSpeed, o.Yaw, 1e-12)
}

func TestOrbitZoom(t *testing.T) {
	o := NewOrbit()
	assert.Equal(t, StartDistance, o.Distance)

	o.Zoom(5)
	assert.Equal(t, 5.0, o.Distance)
	o.Zoom(100)
	assert.Equal(t, MaxDistance, o.Distance)
	o.Zoom(0)
	assert.Equal(t, MinDistance, o.Distance)
}

func TestOrbitSpin(t *testing.T) {
	// Without a flick the frames only auto-rotate.
	o := NewOrbit()
	o.Spin(0, 0, 30)
	assert.InDelta(t, 30*AutoRotateSpeed, o.Yaw, 1e-12)
	assert.True(t, o.Idle())

	// A flick moves at once, keeps coasting and pauses auto-rotation.
	o = NewOrbit()
	o.Spin(40, -10, 0)
	assert.InDelta(t, 0.2, o.Yaw, 1e-12)
	assert.InDelta(t, -0.05, o.Pitch, 1e-12)
	assert.False(t, o.Dragging())

	coasted := NewOrbit()
	coasted.Spin(40, -10, 60)
	assert.Greater(t, coasted.Yaw, 0.3)
	assert.Less(t, coasted.Pitch, -0.05)
	assert.False(t, coasted.Idle())

	// Negative frame counts are ignored.
	o = NewOrbit()
	o.Spin(0, 0, -5)
	assert.Equal(t, 0.0, o.Yaw)
}
