package scene

import "image"

// Consumer receives finished planet textures. bump may be nil, in which
// case the consumer derives its own surface detail from tex.
type Consumer interface {
	SetTexture(tex *image.RGBA, bump *image.Gray)
}

var _ Consumer = (*Scene)(nil)
