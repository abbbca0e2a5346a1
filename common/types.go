package common

// Viewport is a rectangle of the render target in pixels, with the origin in the top left corner.
type Viewport struct {
	X      int32
	Y      int32
	Width  uint32
	Height uint32
}

// NewViewportAtOrigin returns a viewport starting at (0, 0) with the given size.
func NewViewportAtOrigin(width, height uint32) Viewport {
	return Viewport{Width: width, Height: height}
}

// Aspect returns width / height, or 1 for a degenerate viewport.
func (v Viewport) Aspect() float32 {
	if v.Height == 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// ClearState describes which parts of a render target are cleared when a frame begins.
// A nil field leaves that part untouched.
type ClearState struct {
	Color *[4]float64
	Depth *float64
}

// ClearColorAndDepth clears both color and depth.
func ClearColorAndDepth(r, g, b, a, depth float64) ClearState {
	return ClearState{Color: &[4]float64{r, g, b, a}, Depth: &depth}
}

// ClearColor clears only the color.
func ClearColor(r, g, b, a float64) ClearState {
	return ClearState{Color: &[4]float64{r, g, b, a}}
}

// ClearDepth clears only the depth.
func ClearDepth(depth float64) ClearState {
	return ClearState{Depth: &depth}
}

// ClearNone keeps the current contents.
func ClearNone() ClearState {
	return ClearState{}
}
