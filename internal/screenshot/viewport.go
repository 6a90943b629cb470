package screenshot

import "fmt"

// Viewport is a named capture size.
type Viewport struct {
	Name   string
	Width  int
	Height int
}

// Viewports are the capture presets, processed in this order per project.
var Viewports = []Viewport{
	{Name: "mobile", Width: 375, Height: 667},
	{Name: "tablet", Width: 768, Height: 1024},
	{Name: "desktop", Width: 1920, Height: 1080},
}

// WindowSize formats the viewport for a browser --window-size flag.
func (v Viewport) WindowSize() string {
	return fmt.Sprintf("%d,%d", v.Width, v.Height)
}
