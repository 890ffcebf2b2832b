// Package preview draws globe layers as a flat equirectangular SVG.
package preview

import (
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/royalcat/rgeoglobe/geomodel"
	"github.com/royalcat/rgeoglobe/globe"
	"github.com/royalcat/rgeoglobe/sphere"
)

const (
	backgroundStyle = "fill:rgb(10,15,30)"

	fillStyle    = "fill:rgb(120,130,150);fill-opacity:0.6"
	outlineStyle = "fill:rgb(80,160,255)"
	cityStyle    = "fill:rgb(255,80,80)"
)

func WriteSVG(w io.Writer, layers globe.Layers, width int) {
	height := width / 2

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, backgroundStyle)

	drawLayer(canvas, layers.Fill, width, height, 1, fillStyle)
	drawLayer(canvas, layers.Outline, width, height, 1, outlineStyle)
	drawLayer(canvas, layers.Cities, width, height, 3, cityStyle)

	canvas.End()
}

func drawLayer(canvas *svg.SVG, buf geomodel.PointBuffer, width, height, r int, style string) {
	canvas.Gstyle(style)
	for i := range buf.Len() {
		x, y := toScreen(buf, i, width, height)
		canvas.Circle(x, y, r)
	}
	canvas.Gend()
}

func toScreen(buf geomodel.PointBuffer, i, width, height int) (int, int) {
	lat, lon := sphere.Unproject(buf.Point(i))
	x := (lon + 180) / 360
	y := (90 - lat) / 180
	return int(math.Round(x * float64(width))), int(math.Round(y * float64(height)))
}
