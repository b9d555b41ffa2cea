// Package game implements the bubble simulation: spawn policy, motion
// integration, wall reflection and collision scoring.
package game

import "math/rand"

// Color is a bubble fill color in BGR channel order, matching what the
// OpenCV-based overlay expects.
type Color struct {
	B uint8 `json:"b"`
	G uint8 `json:"g"`
	R uint8 `json:"r"`
}

// bubbleColors is the palette new bubbles are drawn from.
var bubbleColors = []Color{
	{B: 255, G: 100, R: 100}, // light blue
	{B: 100, G: 255, R: 100}, // light green
	{B: 100, G: 100, R: 255}, // light red
	{B: 255, G: 255, R: 100}, // cyan
	{B: 255, G: 100, R: 255}, // magenta
	{B: 100, G: 255, R: 255}, // yellow
}

// Bubble is one floating target. X and Y are normalized to [0,1] and
// may transiently exceed that range during bounce resolution; Radius is
// in pixels; velocity is in normalized units per second.
type Bubble struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius int     `json:"radius"`
	VelX   float64 `json:"vel_x"`
	VelY   float64 `json:"vel_y"`
	Color  Color   `json:"color"`
	Points int     `json:"points"`
}

// Spawn edge identifiers.
const (
	edgeTop = iota
	edgeRight
	edgeBottom
	edgeLeft
)

// spawnBubble creates a bubble entering from a uniformly chosen screen
// edge. The along-edge position is inset to 15%-85% to avoid corners,
// and the inbound velocity component is drawn from a range that
// guarantees net inward motion (0.08-0.25 units/sec) with up to 0.15
// units/sec of lateral jitter.
func spawnBubble(rng *rand.Rand, id, minRadius, maxRadius int) Bubble {
	radius := minRadius
	if maxRadius > minRadius {
		radius += rng.Intn(maxRadius - minRadius + 1)
	}

	var x, y, velX, velY float64
	switch rng.Intn(4) {
	case edgeTop:
		x = alongEdge(rng)
		y = 0.0
		velX = lateralJitter(rng)
		velY = inboundSpeed(rng)
	case edgeRight:
		x = 1.0
		y = alongEdge(rng)
		velX = -inboundSpeed(rng)
		velY = lateralJitter(rng)
	case edgeBottom:
		x = alongEdge(rng)
		y = 1.0
		velX = lateralJitter(rng)
		velY = -inboundSpeed(rng)
	case edgeLeft:
		x = 0.0
		y = alongEdge(rng)
		velX = inboundSpeed(rng)
		velY = lateralJitter(rng)
	}

	return Bubble{
		ID:     id,
		X:      x,
		Y:      y,
		Radius: radius,
		VelX:   velX,
		VelY:   velY,
		Color:  bubbleColors[rng.Intn(len(bubbleColors))],
		// Bigger bubbles are worth more and are also easier to hit.
		Points: radius / 5,
	}
}

func alongEdge(rng *rand.Rand) float64 {
	return 0.15 + rng.Float64()*0.70
}

func inboundSpeed(rng *rand.Rand) float64 {
	return 0.08 + rng.Float64()*0.17
}

func lateralJitter(rng *rand.Rand) float64 {
	return -0.15 + rng.Float64()*0.30
}
