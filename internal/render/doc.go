// Package render composites the 1280x720 "now playing" card for a video.
//
// The card is built in a fixed order from a handful of stateless helpers:
//
//  1. the source is shrunk to 400x225, blurred and darkened, scaled back up
//     to the canvas and blended with a random three-color vertical gradient
//  2. a rounded square cut from the centre of the source is laid over it
//  3. two title lines, a "channel  |  views" line, a progress bar and the
//     elapsed/duration labels are drawn with soft drop shadows
//  4. a playback-controls strip is pasted under the bar
//
// All geometry is fixed. The only inputs are the source image, the Card
// text, the Assets (fonts and controls strip) and a *rand.Rand that drives
// the gradient colors and the progress position, so a seeded generator
// reproduces a card exactly.
package render
