// Package viz holds the terminal look of motionlab: color themes, the
// slider and sparkline glyphs, and the welcome snowfall.
//
// Themes are selected by name through the theme config key:
//
//	ocean, chalk, minimal, sunset
package viz
