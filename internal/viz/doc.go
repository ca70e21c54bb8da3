// Package viz renders lensing fields and curves in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas for critical curves and caustics
//   - [Heatmap]: shaded-character rendering of 2D fields
//   - lipgloss styles shared by the CLI and the interactive explorer
package viz
