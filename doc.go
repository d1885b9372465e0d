/*
Package touchkit is a small retained-mode UI toolkit for microcontroller-class touch displays.

The screen is made of a fixed set of widgets: rows of Buttons (ButtonGroup), a ScrollPanel with lines of text, a Keyboard with several pages of keys, and a StatusBar at the top. All of them draw through a Surface, the narrow drawing interface of the display driver. Geometry is fixed at construction, there is no layout pass.

Start with NewEnv to combine a Surface with a Theme, then build a Stack with button groups and an optional panel, and a StatusBar. NewScreen ties them together with a Trigger and an optional Sampler for touch input.

# Touch input

A touch is a point in screen pixels. Stack.Touch routes it to the first active button group that contains it, then to the keyboard, then to the panel. Stack.Untouch, called on release, redraws the pressed button in its normal look. Buttons run their Action synchronously from inside Touch, keep them short.

Touch controllers that signal through an interrupt should not call Touch directly. Arm the Trigger from the interrupt (or reader goroutine) with the coordinate instead, the main loop in Screen.Poll takes it and does the dispatch and drawing.

# Keyboard input

Stack.StartKeyboard creates a keyboard showing a banner. Typed characters accumulate until the OK key is hit, after which KeyboardReady reports true. TakeKeyboard returns the text and removes the keyboard.
*/
package touchkit
