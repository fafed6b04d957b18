/*
Package turtle interprets a command string as turtle-graphics draw operations.

The turtle keeps a position, a heading, a stack of saved positions and the
current pen color. It never fails: unknown symbols are ignored and a closing
bracket with nothing on the stack does nothing.

# Symbols

  - f, h: move one step and draw a line.
  - g: move one step with the pen up.
  - +, -: turn by the turn unit.
  - [, ]: push or pop the position.
  - K, R, G, B, C, O: switch to a palette color.
*/
package turtle
