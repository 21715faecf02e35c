package ptysession

import (
	"fmt"
	"strconv"

	"github.com/muesli/termenv"
)

// ColorToX11 converts a termenv color to the X11 rgb: form used in OSC
// 10/11 replies.
func ColorToX11(c termenv.Color) string {
	v, ok := c.(termenv.RGBColor)
	if !ok {
		return ""
	}
	hex := string(v)
	if len(hex) != 7 || hex[0] != '#' {
		return ""
	}
	r, err1 := strconv.ParseUint(hex[1:3], 16, 8)
	g, err2 := strconv.ParseUint(hex[3:5], 16, 8)
	b, err3 := strconv.ParseUint(hex[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return ""
	}
	return fmt.Sprintf("rgb:%04x/%04x/%04x", r*0x101, g*0x101, b*0x101)
}
