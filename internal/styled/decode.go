package styled

import (
	"fmt"
	"strconv"
	"strings"
)

const esc = 0x1b

// DecodeError describes a malformed escape sequence.
type DecodeError struct {
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode escape at byte %d: %s", e.Offset, e.Reason)
}

// Parse decodes raw into styled spans. It never fails: a line with
// malformed escapes comes back as a single default-style span. Complete
// sequences are removed from it; a broken one loses only its ESC byte, so
// no visible text is dropped.
func Parse(raw string) Line {
	line, err := Decode(raw)
	if err != nil {
		return Line{{Text: fallbackText(raw)}}
	}
	return line
}

func fallbackText(raw string) string {
	var b strings.Builder
	for i := 0; i < len(raw); {
		if raw[i] != esc {
			b.WriteByte(raw[i])
			i++
			continue
		}
		end, err := skipEscape(raw, i)
		if err != nil {
			i++
			continue
		}
		i = end
	}
	return b.String()
}

// skipEscape returns the index just past the sequence starting at raw[i].
func skipEscape(raw string, i int) (int, error) {
	if i+1 >= len(raw) {
		return 0, fmt.Errorf("escape at end of line")
	}
	switch raw[i+1] {
	case '[':
		end, _, err := scanCSI(raw, i+2)
		if err != nil {
			return 0, err
		}
		return end + 1, nil
	case ']', 'P', '_', '^':
		return scanString(raw, i+2)
	case '(', ')', '*', '+':
		if i+2 >= len(raw) {
			return 0, fmt.Errorf("truncated charset designation")
		}
		return i + 3, nil
	default:
		return i + 2, nil
	}
}

// Decode splits raw into spans according to its SGR sequences. Other
// complete control sequences (cursor movement, OSC hyperlinks, charset
// selection) are dropped. Truncated or malformed sequences are an error.
func Decode(raw string) (Line, error) {
	var (
		line  Line
		style Style
		text  strings.Builder
	)
	flush := func() {
		if text.Len() == 0 {
			return
		}
		line = appendSpan(line, Span{Text: text.String(), Style: style})
		text.Reset()
	}

	for i := 0; i < len(raw); {
		c := raw[i]
		if c != esc {
			text.WriteByte(c)
			i++
			continue
		}
		end, err := skipEscape(raw, i)
		if err != nil {
			return nil, &DecodeError{Offset: i, Reason: err.Error()}
		}
		if raw[i+1] == '[' && raw[end-1] == 'm' {
			next, err := applySGR(style, raw[i+2:end-1])
			if err != nil {
				return nil, &DecodeError{Offset: i, Reason: err.Error()}
			}
			if next != style {
				flush()
				style = next
			}
		}
		i = end
	}
	flush()
	return line, nil
}

// scanCSI returns the index of the final byte of the control sequence whose
// parameters start at start. Parameter bytes may not follow intermediates.
func scanCSI(raw string, start int) (int, byte, error) {
	intermediate := false
	for j := start; j < len(raw); j++ {
		b := raw[j]
		switch {
		case b >= 0x40 && b <= 0x7e:
			return j, b, nil
		case b >= 0x30 && b <= 0x3f:
			if intermediate {
				return 0, 0, fmt.Errorf("parameter byte %#x after intermediate", b)
			}
		case b >= 0x20 && b <= 0x2f:
			intermediate = true
		default:
			return 0, 0, fmt.Errorf("invalid byte %#x in control sequence", b)
		}
	}
	return 0, 0, fmt.Errorf("unterminated control sequence")
}

// scanString skips an OSC/DCS/APC/PM payload and returns the index just
// past its terminator (BEL or ST).
func scanString(raw string, start int) (int, error) {
	for j := start; j < len(raw); j++ {
		switch raw[j] {
		case 0x07:
			return j + 1, nil
		case esc:
			if j+1 < len(raw) && raw[j+1] == '\\' {
				return j + 2, nil
			}
		}
	}
	return 0, fmt.Errorf("unterminated string sequence")
}

// sgrParam is one ';'-separated SGR parameter. Colon sub-parameters
// (38:2::r:g:b, 4:3) stay attached to the parameter they belong to.
type sgrParam struct {
	value int
	sub   []int
}

// applySGR returns style updated by the SGR parameter string params.
func applySGR(style Style, params string) (Style, error) {
	if params != "" && strings.ContainsAny(params[:1], "<=>?") {
		return style, fmt.Errorf("private SGR sequence %q", params)
	}
	values, err := parseParams(params)
	if err != nil {
		return style, err
	}

	for i := 0; i < len(values); i++ {
		p := values[i].value
		sub := values[i].sub
		switch {
		case p == 0:
			style = Style{}
		case p == 1:
			style.Attrs |= AttrBold
		case p == 2:
			style.Attrs |= AttrFaint
		case p == 3:
			style.Attrs |= AttrItalic
		case p == 4 && len(sub) > 0:
			// 4:0 is "no underline"; 4:1 to 4:5 are underline shapes.
			if sub[0] == 0 {
				style.Attrs &^= AttrUnderline
			} else {
				style.Attrs |= AttrUnderline
			}
		case p == 4, p == 21:
			style.Attrs |= AttrUnderline
		case p == 5, p == 6:
			style.Attrs |= AttrBlink
		case p == 7:
			style.Attrs |= AttrReverse
		case p == 8:
			style.Attrs |= AttrHidden
		case p == 9:
			style.Attrs |= AttrStrikethrough
		case p == 22:
			style.Attrs &^= AttrBold | AttrFaint
		case p == 23:
			style.Attrs &^= AttrItalic
		case p == 24:
			style.Attrs &^= AttrUnderline
		case p == 25:
			style.Attrs &^= AttrBlink
		case p == 27:
			style.Attrs &^= AttrReverse
		case p == 28:
			style.Attrs &^= AttrHidden
		case p == 29:
			style.Attrs &^= AttrStrikethrough
		case p >= 30 && p <= 37:
			style.Fg = Indexed(uint8(p - 30))
		case p == 38, p == 48:
			c, n, err := extendedParam(values, i)
			if err != nil {
				return style, err
			}
			if p == 38 {
				style.Fg = c
			} else {
				style.Bg = c
			}
			i += n
		case p == 39:
			style.Fg = Color{}
		case p >= 40 && p <= 47:
			style.Bg = Indexed(uint8(p - 40))
		case p == 49:
			style.Bg = Color{}
		case p >= 90 && p <= 97:
			style.Fg = Indexed(uint8(p - 90 + 8))
		case p >= 100 && p <= 107:
			style.Bg = Indexed(uint8(p - 100 + 8))
		}
	}
	return style, nil
}

// extendedParam decodes the 38/48 parameter at values[i] and returns the
// color plus the number of following parameters it consumed. The colon form
// carries its arguments inside the parameter; the semicolon form takes them
// from the parameters after it.
func extendedParam(values []sgrParam, i int) (Color, int, error) {
	if sub := values[i].sub; len(sub) > 0 {
		// ITU T.416 puts a colorspace id before r:g:b; many programs omit it.
		if sub[0] == 2 && len(sub) >= 5 {
			sub = append([]int{2}, sub[2:5]...)
		}
		c, n, err := extendedColor(sub)
		if err != nil {
			return Color{}, 0, err
		}
		if n != len(sub) {
			return Color{}, 0, fmt.Errorf("extra extended color arguments")
		}
		return c, 0, nil
	}

	args := make([]int, 0, 4)
	for _, v := range values[i+1:] {
		if len(v.sub) > 0 || len(args) == 4 {
			break
		}
		args = append(args, v.value)
	}
	return extendedColor(args)
}

// extendedColor reads the arguments following a 38 or 48 parameter and
// returns the color plus the number of arguments consumed.
func extendedColor(args []int) (Color, int, error) {
	if len(args) == 0 {
		return Color{}, 0, fmt.Errorf("truncated extended color")
	}
	switch args[0] {
	case 5:
		if len(args) < 2 {
			return Color{}, 0, fmt.Errorf("truncated 256-color value")
		}
		if args[1] > 255 {
			return Color{}, 0, fmt.Errorf("256-color index %d out of range", args[1])
		}
		return Indexed(uint8(args[1])), 2, nil
	case 2:
		if len(args) < 4 {
			return Color{}, 0, fmt.Errorf("truncated RGB color")
		}
		for _, v := range args[1:4] {
			if v > 255 {
				return Color{}, 0, fmt.Errorf("RGB component %d out of range", v)
			}
		}
		return RGB(uint8(args[1]), uint8(args[2]), uint8(args[3])), 4, nil
	default:
		return Color{}, 0, fmt.Errorf("unknown extended color mode %d", args[0])
	}
}

func parseParams(params string) ([]sgrParam, error) {
	if params == "" {
		return []sgrParam{{}}, nil
	}
	fields := strings.Split(params, ";")
	values := make([]sgrParam, 0, len(fields))
	for _, f := range fields {
		parts := strings.Split(f, ":")
		nums := make([]int, len(parts))
		for j, part := range parts {
			if part == "" {
				continue
			}
			v, err := strconv.Atoi(part)
			if err != nil || v < 0 {
				return nil, fmt.Errorf("invalid SGR parameter %q", f)
			}
			nums[j] = v
		}
		values = append(values, sgrParam{value: nums[0], sub: nums[1:]})
	}
	return values, nil
}
