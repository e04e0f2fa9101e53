package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSizeFormat is returned for malformed size templates.
var ErrSizeFormat = errors.New("invalid size format")

// FormatSize renders size through a brace template such as "{:d} points".
//
// The template must hold exactly one replacement field. A field is "{}",
// "{0}" or "{:spec}" where spec is [,][.precision][type] and type is one of
// d, n, x, X, o, b, e, E, f, F, g, G. "{{" and "}}" produce literal braces.
func FormatSize(template string, size int64) (string, error) {
	var b strings.Builder
	fields := 0
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed field in %q", ErrSizeFormat, template)
			}
			out, err := formatField(template[i+1:i+1+end], size)
			if err != nil {
				return "", fmt.Errorf("%w: %q: %v", ErrSizeFormat, template, err)
			}
			b.WriteString(out)
			fields++
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("%w: single '}' in %q", ErrSizeFormat, template)
		default:
			b.WriteByte(c)
		}
	}
	if fields != 1 {
		return "", fmt.Errorf("%w: %q has %d replacement fields, want 1", ErrSizeFormat, template, fields)
	}
	return b.String(), nil
}

func formatField(field string, size int64) (string, error) {
	name, spec, _ := strings.Cut(field, ":")
	if name != "" && name != "0" {
		return "", fmt.Errorf("field %q must be positional 0", name)
	}

	comma := strings.HasPrefix(spec, ",")
	spec = strings.TrimPrefix(spec, ",")

	precision := -1
	if strings.HasPrefix(spec, ".") {
		digits := spec[1:]
		n := 0
		for n < len(digits) && digits[n] >= '0' && digits[n] <= '9' {
			n++
		}
		if n == 0 {
			return "", errors.New("missing precision after '.'")
		}
		p, err := strconv.Atoi(digits[:n])
		if err != nil {
			return "", err
		}
		precision = p
		spec = digits[n:]
	}

	if len(spec) > 1 {
		return "", fmt.Errorf("unsupported format spec %q", spec)
	}
	verb := spec
	switch verb {
	case "", "d", "n":
		if precision >= 0 && verb != "" {
			return "", errors.New("precision not allowed for integers")
		}
		if precision >= 0 {
			return floatString('g', precision, size, comma), nil
		}
		s := strconv.FormatInt(size, 10)
		if comma {
			s = groupThousands(s)
		}
		return s, nil
	case "x", "X", "o", "b":
		if comma || precision >= 0 {
			return "", fmt.Errorf("',' and precision not allowed with %q", verb)
		}
		base := map[string]int{"x": 16, "X": 16, "o": 8, "b": 2}[verb]
		s := strconv.FormatInt(size, base)
		if verb == "X" {
			s = strings.ToUpper(s)
		}
		return s, nil
	case "e", "E", "f", "F", "g", "G":
		if precision < 0 && verb != "g" && verb != "G" {
			precision = 6
		}
		return floatString(verb[0], precision, size, comma), nil
	default:
		return "", fmt.Errorf("unknown format type %q", verb)
	}
}

func floatString(verb byte, precision int, size int64, comma bool) string {
	if verb == 'F' {
		verb = 'f'
	}
	s := strconv.FormatFloat(float64(size), verb, precision, 64)
	if comma && (verb == 'f' || verb == 'g' || verb == 'G') && !strings.ContainsAny(s, "eE") {
		s = groupThousands(s)
	}
	return s
}

// groupThousands inserts commas into the integer part of a decimal number.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := sign + b.String()
	if hasFrac {
		out += "." + frac
	}
	return out
}
