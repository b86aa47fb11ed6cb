package emit

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	pstrconv "github.com/tdewolff/parse/v2/strconv"

	"countypaths/internal/geom"
)

// ToPath serializes a ring as "M x0,y0 L x1,y1 ... Z". Coordinates are written
// in their shortest decimal form. An empty ring yields an empty string.
func ToPath(points []geom.DrawPoint) string {
	if len(points) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, p := range points {
		if i == 0 {
			sb.WriteByte('M')
		} else {
			sb.WriteString(" L")
		}
		sb.WriteString(formatNum(p.X))
		sb.WriteByte(',')
		sb.WriteString(formatNum(p.Y))
	}
	sb.WriteString(" Z")
	return sb.String()
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParsePath reads a path written by ToPath back into points. Only absolute
// M, L and Z commands are accepted, and the path must contain a single ring.
func ParsePath(s string) ([]geom.DrawPoint, error) {
	b := []byte(s)
	i := skipSeparators(b, 0)
	if i == len(b) {
		return nil, nil
	}
	var out []geom.DrawPoint
	closed := false
	for i < len(b) {
		if closed {
			return nil, errors.Newf("path: data after Z at offset %d", i)
		}
		cmd := b[i]
		i++
		switch cmd {
		case 'M', 'L':
			if (cmd == 'M') != (len(out) == 0) {
				return nil, errors.Newf("path: unexpected %c at offset %d", cmd, i-1)
			}
			x, n := parseNum(b, i)
			if n == 0 {
				return nil, errors.Newf("path: expected x at offset %d", i)
			}
			i += n
			y, n := parseNum(b, i)
			if n == 0 {
				return nil, errors.Newf("path: expected y at offset %d", i)
			}
			i += n
			out = append(out, geom.DrawPoint{X: x, Y: y})
		case 'Z':
			if len(out) == 0 {
				return nil, errors.Newf("path: Z before M")
			}
			closed = true
		default:
			return nil, errors.Newf("path: unsupported command %q at offset %d", cmd, i-1)
		}
		i = skipSeparators(b, i)
	}
	if !closed {
		return nil, errors.New("path: missing Z")
	}
	return out, nil
}

func skipSeparators(b []byte, i int) int {
	for i < len(b) && (b[i] == ' ' || b[i] == ',' || b[i] == '\n' || b[i] == '\t' || b[i] == '\r') {
		i++
	}
	return i
}

func parseNum(b []byte, i int) (float64, int) {
	j := skipSeparators(b, i)
	f, n := pstrconv.ParseFloat(b[j:])
	if n == 0 {
		return 0, 0
	}
	return f, j - i + n
}
