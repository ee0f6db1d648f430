package transcode

import (
	"fmt"
	"strconv"
)

// Op is an absolute path command.
type Op byte

const (
	OpMove  Op = 'M'
	OpLine  Op = 'L'
	OpQuad  Op = 'Q'
	OpCube  Op = 'C'
	OpClose Op = 'Z'
)

// Point is a position in font units.
type Point struct {
	X, Y float64
}

// Segment is one path command with its points. Control points come first,
// the end point last.
type Segment struct {
	Op  Op
	Pts []Point
}

// ParsePath parses SVG path data. Relative commands and the H and V
// shorthands are resolved, so the result only holds absolute M, L, Q, C
// and Z segments.
func ParsePath(d string) ([]Segment, error) {
	s := &pathScanner{data: d}

	var (
		segs       []Segment
		cur, start Point
		cmd        byte
	)
	for {
		s.skipSeparators()
		if s.done() {
			return segs, nil
		}

		if c := s.peek(); isCommand(c) {
			cmd = c
			s.pos++
		} else if cmd == 0 {
			return nil, fmt.Errorf("path data at offset %d: expected command, got %q", s.pos, c)
		}

		rel := cmd >= 'a'
		switch cmd {
		case 'Z', 'z':
			segs = append(segs, Segment{Op: OpClose})
			cur = start
			cmd = 0
			continue
		case 'M', 'm':
			p, err := s.point(rel, cur)
			if err != nil {
				return nil, err
			}
			segs = append(segs, Segment{Op: OpMove, Pts: []Point{p}})
			cur, start = p, p
			// further coordinate pairs are implicit line-tos
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L', 'l':
			p, err := s.point(rel, cur)
			if err != nil {
				return nil, err
			}
			segs = append(segs, Segment{Op: OpLine, Pts: []Point{p}})
			cur = p
		case 'H', 'h':
			x, err := s.number()
			if err != nil {
				return nil, err
			}
			if rel {
				x += cur.X
			}
			cur = Point{X: x, Y: cur.Y}
			segs = append(segs, Segment{Op: OpLine, Pts: []Point{cur}})
		case 'V', 'v':
			y, err := s.number()
			if err != nil {
				return nil, err
			}
			if rel {
				y += cur.Y
			}
			cur = Point{X: cur.X, Y: y}
			segs = append(segs, Segment{Op: OpLine, Pts: []Point{cur}})
		case 'Q', 'q':
			pts, err := s.points(2, rel, cur)
			if err != nil {
				return nil, err
			}
			segs = append(segs, Segment{Op: OpQuad, Pts: pts})
			cur = pts[1]
		case 'C', 'c':
			pts, err := s.points(3, rel, cur)
			if err != nil {
				return nil, err
			}
			segs = append(segs, Segment{Op: OpCube, Pts: pts})
			cur = pts[2]
		default:
			return nil, fmt.Errorf("path data: unsupported command %q", cmd)
		}
	}
}

func isCommand(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

type pathScanner struct {
	data string
	pos  int
}

func (s *pathScanner) done() bool { return s.pos >= len(s.data) }

func (s *pathScanner) peek() byte { return s.data[s.pos] }

func (s *pathScanner) skipSeparators() {
	for !s.done() {
		switch s.peek() {
		case ' ', '\t', '\n', '\r', '\f', ',':
			s.pos++
		default:
			return
		}
	}
}

func (s *pathScanner) points(n int, rel bool, cur Point) ([]Point, error) {
	pts := make([]Point, n)
	for i := range pts {
		p, err := s.point(rel, cur)
		if err != nil {
			return nil, err
		}
		pts[i] = p
	}
	return pts, nil
}

// point reads a coordinate pair, relative to cur if rel is set.
func (s *pathScanner) point(rel bool, cur Point) (Point, error) {
	x, err := s.number()
	if err != nil {
		return Point{}, err
	}
	y, err := s.number()
	if err != nil {
		return Point{}, err
	}
	if rel {
		x += cur.X
		y += cur.Y
	}
	return Point{X: x, Y: y}, nil
}

func (s *pathScanner) number() (float64, error) {
	s.skipSeparators()
	begin := s.pos

	if !s.done() && (s.peek() == '+' || s.peek() == '-') {
		s.pos++
	}
	digits := s.digits()
	if !s.done() && s.peek() == '.' {
		s.pos++
		digits += s.digits()
	}
	if digits == 0 {
		s.pos = begin
		return 0, fmt.Errorf("path data at offset %d: expected number", begin)
	}
	if !s.done() && (s.peek() == 'e' || s.peek() == 'E') {
		mark := s.pos
		s.pos++
		if !s.done() && (s.peek() == '+' || s.peek() == '-') {
			s.pos++
		}
		if s.digits() == 0 {
			// "e" belongs to the next token
			s.pos = mark
		}
	}

	v, err := strconv.ParseFloat(s.data[begin:s.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("path data at offset %d: %w", begin, err)
	}
	return v, nil
}

func (s *pathScanner) digits() int {
	n := 0
	for !s.done() && s.peek() >= '0' && s.peek() <= '9' {
		s.pos++
		n++
	}
	return n
}
