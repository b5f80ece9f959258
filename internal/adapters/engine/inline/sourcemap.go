package inline

import "strings"

const base64VLQ = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// segment maps a generated column to an original position.
type segment struct {
	genCol int
	src    int
	line   int
	col    int
}

// output accumulates generated CSS along with its line mappings.
type output struct {
	buf   strings.Builder
	lines [][]segment
	col   int
	// muted suppresses writes while greater than zero.
	muted int
}

// write appends text that originates at line:col of source src.
// A negative src marks generated text without an origin.
func (o *output) write(text string, src, line, col int) {
	if o.muted > 0 || text == "" {
		return
	}
	if len(o.lines) == 0 {
		o.lines = append(o.lines, nil)
	}
	for {
		chunk, rest, more := strings.Cut(text, "\n")
		if chunk != "" && src >= 0 {
			last := len(o.lines) - 1
			o.lines[last] = append(o.lines[last], segment{genCol: o.col, src: src, line: line, col: col})
		}
		o.buf.WriteString(chunk)
		o.col += len(chunk)
		if !more {
			return
		}
		o.buf.WriteByte('\n')
		o.lines = append(o.lines, nil)
		o.col = 0
		text = rest
		line++
		col = 0
	}
}

func (o *output) String() string {
	return o.buf.String()
}

// mappings encodes the collected segments as a v3 "mappings" field.
func (o *output) mappings() string {
	var b strings.Builder
	var prevSrc, prevLine, prevCol int
	for i, segs := range o.lines {
		if i > 0 {
			b.WriteByte(';')
		}
		prevGen := 0
		for j, s := range segs {
			if j > 0 {
				b.WriteByte(',')
			}
			writeVLQ(&b, s.genCol-prevGen)
			writeVLQ(&b, s.src-prevSrc)
			writeVLQ(&b, s.line-prevLine)
			writeVLQ(&b, s.col-prevCol)
			prevGen, prevSrc, prevLine, prevCol = s.genCol, s.src, s.line, s.col
		}
	}
	return b.String()
}

func writeVLQ(b *strings.Builder, v int) {
	u := v << 1
	if v < 0 {
		u = (-v)<<1 | 1
	}
	for {
		digit := u & 31
		u >>= 5
		if u > 0 {
			digit |= 32
		}
		b.WriteByte(base64VLQ[digit])
		if u == 0 {
			return
		}
	}
}
