package manifest

import (
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Annotation names mapped onto manifest fields.
const (
	attrTitle         = "AssemblyTitle"
	attrDescription   = "AssemblyDescription"
	attrCompany       = "AssemblyCompany"
	attrProduct       = "AssemblyProduct"
	attrCopyright     = "AssemblyCopyright"
	attrVersion       = "AssemblyVersion"
	attrFileVersion   = "AssemblyFileVersion"
	attributeSuffix   = "Attribute"
	assemblyTarget    = "assembly"
	csharpOpenBracket = '['
	vbOpenBracket     = '<'
)

// Annotations maps an assembly-level attribute name (namespace and
// "Attribute" suffix stripped) to its first string argument.
type Annotations map[string]string

// Merge adds entries from other whose keys are not yet set to a non-empty value.
func (a Annotations) Merge(other Annotations) {
	for k, v := range other {
		if a[k] == "" {
			a[k] = v
		}
	}
}

// readSource reads a text file, honouring UTF-8 and UTF-16 byte order marks.
func readSource(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	dec := xunicode.BOMOverride(xunicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(f, dec))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseAnnotations extracts assembly-level attributes from C# ("[assembly: X]")
// or Visual Basic ("<Assembly: X>") source text. The first occurrence of a
// name wins.
func ParseAnnotations(src string) Annotations {
	p := &annotationParser{src: src}
	out := Annotations{}
	for _, attr := range p.parse() {
		if _, seen := out[attr.name]; seen {
			continue
		}
		out[attr.name] = attr.value
	}
	return out
}

type annotation struct {
	name  string
	value string
}

type annotationParser struct {
	src string
	pos int
	vb  bool
}

func (p *annotationParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *annotationParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *annotationParser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

func (p *annotationParser) parse() []annotation {
	var out []annotation
	for !p.eof() {
		switch c := p.peek(); {
		case p.hasPrefix("//"):
			p.skipLine()
		case p.hasPrefix("/*"):
			p.skipBlockComment()
		case c == '\'' && p.atLineStart():
			p.skipLine()
		case c == '"' || (c == '@' && p.hasPrefix(`@"`)):
			p.readString()
		case c == csharpOpenBracket || c == vbOpenBracket:
			start := p.pos
			if attrs, ok := p.parseSection(); ok {
				out = append(out, attrs...)
			} else {
				p.pos = start + 1
			}
		default:
			p.pos++
		}
	}
	return out
}

// parseSection parses "[assembly: A(...), B(...)]" starting at the bracket.
func (p *annotationParser) parseSection() ([]annotation, bool) {
	open := p.peek()
	p.vb = open == vbOpenBracket
	closer := byte(']')
	if p.vb {
		closer = '>'
	}
	p.pos++
	p.skipSpace()

	target := p.readIdent()
	if !strings.EqualFold(target, assemblyTarget) {
		return nil, false
	}
	p.skipSpace()
	if p.peek() != ':' {
		return nil, false
	}
	p.pos++

	var attrs []annotation
	for {
		p.skipSpace()
		name := p.readIdent()
		if name == "" {
			return nil, false
		}
		p.skipSpace()

		var args []string
		if p.peek() == '(' {
			var ok bool
			if args, ok = p.parseArgs(); !ok {
				return nil, false
			}
			p.skipSpace()
		}

		attr := annotation{name: normalizeAttributeName(name)}
		if len(args) > 0 {
			attr.value = args[0]
		}
		attrs = append(attrs, attr)

		switch p.peek() {
		case ',':
			p.pos++
		case closer:
			p.pos++
			return attrs, true
		default:
			return nil, false
		}
	}
}

// parseArgs parses a parenthesised argument list. String literals are
// decoded; any other argument is kept as trimmed source text.
func (p *annotationParser) parseArgs() ([]string, bool) {
	p.pos++ // (
	var args []string
	for {
		p.skipSpace()
		if p.eof() {
			return nil, false
		}
		if p.peek() == ')' {
			p.pos++
			return args, true
		}

		var arg string
		if c := p.peek(); c == '"' || (c == '@' && p.hasPrefix(`@"`)) {
			s, ok := p.readString()
			if !ok {
				return nil, false
			}
			arg = s
		} else {
			start, depth := p.pos, 0
			for !p.eof() {
				c := p.peek()
				if depth == 0 && (c == ',' || c == ')') {
					break
				}
				switch c {
				case '(':
					depth++
				case ')':
					depth--
				}
				p.pos++
			}
			arg = strings.TrimSpace(p.src[start:p.pos])
		}
		args = append(args, arg)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ')':
		default:
			return nil, false
		}
	}
}

// readString reads a C# regular or verbatim literal, or a VB literal.
func (p *annotationParser) readString() (string, bool) {
	verbatim := p.peek() == '@'
	if verbatim {
		p.pos++
	}
	p.pos++ // opening quote

	var b strings.Builder
	for !p.eof() {
		c := p.peek()
		switch {
		case c == '"' && (verbatim || p.vb) && p.hasPrefix(`""`):
			b.WriteByte('"')
			p.pos += 2
		case c == '"':
			p.pos++
			return b.String(), true
		case c == '\\' && !verbatim && !p.vb && p.pos+1 < len(p.src):
			p.readEscape(&b)
		case c == '\n' && !verbatim:
			return "", false
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", false
}

// readEscape decodes the C# escape sequence starting at the backslash at
// p.pos. Unrecognised escapes keep the escaped character.
func (p *annotationParser) readEscape(b *strings.Builder) {
	switch p.src[p.pos+1] {
	case '0':
		b.WriteByte(0)
		p.pos += 2
	case '\'':
		b.WriteByte('\'')
		p.pos += 2
	case 'x':
		n := 0
		for n < 4 && p.pos+2+n < len(p.src) && isHexDigit(p.src[p.pos+2+n]) {
			n++
		}
		if n == 0 {
			b.WriteByte('x')
			p.pos += 2
			return
		}
		r, _ := hexRune(p.src[p.pos+2:], n)
		p.pos += 2 + n
		p.writeUTF16(b, r)
	case 'u':
		r, ok := hexRune(p.src[p.pos+2:], 4)
		if !ok {
			b.WriteByte('u')
			p.pos += 2
			return
		}
		p.pos += 6
		p.writeUTF16(b, r)
	default:
		value, _, tail, err := strconv.UnquoteChar(p.src[p.pos:], '"')
		if err == nil {
			b.WriteRune(value)
			p.pos = len(p.src) - len(tail)
			return
		}
		r, size := utf8.DecodeRuneInString(p.src[p.pos+1:])
		b.WriteRune(r)
		p.pos += 1 + size
	}
}

// writeUTF16 writes a UTF-16 code unit, pairing a high surrogate with a
// directly following \u low surrogate. Unpaired surrogates become U+FFFD.
func (p *annotationParser) writeUTF16(b *strings.Builder, r rune) {
	if utf16.IsSurrogate(r) && p.hasPrefix(`\u`) {
		if lo, ok := hexRune(p.src[p.pos+2:], 4); ok {
			if pair := utf16.DecodeRune(r, lo); pair != utf8.RuneError {
				b.WriteRune(pair)
				p.pos += 6
				return
			}
		}
	}
	b.WriteRune(r)
}

// hexRune parses exactly n hex digits at the start of s.
func hexRune(s string, n int) (rune, bool) {
	if len(s) < n {
		return 0, false
	}
	for i := 0; i < n; i++ {
		if !isHexDigit(s[i]) {
			return 0, false
		}
	}
	v, err := strconv.ParseUint(s[:n], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func (p *annotationParser) readIdent() string {
	start := p.pos
	for !p.eof() {
		r := rune(p.peek())
		if r == '.' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *annotationParser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\r', '\n':
			p.pos++
		case '_':
			// VB line continuation
			if p.vb {
				p.pos++
				continue
			}
			return
		default:
			return
		}
	}
}

func (p *annotationParser) skipLine() {
	for !p.eof() && p.peek() != '\n' {
		p.pos++
	}
}

func (p *annotationParser) skipBlockComment() {
	end := strings.Index(p.src[p.pos+2:], "*/")
	if end < 0 {
		p.pos = len(p.src)
		return
	}
	p.pos += end + 4
}

func (p *annotationParser) atLineStart() bool {
	for i := p.pos - 1; i >= 0; i-- {
		switch p.src[i] {
		case ' ', '\t':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// normalizeAttributeName strips a namespace qualifier and the Attribute suffix.
func normalizeAttributeName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if name != attributeSuffix {
		name = strings.TrimSuffix(name, attributeSuffix)
	}
	return name
}
