// Package nodepath locates sub-nodes inside a component tree with a small
// path language:
//
//	FRAME[name='Body'] > TEXT
//
// Steps are separated by '>'. Each step names a node type and optionally a
// name selector. Name literals may contain placeholders such as $activity,
// substituted before matching.
package nodepath

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kataras/figma-tokens/pkg/figma"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("path syntax error")

// Step is one parsed path step.
type Step struct {
	Type    figma.NodeType
	Name    string // name selector literal, placeholders not yet substituted
	HasName bool
	Known   bool // false when Type is not a recognized node type; such steps are skipped
}

func (s Step) String() string {
	if !s.HasName {
		return string(s.Type)
	}
	return fmt.Sprintf("%s[name='%s']", s.Type, s.Name)
}

// Parse turns a path expression into steps. An empty path has no steps and
// resolves to the starting node.
func Parse(path string) ([]Step, error) {
	p := &parser{src: path}
	var steps []Step

	p.skipSpace()
	if p.eof() {
		return nil, nil
	}

	for {
		step, err := p.step()
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)

		p.skipSpace()
		if p.eof() {
			return steps, nil
		}
		if !p.accept('>') {
			return nil, p.errorf("expected '>' between steps, got %q", p.peek())
		}
	}
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) accept(c byte) bool {
	if p.peek() == c && !p.eof() {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n') {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d in %q: %s", ErrSyntax, p.pos, p.src, fmt.Sprintf(format, args...))
}

func (p *parser) ident() string {
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *parser) step() (Step, error) {
	p.skipSpace()
	typ := p.ident()
	if typ == "" {
		return Step{}, p.errorf("expected node type")
	}

	nodeType, known := figma.ParseNodeType(typ)
	step := Step{Type: nodeType, Known: known}

	p.skipSpace()
	if !p.accept('[') {
		return step, nil
	}

	p.skipSpace()
	if attr := p.ident(); attr != "name" {
		return Step{}, p.errorf("unsupported selector attribute %q", attr)
	}
	p.skipSpace()
	if !p.accept('=') {
		return Step{}, p.errorf("expected '=' in selector")
	}
	p.skipSpace()

	quote := p.peek()
	if quote != '\'' && quote != '"' {
		return Step{}, p.errorf("expected quoted name literal")
	}
	p.pos++
	end := strings.IndexByte(p.src[p.pos:], quote)
	if end < 0 {
		return Step{}, p.errorf("unterminated name literal")
	}
	step.Name = p.src[p.pos : p.pos+end]
	step.HasName = true
	p.pos += end + 1

	p.skipSpace()
	if !p.accept(']') {
		return Step{}, p.errorf("expected ']' to close selector")
	}
	return step, nil
}
