// Package template is the front end of the report DSL. It splits
// markdown-like source into literal text and embedded clauses:
//
//	{{ change, cat_purrs, Weekly }}            function clause
//	{{ table, rows: [..], cols: [..], .. }}    named-function clause
//	{{# frequency: [Weekly, Monthly] }} .. {{/}}  block with children
//
// Inside a clause, groups are comma-separated; a group is a bare value,
// a `label: value` pair, a `[v1, v2]` collection, or a labelled
// collection. The scanner only produces structure; token resolution
// happens during lowering.
package template

import (
	"fmt"
	"strings"

	"github.com/vk/reportgridgo/internal/clause"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
	blockMark  = '#'
	closeMark  = '/'
)

// FunctionVocab tells the parser which bare leading tokens name a
// rendering function, turning a clause into a named-function clause.
type FunctionVocab interface {
	HasFunction(name string) bool
}

// Parse converts report source into a clause tree.
func Parse(src string, functions FunctionVocab) ([]clause.Clause, error) {
	p := &parser{src: src, functions: functions, line: 1, col: 1}
	clauses, err := p.parseClauses(false)
	if err != nil {
		return nil, err
	}
	return clauses, nil
}

type parser struct {
	src       string
	pos       int
	line, col int
	functions FunctionVocab
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%d:%d: %s", p.line, p.col, fmt.Sprintf(format, args...))
}

// advance consumes n bytes, tracking line and column.
func (p *parser) advance(n int) {
	for i := 0; i < n; i++ {
		if p.src[p.pos+i] == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
	}
	p.pos += n
}

// parseClauses scans clauses until end of input, or until a block close
// marker when inBlock is set. The close marker is consumed.
func (p *parser) parseClauses(inBlock bool) ([]clause.Clause, error) {
	var clauses []clause.Clause
	for p.pos < len(p.src) {
		next := strings.Index(p.src[p.pos:], openDelim)
		if next < 0 {
			if inBlock {
				return nil, p.errorf("unterminated block: missing %s%c}}", openDelim, closeMark)
			}
			clauses = append(clauses, clause.Text{Content: p.src[p.pos:]})
			p.advance(len(p.src) - p.pos)
			break
		}
		if next > 0 {
			clauses = append(clauses, clause.Text{Content: p.src[p.pos : p.pos+next]})
			p.advance(next)
		}

		if p.peekAfterOpen() == closeMark {
			if !inBlock {
				return nil, p.errorf("block close marker without an open block")
			}
			if err := p.consumeClose(); err != nil {
				return nil, err
			}
			return clauses, nil
		}

		c, err := p.parseClause()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
	}
	if inBlock {
		return nil, p.errorf("unterminated block: missing %s%c}}", openDelim, closeMark)
	}
	return clauses, nil
}

// peekAfterOpen returns the first non-space byte following the open
// delimiter at the current position, or zero at end of input.
func (p *parser) peekAfterOpen() byte {
	rest := strings.TrimLeft(p.src[p.pos+len(openDelim):], " \t")
	if rest == "" {
		return 0
	}
	return rest[0]
}

// consumeClose consumes a `{{/}}` marker.
func (p *parser) consumeClose() error {
	end := strings.Index(p.src[p.pos:], closeDelim)
	if end < 0 {
		return p.errorf("unterminated clause: missing %s", closeDelim)
	}
	inner := strings.TrimSpace(p.src[p.pos+len(openDelim) : p.pos+end])
	if inner != string(closeMark) {
		return p.errorf("malformed block close marker %q", inner)
	}
	p.advance(end + len(closeDelim))
	return nil
}

// parseClause consumes one `{{ ... }}` clause, recursing into children
// when it opens a block.
func (p *parser) parseClause() (clause.Clause, error) {
	end := strings.Index(p.src[p.pos:], closeDelim)
	if end < 0 {
		return nil, p.errorf("unterminated clause: missing %s", closeDelim)
	}
	inner := p.src[p.pos+len(openDelim) : p.pos+end]
	isBlock := false
	if trimmed := strings.TrimLeft(inner, " \t"); trimmed != "" && trimmed[0] == blockMark {
		isBlock = true
		inner = strings.TrimLeft(inner, " \t")[1:]
	}

	groups, err := p.parseGroups(inner)
	if err != nil {
		return nil, err
	}
	p.advance(end + len(closeDelim))

	if isBlock {
		children, err := p.parseClauses(true)
		if err != nil {
			return nil, err
		}
		return clause.Block{Groups: groups, Children: children}, nil
	}

	// A bare leading token naming a rendering function selects that
	// function for the remaining groups.
	if len(groups) > 0 && !groups[0].Collection && groups[0].Label == "" {
		if name := groups[0].Values[0]; p.functions.HasFunction(name) {
			return clause.NamedFunction{Name: name, Groups: groups[1:]}, nil
		}
	}
	return clause.Function{Groups: groups}, nil
}

// parseGroups splits a clause body on top-level commas and parses each
// piece into a raw group.
func (p *parser) parseGroups(inner string) ([]clause.RawGroup, error) {
	var groups []clause.RawGroup
	for _, piece := range splitTopLevel(inner) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			return nil, p.errorf("empty argument group")
		}
		group, err := p.parseGroup(piece)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (p *parser) parseGroup(piece string) (clause.RawGroup, error) {
	label := ""
	if idx := strings.Index(piece, ":"); idx >= 0 && !strings.HasPrefix(piece, "[") {
		label = strings.TrimSpace(piece[:idx])
		piece = strings.TrimSpace(piece[idx+1:])
		if label == "" || piece == "" {
			return clause.RawGroup{}, p.errorf("malformed labelled group %q", label+":"+piece)
		}
	}

	if strings.HasPrefix(piece, "[") {
		if !strings.HasSuffix(piece, "]") {
			return clause.RawGroup{}, p.errorf("unterminated collection %q", piece)
		}
		var values []string
		for _, value := range strings.Split(piece[1:len(piece)-1], ",") {
			value = strings.TrimSpace(value)
			if value == "" {
				return clause.RawGroup{}, p.errorf("empty collection member in %q", piece)
			}
			values = append(values, value)
		}
		if len(values) == 0 {
			return clause.RawGroup{}, p.errorf("empty collection %q", piece)
		}
		return clause.RawGroup{Label: label, Values: values, Collection: true}, nil
	}

	return clause.RawGroup{Label: label, Values: []string{piece}}, nil
}

// splitTopLevel splits on commas outside square brackets.
func splitTopLevel(s string) []string {
	var pieces []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				pieces = append(pieces, s[start:i])
				start = i + 1
			}
		}
	}
	if rest := s[start:]; strings.TrimSpace(rest) != "" || len(pieces) > 0 {
		pieces = append(pieces, rest)
	}
	return pieces
}
