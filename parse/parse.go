// Package parse turns HOCON source text into the intermediate tree (ir.Value
// nodes that may still carry Substitution, Concat, and Include variants),
// per spec.md §3-§5. It performs no merging and no substitution resolution;
// those are separate passes in packages merge and resolve.
package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hocon-go/hocon/debug"
	"github.com/hocon-go/hocon/ir"
	"github.com/hocon-go/hocon/token"
)

// Parse lexes and parses a complete HOCON document. The root braces are
// optional: a document not starting with '{' is parsed as if it were the
// body of an object (spec.md §4.1), unless it starts with '[' in which case
// the whole document is a single array.
func Parse(src []byte, opts ...ParseOption) (*ir.Value, error) {
	o := &parseOpts{}
	for _, fn := range opts {
		fn(o)
	}

	toks, err := lexAll(src, o.filename)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks, opts: o}

	p.skipSeparators()
	var doc *ir.Value
	if p.cur().Type == token.TLSquare {
		doc, err = p.parseArray()
	} else {
		hasBraces := p.cur().Type == token.TLCurl
		if hasBraces {
			p.advance()
			doc, err = p.parseObjectBody(token.TRCurl)
			if err == nil {
				if p.cur().Type != token.TRCurl {
					err = fmt.Errorf("%w at %s", ErrExpectedCloseCurl, p.cur().Pos)
				} else {
					p.advance()
				}
			}
		} else {
			doc, err = p.parseObjectBody(token.TEOF)
		}
	}
	if err != nil {
		return nil, err
	}
	p.skipSeparators()
	if p.cur().Type != token.TEOF {
		return nil, fmt.Errorf("%w at %s", ErrTrailingInput, p.cur().Pos)
	}
	if debug.Parse() {
		debug.ParseEvent().Str("file", o.filename).Str("type", doc.Type.String()).Msg("parsed document")
	}
	return doc, nil
}

// lexAll drains the lexer into a token slice, dropping comments (they carry
// no meaning once parsed, since re-emission is out of scope).
func lexAll(src []byte, filename string) ([]token.Token, error) {
	lx := token.NewLexer(src, filename)
	var toks []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.TComment {
			continue
		}
		toks = append(toks, tok)
		if tok.Type == token.TEOF {
			break
		}
	}
	return toks, nil
}

// Parser walks a pre-lexed token slice with one token of lookahead.
type Parser struct {
	toks []token.Token
	pos  int
	opts *parseOpts
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// skipSpace consumes a single TSpace token if present, returning its text.
func (p *Parser) skipSpace() string {
	if p.cur().Type == token.TSpace {
		return string(p.advance().Bytes)
	}
	return ""
}

// skipSeparators consumes any run of commas, newlines, and spaces between
// members or elements. HOCON treats newlines as implicit commas (§4.1).
func (p *Parser) skipSeparators() {
	for {
		switch p.cur().Type {
		case token.TComma, token.TNewline, token.TSpace:
			p.advance()
		default:
			return
		}
	}
}

func startsValue(t token.Type) bool {
	switch t {
	case token.TLCurl, token.TLSquare, token.TString, token.TMString,
		token.TUnquoted, token.TInteger, token.TFloat,
		token.TTrue, token.TFalse, token.TNull, token.TSubst:
		return true
	}
	return false
}

// parseValue reads one value expression: a single atom, or a same-line
// whitespace-joined concatenation of atoms (spec.md §4.2).
func (p *Parser) parseValue() (*ir.Value, error) {
	first, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	operands := []*ir.Value{first}
	var seps []string
	for {
		save := p.pos
		sep := ""
		if p.cur().Type == token.TSpace {
			sep = string(p.cur().Bytes)
			p.advance()
		}
		if !startsValue(p.cur().Type) {
			p.pos = save
			break
		}
		next, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		seps = append(seps, sep)
		operands = append(operands, next)
	}
	if len(operands) == 1 {
		return operands[0], nil
	}
	cc := &ir.Value{Type: ir.ConcatType, Values: operands, Sep: seps}
	for i, o := range operands {
		o.Parent = cc
		o.ParentIndex = i
	}
	return cc, nil
}

func (p *Parser) parseAtom() (*ir.Value, error) {
	tok := p.cur()
	switch tok.Type {
	case token.TLCurl:
		p.advance()
		obj, err := p.parseObjectBody(token.TRCurl)
		if err != nil {
			return nil, err
		}
		if p.cur().Type != token.TRCurl {
			return nil, fmt.Errorf("%w at %s", ErrExpectedCloseCurl, p.cur().Pos)
		}
		p.advance()
		return obj, nil
	case token.TLSquare:
		return p.parseArray()
	case token.TString, token.TMString:
		p.advance()
		return ir.FromString(string(tok.Bytes)), nil
	case token.TTrue:
		p.advance()
		return ir.FromBool(true), nil
	case token.TFalse:
		p.advance()
		return ir.FromBool(false), nil
	case token.TNull:
		p.advance()
		return ir.Null(), nil
	case token.TInteger:
		p.advance()
		n, err := strconv.ParseInt(string(tok.Bytes), 10, 64)
		if err != nil {
			// Out of i64 range: fall back to f64, matching the original's
			// "try i64 first, then f64" rule (spec.md §4.2).
			if f, ferr := strconv.ParseFloat(string(tok.Bytes), 64); ferr == nil {
				return ir.FromFloat(f), nil
			}
			return p.badOrErr(ir.ParseErrorKind, fmt.Errorf("%w: %s", err, tok.Bytes), tok)
		}
		return ir.FromInt(n), nil
	case token.TFloat:
		p.advance()
		f, err := strconv.ParseFloat(string(tok.Bytes), 64)
		if err != nil {
			return p.badOrErr(ir.ParseErrorKind, fmt.Errorf("%w: %s", err, tok.Bytes), tok)
		}
		return ir.FromFloat(f), nil
	case token.TUnquoted:
		p.advance()
		return ir.FromString(string(tok.Bytes)), nil
	case token.TSubst:
		p.advance()
		return &ir.Value{Type: ir.SubstitutionType, SubstPath: string(tok.Bytes), SubstOptional: tok.Optional}, nil
	default:
		return p.badOrErr(ir.ParseErrorKind, fmt.Errorf("%w at %s: %s", ErrExpectedValue, tok.Pos, tok.Type), tok)
	}
}

// badOrErr returns a BadValue placeholder in lenient mode, and the error
// itself when Strict is set. It also resynchronizes the token stream past
// the offending atom's implied end when lenient, so the surrounding object
// or array can keep parsing (spec.md §7).
func (p *Parser) badOrErr(kind ir.ErrorKind, err error, tok token.Token) (*ir.Value, error) {
	if p.opts.strict {
		return nil, err
	}
	p.resync()
	return ir.FromBadValue(kind, err), nil
}

// resync advances past tokens until a member/element boundary, so lenient
// parsing can recover after a malformed atom.
func (p *Parser) resync() {
	for {
		switch p.cur().Type {
		case token.TComma, token.TNewline, token.TRCurl, token.TRSquare, token.TEOF:
			return
		default:
			p.advance()
		}
	}
}

// parseArray parses "[" elements "]". The opening bracket must be current.
func (p *Parser) parseArray() (*ir.Value, error) {
	p.advance() // '['
	arr := &ir.Value{Type: ir.ArrayType}
	p.skipSeparators()
	for p.cur().Type != token.TRSquare {
		if p.cur().Type == token.TEOF {
			return nil, fmt.Errorf("%w at %s", ErrExpectedCloseSq, p.cur().Pos)
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		val.Parent = arr
		val.ParentIndex = len(arr.Values)
		arr.Values = append(arr.Values, val)
		p.skipSeparators()
	}
	p.advance() // ']'
	return arr, nil
}

// parseObjectBody parses object members until closer (TRCurl for a braced
// object, TEOF for the implicit root object) is seen. The closer itself is
// left unconsumed for the caller to check.
func (p *Parser) parseObjectBody(closer token.Type) (*ir.Value, error) {
	obj := &ir.Value{Type: ir.ObjectType}
	p.skipSeparators()
	for p.cur().Type != closer && p.cur().Type != token.TEOF {
		if err := p.parseMember(obj); err != nil {
			return nil, err
		}
		p.skipSeparators()
	}
	return obj, nil
}

func (p *Parser) appendField(obj *ir.Value, key *ir.Value, val *ir.Value) {
	idx := len(obj.Fields)
	key.Parent = obj
	key.ParentIndex = idx
	val.Parent = obj
	val.ParentIndex = idx
	val.ParentField = key.FieldString()
	obj.Fields = append(obj.Fields, key)
	obj.Values = append(obj.Values, val)
}

// parseMember parses one "key : value", "key value" (bare-object sugar),
// "key += value", or "include ..." directive, appending the result(s) to
// obj. Path-key sugar ("a.b.c = 1") desugars into nested single-field
// objects here; merge folds duplicate top-level keys later.
func (p *Parser) parseMember(obj *ir.Value) error {
	if p.cur().Type == token.TUnquoted && string(p.cur().Bytes) == "include" {
		inc, err := p.parseInclude()
		if err != nil {
			return err
		}
		p.appendField(obj, ir.FromString(""), inc)
		return nil
	}

	path, err := p.parseKeyPath()
	if err != nil {
		return err
	}
	p.skipSpace()

	var val *ir.Value
	switch p.cur().Type {
	case token.TColon:
		p.advance()
		p.skipSpace()
		val, err = p.parseValue()
	case token.TPlusEq:
		p.advance()
		p.skipSpace()
		appended, aerr := p.parseValue()
		if aerr != nil {
			return aerr
		}
		selfRef := &ir.Value{Type: ir.SubstitutionType, SubstPath: path.String(), SubstOptional: true}
		wrapArr := ir.FromSlice([]*ir.Value{appended})
		val = &ir.Value{Type: ir.ConcatType, Values: []*ir.Value{selfRef, wrapArr}, Sep: []string{""}}
		selfRef.Parent, selfRef.ParentIndex = val, 0
		wrapArr.Parent, wrapArr.ParentIndex = val, 1
	case token.TLCurl:
		val, err = p.parseValue()
	default:
		return fmt.Errorf("%w at %s: expected ':', '=', '+=', or '{' after key %q", ErrExpectedKey, p.cur().Pos, path.String())
	}
	if err != nil {
		return err
	}

	// Desugar the dotted path into nested single-field objects.
	for i := len(path) - 1; i >= 1; i-- {
		wrapped := &ir.Value{Type: ir.ObjectType}
		p.appendField(wrapped, ir.FromString(path[i].Key), val)
		val = wrapped
	}
	p.appendField(obj, ir.FromString(path[0].Key), val)
	return nil
}

// parseKeyPath reads the key preceding ':'/'='/'+='/'{' as an ir.Path. A key
// is one or more directly adjacent (no intervening whitespace) quoted or
// unquoted tokens; since '.' is a legal unquoted-string character, a plain
// dotted key like "a.b.c" already arrives as a single TUnquoted token and
// is split by ir.ParsePath. Only a quoted segment containing a literal dot
// needs the multi-token path, e.g. "a"."b.c".
func (p *Parser) parseKeyPath() (ir.Path, error) {
	var sb strings.Builder
	n := 0
loop:
	for {
		tok := p.cur()
		switch tok.Type {
		case token.TString:
			sb.WriteByte('"')
			sb.WriteString(strings.ReplaceAll(string(tok.Bytes), `"`, `\"`))
			sb.WriteByte('"')
			p.advance()
			n++
		case token.TUnquoted, token.TInteger, token.TFloat, token.TTrue, token.TFalse, token.TNull:
			sb.Write(tok.Bytes)
			p.advance()
			n++
		default:
			break loop
		}
	}
	if n == 0 {
		return nil, fmt.Errorf("%w at %s: %s", ErrExpectedKey, p.cur().Pos, p.cur().Type)
	}
	return ir.ParsePath(sb.String())
}

// parseInclude parses one of the four include directive forms (spec.md §5):
//
//	include "ref"
//	include file("ref")
//	include url("ref")
//	include classpath("ref")
//	include required(<any of the above, or a bare "ref">)
func (p *Parser) parseInclude() (*ir.Value, error) {
	p.advance() // "include"
	p.skipSpace()
	return p.parseIncludeForm()
}

func (p *Parser) parseIncludeForm() (*ir.Value, error) {
	tok := p.cur()
	if tok.Type == token.TUnquoted {
		switch string(tok.Bytes) {
		case "required":
			p.advance()
			p.skipSpace()
			if p.cur().Type != token.TLParen {
				return nil, fmt.Errorf("%w at %s: expected '(' after required", ErrBadInclude, p.cur().Pos)
			}
			p.advance()
			p.skipSpace()
			inner, err := p.parseIncludeForm()
			if err != nil {
				return nil, err
			}
			p.skipSpace()
			if p.cur().Type != token.TRParen {
				return nil, fmt.Errorf("%w at %s: expected ')'", ErrBadInclude, p.cur().Pos)
			}
			p.advance()
			inner.IncludeRequired = true
			return inner, nil
		case "file", "url", "classpath":
			kind := map[string]ir.IncludeSource{
				"file": ir.IncludeFile, "url": ir.IncludeURL, "classpath": ir.IncludeClasspath,
			}[string(tok.Bytes)]
			p.advance()
			p.skipSpace()
			if p.cur().Type != token.TLParen {
				return nil, fmt.Errorf("%w at %s: expected '('", ErrBadInclude, p.cur().Pos)
			}
			p.advance()
			p.skipSpace()
			ref, err := p.expectQuotedString()
			if err != nil {
				return nil, err
			}
			p.skipSpace()
			if p.cur().Type != token.TRParen {
				return nil, fmt.Errorf("%w at %s: expected ')'", ErrBadInclude, p.cur().Pos)
			}
			p.advance()
			return ir.FromInclude(kind, ref, false), nil
		}
	}
	ref, err := p.expectQuotedString()
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %s", ErrBadInclude, tok.Pos, err)
	}
	return ir.FromInclude(ir.IncludeUnqualified, ref, false), nil
}

func (p *Parser) expectQuotedString() (string, error) {
	tok := p.cur()
	if tok.Type != token.TString && tok.Type != token.TMString {
		return "", fmt.Errorf("%w at %s: expected a quoted string", ErrBadInclude, tok.Pos)
	}
	p.advance()
	return string(tok.Bytes), nil
}
