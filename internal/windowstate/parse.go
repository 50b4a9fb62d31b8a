package windowstate

import (
	"github.com/Norgate-AV/wintools/internal/apperr"
	"github.com/Norgate-AV/wintools/internal/argv"
	"github.com/Norgate-AV/wintools/internal/interfaces"
)

type filterKey int

const (
	filterForeground filterKey = iota
	filterDesktop
	filterHandle
	filterParent
	filterTitle
	filterPid
	filterStyle
	filterExStyle
	filterMessage
)

type actionKey int

const (
	actionSetForeground actionKey = iota
	actionSetTop
	actionSetTopMost
	actionShow
	actionHide
	actionMaximize
	actionMinimize
	actionMove
	actionSize
	actionStrict
	actionLong
	actionWord
)

var filters = argv.NewTable[filterKey]().
	Add(filterForeground, "foreground", "f", "is-foreground", "top", "focus", "focused", "selected", "active").
	Add(filterDesktop, "desktop", "dektop", "list", "root", "all", "screen", "display").
	Add(filterHandle, "handle", "hwnd", "id").
	Add(filterParent, "parent", "children-of").
	Add(filterTitle, "title").
	Add(filterPid, "pid", "process").
	Add(filterStyle, "style").
	Add(filterExStyle, "exstyle", "ex-style").
	Add(filterMessage, "message", "message-only")

var actions = argv.NewTable[actionKey]().
	Add(actionSetForeground, "set-foreground", "set-focus", "set-main").
	Add(actionSetTop, "set-top", "make-top", "raise", "bring-to-top", "bring-top").
	Add(actionSetTopMost, "set-top-most", "make-top-most", "bring-to-top-most", "bring-top-most").
	Add(actionShow, "show", "set-visible").
	Add(actionHide, "hide", "set-invisible").
	Add(actionMaximize, "maximize", "set-maximize", "max", "undock").
	Add(actionMinimize, "minimize", "set-minimize", "min", "dock").
	Add(actionMove, "move", "pos", "position").
	Add(actionSize, "size", "resize").
	Add(actionStrict, "strict", "fail-fast").
	Add(actionLong, "long").
	Add(actionWord, "word")

// Parse resolves the arguments in a single left-to-right pass. Argument
// errors are returned before any window is touched.
func Parse(args []string) (Request, error) {
	if len(args) == 0 {
		return Request{Help: true, HelpExit: apperr.ExitUsage}, nil
	}

	p := &parser{tokens: argv.Tokenize(args)}
	return p.parse()
}

type parser struct {
	tokens []argv.Token
	pos    int
	req    Request
}

func (p *parser) parse() (Request, error) {
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		p.pos++

		if tok.Index == 1 {
			handled, err := p.shortcut(tok)
			if err != nil {
				return Request{}, err
			}

			if handled {
				continue
			}
		}

		if argv.IsHelp(tok) {
			exit := apperr.ExitUsage
			if len(p.tokens) == 1 {
				exit = apperr.ExitOK
			}

			return Request{Help: true, HelpExit: exit}, nil
		}

		if err := tok.CheckFlag(); err != nil {
			return Request{}, err
		}

		if err := p.flag(tok); err != nil {
			return Request{}, err
		}
	}

	if p.req.Actions.Any() && p.req.Filter.Kind == FilterNone {
		return Request{}, apperr.New(apperr.KindNoFilterSpecified, "cannot apply actions without a window filter")
	}

	return p.req, nil
}

// shortcut handles the bare first-argument forms: a number selects that
// handle and a lone "*" selects the desktop.
func (p *parser) shortcut(tok argv.Token) (bool, error) {
	if tok.Raw == "*" {
		return true, p.setFilter(FilterDesktop, tok)
	}

	if !tok.IsBare() || tok.Raw == "" || tok.Raw[0] < '0' || tok.Raw[0] > '9' {
		return false, nil
	}

	v, err := argv.ParseInt(tok.Raw)
	if err != nil {
		return false, apperr.AtToken(apperr.KindInvalidArgument, tok.Raw, tok.Index, "invalid starting handle")
	}

	return true, p.addHandle(interfaces.Handle(v), tok)
}

func (p *parser) flag(tok argv.Token) error {
	// "focus" is a foreground filter unless handles are already selected.
	if p.req.Filter.Kind == FilterHandle && tok.Is("focus") {
		p.req.Actions.SetForeground = true
		return nil
	}

	if key, ok := filters.Lookup(tok.Name); ok {
		return p.filter(key, tok)
	}

	if key, ok := actions.Lookup(tok.Name); ok {
		return p.action(key, tok)
	}

	return apperr.AtToken(apperr.KindArgument, tok.Raw, tok.Index, "unknown flag")
}

func (p *parser) filter(key filterKey, tok argv.Token) error {
	switch key {
	case filterForeground:
		return p.setFilter(FilterForeground, tok)
	case filterDesktop:
		return p.setFilter(FilterDesktop, tok)
	case filterHandle:
		v, err := p.operand(tok)
		if err != nil {
			return err
		}

		return p.addHandle(interfaces.Handle(v), tok)
	case filterParent:
		if p.req.Filter.Kind == FilterParent {
			return apperr.AtToken(apperr.KindDuplicateFilter, tok.Raw, tok.Index, "parent filter already specified")
		}

		v, err := p.operand(tok)
		if err != nil {
			return err
		}

		if err := p.setFilter(FilterParent, tok); err != nil {
			return err
		}

		p.req.Filter.Parent = interfaces.Handle(v)
		return nil
	default:
		return apperr.AtToken(apperr.KindUnsupportedFilter, tok.Raw, tok.Index, "filter is not supported")
	}
}

func (p *parser) action(key actionKey, tok argv.Token) error {
	a := &p.req.Actions

	switch key {
	case actionSetForeground:
		a.SetForeground = true
	case actionSetTop:
		if a.BringToTop != BringTopMost {
			a.BringToTop = BringTop
		}
	case actionSetTopMost:
		a.BringToTop = BringTopMost
	case actionShow:
		a.Show = true
	case actionHide:
		a.Hide = true
	case actionMaximize:
		a.Maximize = true
	case actionMinimize:
		a.Minimize = true
	case actionMove:
		x, y, err := p.pair(tok)
		if err != nil {
			return err
		}

		a.Move, a.X, a.Y = true, x, y
	case actionSize:
		w, h, err := p.pair(tok)
		if err != nil {
			return err
		}

		a.Resize, a.Width, a.Height = true, w, h
	case actionStrict:
		p.req.Strict = true
	default:
		return apperr.AtToken(apperr.KindUnsupportedFilter, tok.Raw, tok.Index, "action is not supported")
	}

	return nil
}

func (p *parser) setFilter(kind FilterKind, tok argv.Token) error {
	current := p.req.Filter.Kind
	if current != FilterNone && current != kind {
		return apperr.AtToken(apperr.KindArgument, tok.Raw, tok.Index,
			"conflicting filter (%s already selected)", current)
	}

	p.req.Filter.Kind = kind
	return nil
}

func (p *parser) addHandle(h interfaces.Handle, tok argv.Token) error {
	if err := p.setFilter(FilterHandle, tok); err != nil {
		return err
	}

	if len(p.req.Filter.Handles) >= MaxHandles {
		return apperr.AtToken(apperr.KindTooManyTargets, tok.Raw, tok.Index,
			"too many window handles (max %d)", MaxHandles)
	}

	p.req.Filter.Handles = append(p.req.Filter.Handles, h)
	return nil
}

// operand consumes the next token as a 64-bit integer operand of flag.
func (p *parser) operand(flag argv.Token) (int64, error) {
	if p.pos >= len(p.tokens) {
		return 0, apperr.AtToken(apperr.KindInvalidArgument, flag.Raw, flag.Index+1, "missing operand for")
	}

	next := p.tokens[p.pos]
	p.pos++

	v, err := argv.ParseInt(next.Raw)
	if err != nil {
		return 0, &apperr.Error{
			Kind:  apperr.KindInvalidArgument,
			Msg:   "invalid operand for",
			Token: flag.Raw,
			Index: next.Index,
			Err:   err,
		}
	}

	return v, nil
}

// pair consumes exactly two signed 32-bit operands of flag.
func (p *parser) pair(flag argv.Token) (int32, int32, error) {
	var out [2]int32

	for i := range out {
		if p.pos >= len(p.tokens) {
			return 0, 0, apperr.AtToken(apperr.KindInvalidArgument, flag.Raw, flag.Index+i+1, "missing operand for")
		}

		next := p.tokens[p.pos]
		p.pos++

		v, err := argv.ParseInt32(next.Raw)
		if err != nil {
			return 0, 0, &apperr.Error{
				Kind:  apperr.KindInvalidArgument,
				Msg:   "invalid operand for",
				Token: flag.Raw,
				Index: next.Index,
				Err:   err,
			}
		}

		out[i] = v
	}

	return out[0], out[1], nil
}
