package windowstate

import (
	"log/slog"

	"github.com/Norgate-AV/wintools/internal/apperr"
	"github.com/Norgate-AV/wintools/internal/interfaces"
	"github.com/Norgate-AV/wintools/internal/logger"
)

type iterState int

const (
	stateResolving iterState = iota
	stateIterating
	stateDone
)

// iterator yields the targets selected by a filter. The first call
// resolves and validates the starting target; later calls walk the
// explicit list or the sibling chain.
type iterator struct {
	ws     interfaces.WindowQuerier
	filter Filter
	log    logger.LoggerInterface
	state  iterState

	index    int
	upcoming interfaces.Handle
	seen     map[interfaces.Handle]struct{}
}

func newIterator(ws interfaces.WindowQuerier, filter Filter, log logger.LoggerInterface) *iterator {
	return &iterator{ws: ws, filter: filter, log: log, state: stateResolving}
}

// advance returns the next target, false once the walk is done.
func (it *iterator) advance() (interfaces.Handle, bool, error) {
	switch it.state {
	case stateResolving:
		if err := it.resolve(); err != nil {
			it.state = stateDone
			return 0, false, err
		}

		it.state = stateIterating
		return it.advance()
	case stateIterating:
		h, ok := it.step()
		if !ok {
			it.state = stateDone
		}

		return h, ok, nil
	default:
		return 0, false, nil
	}
}

func (it *iterator) resolve() error {
	switch it.filter.Kind {
	case FilterNone:
		return nil
	case FilterHandle:
		// Every listed handle must exist before anything is applied.
		for _, h := range it.filter.Handles {
			if h == 0 || !it.ws.IsWindow(h) {
				return apperr.New(apperr.KindTargetNotFound, "target handle %d was not found", h)
			}
		}

		return nil
	case FilterForeground:
		h := it.ws.ForegroundWindow()
		if h == 0 || !it.ws.IsWindow(h) {
			return apperr.New(apperr.KindTargetNotFound, "could not find the foreground window")
		}

		it.upcoming = h
		return nil
	case FilterParent, FilterDesktop:
		parent := it.filter.Parent
		if it.filter.Kind == FilterDesktop {
			parent = 0
		}

		if parent != 0 && !it.ws.IsWindow(parent) {
			return apperr.New(apperr.KindTargetNotFound, "parent window %d was not found", parent)
		}

		it.upcoming = it.ws.FirstChild(parent)
		it.seen = make(map[interfaces.Handle]struct{})

		it.log.Debug("Resolved first target",
			slog.Int64("parent", int64(parent)),
			slog.Int64("first", int64(it.upcoming)))

		return nil
	default:
		return apperr.New(apperr.KindArgument, "unknown filter kind %d", int(it.filter.Kind))
	}
}

func (it *iterator) step() (interfaces.Handle, bool) {
	switch it.filter.Kind {
	case FilterHandle:
		if it.index >= len(it.filter.Handles) {
			return 0, false
		}

		h := it.filter.Handles[it.index]
		it.index++
		return h, true
	case FilterForeground:
		h := it.upcoming
		it.upcoming = 0
		return h, h != 0
	case FilterParent, FilterDesktop:
		return it.stepChain()
	default:
		return 0, false
	}
}

// stepChain returns the current chain member and prefetches its sibling,
// so actions that reorder the window cannot redirect the walk. A handle
// seen twice or no longer valid ends the chain.
func (it *iterator) stepChain() (interfaces.Handle, bool) {
	h := it.upcoming
	if h == 0 {
		return 0, false
	}

	if _, dup := it.seen[h]; dup {
		it.log.Debug("Sibling chain looped, stopping", slog.Int64("hwnd", int64(h)))
		return 0, false
	}

	if !it.ws.IsWindow(h) {
		it.log.Debug("Sibling chain broken by a closed window", slog.Int64("hwnd", int64(h)))
		return 0, false
	}

	it.seen[h] = struct{}{}
	it.upcoming = it.ws.NextSibling(h)

	return h, true
}
