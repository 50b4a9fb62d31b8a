package windowstate

import (
	"fmt"
	"log/slog"

	"github.com/Norgate-AV/wintools/internal/apperr"
	"github.com/Norgate-AV/wintools/internal/interfaces"
	"github.com/Norgate-AV/wintools/internal/jsonout"
	"github.com/Norgate-AV/wintools/internal/logger"
)

// Result is the outcome of a run.
type Result struct {
	// Query is set when the run described windows; Descriptors then holds
	// one encoded object per visited target.
	Query       bool
	Descriptors []string

	Visited  int
	Failures []error
}

// JSON renders the query output line without the trailing newline.
func (r *Result) JSON() string {
	return jsonout.Array(r.Descriptors)
}

// Executor walks the targets selected by a request.
type Executor struct {
	windows interfaces.WindowSystem
	procs   interfaces.ProcessResolver
	log     logger.LoggerInterface
}

// NewExecutor creates an executor. procs may be nil, in which case
// descriptors carry no executable path.
func NewExecutor(windows interfaces.WindowSystem, procs interfaces.ProcessResolver, log logger.LoggerInterface) *Executor {
	return &Executor{windows: windows, procs: procs, log: log}
}

// Run resolves the first target, iterates the chain and applies or
// describes each target. Explicit handle lists are strict: any failure
// aborts. Chain and foreground walks are lenient unless req.Strict is set.
func (e *Executor) Run(req Request) (*Result, error) {
	res := &Result{Query: req.Query()}

	it := newIterator(e.windows, req.Filter, e.log)
	strict := req.Strict || req.Filter.Kind == FilterHandle
	once := newPending(req.Actions)

	for {
		h, ok, err := it.advance()
		if err != nil {
			return nil, err
		}

		if !ok {
			break
		}

		res.Visited++

		if res.Query {
			res.Descriptors = append(res.Descriptors, e.describe(h))
			continue
		}

		if req.Filter.Kind == FilterHandle && !e.windows.IsWindow(h) {
			return nil, apperr.New(apperr.KindTargetNotFound, "target handle %d was not found", h)
		}

		for _, err := range e.apply(h, req.Actions, once) {
			if strict {
				return nil, fmt.Errorf("applying actions to %d: %w", h, err)
			}

			e.log.Warn("Action failed", slog.Int64("hwnd", int64(h)), slog.Any("error", err))
			res.Failures = append(res.Failures, err)
		}
	}

	if !res.Query {
		summary := e.log.Debug
		if len(res.Failures) > 0 {
			summary = e.log.Warn
		}

		summary("Actions applied",
			slog.String("filter", req.Filter.Kind.String()),
			slog.Int("targets", res.Visited),
			slog.Int("failures", len(res.Failures)),
		)
	}

	return res, nil
}

func (e *Executor) describe(h interfaces.Handle) string {
	if !e.windows.IsWindow(h) {
		e.log.Debug("Window vanished before it could be described", slog.Int64("hwnd", int64(h)))
		return NotFound(h)
	}

	return Collect(e.windows, e.procs, e.log, h).Encode()
}

// pending tracks the first-match actions: once set-foreground or
// bring-to-top succeeds on one target it is not repeated.
type pending struct {
	foreground bool
	bringToTop bool
}

func newPending(a Actions) *pending {
	return &pending{foreground: a.SetForeground, bringToTop: a.BringToTop != BringNone}
}

// apply runs the actions on h in fixed order: foreground, show state,
// position/size, z-order. Every failing OS call is reported.
func (e *Executor) apply(h interfaces.Handle, a Actions, p *pending) []error {
	var errs []error

	if p.foreground {
		e.log.Trace("SetForeground", slog.Int64("hwnd", int64(h)))

		if err := e.windows.SetForeground(h); err != nil {
			errs = append(errs, apperr.OSFailure("SetForegroundWindow", int64(h), err))
		} else {
			p.foreground = false
		}
	}

	if cmd, ok := a.ShowCommand(); ok {
		wasVisible := e.windows.ShowWindow(h, cmd)
		e.log.Trace("ShowWindow",
			slog.Int64("hwnd", int64(h)),
			slog.Int("cmd", int(cmd)),
			slog.Bool("wasVisible", wasVisible))
	}

	if flags, ok := a.PositionFlags(); ok {
		e.log.Trace("SetWindowPos",
			slog.Int64("hwnd", int64(h)),
			slog.Uint64("flags", uint64(flags)))

		if err := e.windows.SetWindowPos(h, HWND_TOP, a.X, a.Y, a.Width, a.Height, flags); err != nil {
			errs = append(errs, apperr.OSFailure("SetWindowPos", int64(h), err))
		}
	}

	if p.bringToTop {
		insertAfter := interfaces.Handle(HWND_TOP)
		if a.BringToTop == BringTopMost {
			insertAfter = HWND_TOPMOST
		}

		if err := e.windows.SetWindowPos(h, insertAfter, 0, 0, 0, 0, SWP_NOMOVE|SWP_NOSIZE); err != nil {
			errs = append(errs, apperr.OSFailure("SetWindowPos", int64(h), err))
		} else {
			p.bringToTop = false
		}
	}

	return errs
}
