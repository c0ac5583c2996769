package patclass

import (
	"log/slog"
	"slices"
)

// Option configures a Classifier.
type Option func(*options)

type options struct {
	logger *slog.Logger
	verify bool
}

// WithLogger sets the logger used for debug tracing of oracle calls.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithVerify makes the classifier check every oracle answer with
// VerifyCover. A violation turns the whole column into an *Error class.
func WithVerify(on bool) Option {
	return func(o *options) { o.verify = on }
}

// Classifier threads substitutions through a telescope while delegating
// each column to an Oracle. It holds no mutable state and may be shared.
type Classifier[S, A, P, T any] struct {
	oracle Oracle[S, A, P, T]
	logger *slog.Logger
	verify bool
}

// New returns a Classifier over oracle.
func New[S, A, P, T any](oracle Oracle[S, A, P, T], opts ...Option) *Classifier[S, A, P, T] {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return &Classifier[S, A, P, T]{oracle: oracle, logger: o.logger, verify: o.verify}
}

// Classify1 classifies the leading column of rows against param.
func (c *Classifier[S, A, P, T]) Classify1(s S, param A, rows []Row[P], fuel int) []Class[T] {
	if len(rows) == 0 {
		return nil
	}

	var short []int
	ready := make([]Row[P], 0, len(rows))
	for _, r := range rows {
		if len(r.Pats) == 0 {
			short = append(short, r.Index)
			continue
		}
		pats := slices.Clone(r.Pats)
		pats[0] = c.oracle.Normalize(pats[0])
		ready = append(ready, Row[P]{Index: r.Index, Pats: pats})
	}

	var out []Class[T]
	if len(short) > 0 {
		out = append(out, &Error[T]{Problem: ErrShortRow, Clauses: short})
	}
	if len(ready) == 0 {
		return out
	}

	param = c.oracle.SubstParam(s, param)
	classes := c.oracle.Classify1(s, param, ready, fuel)
	c.logger.Debug("classified column", "rows", len(ready), "classes", len(classes), "fuel", fuel)

	if c.verify {
		if err := VerifyCover(ready, classes); err != nil {
			c.logger.Warn("oracle answer rejected", "error", err)
			return append(out, &Error[T]{Problem: err, Clauses: Indices(ready)})
		}
	}
	return append(out, classes...)
}

// ClassifyN classifies rows against the whole telescope, left to right.
// Each resulting *Seq carries one representative term per parameter.
func (c *Classifier[S, A, P, T]) ClassifyN(s S, tele []A, rows []Row[P], fuel int) []Class[T] {
	if len(rows) == 0 {
		return nil
	}
	if len(tele) == 0 {
		return []Class[T]{&Seq[T]{Clauses: Indices(rows)}}
	}

	var out []Class[T]
	for _, cls := range c.Classify1(s, tele[0], rows, fuel) {
		switch cls := cls.(type) {
		case *One[T]:
			// The substitution must know this column before the tail is
			// inspected: later parameter types may mention it.
			next := c.oracle.Extend(s, cls.Term)
			tail := DropAll(Select(rows, cls.Clauses))
			for _, sub := range c.ClassifyN(next, tele[1:], tail, fuel) {
				seq, ok := sub.(*Seq[T])
				if !ok {
					out = append(out, sub)
					continue
				}
				terms := make([]T, 0, len(seq.Terms)+1)
				terms = append(terms, cls.Term)
				terms = append(terms, seq.Terms...)
				out = append(out, &Seq[T]{Terms: terms, Clauses: seq.Clauses})
			}
		case *Error[T], *Refuted[T]:
			out = append(out, cls)
		default:
			out = append(out, &Error[T]{
				Problem: &ContractError{Reason: "oracle returned a non-column class", Index: -1},
				Clauses: cls.Cls(),
			})
		}
	}
	return out
}

// Classify2 splits two columns in lock-step. second builds the second
// parameter from the representative of the first column; it is then
// substituted with the extended substitution like any other parameter.
func (c *Classifier[S, A, P, T]) Classify2(s S, first A, second func(T) A, rows []Row[P], fuel int) []Class[T] {
	var out []Class[T]
	for _, cls := range c.Classify1(s, first, rows, fuel) {
		one, ok := cls.(*One[T])
		if !ok {
			out = append(out, cls)
			continue
		}
		next := c.oracle.Extend(s, one.Term)
		tail := DropAll(Select(rows, one.Clauses))
		for _, sub := range c.Classify1(next, second(one.Term), tail, fuel) {
			inner, ok := sub.(*One[T])
			if !ok {
				out = append(out, sub)
				continue
			}
			out = append(out, &Two[T]{First: one.Term, Second: inner.Term, Clauses: inner.Clauses})
		}
	}
	return out
}
