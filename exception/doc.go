// Package exception turns errors raised while handling a request into
// normalized error records.
//
// A Handler is built once at startup from an explicit Settings value. For
// each error it first converts well-known host errors (missing rows,
// constraint violations, validator failures, token errors, malformed JSON)
// into typed application errors, then builds a Record with a canonical
// code, an error type, the offending field and an HTTP status. Errors that
// are not recognized are returned unchanged so the host can fall back to a
// generic 500.
//
//	h, err := exception.New(cfg.Exceptions, exception.WithLogger(log))
//	rec, err := h.Handle(ctx, failure, exception.RequestContextFrom(r))
//	if err != nil {
//	    // unrecognized: propagate
//	}
package exception
