package analytics

import (
	"context"
	"errors"
)

// Multi fans an event out to every sink. All sinks are called; their
// errors are joined.
func Multi(sinks ...Sink) Sink {
	clean := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			clean = append(clean, s)
		}
	}
	return multi(clean)
}

type multi []Sink

func (m multi) Track(ctx context.Context, e Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Track(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
