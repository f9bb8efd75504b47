package breedpatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/fastbreeding/breedpatch/source"
)

// Job is one source to compile in a run.
type Job struct {
	// Name identifies the job in logs and errors, usually the source path.
	Name    string
	Open    func() (source.Reader, error)
	Options Options
}

// JobError is the failure of one job of a run.
type JobError struct {
	Name string
	Err  error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *JobError) Unwrap() error {
	return e.Err
}

// Run compiles jobs one after the other and passes each result to emit
// before starting the next. A job that fails is logged and recorded and the
// run goes on; the failures are returned joined. An error from emit or a
// canceled ctx stops the run.
func (c *Compiler) Run(ctx context.Context, jobs []Job, emit func(*Result) error) error {
	var errs []error
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		res, err := c.runJob(ctx, job)
		if err != nil {
			if ctx.Err() != nil {
				return errors.Join(append(errs, err)...)
			}
			c.log.Error("could not compile", "source", job.Name, "error", err)
			errs = append(errs, &JobError{Name: job.Name, Err: err})
			continue
		}
		if err := emit(res); err != nil {
			return errors.Join(append(errs, fmt.Errorf("%s: %w", job.Name, err))...)
		}
	}
	return errors.Join(errs...)
}

func (c *Compiler) runJob(ctx context.Context, job Job) (res *Result, err error) {
	r, err := job.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return c.Compile(ctx, r, job.Options)
}
