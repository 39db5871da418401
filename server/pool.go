package server

import (
	"errors"
	"fmt"

	"github.com/panjf2000/ants/v2"
)

// searchPool bounds the number of searches running at once. Callers block
// until their task has finished.
type searchPool struct {
	pool *ants.Pool
}

// newSearchPool creates a pool of workers goroutines. Up to queued callers
// may wait for a free worker; with queued == 0 a busy pool rejects at once.
func newSearchPool(workers, queued int) (*searchPool, error) {
	if workers < 1 {
		workers = 1
	}

	var opts []ants.Option
	if queued > 0 {
		opts = append(opts, ants.WithMaxBlockingTasks(queued))
	} else {
		opts = append(opts, ants.WithNonblocking(true))
	}

	pool, err := ants.NewPool(workers, opts...)
	if err != nil {
		return nil, err
	}
	return &searchPool{pool: pool}, nil
}

// Do runs task on a pool worker and waits for it. A panic inside task is
// re-raised on the calling goroutine.
func (p *searchPool) Do(task func()) error {
	var panicked any
	done := make(chan struct{})

	err := p.pool.Submit(func() {
		defer close(done)
		defer func() {
			panicked = recover()
		}()
		task()
	})
	if err != nil {
		if errors.Is(err, ants.ErrPoolOverload) || errors.Is(err, ants.ErrPoolClosed) {
			return fmt.Errorf("%w: %w", ErrServerBusy, err)
		}
		return err
	}

	<-done
	if panicked != nil {
		panic(panicked)
	}
	return nil
}

func (p *searchPool) Running() int {
	return p.pool.Running()
}

func (p *searchPool) Release() {
	p.pool.Release()
}
