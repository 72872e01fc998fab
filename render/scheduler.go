package render

import (
	"sync"
)

// rowScheduler hands out the rows [next, end) one at a time to any number
// of workers. Rows are popped in ascending order but may finish in any order.
type rowScheduler struct {
	m    sync.Mutex
	next int
	end  int
}

func newRowScheduler(y0, y1 int) *rowScheduler {
	return &rowScheduler{next: y0, end: y1}
}

func (s *rowScheduler) popRow() (y int, found bool) {
	s.m.Lock()
	defer s.m.Unlock()

	if s.next >= s.end {
		return 0, false
	}
	y = s.next
	s.next++
	return y, true
}

// run starts workers goroutines that call job for every row until the
// scheduler is drained, and waits for them.
func (s *rowScheduler) run(workers int, job func(y int)) {
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for {
				y, found := s.popRow()
				if !found {
					return
				}
				job(y)
			}
		}()
	}
	wg.Wait()
}
