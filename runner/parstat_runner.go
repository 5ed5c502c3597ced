package runner

import (
	"runtime"
	"sync"
)

// RunParallelStatic partitions shots statically across workers (equal
// counts, no channel handoff) and runs them concurrently.
func (s *Simulator) RunParallelStatic(p Program) (map[string]int, error) {
	shots := s.Shots
	if shots <= 0 {
		shots = 1024
	}
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > shots {
		workers = shots
	}

	per := shots / workers
	extra := shots % workers

	s.log.Info().Int("shots", shots).Int("workers", workers).Msg("runner: Starting RunParallelStatic")

	hist := make(map[string]int, shots)
	var mu sync.Mutex
	errChan := make(chan error, 1)

	wg := sync.WaitGroup{}
	for w := range workers {
		cnt := per
		if w < extra {
			cnt++
		}
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for range n {
				key, err := s.runner.RunOnce(p)
				if err != nil {
					select {
					case errChan <- err:
					default:
					}
					return
				}
				mu.Lock()
				hist[key]++
				mu.Unlock()
			}
		}(cnt)
	}

	wg.Wait()
	close(errChan)

	var firstErr error
	errCount := 0
	for err := range errChan {
		errCount++
		if firstErr == nil {
			firstErr = err
		}
	}

	if errCount > 0 {
		s.log.Warn().Err(firstErr).Int("error_count", errCount).Msgf("runner: Run finished with %d error(s)", errCount)
	} else {
		s.log.Info().Int("shots", shots).Msg("runner: Run finished successfully")
	}

	return hist, firstErr
}
