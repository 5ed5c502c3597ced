package runner

import (
	"fmt"
	"sync"
)

// RunParallelChan fans shots out over a job channel consumed by
// s.Workers goroutines, returning a result histogram.
func (s *Simulator) RunParallelChan(p Program) (map[string]int, error) {
	s.log.Info().Int("shots", s.Shots).Int("workers", s.Workers).Msg("runner: Starting RunParallelChan")

	hist := make(map[string]int)
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	errChan := make(chan error, s.Workers)

	jobs := make(chan struct{}, s.Shots)
	for range s.Shots {
		jobs <- struct{}{}
	}
	close(jobs)

	for wid := range s.Workers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			var workerErr error

			for range jobs {
				if workerErr != nil {
					continue
				}
				key, err := s.runner.RunOnce(p)
				if err != nil {
					workerErr = fmt.Errorf("worker %d failed: %w", id, err)
					s.log.Error().Err(workerErr).Int("worker_id", id).Msg("runner: Shot failed")
					continue
				}
				mu.Lock()
				hist[key]++
				mu.Unlock()
			}

			if workerErr != nil {
				select {
				case errChan <- workerErr:
				default:
					s.log.Warn().Err(workerErr).Int("worker_id", id).Msg("runner: Worker failed to send error (channel full?)")
				}
			}
		}(wid)
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
		s.log.Info().Int("shots", s.Shots).Msg("runner: RunParallelChan finished successfully")
	}

	return hist, firstErr
}
