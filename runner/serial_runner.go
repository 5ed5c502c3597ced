package runner

import "fmt"

// RunSerial executes the program serially (one shot after another) and
// returns a histogram mapping result keys to counts.
func (s *Simulator) RunSerial(p Program) (map[string]int, error) {
	s.log.Info().Int("shots", s.Shots).Msg("runner: Starting RunSerial")

	hist := make(map[string]int)
	for i := range s.Shots {
		key, err := s.runner.RunOnce(p)
		if err != nil {
			err = fmt.Errorf("shot %d failed: %w", i+1, err)
			s.log.Error().Err(err).Int("shot", i+1).Msg("runner: Serial shot failed")
			return hist, err
		}
		hist[key]++
	}

	s.log.Info().Int("shots", s.Shots).Msg("runner: RunSerial finished successfully")
	return hist, nil
}
