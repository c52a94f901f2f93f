package automatic

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// AnalyzeLog reads a game log written by PlayGames and summarizes it.
func AnalyzeLog(r io.Reader) (*Summary, error) {
	dec := yaml.NewDecoder(r)
	summary := NewSummary()
	for {
		var res GameResult
		err := dec.Decode(&res)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		summary.Add(res)
	}
	return summary, nil
}
