// Package trackers implements Trackers, which track and save data in an
// experiment
package trackers

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/samuelfneumann/gridqn/agent"
)

// Tracker keeps track of per-episode experiment data and saves the
// data after the experiment has finished
type Tracker interface {
	Track(ep agent.Episode)
	Data() []float64
	Save() error
}

// LoadData loads and returns the data saved by a Tracker
func LoadData(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loaddata: could not open data file: %w", err)
	}
	defer file.Close()

	var data []float64
	if err := gob.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("loaddata: could not decode data: %w", err)
	}
	return data, nil
}

// save gob encodes data to filename
func save(filename string, data []float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %w", err)
	}

	if err := gob.NewEncoder(file).Encode(data); err != nil {
		file.Close()
		return fmt.Errorf("save: could not encode data: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("save: could not close save file: %w", err)
	}
	return nil
}

// episodic implements a Tracker which records one value per episode
type episodic struct {
	data     []float64
	filename string
	extract  func(agent.Episode) float64
}

func newEpisodic(filename string,
	extract func(agent.Episode) float64) *episodic {
	return &episodic{
		data:     []float64{},
		filename: filename,
		extract:  extract,
	}
}

// Track records the tracked value of an episode
func (e *episodic) Track(ep agent.Episode) {
	e.data = append(e.data, e.extract(ep))
}

// Data returns the values tracked so far, one per episode
func (e *episodic) Data() []float64 {
	return e.data
}

// Save saves the tracked data to disk
func (e *episodic) Save() error {
	return save(e.filename, e.data)
}
