package notation

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/cmtalleyrand/counterpoint/logging"
	"github.com/cmtalleyrand/counterpoint/theory"
)

// Voices are the two parsed melodic lines of a piece, in onset order.
type Voices struct {
	Voice1 []theory.Note `json:"voice1"`
	Voice2 []theory.Note `json:"voice2"`
}

// ReadMIDIFile parses a standard MIDI file and returns the first two
// note-bearing tracks as voice 1 and voice 2, with onsets and durations
// converted from ticks to beats.
func ReadMIDIFile(path string) (v *Voices, e error) {
	// the smf reader panics on some malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}

	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing midi file: %w", err)
	}

	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported midi time format %v", s.TimeFormat)
	}
	resolution := float64(ticks.Resolution())

	logger := logging.WithFields(logging.Fields{
		"component": "midi_reader",
		"path":      path,
	})

	var voices [][]theory.Note
	for _, track := range s.Tracks {
		notes := trackNotes(track, resolution)
		if len(notes) == 0 {
			continue
		}
		voices = append(voices, notes)
		if len(voices) == 2 {
			break
		}
	}

	if len(voices) < 2 {
		return nil, fmt.Errorf("need two note-bearing tracks, found %d", len(voices))
	}

	logger.Debug("midi file loaded", logging.Fields{
		"voice1_notes": len(voices[0]),
		"voice2_notes": len(voices[1]),
	})

	return &Voices{Voice1: voices[0], Voice2: voices[1]}, nil
}

// trackNotes extracts the notes of one track, pairing note starts with
// their ends. A re-struck key closes the previous note at the new attack.
func trackNotes(track smf.Track, resolution float64) []theory.Note {
	var notes []theory.Note
	open := make(map[uint8]float64) // key -> onset in beats

	var absTicks int64
	for _, event := range track {
		absTicks += int64(event.Delta)
		beat := float64(absTicks) / resolution

		var channel, key, velocity uint8
		switch {
		case event.Message.GetNoteStart(&channel, &key, &velocity):
			if onset, held := open[key]; held {
				notes = append(notes, makeNote(key, onset, beat))
			}
			open[key] = beat
		case event.Message.GetNoteEnd(&channel, &key):
			if onset, held := open[key]; held {
				notes = append(notes, makeNote(key, onset, beat))
				delete(open, key)
			}
		}
	}

	// close anything still sounding at the end of the track
	endBeat := float64(absTicks) / resolution
	for key, onset := range open {
		notes = append(notes, makeNote(key, onset, endBeat))
	}

	sort.Slice(notes, func(i, j int) bool { return notes[i].Onset < notes[j].Onset })
	return notes
}

func makeNote(key uint8, onset, end float64) theory.Note {
	if end < onset {
		end = onset
	}
	return theory.Note{Pitch: int(key), Onset: onset, Duration: end - onset}
}
