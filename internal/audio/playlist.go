package audio

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

const resampleQuality = 4

// ErrEmptyPlaylist is returned when a music folder has no playable files.
var ErrEmptyPlaylist = errors.New("no playable tracks")

// LoadPlaylist decodes every .ogg and .wav file in dir into memory. All
// tracks are resampled to the format of the first one.
func LoadPlaylist(dir string) ([]*beep.Buffer, beep.Format, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("read music folder: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".ogg", ".wav":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var (
		tracks []*beep.Buffer
		format beep.Format
	)
	for _, name := range names {
		path := filepath.Join(dir, name)
		streamer, trackFormat, err := decodeFile(path)
		if err != nil {
			log.Printf("audio: skipping %s: %v", path, err)
			continue
		}

		if len(tracks) == 0 {
			format = trackFormat
		}
		buffer := beep.NewBuffer(format)
		if trackFormat.SampleRate != format.SampleRate {
			buffer.Append(beep.Resample(resampleQuality, trackFormat.SampleRate, format.SampleRate, streamer))
		} else {
			buffer.Append(streamer)
		}
		streamer.Close()
		tracks = append(tracks, buffer)
	}

	if len(tracks) == 0 {
		return nil, beep.Format{}, fmt.Errorf("%w in %s", ErrEmptyPlaylist, dir)
	}
	return tracks, format, nil
}

func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(file)
	default:
		streamer, format, err = wav.Decode(file)
	}
	if err != nil {
		file.Close()
		return nil, beep.Format{}, fmt.Errorf("decode: %w", err)
	}
	return streamer, format, nil
}
