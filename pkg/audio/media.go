package audio

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/wav"
)

// MinAudioSize is the smallest payload accepted as synthesized speech.
// Anything shorter is almost always an error body or an empty stream.
const MinAudioSize = 1024

// Supported container formats.
const (
	FormatMP3 = "mp3"
	FormatWAV = "wav"
)

// ErrTooShort is returned for payloads below MinAudioSize.
var ErrTooShort = errors.New("audio payload too short")

// Info describes a decoded audio payload.
type Info struct {
	Format   string
	Duration time.Duration
	Rate     int
}

// byteSource lets the decoders seek so stream length is known up front.
type byteSource struct {
	*bytes.Reader
}

func (byteSource) Close() error { return nil }

// SniffFormat guesses the container format from the leading bytes.
func SniffFormat(data []byte) string {
	if len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE" {
		return FormatWAV
	}
	return FormatMP3
}

// Decode opens an in-memory MP3 or WAV payload for streaming.
func Decode(data []byte) (beep.StreamSeekCloser, beep.Format, string, error) {
	if len(data) < MinAudioSize {
		return nil, beep.Format{}, "", fmt.Errorf("%w: %d bytes", ErrTooShort, len(data))
	}

	src := byteSource{bytes.NewReader(data)}
	switch SniffFormat(data) {
	case FormatWAV:
		s, f, err := wav.Decode(src)
		if err != nil {
			return nil, beep.Format{}, "", fmt.Errorf("wav decode: %w", err)
		}
		return s, f, FormatWAV, nil
	default:
		s, f, err := mp3.Decode(src)
		if err != nil {
			return nil, beep.Format{}, "", fmt.Errorf("mp3 decode: %w", err)
		}
		return s, f, FormatMP3, nil
	}
}

// Probe validates that data is playable audio and reports its format and length.
func Probe(data []byte) (Info, error) {
	s, f, format, err := Decode(data)
	if err != nil {
		return Info{}, err
	}
	defer s.Close()

	n := s.Len()
	if n <= 0 {
		return Info{}, fmt.Errorf("%s stream has no samples", format)
	}
	return Info{
		Format:   format,
		Duration: f.SampleRate.D(n),
		Rate:     int(f.SampleRate),
	}, nil
}
