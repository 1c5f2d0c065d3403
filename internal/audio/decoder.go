package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"path"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// ErrDecodeFailure is returned when a source cannot be read or decoded.
var ErrDecodeFailure = errors.New("unable to decode audio")

// PCM is decoded mono audio.
type PCM struct {
	Samples    []float64
	SampleRate int
	Sum        string // Hash of the encoded bytes
}

type Decoder interface {
	Decode(ctx context.Context, src Source) (*PCM, error)
}

type Format int

const (
	Unknown Format = iota
	WAV
	Vorbis
	MP3
)

const resampleQuality = 4

// DefaultDecoder decodes wav, ogg vorbis and mp3 with beep, keeping only the
// first channel and resampling to SampleRate when it is non zero.
type DefaultDecoder struct {
	SampleRate int
}

// Sniff guesses the container from magic bytes, then from the file extension.
func Sniff(data []byte, name string) Format {
	switch {
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return WAV
	case len(data) >= 4 && string(data[0:4]) == "OggS":
		return Vorbis
	case len(data) >= 3 && string(data[0:3]) == "ID3":
		return MP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return MP3
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".wav":
		return WAV
	case ".ogg":
		return Vorbis
	case ".mp3":
		return MP3
	}
	return Unknown
}

func (d *DefaultDecoder) Decode(ctx context.Context, src Source) (*PCM, error) {
	data, err := src.Read(ctx)
	if nil != err {
		return nil, fmt.Errorf("%w: %v: %v", ErrDecodeFailure, src, err)
	}

	streamer, format, err := Open(data, src.Name)
	if nil != err {
		return nil, fmt.Errorf("%w: %v: %v", ErrDecodeFailure, src, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	rate := int(format.SampleRate)
	if d.SampleRate > 0 && d.SampleRate != rate {
		s = beep.Resample(resampleQuality, format.SampleRate, beep.SampleRate(d.SampleRate), streamer)
		rate = d.SampleRate
	}

	samples, err := readFirstChannel(ctx, s)
	if nil != err {
		return nil, fmt.Errorf("%w: %v: %v", ErrDecodeFailure, src, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %v: no samples", ErrDecodeFailure, src)
	}

	return &PCM{Samples: samples, SampleRate: rate, Sum: Sum(data)}, nil
}

// Open returns a stream of the encoded audio in data at its own sample rate.
func Open(data []byte, name string) (beep.StreamSeekCloser, beep.Format, error) {
	rc := ioutil.NopCloser(bytes.NewReader(data))
	switch Sniff(data, name) {
	case WAV:
		return wav.Decode(rc)
	case Vorbis:
		return vorbis.Decode(rc)
	case MP3:
		return mp3.Decode(rc)
	}
	return nil, beep.Format{}, errors.New("unrecognised format")
}

func readFirstChannel(ctx context.Context, s beep.Streamer) ([]float64, error) {
	samples := []float64{}
	buf := make([][2]float64, 4096)
	for {
		if err := ctx.Err(); nil != err {
			return nil, err
		}
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			samples = append(samples, frame[0])
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); nil != err && err != io.EOF {
		return nil, err
	}
	return samples, nil
}
