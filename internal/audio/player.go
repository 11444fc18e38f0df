package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/rs/zerolog"
)

// Source opens the WAV data to play.
type Source func() (io.ReadCloser, error)

// BytesSource serves WAV data held in memory.
func BytesSource(data []byte) Source {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
}

// FileSource reads WAV data from path.
func FileSource(path string) Source {
	return func() (io.ReadCloser, error) {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open sound file: %w", err)
		}
		return file, nil
	}
}

// Player plays the notification sound through the system speaker.
//
// The sound is decoded and the speaker initialised on the first Play.
type Player struct {
	mu      sync.Mutex
	source  Source
	volume  float64
	logger  zerolog.Logger
	buffer  *beep.Buffer
	ready   bool
	initErr error
}

// NewPlayer creates a player. Volume is a base-2 exponent; 0 keeps the original level.
func NewPlayer(source Source, volume float64, logger zerolog.Logger) *Player {
	return &Player{
		source: source,
		volume: volume,
		logger: logger.With().Str("component", "audio").Logger(),
	}
}

// Play starts the sound and returns without waiting for it to finish.
func (player *Player) Play() error {
	player.mu.Lock()
	defer player.mu.Unlock()

	if err := player.prepareLocked(); err != nil {
		return err
	}
	streamer := player.buffer.Streamer(0, player.buffer.Len())
	speaker.Play(&effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   player.volume,
		Silent:   false,
	})
	player.logger.Debug().Msg("notification sound played")
	return nil
}

// PlayAsync plays on a separate goroutine and reports the outcome to done.
func (player *Player) PlayAsync(done func(error)) {
	go func() {
		err := player.Play()
		if err != nil {
			player.logger.Warn().Err(err).Msg("play notification sound")
		}
		if done != nil {
			done(err)
		}
	}()
}

func (player *Player) prepareLocked() error {
	if player.ready {
		return nil
	}
	if player.initErr != nil {
		return player.initErr
	}

	buffer, format, err := decode(player.source)
	if err != nil {
		return err
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		player.initErr = fmt.Errorf("init speaker: %w", err)
		return player.initErr
	}
	player.buffer = buffer
	player.ready = true
	return nil
}

func decode(source Source) (*beep.Buffer, beep.Format, error) {
	reader, err := source()
	if err != nil {
		return nil, beep.Format{}, err
	}

	streamer, format, err := wav.Decode(reader)
	if err != nil {
		_ = reader.Close()
		return nil, beep.Format{}, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, format, nil
}
