// Package audio plays workout music. Player is the facade the session
// controller drives from workout events; the beep backend shuffles a local
// playlist through the system speaker.
package audio

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output is where decoded audio goes. The speaker package satisfies it.
type Output interface {
	Play(streamer beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

type speakerOutput struct{}

// NewSpeakerOutput initialises the system speaker for format.
func NewSpeakerOutput(format beep.Format) (Output, error) {
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return speakerOutput{}, nil
}

func (speakerOutput) Play(streamer beep.Streamer) { speaker.Play(streamer) }
func (speakerOutput) Clear()                      { speaker.Clear() }
func (speakerOutput) Lock()                       { speaker.Lock() }
func (speakerOutput) Unlock()                     { speaker.Unlock() }

type playerState int

const (
	stateStopped playerState = iota
	statePlaying
	statePaused
)

// BeepPlayer plays a shuffled playlist on repeat.
type BeepPlayer struct {
	mu     sync.Mutex
	tracks []*beep.Buffer
	out    Output
	rng    *rand.Rand
	ctrl   *beep.Ctrl
	state  playerState
}

// NewBeepPlayer creates a player for tracks. With no tracks or no output
// every call is a no-op.
func NewBeepPlayer(tracks []*beep.Buffer, out Output) *BeepPlayer {
	return &BeepPlayer{
		tracks: tracks,
		out:    out,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Play starts the playlist from a fresh shuffle.
func (player *BeepPlayer) Play() {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.playLocked()
}

// Pause holds playback at the current position.
func (player *BeepPlayer) Pause() {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.state != statePlaying {
		return
	}
	player.setPausedLocked(true)
	player.state = statePaused
}

// Resume continues paused playback, or starts it if nothing is playing.
func (player *BeepPlayer) Resume() {
	player.mu.Lock()
	defer player.mu.Unlock()
	switch player.state {
	case stateStopped:
		player.playLocked()
	case statePaused:
		player.setPausedLocked(false)
		player.state = statePlaying
	}
}

// Stop drops the playlist; the next Play or Resume reshuffles.
func (player *BeepPlayer) Stop() {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.state == stateStopped {
		return
	}
	player.out.Clear()
	player.ctrl = nil
	player.state = stateStopped
}

// Toggle starts, pauses or resumes depending on the current state.
func (player *BeepPlayer) Toggle() {
	player.mu.Lock()
	defer player.mu.Unlock()
	switch player.state {
	case stateStopped:
		player.playLocked()
	case statePlaying:
		player.setPausedLocked(true)
		player.state = statePaused
	case statePaused:
		player.setPausedLocked(false)
		player.state = statePlaying
	}
}

// Load swaps the playlist and output. Anything playing is stopped first.
func (player *BeepPlayer) Load(tracks []*beep.Buffer, out Output) {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.state != stateStopped && player.out != nil {
		player.out.Clear()
	}
	player.tracks = tracks
	player.out = out
	player.ctrl = nil
	player.state = stateStopped
}

// Playing reports whether music is audible.
func (player *BeepPlayer) Playing() bool {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.state == statePlaying
}

func (player *BeepPlayer) playLocked() {
	if len(player.tracks) == 0 || player.out == nil {
		log.Printf("audio: no playlist loaded, ignoring play")
		return
	}
	if player.state != stateStopped {
		player.out.Clear()
	}

	player.ctrl = &beep.Ctrl{Streamer: player.playlist()}
	player.out.Play(player.ctrl)
	player.state = statePlaying
}

func (player *BeepPlayer) setPausedLocked(paused bool) {
	if player.ctrl == nil {
		return
	}
	player.out.Lock()
	player.ctrl.Paused = paused
	player.out.Unlock()
}

// playlist cycles through every track once per shuffle, forever.
func (player *BeepPlayer) playlist() beep.Streamer {
	order := player.rng.Perm(len(player.tracks))
	position := 0
	return beep.Iterate(func() beep.Streamer {
		if position == len(order) {
			order = player.rng.Perm(len(player.tracks))
			position = 0
		}
		track := player.tracks[order[position]]
		position++
		return track.Streamer(0, track.Len())
	})
}
