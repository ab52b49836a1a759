package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFormat = beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}

type fakeOutput struct {
	played []beep.Streamer
	clears int
	locks  int
}

func (out *fakeOutput) Play(streamer beep.Streamer) { out.played = append(out.played, streamer) }
func (out *fakeOutput) Clear()                      { out.clears++ }
func (out *fakeOutput) Lock()                       { out.locks++ }
func (out *fakeOutput) Unlock()                     {}

func silentTrack(samples int) *beep.Buffer {
	buffer := beep.NewBuffer(testFormat)
	buffer.Append(beep.Silence(samples))
	return buffer
}

func TestToggleCyclesPlayPauseResume(t *testing.T) {
	out := &fakeOutput{}
	player := NewBeepPlayer([]*beep.Buffer{silentTrack(10)}, out)

	player.Toggle()
	require.Len(t, out.played, 1)
	assert.True(t, player.Playing())

	player.Toggle()
	assert.False(t, player.Playing())
	assert.True(t, player.ctrl.Paused)

	player.Toggle()
	assert.True(t, player.Playing())
	assert.False(t, player.ctrl.Paused)
	assert.Len(t, out.played, 1)
}

func TestResumeStartsStoppedPlayer(t *testing.T) {
	out := &fakeOutput{}
	player := NewBeepPlayer([]*beep.Buffer{silentTrack(10)}, out)

	player.Resume()
	assert.True(t, player.Playing())
	assert.Len(t, out.played, 1)

	player.Pause()
	player.Pause()
	assert.False(t, player.Playing())

	player.Resume()
	assert.True(t, player.Playing())
	assert.Len(t, out.played, 1)
}

func TestStopClearsAndReshuffles(t *testing.T) {
	out := &fakeOutput{}
	player := NewBeepPlayer([]*beep.Buffer{silentTrack(10), silentTrack(20)}, out)

	player.Play()
	player.Stop()
	player.Stop()
	assert.Equal(t, 1, out.clears)
	assert.False(t, player.Playing())
	assert.Nil(t, player.ctrl)

	player.Toggle()
	assert.Len(t, out.played, 2)
	assert.True(t, player.Playing())
}

func TestPlayWhilePlayingRestarts(t *testing.T) {
	out := &fakeOutput{}
	player := NewBeepPlayer([]*beep.Buffer{silentTrack(10)}, out)

	player.Play()
	player.Play()
	assert.Equal(t, 1, out.clears)
	assert.Len(t, out.played, 2)
}

func TestPlayerWithoutTracksIsSilent(t *testing.T) {
	out := &fakeOutput{}
	player := NewBeepPlayer(nil, out)

	player.Play()
	player.Toggle()
	player.Resume()
	player.Pause()
	player.Stop()

	assert.Empty(t, out.played)
	assert.False(t, player.Playing())

	NewBeepPlayer([]*beep.Buffer{silentTrack(1)}, nil).Toggle()
}

func TestLoadSwapsPlaylist(t *testing.T) {
	first := &fakeOutput{}
	player := NewBeepPlayer(nil, nil)
	player.Load([]*beep.Buffer{silentTrack(10)}, first)
	player.Resume()
	assert.True(t, player.Playing())

	second := &fakeOutput{}
	player.Load([]*beep.Buffer{silentTrack(20)}, second)
	assert.Equal(t, 1, first.clears)
	assert.False(t, player.Playing())

	player.Resume()
	assert.Len(t, first.played, 1)
	assert.Len(t, second.played, 1)
}

func TestPlaylistLoopsAcrossTracks(t *testing.T) {
	out := &fakeOutput{}
	player := NewBeepPlayer([]*beep.Buffer{silentTrack(3), silentTrack(5)}, out)
	player.Play()
	require.Len(t, out.played, 1)

	samples := make([][2]float64, 64)
	n, ok := out.played[0].Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, len(samples), n)
}

func TestLoadPlaylist(t *testing.T) {
	dir := t.TempDir()
	writeWav(t, filepath.Join(dir, "b.wav"), 200)
	writeWav(t, filepath.Join(dir, "a.WAV"), 100)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not audio"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.wav"), []byte("RIFF"), 0o644))

	tracks, format, err := LoadPlaylist(dir)
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, testFormat.SampleRate, format.SampleRate)
	assert.Equal(t, 100, tracks[0].Len())
	assert.Equal(t, 200, tracks[1].Len())
}

func TestLoadPlaylistEmptyFolder(t *testing.T) {
	_, _, err := LoadPlaylist(t.TempDir())
	assert.ErrorIs(t, err, ErrEmptyPlaylist)

	_, _, err = LoadPlaylist(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func writeWav(t *testing.T, path string, samples int) {
	t.Helper()
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, wav.Encode(file, beep.Silence(samples), testFormat))
}
