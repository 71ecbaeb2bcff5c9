package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType represents different sound effects.
type SoundType int

const (
	SoundMove SoundType = iota
	SoundCapture
	SoundCheck
	SoundCastle
	SoundInvalid
	SoundGameEnd
)

const sampleRate = 44100

// envelope shapes a note's amplitude over its progress in [0,1).
type envelope func(t, progress float64) float64

func percussive(t, _ float64) float64 { return math.Exp(-t * 30) }

func linearDecay(_, progress float64) float64 { return 1 - progress }

func attackDecay(_, progress float64) float64 {
	if progress < 0.1 {
		return progress / 0.1
	}
	return 1 - (progress-0.1)/0.9
}

func swell(_, progress float64) float64 {
	switch {
	case progress < 0.1:
		return progress / 0.1
	case progress > 0.7:
		return (1 - progress) / 0.3
	default:
		return 1
	}
}

// note is one synthesized sound: a sum of sine partials under an envelope.
type note struct {
	freqs     []float64
	duration  float64
	amplitude float64
	shape     envelope
	wood      bool // add low noise for a wooden click
	gap       float64
	echo      *note // played after gap seconds of silence
}

var soundBank = map[SoundType]note{
	SoundMove:    {freqs: []float64{440}, duration: 0.08, amplitude: 0.3, shape: percussive, wood: true},
	SoundCapture: {freqs: []float64{330}, duration: 0.12, amplitude: 0.5, shape: percussive, wood: true},
	SoundCheck:   {freqs: []float64{880}, duration: 0.15, amplitude: 0.4, shape: attackDecay},
	SoundCastle: {freqs: []float64{400}, duration: 0.06, amplitude: 0.3, shape: percussive, wood: true,
		gap: 0.05, echo: &note{freqs: []float64{440}, duration: 0.06, amplitude: 0.24, shape: percussive, wood: true}},
	SoundInvalid: {freqs: []float64{150, 300}, duration: 0.1, amplitude: 0.15, shape: linearDecay},
	SoundGameEnd: {freqs: []float64{261.63, 329.63, 392.00}, duration: 0.4, amplitude: 0.5, shape: swell},
}

// render produces 16-bit little-endian stereo PCM for n.
func (n note) render() []byte {
	samples := int(sampleRate * n.duration)
	data := make([]byte, 0, samples*4)
	for i := 0; i < samples; i++ {
		t := float64(i) / sampleRate
		var v float64
		for _, f := range n.freqs {
			v += math.Sin(2 * math.Pi * f * t)
		}
		v /= float64(len(n.freqs))
		if n.wood {
			v += (math.Sin(float64(i)*0.3) + math.Sin(float64(i)*0.7)) * 0.3
		}
		s := int16(math.Max(-1, math.Min(1, v*n.shape(t, t/n.duration)*n.amplitude)) * 32767)
		data = append(data, byte(s), byte(s>>8), byte(s), byte(s>>8))
	}
	if n.echo != nil {
		data = append(data, make([]byte, int(sampleRate*n.gap)*4)...)
		data = append(data, n.echo.render()...)
	}
	return data
}

// AudioManager plays procedurally generated sound effects.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates a new audio manager.
func NewAudioManager(enabled bool, volume float64) *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		sounds:  make(map[SoundType][]byte, len(soundBank)),
		enabled: enabled,
	}
	am.SetVolume(volume)
	for st, n := range soundBank {
		am.sounds[st] = n.render()
	}
	return am
}

// Play plays a sound effect.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}
	data, ok := am.sounds[sound]
	if !ok {
		return
	}
	// One player per call so sounds can overlap.
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// SetVolume sets the audio volume (0.0 to 1.0).
func (am *AudioManager) SetVolume(volume float64) {
	am.volume = math.Max(0, math.Min(1, volume))
}

// IsEnabled returns whether audio is enabled.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
