// Package audio plays the short feedback sounds for finished or
// failed operations. Playback failures are logged and swallowed: a
// missing audio device must never break patching.
package audio

import (
	"bytes"
	_ "embed"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/rs/zerolog/log"
)

//go:embed sounds/success.wav
var successSound []byte

//go:embed sounds/fail.wav
var failSound []byte

var (
	speakerOnce  sync.Once
	speakerReady bool
	enabled      bool
)

// Init enables or disables feedback sounds for the process.
func Init(soundsEnabled bool) {
	enabled = soundsEnabled
}

// Enabled reports whether feedback sounds are currently on.
func Enabled() bool {
	return enabled
}

func ensureSpeakerInitialized(format beep.Format) {
	speakerOnce.Do(func() {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			log.Debug().Err(err).Msg("audio unavailable")
			return
		}
		speakerReady = true
	})
}

// Success plays the completion sound.
func Success() {
	play(successSound)
}

// Failure plays the error sound.
func Failure() {
	play(failSound)
}

// play decodes and plays a WAV, blocking until it finishes so the
// process does not exit mid-sound.
func play(soundData []byte) {
	if !enabled || len(soundData) == 0 {
		return
	}

	streamer, format, err := wav.Decode(bytes.NewReader(soundData))
	if err != nil {
		log.Debug().Err(err).Msg("sound could not be decoded")
		return
	}
	defer func() {
		_ = streamer.Close()
	}()

	ensureSpeakerInitialized(format)
	if !speakerReady {
		return
	}

	done := make(chan bool)
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		done <- true
	})))
	<-done
}
