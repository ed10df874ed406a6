package display

import (
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// PlayBeeps reads beepPath once, decodes it, and plays it each time a value
// arrives on events. The teacher's VM bridged its sound timer to audio the
// same way (ManageAudio consuming vm.audioChan); here the Runtime's caller
// is responsible for sending on events whenever ST transitions through 1,
// keeping the audio concern out of the opcode executor entirely.
func PlayBeeps(beepPath string, events <-chan struct{}) error {
	f, err := os.Open(beepPath)
	if err != nil {
		return err
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		return err
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return err
	}

	// Buffer the decoded sound so every event plays it from the start; the
	// decoded streamer itself is exhausted after one play.
	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	for range events {
		speaker.Play(buffer.Streamer(0, buffer.Len()))
	}
	return nil
}
