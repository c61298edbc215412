package notify

import (
	"fmt"
	"math"
	"time"

	"github.com/jfreymuth/pulse"
)

type cueKind int

const (
	cueStart cueKind = iota + 1
	cueStop
	cueComplete
	cueCancel
)

const (
	cueSampleRate = 16000
	cueVolume     = 0.2
	cueGap        = 20 * time.Millisecond
)

type tone struct {
	hz  float64
	dur time.Duration
}

// Cues are short sine sweeps: rising for start, falling for cancel, a single
// mid tone for stop, and a small major third for completion.
var cuePCM = map[cueKind][]int16{
	cueStart:    renderCue(tone{hz: 784, dur: 70 * time.Millisecond}, tone{hz: 1047, dur: 80 * time.Millisecond}),
	cueStop:     renderCue(tone{hz: 587, dur: 110 * time.Millisecond}),
	cueComplete: renderCue(tone{hz: 659, dur: 60 * time.Millisecond}, tone{hz: 831, dur: 90 * time.Millisecond}),
	cueCancel:   renderCue(tone{hz: 523, dur: 70 * time.Millisecond}, tone{hz: 392, dur: 90 * time.Millisecond}),
}

// emitCue plays the synthesized PCM for kind through the pulse server.
func emitCue(kind cueKind) error {
	samples := cueSamples(kind)
	if len(samples) == 0 {
		return nil
	}

	client, err := pulse.NewClient(
		pulse.ClientApplicationName(appName),
		pulse.ClientApplicationIconName("audio-input-microphone"),
	)
	if err != nil {
		return fmt.Errorf("connect pulse server: %w", err)
	}
	defer client.Close()

	cursor := 0
	reader := pulse.Int16Reader(func(buf []int16) (int, error) {
		if cursor >= len(samples) {
			return 0, pulse.EndOfData
		}
		n := copy(buf, samples[cursor:])
		cursor += n
		if cursor >= len(samples) {
			return n, pulse.EndOfData
		}
		return n, nil
	})

	stream, err := client.NewPlayback(
		reader,
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(cueSampleRate),
		pulse.PlaybackLatency(0.02),
		pulse.PlaybackMediaName("voice-transcriber cue"),
	)
	if err != nil {
		return fmt.Errorf("create pulse playback stream: %w", err)
	}
	defer stream.Close()

	stream.Start()
	stream.Drain()
	if err := stream.Error(); err != nil {
		return fmt.Errorf("play cue stream: %w", err)
	}
	return nil
}

func cueSamples(kind cueKind) []int16 {
	return cuePCM[kind]
}

// renderCue concatenates tones with short silent gaps between them.
func renderCue(tones ...tone) []int16 {
	if len(tones) == 0 {
		return nil
	}

	gap := sampleCount(cueGap)
	var pcm []int16
	for i, t := range tones {
		if i > 0 && gap > 0 {
			pcm = append(pcm, make([]int16, gap)...)
		}
		pcm = append(pcm, renderTone(t)...)
	}
	return pcm
}

// renderTone synthesizes one sine tone with a short attack/release ramp to
// avoid clicks at the edges.
func renderTone(t tone) []int16 {
	n := sampleCount(t.dur)
	if n <= 0 || t.hz <= 0 {
		return nil
	}

	ramp := n / 10
	if max := cueSampleRate / 200; ramp > max { // cap ramp at 5ms
		ramp = max
	}
	if ramp < 1 {
		ramp = 1
	}

	pcm := make([]int16, n)
	for i := range pcm {
		env := 1.0
		if i < ramp {
			env = float64(i) / float64(ramp)
		}
		if tail := n - i - 1; tail < ramp {
			if release := float64(tail) / float64(ramp); release < env {
				env = release
			}
		}
		phase := 2 * math.Pi * t.hz * float64(i) / cueSampleRate
		pcm[i] = int16(math.Round(math.Sin(phase) * cueVolume * env * 32767))
	}
	return pcm
}

func sampleCount(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(d.Seconds() * cueSampleRate))
}
