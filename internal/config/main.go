package config

import (
	"fmt"
	"math"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	App = kingpin.New("fluxbeat", "Play a rhythm game generated from the onsets of any song").Version("0.3.0")

	Rate          = App.Flag("rate", "Analysis sample rate in Hz").Default("8000").Int()
	FrameSize     = App.Flag("frame-size", "Analysis frame size, a power of two").Default("2048").Int()
	Threshold     = App.Flag("threshold", "Spectral flux threshold for an onset").Default("500").Float64()
	Window        = App.Flag("window", "Analysis window").Default("rect").Enum("rect", "hann")
	Lanes         = App.Flag("lanes", "Number of lanes").Default("4").Int()
	Seed          = App.Flag("seed", "Lane assignment seed, 0 picks one from the clock").Default("0").Int64()
	Speed         = App.Flag("speed", "Note speed in distance units per second").Default("12").Float64()
	SpawnDistance = App.Flag("spawn-distance", "Distance from the spawn zone to the hit zone centre").Default("20").Float64()
	HitZone       = App.Flag("hit-zone", "Half width of the hit zone").Default("1.0").Float64()
	Perfect       = App.Flag("perfect", "Perfect window, distance from the hit zone centre").Default("0.4").Float64()
	Good          = App.Flag("good", "Good window, distance from the hit zone centre").Default("0.9").Float64()
	FPS           = App.Flag("fps", "Ticks per second").Default("60").Short('R').Float64()
	keys          = App.Flag("keys", "Keys for each lane").Default("dfjk").Short('k').String()
	Database      = App.Flag("db", "Score history database").Default("./scores.db").String()
	LogLevel      = App.Flag("log-level", "Log level").Default("info").Enum("debug", "info", "warn", "error")
	LogFile       = App.Flag("log-file", "Write logs here instead of stderr").String()
	Development   = App.Flag("dev", "Development logging").Bool()

	playCmd    = App.Command("play", "Play a song").Default()
	playSource = playCmd.Arg("source", "Song URL, file or directory").Required().String()

	mapCmd    = App.Command("map", "Print the beatmap generated for a song")
	mapSource = mapCmd.Arg("source", "Song URL, file or directory").Required().String()

	historyCmd    = App.Command("history", "Score previous runs of a song")
	historySource = historyCmd.Arg("source", "Song URL, file or directory").Required().String()

	// Derived after Parse
	Command string
	Source  string
	Keys    []rune
)

// Parse reads the command line and resolves the song source.
func Parse(args []string) error {
	cmd, err := App.Parse(args)
	if nil != err {
		return err
	}
	Command = cmd
	switch cmd {
	case playCmd.FullCommand():
		Source = *playSource
	case mapCmd.FullCommand():
		Source = *mapSource
	case historyCmd.FullCommand():
		Source = *historySource
	}

	Keys = []rune(*keys)
	if len(Keys) < *Lanes {
		return fmt.Errorf("need %v keys for %v lanes, got %q", *Lanes, *Lanes, *keys)
	}
	if !(*FPS > 0) || math.IsInf(*FPS, 0) {
		return fmt.Errorf("fps must be positive and finite, got %v", *FPS)
	}

	Source, err = resolveSource(Source)
	return err
}

// KeyLane returns the lane bound to r, or -1
func KeyLane(r rune) int {
	for i, c := range Keys[:*Lanes] {
		if r == c {
			return i
		}
	}
	return -1
}

// A directory is walked for the song inside it
func resolveSource(src string) (string, error) {
	if strings.Contains(src, "://") {
		return src, nil
	}
	info, err := os.Stat(src)
	if nil != err {
		return "", fmt.Errorf("unable to open song source: %w", err)
	}
	if !info.IsDir() {
		return src, nil
	}

	var audioFile string
	if err := filepath.Walk(src, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch path.Ext(info.Name()) {
		case ".ogg", ".mp3", ".wav":
			audioFile = p
		}
		return nil
	}); nil != err {
		return "", fmt.Errorf("unable to walk song directory: %w", err)
	}
	if audioFile == "" {
		return "", fmt.Errorf("unable to find .ogg, .mp3 or .wav file in %v", src)
	}
	return audioFile, nil
}
