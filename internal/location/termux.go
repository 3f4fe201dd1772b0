package location

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
)

const (
	// EnvPrefix is the environment marker identifying a Termux runtime.
	EnvPrefix = "PREFIX"

	// termuxPrefix is the exact value of $PREFIX inside Termux. Anything
	// else, however similar, skips this source.
	termuxPrefix = "/data/data/com.termux/files/usr"
)

// TermuxSource queries the device GPS through the termux-location tool. It
// applies only inside a Termux environment. The query is attempted once;
// command failure or unusable output exhausts the cascade rather than
// crashing the run, since the device may simply have no fix.
type TermuxSource struct {
	log *logrus.Logger

	// run executes the location query; replaced in tests.
	run func(ctx context.Context) ([]byte, error)
}

// NewTermuxSource creates a TermuxSource invoking the real termux-location
// command.
func NewTermuxSource(log *logrus.Logger) *TermuxSource {
	return &TermuxSource{
		log: log,
		run: func(ctx context.Context) ([]byte, error) {
			return exec.CommandContext(ctx, "termux-location", "-p", "gps").Output()
		},
	}
}

func (*TermuxSource) Name() string { return "termux gps" }

func (s *TermuxSource) Lookup(ctx context.Context) (Candidate, error) {
	if os.Getenv(EnvPrefix) != termuxPrefix {
		return Candidate{}, nil
	}
	out, err := s.run(ctx)
	if err != nil {
		s.log.Debugf("termux-location failed: %v", err)
		return Candidate{}, nil
	}
	var payload struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		s.log.Debugf("unparsable termux-location output: %v", err)
		return Candidate{}, nil
	}
	if payload.Latitude == nil || payload.Longitude == nil {
		s.log.Debug("termux-location output missing coordinates")
		return Candidate{}, nil
	}
	lat := round4(*payload.Latitude)
	lon := round4(*payload.Longitude)
	return Candidate{Latitude: &lat, Longitude: &lon}, nil
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
