package helpers

import (
	"fmt"
	"io"
	"math"

	"github.com/tcolgate/mp3"
)

// AudioDuration walks the MP3 frame headers of r and returns the total
// playback length rounded to whole seconds. The song form never lets the
// client set a duration; this is the single source of it.
func AudioDuration(r io.Reader) (int, error) {
	dec := mp3.NewDecoder(r)

	var frame mp3.Frame
	var skipped int
	var total float64
	frames := 0

	for {
		err := dec.Decode(&frame, &skipped)
		if err != nil {
			if err == io.EOF || frames > 0 {
				// Trailing junk after valid frames (tags, truncation) is
				// tolerated, a stream with no frames at all is not.
				break
			}
			return 0, fmt.Errorf("decode audio: %w", err)
		}
		total += frame.Duration().Seconds()
		frames++
	}

	if frames == 0 {
		return 0, fmt.Errorf("no audio frames found")
	}

	return int(math.Round(total)), nil
}
