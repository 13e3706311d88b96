package stats

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

type messageBucket struct {
	threshold float64
	messages  []string
}

var resultMessages = []messageBucket{
	{
		threshold: 100,
		messages: []string{
			"You're flawless!",
			"Absolute division wizard!",
			"Every border bows to you.",
			"Perfection achieved. Frame this moment.",
			"Cartographic superstar!",
			"Nothing left to teach you. Take a bow.",
		},
	},
	{
		threshold: 95,
		messages: []string{
			"Sublime geography skills!",
			"Nearly perfect. Bragging rights earned.",
			"The map fears your insight.",
			"So close to perfect. Brilliant work!",
			"Atlas encyclopedia unlocked.",
			"If this were darts, you'd be on a nine-darter.",
		},
	},
	{
		threshold: 85,
		messages: []string{
			"Great job!",
			"The divisions are proud of you.",
			"You're on a roll. Keep going!",
			"A+ on the atlas quiz!",
			"Compass pointing true north.",
			"Bring this energy to the next round.",
		},
	},
	{
		threshold: 70,
		messages: []string{
			"Solid work!",
			"Nice effort. One more round?",
			"Compass mostly on point.",
			"You're warming up the map nicely.",
			"Stick with it. Victory is circling.",
			"Momentum is on your side.",
		},
	},
	{
		threshold: 50,
		messages: []string{
			"Room to grow, but you're getting there!",
			"Borders are tricky. Keep practicing!",
			"Not bad. Ready for a rematch?",
			"Your map sense is waking up.",
			"Give it another spin. Progress incoming.",
			"You're halfway to hero status.",
		},
	},
	{
		threshold: 0,
		messages: []string{
			"Tough run. Give it another go!",
			"Divisions can be stubborn. Try again!",
			"Every miss is a step closer to mastery.",
			"Maps are tricky. Today was recon.",
			"Shake it off. The next run will sparkle.",
			"The map won this round. Demand a rematch.",
		},
	},
}

// ResultMessage picks an encouragement line for a round score in percent.
func ResultMessage(percent float64, rnd *rand.Rand) string {
	for _, bucket := range resultMessages {
		if percent >= bucket.threshold {
			return bucket.messages[rnd.Intn(len(bucket.messages))]
		}
	}
	return "Great effort!"
}

// FormatDuration renders d as "42s" or "3m 07s".
func FormatDuration(d time.Duration) string {
	totalSeconds := int(math.Round(math.Max(0, d.Seconds())))
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	if minutes == 0 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm %02ds", minutes, seconds)
}
