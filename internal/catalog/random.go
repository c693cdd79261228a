package catalog

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/2ellamills/fitness-class/internal/model"
)

// Random generates a week of classes.  Two Random seeders built with the
// same seed produce the same catalog for the same day.
type Random struct {
	Days        int
	MinPerDay   int
	MaxPerDay   int
	MinCapacity int
	MaxCapacity int
	Duration    int
	Types       []ClassType
	Times       []string
	rng         *rand.Rand
}

// NewRandom returns the default generator: 7 days, 2-3 classes a day,
// capacity 15-24, 60 minute sessions.
func NewRandom(seed int64) *Random {
	return &Random{
		Days:        7,
		MinPerDay:   2,
		MaxPerDay:   3,
		MinCapacity: 15,
		MaxCapacity: 24,
		Duration:    60,
		Types:       DefaultClassTypes,
		Times:       DefaultTimes,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (r *Random) Seed(today time.Time) ([]model.ClassOffering, error) {
	if len(r.Types) == 0 || len(r.Times) == 0 {
		return nil, fmt.Errorf("catalog: random seeder needs class types and times")
	}
	if r.MaxPerDay > len(r.Times) {
		return nil, fmt.Errorf("catalog: %d classes per day but only %d time slots", r.MaxPerDay, len(r.Times))
	}
	if r.MinPerDay > r.MaxPerDay || r.MinCapacity > r.MaxCapacity || r.MinCapacity <= 0 {
		return nil, fmt.Errorf("catalog: invalid random seeder bounds")
	}

	start := model.NewDate(today)
	var out []model.ClassOffering
	for day := 0; day < r.Days; day++ {
		date := start.AddDays(day)
		n := r.MinPerDay + r.rng.Intn(r.MaxPerDay-r.MinPerDay+1)

		slots := append([]string(nil), r.Times...)
		r.rng.Shuffle(len(slots), func(i, j int) { slots[i], slots[j] = slots[j], slots[i] })

		for i := 0; i < n; i++ {
			ct := r.Types[r.rng.Intn(len(r.Types))]
			out = append(out, model.ClassOffering{
				ID:           fmt.Sprintf("class-%s-%d", date, i),
				Title:        ct.Title,
				Description:  ct.Description,
				Instructor:   ct.Instructor,
				Date:         date,
				Time:         slots[i],
				Duration:     r.Duration,
				Capacity:     r.MinCapacity + r.rng.Intn(r.MaxCapacity-r.MinCapacity+1),
				Participants: []string{},
				ImageURL:     ct.ImageURL,
			})
		}
	}
	return out, nil
}
