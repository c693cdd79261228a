// Package catalog produces the class schedule the ledger is seeded with.
package catalog

import (
	"time"

	"github.com/2ellamills/fitness-class/internal/model"
)

// Seeder returns the ordered class catalog for the week starting on today.
type Seeder interface {
	Seed(today time.Time) ([]model.ClassOffering, error)
}

// ClassType is one kind of class the studio runs.
type ClassType struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Instructor  string `json:"instructor" yaml:"instructor"`
	ImageURL    string `json:"imageUrl" yaml:"imageUrl"`
}

// DefaultClassTypes is the studio's regular line-up.
var DefaultClassTypes = []ClassType{
	{
		Title:       "Yoga Flow",
		Description: "A dynamic practice that connects breath with movement",
		Instructor:  "Sarah Johnson",
		ImageURL:    "https://images.unsplash.com/photo-1575052814086-f385e2e2ad1b",
	},
	{
		Title:       "HIIT Training",
		Description: "High-intensity interval training to boost your metabolism",
		Instructor:  "Mike Peterson",
		ImageURL:    "https://images.unsplash.com/photo-1549060279-7e168fcee0c2",
	},
	{
		Title:       "Pilates",
		Description: "Focus on core strength, posture, and flexibility",
		Instructor:  "Emma Davis",
		ImageURL:    "https://images.unsplash.com/photo-1518611012118-696072aa579a",
	},
	{
		Title:       "Meditation",
		Description: "Guided meditation for stress relief and mental clarity",
		Instructor:  "David Chen",
		ImageURL:    "https://images.unsplash.com/photo-1506126613408-eca07ce68773",
	},
}

// DefaultTimes are the start slots a class can be scheduled in.
var DefaultTimes = []string{"07:00", "09:30", "12:00", "17:30", "19:00"}

// Static always returns the same catalog.
type Static []model.ClassOffering

func (s Static) Seed(time.Time) ([]model.ClassOffering, error) {
	out := make([]model.ClassOffering, len(s))
	for i, c := range s {
		out[i] = c.Clone()
	}
	return out, nil
}
