package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Specialization tags a trainer's area of expertise.
type Specialization string

const (
	SpecStrength  Specialization = "strength"
	SpecCardio    Specialization = "cardio"
	SpecYoga      Specialization = "yoga"
	SpecPilates   Specialization = "pilates"
	SpecCrossfit  Specialization = "crossfit"
	SpecNutrition Specialization = "nutrition"
)

func (s Specialization) IsValid() bool {
	switch s {
	case SpecStrength, SpecCardio, SpecYoga, SpecPilates, SpecCrossfit, SpecNutrition:
		return true
	}
	return false
}

// Certification is a credential held by a trainer.
type Certification struct {
	Name     string `bson:"name" json:"name"`
	IssuedBy string `bson:"issuedBy,omitempty" json:"issuedBy,omitempty"`
	Year     int    `bson:"year,omitempty" json:"year,omitempty"`
}

// TimeSlot is a bookable window within a schedule day.
type TimeSlot struct {
	StartTime string `bson:"startTime" json:"startTime"` // "HH:MM"
	EndTime   string `bson:"endTime" json:"endTime"`
	IsBooked  bool   `bson:"isBooked" json:"isBooked"`
}

// ScheduleDay holds the slots a trainer offers on one weekday.
type ScheduleDay struct {
	Day   string     `bson:"day" json:"day"` // "Monday" .. "Sunday"
	Slots []TimeSlot `bson:"slots" json:"slots"`
}

// Review is a member's rating of a trainer.
type Review struct {
	ReviewerID primitive.ObjectID `bson:"reviewerId" json:"reviewerId"`
	Rating     float64            `bson:"rating" json:"rating"` // Clamped to [1,5] on insert
	Comment    string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Date       time.Time          `bson:"date" json:"date"`
}

// Trainer is a gym trainer profile managed from the admin panel.
type Trainer struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName        string             `bson:"fullName" json:"fullName"`
	Email           string             `bson:"email" json:"email"` // Unique
	PhoneNumber     string             `bson:"phoneNumber" json:"phoneNumber"`
	Specialization  []Specialization   `bson:"specialization,omitempty" json:"specialization,omitempty"`
	ExperienceYears int                `bson:"experienceYears" json:"experienceYears"`
	Certifications  []Certification    `bson:"certifications,omitempty" json:"certifications,omitempty"`
	Schedule        []ScheduleDay      `bson:"schedule,omitempty" json:"schedule,omitempty"`
	Rating          float64            `bson:"rating" json:"rating"` // Mean of review ratings; 5 until reviewed
	Reviews         []Review           `bson:"reviews,omitempty" json:"reviews,omitempty"`
	ProfileImageKey string             `bson:"profileImageKey,omitempty" json:"-"` // Object storage key
	IsAvailable     bool               `bson:"isAvailable" json:"isAvailable"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AverageRating computes the arithmetic mean of review ratings.
// The mongo repository recomputes the same value with an $avg pipeline on
// insert; this helper keeps tests and fakes in agreement with it.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var total float64
	for _, r := range reviews {
		total += r.Rating
	}
	return total / float64(len(reviews))
}
