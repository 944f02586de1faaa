package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionType distinguishes the kinds of class sessions on offer.
type SessionType string

const (
	SessionGroup    SessionType = "group"
	SessionPersonal SessionType = "personal"
	SessionWorkshop SessionType = "workshop"
)

func (t SessionType) IsValid() bool {
	switch t {
	case SessionGroup, SessionPersonal, SessionWorkshop:
		return true
	}
	return false
}

// SessionStatus is the scheduling state of a class session.
type SessionStatus string

const (
	SessionScheduled  SessionStatus = "scheduled"
	SessionInProgress SessionStatus = "in-progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
)

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionScheduled, SessionInProgress, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}

// SessionSchedule is the date range and time window a session runs in.
type SessionSchedule struct {
	StartDate     time.Time `bson:"startDate" json:"startDate"`
	EndDate       time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Recurring     bool      `bson:"recurring" json:"recurring"`
	RecurringDays []string  `bson:"recurringDays,omitempty" json:"recurringDays,omitempty"`
	StartTime     string    `bson:"startTime,omitempty" json:"startTime,omitempty"` // "HH:MM"
	EndTime       string    `bson:"endTime,omitempty" json:"endTime,omitempty"`
}

// SessionPrice is the price of attending a session.
type SessionPrice struct {
	Amount   float64 `bson:"amount" json:"amount"`
	Currency string  `bson:"currency" json:"currency"`
}

// SessionLocation pinpoints where a session takes place.
type SessionLocation struct {
	Room  string `bson:"room,omitempty" json:"room,omitempty"`
	Floor string `bson:"floor,omitempty" json:"floor,omitempty"`
}

// Equipment is a piece of equipment a session uses.
type Equipment struct {
	Name     string `bson:"name" json:"name"`
	Required bool   `bson:"required" json:"required"`
}

// ClassSession is a scheduled class members can enroll into.
// Invariants: len(EnrolledMembers) <= Capacity, and a member appears in
// EnrolledMembers at most once. Both are enforced by the repository as a
// single conditional write so they hold under concurrent enrollments.
type ClassSession struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name            string               `bson:"name" json:"name"`
	Type            SessionType          `bson:"type" json:"type"`
	Description     string               `bson:"description,omitempty" json:"description,omitempty"`
	TrainerID       primitive.ObjectID   `bson:"trainerId" json:"trainerId"`
	Capacity        int                  `bson:"capacity" json:"capacity"`
	EnrolledMembers []primitive.ObjectID `bson:"enrolledMembers" json:"enrolledMembers"`
	Schedule        SessionSchedule      `bson:"schedule" json:"schedule"`
	Level           string               `bson:"level,omitempty" json:"level,omitempty"` // e.g. "beginner", "all-levels"
	Price           SessionPrice         `bson:"price" json:"price"`
	Location        SessionLocation      `bson:"location,omitempty" json:"location,omitempty"`
	Equipment       []Equipment          `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Status          SessionStatus        `bson:"status" json:"status"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// IsEnrolled reports whether memberID is already in the enrollment list.
func (s *ClassSession) IsEnrolled(memberID primitive.ObjectID) bool {
	for _, id := range s.EnrolledMembers {
		if id == memberID {
			return true
		}
	}
	return false
}

// IsFull reports whether the session has reached capacity.
func (s *ClassSession) IsFull() bool {
	return len(s.EnrolledMembers) >= s.Capacity
}
