package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipStatus is the lifecycle status of a membership application.
// There is no enforced transition graph: an admin may move an application
// between any two statuses.
type MembershipStatus string

const (
	StatusPending MembershipStatus = "pending"
	StatusActive  MembershipStatus = "active"
	StatusExpired MembershipStatus = "expired"
)

// IsValid reports whether s is one of the known statuses.
func (s MembershipStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusExpired:
		return true
	}
	return false
}

// MembershipPlan is the membership tier chosen on signup.
type MembershipPlan string

const (
	PlanBasic MembershipPlan = "basic"
	PlanPro   MembershipPlan = "pro"
	PlanElite MembershipPlan = "elite"
)

func (p MembershipPlan) IsValid() bool {
	switch p {
	case PlanBasic, PlanPro, PlanElite:
		return true
	}
	return false
}

// Membership is a prospective member's signup application.
// Created by a public submission; status is mutated by admins afterwards.
type Membership struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName            string             `bson:"fullName" json:"fullName"`
	Email               string             `bson:"email" json:"email"` // Unique among applications
	PhoneNumber         string             `bson:"phoneNumber" json:"phoneNumber"`
	Plan                MembershipPlan     `bson:"plan" json:"plan"`
	SpecialRequirements string             `bson:"specialRequirements,omitempty" json:"specialRequirements,omitempty"`
	StartDate           time.Time          `bson:"startDate" json:"startDate"`
	Status              MembershipStatus   `bson:"status" json:"status"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MembershipStats is the aggregate snapshot shown on the admin dashboard.
// Recomputed on every call, never cached.
type MembershipStats struct {
	Total   int64            `json:"total"`
	Pending int64            `json:"pending"`
	Active  int64            `json:"active"`
	Expired int64            `json:"expired"`
	ByPlan  MembershipByPlan `json:"byPlan"`
}

type MembershipByPlan struct {
	Basic int64 `json:"basic"`
	Pro   int64 `json:"pro"`
	Elite int64 `json:"elite"`
}
