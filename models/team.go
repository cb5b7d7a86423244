package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harshithareddy888/HackConnect/errors"
)

type MemberRole string

const (
	RoleLeader MemberRole = "leader"
	RoleMember MemberRole = "member"
)

type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteRejected InviteStatus = "rejected"
)

const (
	MinTeamCapacity     = 2
	MaxTeamCapacity     = 10
	DefaultTeamCapacity = 5
)

type Member struct {
	User     primitive.ObjectID `bson:"user" json:"user"`
	Role     MemberRole         `bson:"role" json:"role"`
	JoinedAt time.Time          `bson:"joinedAt" json:"joinedAt"`
}

type Invite struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	InvitedBy primitive.ObjectID `bson:"invitedBy" json:"invitedBy"`
	Status    InviteStatus       `bson:"status" json:"status"`
	Message   string             `bson:"message,omitempty" json:"message,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Team struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	ProjectIdea  string             `bson:"projectIdea,omitempty" json:"projectIdea,omitempty"`
	SkillsNeeded []string           `bson:"skillsNeeded,omitempty" json:"skillsNeeded,omitempty"`
	Members      []Member           `bson:"members" json:"members"`
	Invites      []Invite           `bson:"invites" json:"invites"`
	MaxMembers   int                `bson:"maxMembers" json:"maxMembers"`
	IsOpen       bool               `bson:"isOpen" json:"isOpen"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewTeam builds a team with the founder as its sole leader.
func NewTeam(name, description, projectIdea string, skillsNeeded []string, maxMembers int, founder primitive.ObjectID) *Team {
	now := time.Now().UTC()
	if maxMembers == 0 {
		maxMembers = DefaultTeamCapacity
	}
	return &Team{
		Name:         name,
		Description:  description,
		ProjectIdea:  projectIdea,
		SkillsNeeded: skillsNeeded,
		MaxMembers:   maxMembers,
		IsOpen:       true,
		Members:      []Member{{User: founder, Role: RoleLeader, JoinedAt: now}},
		Invites:      []Invite{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (t *Team) MemberIndex(user primitive.ObjectID) int {
	for i, m := range t.Members {
		if m.User == user {
			return i
		}
	}
	return -1
}

func (t *Team) HasMember(user primitive.ObjectID) bool {
	return t.MemberIndex(user) >= 0
}

func (t *Team) IsLeader(user primitive.ObjectID) bool {
	i := t.MemberIndex(user)
	return i >= 0 && t.Members[i].Role == RoleLeader
}

func (t *Team) LeaderCount() int {
	n := 0
	for _, m := range t.Members {
		if m.Role == RoleLeader {
			n++
		}
	}
	return n
}

func (t *Team) IsFull() bool {
	return len(t.Members) >= t.MaxMembers
}

func (t *Team) PendingInviteIndex(user primitive.ObjectID) int {
	for i, inv := range t.Invites {
		if inv.User == user && inv.Status == InvitePending {
			return i
		}
	}
	return -1
}

// AddInvite records a pending invite for user. The inviter must
// already have been checked for membership.
func (t *Team) AddInvite(user, invitedBy primitive.ObjectID, message string) error {
	if t.IsFull() {
		return errors.Full("team is full")
	}
	if t.HasMember(user) {
		return errors.Conflict("user is already a team member")
	}
	if t.PendingInviteIndex(user) >= 0 {
		return errors.Conflict("user already has a pending invite")
	}
	t.Invites = append(t.Invites, Invite{
		User:      user,
		InvitedBy: invitedBy,
		Status:    InvitePending,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

// AcceptInvite marks the pending invite accepted and adds the user as
// a member. Capacity is re-checked here because the team may have
// filled up between invite and acceptance.
func (t *Team) AcceptInvite(user primitive.ObjectID) error {
	i := t.PendingInviteIndex(user)
	if i < 0 {
		return errors.NotFound("no pending invite found")
	}
	if t.IsFull() {
		return errors.Full("team is now full")
	}
	t.Invites[i].Status = InviteAccepted
	t.Members = append(t.Members, Member{
		User:     user,
		Role:     RoleMember,
		JoinedAt: time.Now().UTC(),
	})
	return nil
}

// RejectInvite marks the pending invite rejected; the user stays
// re-invitable afterwards.
func (t *Team) RejectInvite(user primitive.ObjectID) error {
	i := t.PendingInviteIndex(user)
	if i < 0 {
		return errors.NotFound("no pending invite found")
	}
	t.Invites[i].Status = InviteRejected
	return nil
}

// RemoveMember drops target from the member list. Removing the last
// leader is always refused, so a stored team keeps at least one
// leader; a sole leader exits through Leave, which deletes the team.
func (t *Team) RemoveMember(target primitive.ObjectID) error {
	i := t.MemberIndex(target)
	if i < 0 {
		return errors.NotFound("user is not a member of this team")
	}
	if t.Members[i].Role == RoleLeader && t.LeaderCount() <= 1 {
		return errors.Conflict("cannot remove the only team leader")
	}
	t.Members = append(t.Members[:i], t.Members[i+1:]...)
	return nil
}

// Leave removes user from the team. If the user was the last member,
// deleted reports that the team itself must be removed. If the user
// was the sole leader, the remaining member with the earliest joinedAt
// is promoted first (ties broken by member ID order).
func (t *Team) Leave(user primitive.ObjectID) (deleted bool, err error) {
	i := t.MemberIndex(user)
	if i < 0 {
		return false, errors.NotFound("not a member of this team")
	}

	if len(t.Members) == 1 {
		t.Members = nil
		return true, nil
	}

	if t.Members[i].Role == RoleLeader && t.LeaderCount() <= 1 {
		if s := t.successor(user); s >= 0 {
			t.Members[s].Role = RoleLeader
		}
	}

	t.Members = append(t.Members[:i], t.Members[i+1:]...)
	return false, nil
}

// successor picks the member to promote when the sole leader leaves:
// earliest joinedAt wins, member ID order breaks ties.
func (t *Team) successor(leaving primitive.ObjectID) int {
	best := -1
	for i, m := range t.Members {
		if m.User == leaving {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		b := t.Members[best]
		if m.JoinedAt.Before(b.JoinedAt) ||
			(m.JoinedAt.Equal(b.JoinedAt) && m.User.Hex() < b.User.Hex()) {
			best = i
		}
	}
	return best
}

// ValidateTeamAttrs checks the user-settable team fields. A zero
// maxMembers means "use the default" and is accepted.
func ValidateTeamAttrs(name, description, projectIdea string, maxMembers int) ValidationErrors {
	var errs ValidationErrors
	if name == "" || len(name) > 50 {
		errs = errs.Add("name", "team name is required and cannot be more than 50 characters")
	}
	if len(description) > 500 {
		errs = errs.Add("description", "description cannot be more than 500 characters")
	}
	if len(projectIdea) > 1000 {
		errs = errs.Add("projectIdea", "project idea cannot be more than 1000 characters")
	}
	if maxMembers != 0 && (maxMembers < MinTeamCapacity || maxMembers > MaxTeamCapacity) {
		errs = errs.Add("maxMembers", "maxMembers must be between 2 and 10")
	}
	return errs
}
