package ledger

import (
	"context"
	"time"

	"github.com/mmynk/circleledger/internal/models"
)

// CreateCircle creates a circle with actor as owner followed by the listed
// members.
func (s *Service) CreateCircle(ctx context.Context, actor string, in CircleInput) (circle *models.Circle, err error) {
	defer s.observe(ctx, opCreateCircle, time.Now(), &err)

	if actor == "" {
		return nil, models.Denied("an acting member is required")
	}
	if err := s.checkShape(in); err != nil {
		return nil, err
	}

	circle = &models.Circle{
		Name: in.Name,
		Members: []models.Member{
			{MemberID: actor, DisplayName: in.OwnerDisplayName, Role: models.RoleOwner},
		},
	}
	for _, m := range in.Members {
		circle.Members = append(circle.Members, memberFromInput(m))
	}

	if err := s.store.CreateCircle(ctx, circle); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Circle created",
		"circle_id", circle.ID,
		"members", len(circle.Members),
	)
	return circle, nil
}

// GetCircle returns the circle and its roster.
func (s *Service) GetCircle(ctx context.Context, actor, circleID string) (circle *models.Circle, err error) {
	defer s.observe(ctx, opGetCircle, time.Now(), &err)
	return s.memberCircle(ctx, actor, circleID)
}

// AddMember appends a member to the roster. Only owners and admins may add
// members, and only an owner may add another owner.
func (s *Service) AddMember(ctx context.Context, actor, circleID string, in MemberInput) (circle *models.Circle, err error) {
	defer s.observe(ctx, opAddMember, time.Now(), &err)

	if err := s.checkShape(in); err != nil {
		return nil, err
	}

	circle, err = s.memberCircle(ctx, actor, circleID)
	if err != nil {
		return nil, err
	}
	if !circle.CanManage(actor) {
		return nil, models.Denied("member %s may not add members to circle %s", actor, circleID)
	}

	member := memberFromInput(in)
	if self, _ := circle.Member(actor); member.Role == models.RoleOwner && self.Role != models.RoleOwner {
		return nil, models.Denied("only an owner may add an owner to circle %s", circleID)
	}

	if err := s.store.AddCircleMember(ctx, circleID, member); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Member added",
		"circle_id", circleID,
		"member_id", member.MemberID,
		"role", member.Role,
	)
	return s.store.GetCircle(ctx, circleID)
}

func memberFromInput(in MemberInput) models.Member {
	role := in.Role
	if role == "" {
		role = models.RoleMember
	}
	return models.Member{MemberID: in.MemberID, DisplayName: in.DisplayName, Role: role}
}
