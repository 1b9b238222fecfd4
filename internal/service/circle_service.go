package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/circleledger/internal/ledger"
	"github.com/mmynk/circleledger/pkg/api"
	"github.com/mmynk/circleledger/pkg/api/apiconnect"
)

// CircleService implements the Connect CircleService
type CircleService struct {
	apiconnect.UnimplementedCircleServiceHandler
	ledger *ledger.Service
}

// NewCircleService creates a new CircleService backed by the given ledger.
func NewCircleService(l *ledger.Service) *CircleService {
	return &CircleService{ledger: l}
}

// CreateCircle creates a circle owned by the caller.
func (s *CircleService) CreateCircle(ctx context.Context, req *connect.Request[api.CreateCircleRequest]) (*connect.Response[api.CreateCircleResponse], error) {
	memberID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("CreateCircle request received",
		"name", req.Msg.Name,
		"members", len(req.Msg.Members),
	)

	in := ledger.CircleInput{
		Name:             req.Msg.Name,
		OwnerDisplayName: req.Msg.OwnerDisplayName,
		Members:          make([]ledger.MemberInput, len(req.Msg.Members)),
	}
	for i, m := range req.Msg.Members {
		in.Members[i] = memberToInput(m)
	}

	circle, err := s.ledger.CreateCircle(ctx, memberID, in)
	if err != nil {
		return nil, toConnectError(ctx, "CreateCircle", err)
	}

	return connect.NewResponse(&api.CreateCircleResponse{Circle: circleToAPI(circle)}), nil
}

// GetCircle retrieves a circle and its roster.
func (s *CircleService) GetCircle(ctx context.Context, req *connect.Request[api.GetCircleRequest]) (*connect.Response[api.GetCircleResponse], error) {
	memberID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("GetCircle request received", "circle_id", req.Msg.CircleID)

	circle, err := s.ledger.GetCircle(ctx, memberID, req.Msg.CircleID)
	if err != nil {
		return nil, toConnectError(ctx, "GetCircle", err)
	}

	slog.Info("GetCircle successful", "circle_id", circle.ID, "name", circle.Name)
	return connect.NewResponse(&api.GetCircleResponse{Circle: circleToAPI(circle)}), nil
}

// AddMember appends a member to a circle's roster.
func (s *CircleService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	memberID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("AddMember request received",
		"circle_id", req.Msg.CircleID,
		"member_id", req.Msg.Member.MemberID,
	)

	circle, err := s.ledger.AddMember(ctx, memberID, req.Msg.CircleID, memberToInput(req.Msg.Member))
	if err != nil {
		return nil, toConnectError(ctx, "AddMember", err)
	}

	return connect.NewResponse(&api.AddMemberResponse{Circle: circleToAPI(circle)}), nil
}
