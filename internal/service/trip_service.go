package service

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripbudget/internal/models"
	"github.com/mmynk/tripbudget/internal/storage"
	"github.com/mmynk/tripbudget/pkg/api"
)

// Ensure TripService implements api.TripServiceHandler
var _ api.TripServiceHandler = (*TripService)(nil)

// TripService implements the Connect TripService
type TripService struct {
	store storage.Store
}

// NewTripService creates a new TripService with the given storage backend.
func NewTripService(store storage.Store) *TripService {
	return &TripService{store: store}
}

// cleanNames trims names and drops blanks.
func cleanNames(names []string) []string {
	var out []string
	for _, n := range models.TrimNames(names) {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

// CreateTrip creates a new trip.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	slog.Info("CreateTrip request received",
		"title", req.Msg.Title,
		"members_count", len(req.Msg.Members),
	)

	if strings.TrimSpace(req.Msg.Title) == "" {
		return nil, invalidArgument("title", "must not be empty")
	}
	if math.IsNaN(req.Msg.Budget) || math.IsInf(req.Msg.Budget, 0) || req.Msg.Budget < 0 {
		return nil, invalidArgument("budget", "must be a non-negative number")
	}
	if req.Msg.StartDate != 0 && req.Msg.EndDate != 0 && req.Msg.EndDate < req.Msg.StartDate {
		return nil, invalidArgument("end_date", "must not be before start_date")
	}

	members := cleanNames(req.Msg.Members)
	organizer := strings.TrimSpace(req.Msg.Organizer)
	if organizer != "" {
		members = append([]string{organizer}, members...)
	}

	trip := &models.Trip{
		Title:       strings.TrimSpace(req.Msg.Title),
		Description: req.Msg.Description,
		Destination: req.Msg.Destination,
		Organizer:   organizer,
		Budget:      req.Msg.Budget,
		Members:     members,
		StartDate:   timeOrZero(req.Msg.StartDate),
		EndDate:     timeOrZero(req.Msg.EndDate),
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		return nil, toConnectError("CreateTrip", err)
	}

	// Re-read so the member list is deduplicated the way the store keeps it.
	saved, err := s.store.GetTrip(ctx, trip.ID)
	if err != nil {
		return nil, toConnectError("CreateTrip", err)
	}

	slog.Info("Trip created", "trip_id", saved.ID)

	return connect.NewResponse(&api.CreateTripResponse{Trip: toAPITrip(saved)}), nil
}

// GetTrip retrieves a trip by ID.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	trip, err := s.store.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, toConnectError("GetTrip", err)
	}
	return connect.NewResponse(&api.GetTripResponse{Trip: toAPITrip(trip)}), nil
}

// ListTrips retrieves all trips.
func (s *TripService) ListTrips(ctx context.Context, req *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	trips, err := s.store.ListTrips(ctx)
	if err != nil {
		return nil, toConnectError("ListTrips", err)
	}

	out := make([]*api.Trip, len(trips))
	for i, trip := range trips {
		out[i] = toAPITrip(trip)
	}

	slog.Debug("ListTrips successful", "count", len(trips))

	return connect.NewResponse(&api.ListTripsResponse{Trips: out}), nil
}

// DeleteTrip deletes a trip together with its expenses and payments.
func (s *TripService) DeleteTrip(ctx context.Context, req *connect.Request[api.DeleteTripRequest]) (*connect.Response[api.DeleteTripResponse], error) {
	if req.Msg.TripID == "" {
		return nil, invalidArgument("trip_id", "required")
	}
	if err := s.store.DeleteTrip(ctx, req.Msg.TripID); err != nil {
		return nil, toConnectError("DeleteTrip", err)
	}

	slog.Info("Trip deleted", "trip_id", req.Msg.TripID)

	return connect.NewResponse(&api.DeleteTripResponse{}), nil
}
