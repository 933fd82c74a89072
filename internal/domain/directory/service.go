package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListLocations(ctx context.Context) ([]*Location, error) {
	locations, err := s.repo.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	return locations, nil
}

// ListDoctorsByLocation returns the active doctors who hold at least one
// active availability window at the location.
func (s *Service) ListDoctorsByLocation(ctx context.Context, locationID uuid.UUID) ([]*Doctor, error) {
	doctors, err := s.repo.ListDoctorsByLocation(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("listing doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetDoctor(ctx, id)
}
