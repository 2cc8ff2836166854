package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rmehra/billmitra-backend/internal/app/model"
	"github.com/rmehra/billmitra-backend/internal/app/repository"
	"github.com/rmehra/billmitra-backend/pkg/logger"
)

var ErrEmptyProfile = errors.New("profile has no fields set")

// ProfileService owns the singleton restaurant profile.
type ProfileService interface {
	Get(ctx context.Context) model.RestaurantProfile
	Update(ctx context.Context, profile model.RestaurantProfile) error
}

type profileService struct {
	mu          sync.Mutex
	profileRepo repository.ProfileRepository
	profile     model.RestaurantProfile
}

func NewProfileService(ctx context.Context, profileRepo repository.ProfileRepository) ProfileService {
	s := &profileService{
		profileRepo: profileRepo,
		profile:     profileRepo.Load(ctx),
	}

	logger.Info("Restaurant profile loaded", map[string]interface{}{
		"configured": !s.profile.IsEmpty(),
	})
	return s
}

func (s *profileService) Get(_ context.Context) model.RestaurantProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Update persists the profile. An all-empty profile is rejected so that blank
// form submissions do not overwrite a stored profile.
func (s *profileService) Update(ctx context.Context, profile model.RestaurantProfile) error {
	if profile.IsEmpty() {
		logger.Warn("Rejected empty profile update", nil)
		return ErrEmptyProfile
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return err
	}
	s.profile = profile

	logger.Info("Restaurant profile updated", map[string]interface{}{
		"name": profile.Name,
	})
	return nil
}
