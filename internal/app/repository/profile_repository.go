package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rmehra/billmitra-backend/internal/app/model"
	"github.com/rmehra/billmitra-backend/internal/kvstore"
	"github.com/rmehra/billmitra-backend/pkg/logger"
)

// KeyRestaurantProfile is the durable-store key of the profile record.
const KeyRestaurantProfile = "restaurant_profile"

type ProfileRepository interface {
	Load(ctx context.Context) model.RestaurantProfile
	Save(ctx context.Context, profile model.RestaurantProfile) error
}

type profileRepository struct {
	store kvstore.Store
}

func NewProfileRepository(store kvstore.Store) ProfileRepository {
	return &profileRepository{store: store}
}

// Load returns the stored profile, or an empty profile when nothing was saved
// yet or the stored value is unreadable. Load never fails upward: storage
// problems are logged and the caller gets the default.
func (r *profileRepository) Load(ctx context.Context) model.RestaurantProfile {
	var profile model.RestaurantProfile

	raw, err := r.store.Get(ctx, KeyRestaurantProfile)
	if errors.Is(err, kvstore.ErrNotFound) {
		return profile
	}
	if err != nil {
		logger.Error("Failed to load restaurant profile", err, map[string]interface{}{
			"key": KeyRestaurantProfile,
		})
		return profile
	}

	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		logger.Error("Failed to decode restaurant profile, using default", err, map[string]interface{}{
			"key": KeyRestaurantProfile,
		})
		return model.RestaurantProfile{}
	}
	return profile
}

func (r *profileRepository) Save(ctx context.Context, profile model.RestaurantProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		logger.Error("Failed to encode restaurant profile", err, nil)
		return err
	}

	if err := r.store.Set(ctx, KeyRestaurantProfile, string(raw)); err != nil {
		logger.Error("Failed to save restaurant profile", err, map[string]interface{}{
			"key": KeyRestaurantProfile,
		})
		return err
	}

	logger.Debug("Restaurant profile saved", map[string]interface{}{
		"name": profile.Name,
	})
	return nil
}
