package model

import "time"

// State is the full local snapshot: everything the app persists between runs.
type State struct {
	Dogs              []Dog            `json:"dogs"`
	ActiveDogID       string           `json:"active_dog_id"`
	Products          []Product        `json:"products"`
	InventoryEvents   []InventoryEvent `json:"inventory_events"`
	Meals             []MealLog        `json:"meals"`
	StoolLogs         []StoolLog       `json:"stool_logs"`
	Rotation          []RotationDay    `json:"rotation"`
	Settings          Settings         `json:"settings"`
	LastBrothDay      string           `json:"last_broth_day,omitempty"`
	Account           *Account         `json:"account,omitempty"`
	OnboardingDone    bool             `json:"onboarding_done"`
	ConsentGiven      bool             `json:"consent_given"`
	ProExpiry         time.Time        `json:"pro_expiry"`
	ProExpiryNotified bool             `json:"pro_expiry_notified"`
	BannerDismissed   bool             `json:"banner_dismissed"`
	OrderHistory      []Order          `json:"order_history"`
	RecurringOrders   []RecurringOrder `json:"recurring_orders"`

	// MemoryFallback is set once a save fails; it is never persisted.
	MemoryFallback bool `json:"-"`
}

func DefaultSettings() Settings {
	return Settings{
		Units:          "metric",
		FeedingPercent: 0.03,
		MorningTime:    "08:00",
		EveningTime:    "20:00",
		ThawTime:       "22:00",
		Language:       "en",
		Branch:         "lebanon",
	}
}

func (s *State) Dog(id string) *Dog {
	for i := range s.Dogs {
		if s.Dogs[i].ID == id {
			return &s.Dogs[i]
		}
	}
	return nil
}

func (s *State) ActiveDog() *Dog {
	if s == nil {
		return nil
	}
	return s.Dog(s.ActiveDogID)
}

func (s *State) Product(id string) *Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i]
		}
	}
	return nil
}

// MealsForDog returns the dog's meal logs in log order.
func (s *State) MealsForDog(dogID string) []MealLog {
	out := make([]MealLog, 0, len(s.Meals))
	for _, m := range s.Meals {
		if m.DogID == dogID {
			out = append(out, m)
		}
	}
	return out
}
