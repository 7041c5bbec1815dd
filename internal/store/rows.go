package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saadjs/pawfuel-cli/internal/model"
)

const timeLayout = time.RFC3339Nano

type dogRow struct {
	ID            string  `db:"id"`
	Position      int     `db:"position"`
	Name          string  `db:"name"`
	Breed         string  `db:"breed"`
	Sex           string  `db:"sex"`
	WeightKg      float64 `db:"weight_kg"`
	AgeYears      float64 `db:"age_years"`
	Energy        string  `db:"energy"`
	BodyCondition string  `db:"body_condition"`
	Allergies     string  `db:"allergies"`
	CreatedAt     string  `db:"created_at"`
	UpdatedAt     string  `db:"updated_at"`
}

type productRow struct {
	ID           string  `db:"id"`
	Position     int     `db:"position"`
	Name         string  `db:"name"`
	Brand        string  `db:"brand"`
	GramsPerPack float64 `db:"grams_per_pack"`
	Category     string  `db:"category"`
	Protein      string  `db:"protein"`
	Muscle       float64 `db:"muscle"`
	Organ        float64 `db:"organ"`
	Bone         float64 `db:"bone"`
	Pantry       bool    `db:"pantry"`
	Ingredients  string  `db:"ingredients"`
	Custom       bool    `db:"custom"`
	Price        string  `db:"price"`
	Currency     string  `db:"currency"`
}

type eventRow struct {
	ID        string  `db:"id"`
	ProductID string  `db:"product_id"`
	Type      string  `db:"type"`
	Packs     float64 `db:"packs"`
	At        string  `db:"at"`
}

type mealRow struct {
	ID     string  `db:"id"`
	DogID  string  `db:"dog_id"`
	Date   string  `db:"date"`
	Muscle float64 `db:"muscle"`
	Organ  float64 `db:"organ"`
	Bone   float64 `db:"bone"`
}

type mealItemRow struct {
	MealID    string  `db:"meal_id"`
	Position  int     `db:"position"`
	ProductID string  `db:"product_id"`
	Grams     float64 `db:"grams"`
}

type rotationRow struct {
	Day        int     `db:"day"`
	ItemsJSON  string  `db:"items_json"`
	SnacksJSON string  `db:"snacks_json"`
	Muscle     float64 `db:"muscle"`
	Organ      float64 `db:"organ"`
	Bone       float64 `db:"bone"`
}

type stoolRow struct {
	ID         string  `db:"id"`
	DogID      string  `db:"dog_id"`
	Date       string  `db:"date"`
	Result     string  `db:"result"`
	Brightness float64 `db:"brightness"`
	ImagePath  string  `db:"image_path"`
}

type orderRow struct {
	ID        string `db:"id"`
	At        string `db:"at"`
	Branch    string `db:"branch"`
	ItemsJSON string `db:"items_json"`
	Address   string `db:"address"`
	Notes     string `db:"notes"`
	Recurring bool   `db:"recurring"`
}

type recurringRow struct {
	ID        string `db:"id"`
	Weekday   int    `db:"weekday"`
	Time      string `db:"time"`
	ItemsJSON string `db:"items_json"`
	Address   string `db:"address"`
	Notes     string `db:"notes"`
}

type accountRow struct {
	Email             string `db:"email"`
	PasswordHash      string `db:"password_hash"`
	CreatedAt         string `db:"created_at"`
	LoggedIn          bool   `db:"logged_in"`
	TrialStart        string `db:"trial_start"`
	SubscriptionStart string `db:"subscription_start"`
	OnboardingDone    bool   `db:"onboarding_done"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseOptionalTime(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toDogRow(i int, d model.Dog) dogRow {
	return dogRow{
		ID:            d.ID,
		Position:      i,
		Name:          d.Name,
		Breed:         d.Breed,
		Sex:           d.Sex,
		WeightKg:      d.WeightKg,
		AgeYears:      d.AgeYears,
		Energy:        string(d.Energy),
		BodyCondition: string(d.BodyCondition),
		Allergies:     strings.Join(d.Allergies, ","),
		CreatedAt:     formatTime(d.CreatedAt),
		UpdatedAt:     formatTime(d.UpdatedAt),
	}
}

func (r dogRow) model() (model.Dog, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return model.Dog{}, err
	}
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return model.Dog{}, err
	}
	allergies := make([]string, 0)
	for _, a := range strings.Split(r.Allergies, ",") {
		if a = strings.TrimSpace(a); a != "" {
			allergies = append(allergies, a)
		}
	}
	return model.Dog{
		ID:            r.ID,
		Name:          r.Name,
		Breed:         r.Breed,
		Sex:           r.Sex,
		WeightKg:      r.WeightKg,
		AgeYears:      r.AgeYears,
		Energy:        model.Energy(r.Energy),
		BodyCondition: model.BodyCondition(r.BodyCondition),
		Allergies:     allergies,
		CreatedAt:     created,
		UpdatedAt:     updated,
	}, nil
}

func toProductRow(i int, p model.Product) productRow {
	row := productRow{
		ID:           p.ID,
		Position:     i,
		Name:         p.Name,
		Brand:        p.Brand,
		GramsPerPack: p.GramsPerPack,
		Category:     string(p.Category),
		Protein:      p.Protein,
		Muscle:       p.Macros.Muscle,
		Organ:        p.Macros.Organ,
		Bone:         p.Macros.Bone,
		Pantry:       p.Pantry,
		Ingredients:  p.Ingredients,
		Custom:       p.Custom,
		Currency:     p.Currency,
	}
	if p.Price != nil {
		row.Price = p.Price.String()
	}
	return row
}

func (r productRow) model() (model.Product, error) {
	p := model.Product{
		ID:           r.ID,
		Name:         r.Name,
		Brand:        r.Brand,
		GramsPerPack: r.GramsPerPack,
		Category:     model.Category(r.Category),
		Protein:      r.Protein,
		Macros:       model.Macros{Muscle: r.Muscle, Organ: r.Organ, Bone: r.Bone},
		Pantry:       r.Pantry,
		Ingredients:  r.Ingredients,
		Custom:       r.Custom,
		Currency:     r.Currency,
	}
	if r.Price != "" {
		d, err := decimal.NewFromString(r.Price)
		if err != nil {
			return model.Product{}, fmt.Errorf("parse price for %s: %w", r.ID, err)
		}
		p.Price = &d
	}
	return p, nil
}

func marshalJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal json column: %w", err)
	}
	return string(b), nil
}

func unmarshalJSON(s string, v any) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("unmarshal json column: %w", err)
	}
	return nil
}
