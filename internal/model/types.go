package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyNormal Energy = "normal"
	EnergyHigh   Energy = "high"
)

type BodyCondition string

const (
	ConditionLean       BodyCondition = "lean"
	ConditionIdeal      BodyCondition = "ideal"
	ConditionOverweight BodyCondition = "overweight"
)

type Category string

const (
	CategoryRaw        Category = "raw"
	CategoryTreat      Category = "treat"
	CategorySupplement Category = "supplement"
	CategoryPantry     Category = "pantry"
)

// Protein tags that never match an allergy or count toward variety.
const (
	ProteinNone  = "none"
	ProteinMixed = "mixed"
	ProteinBroth = "broth"
)

type EventType string

const (
	EventReceive EventType = "receive"
	EventConsume EventType = "consume"
)

type StoolResult string

const (
	StoolHealthy StoolResult = "healthy"
	StoolWatch   StoolResult = "watch"
	StoolVet     StoolResult = "vet"
)

type Dog struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Breed         string        `json:"breed"`
	Sex           string        `json:"sex"`
	WeightKg      float64       `json:"weight_kg"`
	AgeYears      float64       `json:"age_years"`
	Energy        Energy        `json:"energy"`
	BodyCondition BodyCondition `json:"body_condition"`
	Allergies     []string      `json:"allergies"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Macros holds muscle/organ/bone either as per-product fractions or as
// realized percentages of a meal (both expressed in the 0..1 range).
type Macros struct {
	Muscle float64 `json:"muscle" yaml:"muscle"`
	Organ  float64 `json:"organ" yaml:"organ"`
	Bone   float64 `json:"bone" yaml:"bone"`
}

func (m Macros) IsZero() bool {
	return m.Muscle == 0 && m.Organ == 0 && m.Bone == 0
}

type Product struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Brand        string           `json:"brand"`
	GramsPerPack float64          `json:"grams_per_pack"`
	Category     Category         `json:"category"`
	Protein      string           `json:"protein"`
	Macros       Macros           `json:"macros"`
	Pantry       bool             `json:"pantry"`
	Ingredients  string           `json:"ingredients,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Currency     string           `json:"currency,omitempty"`
	Custom       bool             `json:"custom,omitempty"`
}

type InventoryEvent struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      EventType `json:"type"`
	Packs     float64   `json:"packs"`
	At        time.Time `json:"at"`
}

type MealItem struct {
	ProductID string  `json:"product_id"`
	Grams     float64 `json:"grams"`
}

type MealLog struct {
	ID     string     `json:"id"`
	DogID  string     `json:"dog_id"`
	Date   string     `json:"date"`
	Items  []MealItem `json:"items"`
	Macros Macros     `json:"macros"`
}

type TreatSuggestion struct {
	ProductID string `json:"product_id"`
	Pieces    int    `json:"pieces"`
}

type RotationDay struct {
	Day    int               `json:"day"`
	Items  []MealItem        `json:"items"`
	Snacks []TreatSuggestion `json:"snacks"`
	Macros Macros            `json:"macros"`
}

type StoolLog struct {
	ID         string      `json:"id"`
	DogID      string      `json:"dog_id"`
	Date       string      `json:"date"`
	Result     StoolResult `json:"result"`
	Brightness float64     `json:"brightness"`
	ImagePath  string      `json:"image_path"`
}

type OrderLine struct {
	ProductID string `json:"product_id,omitempty"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	Size      string `json:"size,omitempty"`
	Price     string `json:"price,omitempty"`
}

type Order struct {
	ID        string      `json:"id"`
	At        time.Time   `json:"at"`
	Branch    string      `json:"branch"`
	Items     []OrderLine `json:"items"`
	Address   string      `json:"address,omitempty"`
	Notes     string      `json:"notes,omitempty"`
	Recurring bool        `json:"recurring"`
}

type RecurringItem struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type RecurringOrder struct {
	ID      string          `json:"id"`
	Weekday time.Weekday    `json:"weekday"`
	Time    string          `json:"time"`
	Items   []RecurringItem `json:"items"`
	Address string          `json:"address,omitempty"`
	Notes   string          `json:"notes,omitempty"`
}

type Account struct {
	Email             string     `json:"email"`
	PasswordHash      string     `json:"password_hash"`
	CreatedAt         time.Time  `json:"created_at"`
	LoggedIn          bool       `json:"logged_in"`
	TrialStart        *time.Time `json:"trial_start,omitempty"`
	SubscriptionStart *time.Time `json:"subscription_start,omitempty"`
	OnboardingDone    bool       `json:"onboarding_done"`
}

type Settings struct {
	Units          string  `json:"units"`
	FeedingPercent float64 `json:"feeding_percent"`
	MorningTime    string  `json:"morning_time"`
	EveningTime    string  `json:"evening_time"`
	ThawTime       string  `json:"thaw_time"`
	IsPro          bool    `json:"is_pro"`
	Language       string  `json:"language"`
	Branch         string  `json:"branch"`
}
