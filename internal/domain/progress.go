package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Measurement is a dated body-metric snapshot.
type Measurement struct {
	Date    time.Time `bson:"date" json:"date"`
	Weight  float64   `bson:"weight,omitempty" json:"weight,omitempty"`
	Height  float64   `bson:"height,omitempty" json:"height,omitempty"`
	BodyFat float64   `bson:"bodyFat,omitempty" json:"bodyFat,omitempty"`
	Chest   float64   `bson:"chest,omitempty" json:"chest,omitempty"`
	Waist   float64   `bson:"waist,omitempty" json:"waist,omitempty"`
	Hips    float64   `bson:"hips,omitempty" json:"hips,omitempty"`
	Arms    float64   `bson:"arms,omitempty" json:"arms,omitempty"`
	Thighs  float64   `bson:"thighs,omitempty" json:"thighs,omitempty"`
}

// WorkoutExercise is one exercise within a logged workout.
type WorkoutExercise struct {
	Name     string  `bson:"name" json:"name"`
	Sets     int     `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps     int     `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight   float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Duration int     `bson:"duration,omitempty" json:"duration,omitempty"` // Minutes
	Notes    string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

// WorkoutLog is a dated exercise session log.
type WorkoutLog struct {
	Date           time.Time         `bson:"date" json:"date"`
	Type           string            `bson:"type,omitempty" json:"type,omitempty"`
	Exercises      []WorkoutExercise `bson:"exercises,omitempty" json:"exercises,omitempty"`
	TotalDuration  int               `bson:"totalDuration" json:"totalDuration"` // Minutes
	CaloriesBurned float64           `bson:"caloriesBurned" json:"caloriesBurned"`
}

// MealType enumerates the meals of a day.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// FoodItem is one food within a logged meal.
type FoodItem struct {
	Name     string  `bson:"name" json:"name"`
	Portion  string  `bson:"portion,omitempty" json:"portion,omitempty"`
	Calories float64 `bson:"calories,omitempty" json:"calories,omitempty"`
	Protein  float64 `bson:"protein,omitempty" json:"protein,omitempty"`
	Carbs    float64 `bson:"carbs,omitempty" json:"carbs,omitempty"`
	Fats     float64 `bson:"fats,omitempty" json:"fats,omitempty"`
}

// Meal groups the foods eaten at one sitting.
type Meal struct {
	Type  MealType   `bson:"type" json:"type"`
	Foods []FoodItem `bson:"foods,omitempty" json:"foods,omitempty"`
}

// NutritionLog is a dated meal log with daily totals.
type NutritionLog struct {
	Date          time.Time `bson:"date" json:"date"`
	Meals         []Meal    `bson:"meals,omitempty" json:"meals,omitempty"`
	TotalCalories float64   `bson:"totalCalories" json:"totalCalories"`
	TotalProtein  float64   `bson:"totalProtein" json:"totalProtein"`
	WaterIntake   float64   `bson:"waterIntake,omitempty" json:"waterIntake,omitempty"` // Liters
}

// GoalStatus is the state of a fitness goal.
type GoalStatus string

const (
	GoalInProgress GoalStatus = "in-progress"
	GoalAchieved   GoalStatus = "achieved"
	GoalMissed     GoalStatus = "missed"
)

// Goal is a typed fitness target.
type Goal struct {
	Type       string     `bson:"type" json:"type"` // "weight", "strength", "endurance", "flexibility"
	Target     float64    `bson:"target" json:"target"`
	Unit       string     `bson:"unit,omitempty" json:"unit,omitempty"`
	StartDate  time.Time  `bson:"startDate,omitempty" json:"startDate,omitempty"`
	TargetDate time.Time  `bson:"targetDate,omitempty" json:"targetDate,omitempty"`
	Status     GoalStatus `bson:"status" json:"status"`
	Notes      string     `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ProgressEntry is a member's progress record. Every entry is owned by
// exactly one user; only that user may read or mutate it.
type ProgressEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Measurements []Measurement      `bson:"measurements,omitempty" json:"measurements,omitempty"`
	Workouts     []WorkoutLog       `bson:"workouts,omitempty" json:"workouts,omitempty"`
	Nutrition    []NutritionLog     `bson:"nutrition,omitempty" json:"nutrition,omitempty"`
	Goals        []Goal             `bson:"goals,omitempty" json:"goals,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProgressStats is the derived report for a date range. Fields fall back to
// zero when the range contains no data; a report is never an error.
type ProgressStats struct {
	WeightProgress WeightProgress `json:"weightProgress"`
	WorkoutStats   WorkoutStats   `json:"workoutStats"`
	NutritionStats NutritionStats `json:"nutritionStats"`
}

type WeightProgress struct {
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Change float64 `json:"change"`
}

type WorkoutStats struct {
	TotalWorkouts       int     `json:"totalWorkouts"`
	TotalDuration       int     `json:"totalDuration"`
	AverageDuration     float64 `json:"averageDuration"`
	TotalCaloriesBurned float64 `json:"totalCaloriesBurned"`
}

type NutritionStats struct {
	AverageCaloriesConsumed float64 `json:"averageCaloriesConsumed"`
	AverageProteinIntake    float64 `json:"averageProteinIntake"`
}
