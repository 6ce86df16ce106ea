package model

// LifeStage is the age bracket a profile falls into.
type LifeStage string

const (
	Child    LifeStage = "Child"
	Teenager LifeStage = "Teenager"
	Adult    LifeStage = "Adult"
)

// Profile is the summary produced by the profile builder.
type Profile struct {
	Name      string    `json:"name" yaml:"name"`
	BirthYear int       `json:"birth_year" yaml:"birth_year"`
	Age       int       `json:"age" yaml:"age"`
	LifeStage LifeStage `json:"life_stage" yaml:"life_stage"`
	Hobbies   []string  `json:"hobbies" yaml:"hobbies"`
}
