package models

type Species string
type PetSize string

const (
	SpeciesDog Species = "DOG"
	SpeciesCat Species = "CAT"

	PetSizeSmall  PetSize = "SMALL"
	PetSizeMedium PetSize = "MEDIUM"
	PetSizeLarge  PetSize = "LARGE"
)

// Pet is reference data. Rides embed a copy taken when the ride is created.
type Pet struct {
	ID               string   `json:"id" bson:"_id"`
	Name             string   `json:"name" bson:"name"`
	Species          Species  `json:"species" bson:"species"`
	Size             PetSize  `json:"size" bson:"size"`
	WeightKg         float64  `json:"weightKg" bson:"weight_kg"`
	Temperament      string   `json:"temperament" bson:"temperament"`
	CrateRequired    bool     `json:"crateRequired" bson:"crate_required"`
	VaccinesUpToDate bool     `json:"vaccinesUpToDate" bson:"vaccines_up_to_date"`
	Needs            []string `json:"needs,omitempty" bson:"needs,omitempty"`
	Notes            string   `json:"notes,omitempty" bson:"notes,omitempty"`
	PhotoURL         string   `json:"photoUrl,omitempty" bson:"photo_url,omitempty"`
}

func (p *Pet) Clone() *Pet {
	clone := *p
	clone.Needs = append([]string(nil), p.Needs...)
	return &clone
}
