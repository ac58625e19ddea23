package dto

// Structure structure de soins proposée dans le formulaire de filtres
type Structure struct {
	ID   string `json:"id_structure"`
	Name string `json:"nom_structure"`
}
