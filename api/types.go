package api

// Person is a directory member as returned by the backend.
type Person struct {
	ID        int64    `json:"id"`
	Name      string   `json:"nome"`
	Age       int      `json:"idade"`
	City      string   `json:"cidade,omitempty"`
	Interests []string `json:"interesses,omitempty"`
}

// SimilarPerson is a person sharing interests with someone else.
type SimilarPerson struct {
	Person
	CommonInterests []string `json:"interesses_comuns"`
	Score           int      `json:"score_similaridade,omitempty"`
}

type InterestCount struct {
	Interest string `json:"interesse"`
	Count    int    `json:"quantidade"`
}

type CityCount struct {
	City  string `json:"cidade"`
	Count int    `json:"quantidade"`
}

// Stats are the aggregate numbers of the whole network.
type Stats struct {
	TotalPeople        int             `json:"total_pessoas"`
	TotalRelationships int             `json:"total_relacionamentos"`
	Density            float64         `json:"densidade_rede"`
	TopInterests       []InterestCount `json:"top_interesses"`
	TopCities          []CityCount     `json:"top_cidades,omitempty"`
}

// NewPerson is the body of a create request.
type NewPerson struct {
	Name      string   `json:"nome" validate:"required"`
	Age       int      `json:"idade" validate:"gte=0,lte=150"`
	City      string   `json:"cidade"`
	Interests []string `json:"interesses" validate:"dive,required"`
}

// Path is the shortest chain of acquaintances between two people.
type Path struct {
	Names   []string `json:"caminho"`
	Degrees int      `json:"graus_separacao"`
}
