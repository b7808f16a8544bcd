package catalog

// Entry is one card in the atlas, derived per request from an upstream
// summary or taken from the fallback dataset.
type Entry struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Image          string   `json:"image"`
	Symptoms       []string `json:"symptoms"`
	Habitat        string   `json:"habitat"`
	Lifecycle      string   `json:"lifecycle"`
	ScientificName string   `json:"scientificName,omitempty"`
	Prevalence     string   `json:"prevalence,omitempty"`
}

const (
	CategoryProtozoa      = "Protozoa"
	CategoryNematode      = "Nematode"
	CategoryBacteria      = "Bacteria"
	CategoryVirus         = "Virus"
	CategoryFungus        = "Fungus"
	CategoryHelminth      = "Helminth"
	CategoryMicroorganism = "Microorganism"

	// CategoryAll is what clients send for "no filter".
	CategoryAll = "all"
)

// Categories lists the filterable categories in display order.
// Microorganism is only a classification fallback and is not listed.
func Categories() []string {
	return []string{
		CategoryProtozoa,
		CategoryNematode,
		CategoryBacteria,
		CategoryVirus,
		CategoryFungus,
		CategoryHelminth,
	}
}
