package catalog

import "strings"

// fallbackEntries is served when the upstream search is unreachable.
var fallbackEntries = []Entry{
	{
		ID:             "toxoplasma-gondii",
		Name:           "Toxoplasma gondii",
		Category:       CategoryProtozoa,
		Description:    "A parasitic protozoan that causes toxoplasmosis, one of the most common parasitic infections in humans.",
		Image:          "https://upload.wikimedia.org/wikipedia/commons/thumb/8/8a/Toxoplasma_gondii_tachyzoites.jpg/300px-Toxoplasma_gondii_tachyzoites.jpg",
		Symptoms:       []string{"Fever", "Muscle aches", "Swollen lymph nodes"},
		Habitat:        "Found worldwide, particularly in warm climates",
		Lifecycle:      "Complex lifecycle involving cats as definitive hosts",
		ScientificName: "Toxoplasma gondii",
		Prevalence:     "Common",
	},
	{
		ID:             "plasmodium-falciparum",
		Name:           "Plasmodium falciparum",
		Category:       CategoryProtozoa,
		Description:    "The deadliest species of malaria parasite, responsible for the most severe form of malaria.",
		Image:          "https://upload.wikimedia.org/wikipedia/commons/thumb/4/4a/Plasmodium_falciparum_01.png/300px-Plasmodium_falciparum_01.png",
		Symptoms:       []string{"High fever", "Chills", "Sweating", "Headache", "Nausea"},
		Habitat:        "Tropical and subtropical regions",
		Lifecycle:      "Transmitted by Anopheles mosquitoes",
		ScientificName: "Plasmodium falciparum",
		Prevalence:     "Endemic",
	},
	{
		ID:             "ascaris-lumbricoides",
		Name:           "Ascaris lumbricoides",
		Category:       CategoryNematode,
		Description:    "The giant roundworm, one of the most common human parasites worldwide.",
		Image:          "https://upload.wikimedia.org/wikipedia/commons/thumb/1/1a/Ascaris_lumbricoides.jpg/300px-Ascaris_lumbricoides.jpg",
		Symptoms:       []string{"Abdominal pain", "Nausea", "Vomiting", "Diarrhea"},
		Habitat:        "Found worldwide, especially in areas with poor sanitation",
		Lifecycle:      "Direct life cycle, eggs ingested from contaminated soil",
		ScientificName: "Ascaris lumbricoides",
		Prevalence:     "Common",
	},
	{
		ID:             "escherichia-coli-o157h7",
		Name:           "Escherichia coli O157:H7",
		Category:       CategoryBacteria,
		Description:    "A pathogenic strain of E. coli that can cause severe foodborne illness.",
		Image:          "https://upload.wikimedia.org/wikipedia/commons/thumb/5/56/Ecoli_colonies.png/300px-Ecoli_colonies.png",
		Symptoms:       []string{"Severe diarrhea", "Abdominal cramps", "Vomiting", "Fever"},
		Habitat:        "Intestines of cattle and other ruminants",
		Lifecycle:      "Reproduces rapidly in contaminated food and water",
		ScientificName: "Escherichia coli O157:H7",
		Prevalence:     "Common",
	},
}

// Fallback filters the built-in dataset by a case-insensitive substring of
// name or description and by exact category. Empty query and empty
// category match everything.
func Fallback(query, category string) []Entry {
	q := strings.ToLower(query)

	out := make([]Entry, 0, len(fallbackEntries))
	for _, e := range fallbackEntries {
		if q != "" &&
			!strings.Contains(strings.ToLower(e.Name), q) &&
			!strings.Contains(strings.ToLower(e.Description), q) {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		out = append(out, cloneEntry(e))
	}
	return out
}

func cloneEntry(e Entry) Entry {
	e.Symptoms = append([]string(nil), e.Symptoms...)
	return e
}
