package catalog

import "strings"

// rule maps any of its keywords, found as a substring, to value. Rule lists
// are evaluated in order and the first hit wins, so earlier rules shadow
// later ones.
type rule struct {
	keywords []string
	value    string
}

func firstMatch(rules []rule, text string) (string, bool) {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.value, true
			}
		}
	}
	return "", false
}

var categoryRules = []rule{
	{[]string{"bacteria", "bacterial"}, CategoryBacteria},
	{[]string{"virus", "viral"}, CategoryVirus},
	{[]string{"protozoa", "protozoan"}, CategoryProtozoa},
	{[]string{"nematode", "roundworm"}, CategoryNematode},
	{[]string{"fungus", "fungal"}, CategoryFungus},
	{[]string{"helminth", "tapeworm", "fluke"}, CategoryHelminth},
}

var symptomKeywords = []string{
	"fever", "diarrhea", "nausea", "vomiting", "abdominal pain", "headache",
	"muscle aches", "fatigue", "rash", "swelling", "inflammation", "cough",
	"difficulty breathing", "chills", "sweating", "weight loss", "anemia",
}

const maxSymptoms = 5

var habitatKeywords = []string{
	"tropical", "subtropical", "temperate", "worldwide", "developing countries",
	"poor sanitation", "contaminated water", "soil", "food", "animals",
}

const defaultHabitat = "Distribution varies by species"

var lifecycleRules = []rule{
	{[]string{"mosquito"}, "Transmitted by mosquitoes"},
	{[]string{"contaminated"}, "Transmitted through contaminated sources"},
	{[]string{"direct"}, "Direct life cycle"},
	{[]string{"complex"}, "Complex life cycle"},
}

const defaultLifecycle = "Life cycle varies by species"

var prevalenceRules = []rule{
	{[]string{"common"}, "Common"},
	{[]string{"rare"}, "Rare"},
	{[]string{"endemic"}, "Endemic"},
}

const defaultPrevalence = "Variable"

// Categorize buckets an article by its extract and title.
func Categorize(extract, title string) string {
	text := strings.ToLower(extract + " " + title)
	if c, ok := firstMatch(categoryRules, text); ok {
		return c
	}
	return CategoryMicroorganism
}

// Symptoms returns the symptom keywords present in extract, in keyword
// list order, at most five.
func Symptoms(extract string) []string {
	text := strings.ToLower(extract)

	out := make([]string, 0, maxSymptoms)
	for _, s := range symptomKeywords {
		if len(out) == maxSymptoms {
			break
		}
		if strings.Contains(text, s) {
			out = append(out, s)
		}
	}
	return out
}

func Habitat(extract string) string {
	text := strings.ToLower(extract)
	for _, kw := range habitatKeywords {
		if strings.Contains(text, kw) {
			return "Found in " + kw + " regions"
		}
	}
	return defaultHabitat
}

func Lifecycle(extract string) string {
	if v, ok := firstMatch(lifecycleRules, strings.ToLower(extract)); ok {
		return v
	}
	return defaultLifecycle
}

func Prevalence(extract string) string {
	if v, ok := firstMatch(prevalenceRules, strings.ToLower(extract)); ok {
		return v
	}
	return defaultPrevalence
}
