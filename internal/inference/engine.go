// Package inference derives structured listing attributes from free text.
// All rules are pure functions over their inputs: ordered keyword tables
// for categorical fields, vocabulary scans for skills, digit-group parsing
// for salary. The tables and vocabularies are data so they can be extended
// without new code paths.
package inference

import (
	"strings"

	"JobScanner/internal/domain"
)

// rule pairs a keyword set with the category it selects. Rules are
// evaluated in order; the first whose keywords match wins.
type rule[T ~string] struct {
	keywords []string
	category T
}

var experienceRules = []rule[domain.ExperienceLevel]{
	{[]string{"senior", "lead", "principal", "head", "director", "manager"}, domain.ExperienceSenior},
	{[]string{"junior", "entry", "graduate", "trainee", "intern"}, domain.ExperienceEntry},
	{[]string{"executive", "ceo", "cto", "cfo", "vp", "vice president"}, domain.ExperienceExecutive},
}

var remoteRules = []rule[domain.RemoteType]{
	{[]string{"remote", "work from home", "wfh"}, domain.RemoteFull},
	{[]string{"hybrid", "flexible"}, domain.RemoteHybrid},
}

var employmentRules = []rule[domain.EmploymentType]{
	{[]string{"full time", "full-time", "permanent"}, domain.EmploymentFullTime},
	{[]string{"part time", "part-time"}, domain.EmploymentPartTime},
	{[]string{"contract", "contractor"}, domain.EmploymentContract},
	{[]string{"intern", "internship"}, domain.EmploymentInternship},
}

func firstMatch[T ~string](text string, rules []rule[T], fallback T) T {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.category
			}
		}
	}
	return fallback
}

// Engine holds the overridable vocabularies. The zero value infers
// categorical fields but finds no skills or counties.
type Engine struct {
	skills   []string
	counties []string
}

// NewEngine builds an inference engine over the given vocabularies.
func NewEngine(skills, counties []string) *Engine {
	return &Engine{skills: skills, counties: counties}
}

// Enrich derives every inferable attribute of the raw listing.
func (e *Engine) Enrich(raw domain.RawListing) domain.EnrichedListing {
	text := strings.ToLower(raw.Title + " " + raw.Description)
	min, max := ParseSalary(raw.SalaryRaw)

	return domain.EnrichedListing{
		RawListing:      raw,
		ExperienceLevel: InferExperienceLevel(raw.Title, raw.Description),
		RemoteType:      InferRemoteType(raw.Title, raw.Description),
		EmploymentType:  InferEmploymentType(raw.Title, raw.Description),
		Skills:          e.ExtractSkills(text),
		SalaryMin:       min,
		SalaryMax:       max,
	}
}

// InferExperienceLevel classifies seniority; the default is mid.
func InferExperienceLevel(title, description string) domain.ExperienceLevel {
	text := strings.ToLower(title + " " + description)
	return firstMatch(text, experienceRules, domain.ExperienceMid)
}

// InferRemoteType classifies the working arrangement; the default is on-site.
func InferRemoteType(title, description string) domain.RemoteType {
	text := strings.ToLower(title + " " + description)
	return firstMatch(text, remoteRules, domain.RemoteOnSite)
}

// InferEmploymentType classifies the contract form; the default is full-time.
func InferEmploymentType(title, description string) domain.EmploymentType {
	text := strings.ToLower(title + " " + description)
	return firstMatch(text, employmentRules, domain.EmploymentFullTime)
}

// ExtractSkills scans lowercased text against the skill vocabulary. Every
// term found contributes one title-cased entry; the result is deduplicated
// and keeps vocabulary order.
func (e *Engine) ExtractSkills(loweredText string) []string {
	var found []string
	seen := map[string]struct{}{}
	for _, skill := range e.skills {
		if !strings.Contains(loweredText, strings.ToLower(skill)) {
			continue
		}
		entry := titleCase(skill)
		if _, dup := seen[entry]; dup {
			continue
		}
		seen[entry] = struct{}{}
		found = append(found, entry)
	}
	return found
}

// ExtractCounty matches the location text against the known geographic
// names, first match wins; no match yields the empty string.
func (e *Engine) ExtractCounty(location string) string {
	lowered := strings.ToLower(location)
	for _, county := range e.counties {
		if strings.Contains(lowered, strings.ToLower(county)) {
			return county
		}
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
