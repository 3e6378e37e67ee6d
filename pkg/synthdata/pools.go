package synthdata

import "github.com/apiprobe/apiprobe/pkg/apicontext"

// Pools holds the fixed value pools the generator selects from. Pools are
// injected configuration, not embedded literals, so they can be swapped
// per locale or shrunk for tests. Treat a Pools value as immutable once
// passed to a Generator.
type Pools struct {
	FirstNames   []string `yaml:"first_names"`
	LastNames    []string `yaml:"last_names"`
	Companies    []string `yaml:"companies"`
	Products     []string `yaml:"products"`
	CompanyTypes []string `yaml:"company_types"`
	TLDs         []string `yaml:"tlds"`
	LinkedIn     []string `yaml:"linkedin_suffixes"`
	Passwords    []string `yaml:"passwords"`

	// Fillers replace long free-text strings, keyed by business domain
	// with "generic" as the fallback.
	Fillers map[string][]string `yaml:"fillers"`
}

// DefaultPools returns the built-in pools.
func DefaultPools() *Pools {
	return &Pools{
		FirstNames: []string{
			"Emma", "Liam", "Olivia", "Noah", "Ava", "Lucas", "Sophia",
			"Mason", "Isabella", "Ethan", "Mia", "Logan", "Charlotte",
			"James", "Amelia", "Benjamin", "Harper", "Elijah", "Evelyn",
			"Alexander",
		},
		LastNames: []string{
			"Martin", "Bernard", "Garcia", "Miller", "Robinson", "Clark",
			"Lewis", "Walker", "Hall", "Allen", "Young", "King", "Wright",
			"Scott", "Torres", "Nguyen", "Hill", "Flores", "Green", "Adams",
		},
		Companies: []string{
			"Novatech", "Apexium", "Brightcore", "Stellarix", "Quantara",
			"Veridian", "Luminor", "Cascadia", "Orbitron", "Helixware",
			"Suncrest", "Meridian", "Polaris", "Zenithal", "Corelink",
		},
		Products: []string{
			"Aurora Lamp", "Titan Drill", "Echo Speaker", "Vertex Chair",
			"Nimbus Backpack", "Pulse Tracker", "Atlas Desk", "Orion Lens",
			"Breeze Fan", "Summit Kettle", "Drift Mouse", "Spark Charger",
		},
		CompanyTypes: []string{
			"SARL", "SAS", "LLC", "Ltd", "GmbH", "Inc", "BV", "AG",
		},
		TLDs: []string{
			".com", ".io", ".net", ".org", ".co", ".dev",
		},
		LinkedIn: []string{
			"", "-hq", "-inc", "-official", "-group",
		},
		Passwords: []string{
			"Str0ng!Passw0rd", "S3cure#Phrase9", "V4lid$Secret7",
			"R0bust!Key2024", "C0mplex&Pass1",
		},
		Fillers: map[string][]string{
			string(apicontext.DomainProduct): {
				"Durable everyday product designed for regular use",
				"Compact model with improved finish and packaging",
				"Updated edition with revised specifications",
			},
			string(apicontext.DomainContent): {
				"Short introductory paragraph for the published page",
				"Draft body text pending editorial review",
			},
			string(apicontext.DomainCompany): {
				"Regional office handling standard operations",
				"Registered business entity with active status",
			},
			"generic": {
				"Representative sample text for automated testing",
				"Plain descriptive value with no special meaning",
				"Standard placeholder content for this field",
			},
		},
	}
}

// fillerFor returns the filler pool for domain, falling back to generic.
func (p *Pools) fillerFor(domain apicontext.Domain) []string {
	if f, ok := p.Fillers[string(domain)]; ok && len(f) > 0 {
		return f
	}
	return p.Fillers["generic"]
}
