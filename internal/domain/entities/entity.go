package entities

// EntityLabel classifies a named entity span
type EntityLabel string

// Known entity labels
const (
	EntityLabelPerson EntityLabel = "PERSON"
	EntityLabelOrg    EntityLabel = "ORG"
	EntityLabelLoc    EntityLabel = "LOC"
	EntityLabelMisc   EntityLabel = "MISC"
)

// Entity is a named span of transcript text with a confidence score
type Entity struct {
	Text       string      `json:"text"`
	Label      EntityLabel `json:"label"`
	Confidence float64     `json:"confidence"`
	Start      int         `json:"start"`
	End        int         `json:"end"`
}

// EntityGroups holds extracted entities grouped by label.
// All four groups are always present, possibly empty.
type EntityGroups struct {
	Person []Entity `json:"PERSON"`
	Org    []Entity `json:"ORG"`
	Loc    []Entity `json:"LOC"`
	Misc   []Entity `json:"MISC"`
}

// EmptyEntityGroups returns groups with all four slices initialized
func EmptyEntityGroups() EntityGroups {
	return EntityGroups{
		Person: []Entity{},
		Org:    []Entity{},
		Loc:    []Entity{},
		Misc:   []Entity{},
	}
}

// Add appends an entity to the group matching its label
func (g *EntityGroups) Add(e Entity) {
	switch e.Label {
	case EntityLabelPerson:
		g.Person = append(g.Person, e)
	case EntityLabelOrg:
		g.Org = append(g.Org, e)
	case EntityLabelLoc:
		g.Loc = append(g.Loc, e)
	case EntityLabelMisc:
		g.Misc = append(g.Misc, e)
	}
}

// Total returns the number of entities across all groups
func (g EntityGroups) Total() int {
	return len(g.Person) + len(g.Org) + len(g.Loc) + len(g.Misc)
}
