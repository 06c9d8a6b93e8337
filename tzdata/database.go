package tzdata

import "slices"

// Database accumulates the records of one or more source files.
// Records are appended without validation; nothing is merged or checked for
// references to other records. A zone line reusing a zone name replaces the
// earlier definition.
//
// The zero value is an empty database ready to use.
// A Database is not safe for concurrent use.
type Database struct {
	ruleSets  map[string][]RuleRecord
	ruleNames []string
	zones     map[string]*ZoneDefinition
	zoneNames []string
	aliases   []Alias

	// current is the most recently opened zone; continuation lines extend it.
	current *ZoneDefinition
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{}
}

// AddRule appends r to the rule set named r.Name, creating the set on first use.
func (db *Database) AddRule(r RuleRecord) {
	if db.ruleSets == nil {
		db.ruleSets = make(map[string][]RuleRecord)
	}
	if _, ok := db.ruleSets[r.Name]; !ok {
		db.ruleNames = append(db.ruleNames, r.Name)
	}
	db.ruleSets[r.Name] = append(db.ruleSets[r.Name], r)
}

// AddZone opens a new zone with first as its first segment.
// The zone becomes the target of subsequent continuation segments.
// A zone with the same name as an earlier one replaces it; the name keeps
// its original position in ZoneNames.
func (db *Database) AddZone(name string, first ZoneSegment) *ZoneDefinition {
	if db.zones == nil {
		db.zones = make(map[string]*ZoneDefinition)
	}
	if _, ok := db.zones[name]; !ok {
		db.zoneNames = append(db.zoneNames, name)
	}
	z := &ZoneDefinition{Name: name, Segments: []ZoneSegment{first}}
	db.zones[name] = z
	db.current = z
	return z
}

// AddSegment appends s to the most recently opened zone, no matter how many
// rules or aliases were added since.
func (db *Database) AddSegment(s ZoneSegment) error {
	if db.current == nil {
		return ErrNoOpenZone
	}
	db.current.Segments = append(db.current.Segments, s)
	return nil
}

// AddAlias appends a.
func (db *Database) AddAlias(a Alias) {
	db.aliases = append(db.aliases, a)
}

// RuleSet returns the rules named name in the order they were added.
func (db *Database) RuleSet(name string) ([]RuleRecord, bool) {
	rs, ok := db.ruleSets[name]
	return slices.Clone(rs), ok
}

// RuleSetNames returns the names of all rule sets in the order they were first seen.
func (db *Database) RuleSetNames() []string {
	return slices.Clone(db.ruleNames)
}

// Zone returns the zone with the given name.
func (db *Database) Zone(name string) (ZoneDefinition, bool) {
	z, ok := db.zones[name]
	if !ok {
		return ZoneDefinition{}, false
	}
	return ZoneDefinition{Name: z.Name, Segments: slices.Clone(z.Segments)}, true
}

// ZoneNames returns the names of all zones in the order they were opened.
func (db *Database) ZoneNames() []string {
	return slices.Clone(db.zoneNames)
}

// Aliases returns all aliases in the order they were added.
func (db *Database) Aliases() []Alias {
	return slices.Clone(db.aliases)
}

// Stats counts the records of a database.
type Stats struct {
	RuleSets int
	Rules    int
	Zones    int
	Segments int
	Aliases  int
}

// Stats returns the number of records in the database.
func (db *Database) Stats() Stats {
	s := Stats{
		RuleSets: len(db.ruleNames),
		Zones:    len(db.zoneNames),
		Aliases:  len(db.aliases),
	}
	for _, rs := range db.ruleSets {
		s.Rules += len(rs)
	}
	for _, z := range db.zones {
		s.Segments += len(z.Segments)
	}
	return s
}
