package tzdata

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, db *Database, input string) {
	t.Helper()
	if err := Parse(strings.NewReader(input), db); err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
}

func wall(d time.Duration) TimeOfDay { return TimeOfDay(d) }

func TestParse_ExtendedExample(t *testing.T) {
	var input = strings.TrimSpace(`
# Rule  NAME  FROM  TO    -  IN   ON       AT    SAVE  LETTER/S
Rule    Swiss 1941  1942  -  May  Mon>=1   1:00  1:00  S
Rule    Swiss 1941  1942  -  Oct  Mon>=1   2:00  0     -
Rule    EU    1977  1980  -  Apr  Sun>=1   1:00u 1:00  S
Rule    EU    1977  only  -  Sep  lastSun  1:00u 0     -
Rule    EU    1978  only  -  Oct   1       1:00u 0     -
Rule    EU    1979  1995  -  Sep  lastSun  1:00u 0     -
Rule    EU    1981  max   -  Mar  lastSun  1:00u 1:00  S
Rule    EU    1996  max   -  Oct  lastSun  1:00u 0     -

# Zone  NAME           STDOFF      RULES  FORMAT  [UNTIL]
Zone    Europe/Zurich  0:34:08     -      LMT     1853 Jul 16
						0:29:45.50  -      BMT     1894 Jun
						1:00        Swiss  CE%sT   1981
						1:00        EU     CE%sT

Link    Europe/Zurich  Europe/Vaduz
`)

	db := NewDatabase()
	mustParse(t, db, input)

	wantSwiss := []RuleRecord{
		{Name: "Swiss", From: 1941, To: 1942, YearOffset: YearOffset{Month: time.May, Day: OnOrAfter{Weekday: time.Monday, Day: 1}, TimeOfDay: wall(1 * time.Hour)}, Save: 1 * time.Hour, Letter: "S"},
		{Name: "Swiss", From: 1941, To: 1942, YearOffset: YearOffset{Month: time.October, Day: OnOrAfter{Weekday: time.Monday, Day: 1}, TimeOfDay: wall(2 * time.Hour)}, Save: 0},
	}
	wantEU := []RuleRecord{
		{Name: "EU", From: 1977, To: 1980, YearOffset: YearOffset{Month: time.April, Day: OnOrAfter{Weekday: time.Sunday, Day: 1}, TimeOfDay: wall(1 * time.Hour), Mode: UTC}, Save: 1 * time.Hour, Letter: "S"},
		{Name: "EU", From: 1977, To: 1977, YearOffset: YearOffset{Month: time.September, Day: LastWeekday{Weekday: time.Sunday}, TimeOfDay: wall(1 * time.Hour), Mode: UTC}},
		{Name: "EU", From: 1978, To: 1978, YearOffset: YearOffset{Month: time.October, Day: ExactDay{Day: 1}, TimeOfDay: wall(1 * time.Hour), Mode: UTC}},
		{Name: "EU", From: 1979, To: 1995, YearOffset: YearOffset{Month: time.September, Day: LastWeekday{Weekday: time.Sunday}, TimeOfDay: wall(1 * time.Hour), Mode: UTC}},
		{Name: "EU", From: 1981, To: MaxYear, YearOffset: YearOffset{Month: time.March, Day: LastWeekday{Weekday: time.Sunday}, TimeOfDay: wall(1 * time.Hour), Mode: UTC}, Save: 1 * time.Hour, Letter: "S"},
		{Name: "EU", From: 1996, To: MaxYear, YearOffset: YearOffset{Month: time.October, Day: LastWeekday{Weekday: time.Sunday}, TimeOfDay: wall(1 * time.Hour), Mode: UTC}},
	}
	wantZurich := ZoneDefinition{
		Name: "Europe/Zurich",
		Segments: []ZoneSegment{
			{Offset: 34*time.Minute + 8*time.Second, Rules: NoRules{}, Format: "LMT", UntilYear: 1853, UntilYearOffset: YearOffset{Month: time.July, Day: ExactDay{Day: 16}}},
			{Offset: 29*time.Minute + 45*time.Second + 500*time.Millisecond, Rules: NoRules{}, Format: "BMT", UntilYear: 1894, UntilYearOffset: YearOffset{Month: time.June, Day: ExactDay{Day: 1}}},
			{Offset: 1 * time.Hour, Rules: NamedRules{Name: "Swiss"}, Format: "CE%sT", UntilYear: 1981, UntilYearOffset: StartOfYear},
			{Offset: 1 * time.Hour, Rules: NamedRules{Name: "EU"}, Format: "CE%sT", UntilYear: MaxYear, UntilYearOffset: StartOfYear},
		},
	}
	wantAliases := []Alias{{Target: "Europe/Zurich", Name: "Europe/Vaduz"}}

	if diff := cmp.Diff([]string{"Swiss", "EU"}, db.RuleSetNames()); diff != "" {
		t.Errorf("RuleSetNames() mismatch (-want +got):\n%s", diff)
	}
	gotSwiss, _ := db.RuleSet("Swiss")
	if diff := cmp.Diff(wantSwiss, gotSwiss); diff != "" {
		t.Errorf("RuleSet(Swiss) mismatch (-want +got):\n%s", diff)
	}
	gotEU, _ := db.RuleSet("EU")
	if diff := cmp.Diff(wantEU, gotEU); diff != "" {
		t.Errorf("RuleSet(EU) mismatch (-want +got):\n%s", diff)
	}
	gotZurich, ok := db.Zone("Europe/Zurich")
	if !ok {
		t.Fatal("Zone(Europe/Zurich) not found")
	}
	if diff := cmp.Diff(wantZurich, gotZurich); diff != "" {
		t.Errorf("Zone(Europe/Zurich) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantAliases, db.Aliases()); diff != "" {
		t.Errorf("Aliases() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_USRules(t *testing.T) {
	db := NewDatabase()
	mustParse(t, db, `# US rules
Rule  US 2007 max - Mar Sun>=8  2:00 1:00 D
Rule  US 2007 max - Nov Sun>=1  2:00 0:00 S
`)
	want := []RuleRecord{
		{Name: "US", From: 2007, To: MaxYear, YearOffset: YearOffset{Month: time.March, Day: OnOrAfter{Weekday: time.Sunday, Day: 8}, TimeOfDay: wall(2 * time.Hour)}, Save: 1 * time.Hour, Letter: "D"},
		{Name: "US", From: 2007, To: MaxYear, YearOffset: YearOffset{Month: time.November, Day: OnOrAfter{Weekday: time.Sunday, Day: 1}, TimeOfDay: wall(2 * time.Hour)}, Save: 0, Letter: "S"},
	}
	got, ok := db.RuleSet("US")
	if !ok {
		t.Fatal("RuleSet(US) not found")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RuleSet(US) mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_SingleSegmentZone(t *testing.T) {
	db := NewDatabase()
	mustParse(t, db, "# zones\nZone America/New_York -5:00 US E%sT\n")

	want := ZoneDefinition{
		Name: "America/New_York",
		Segments: []ZoneSegment{
			{Offset: -5 * time.Hour, Rules: NamedRules{Name: "US"}, Format: "E%sT", UntilYear: MaxYear, UntilYearOffset: StartOfYear},
		},
	}
	got, ok := db.Zone("America/New_York")
	if !ok {
		t.Fatal("Zone(America/New_York) not found")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Zone() mismatch (-want +got):\n%s", diff)
	}
	if got.Segments[0].Bounded() {
		t.Errorf("Segments[0].Bounded() = true, want false")
	}
}

func TestParse_LinkOrder(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"link after zone", "# x\nZone America/New_York -5:00 US E%sT\nLink America/New_York US/Eastern\n"},
		{"link before zone", "# x\nLink America/New_York US/Eastern\nZone America/New_York -5:00 US E%sT\n"},
		{"link without zone", "# x\nLink America/New_York US/Eastern\n"},
	}
	want := []Alias{{Target: "America/New_York", Name: "US/Eastern"}}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			db := NewDatabase()
			mustParse(t, db, c.input)
			if diff := cmp.Diff(want, db.Aliases()); diff != "" {
				t.Errorf("Aliases() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_FirstLineGate(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"record first", "Rule US 2007 max - Mar Sun>=8 2:00 1:00 D\n"},
		{"hash without space", "#comment\nRule US 2007 max - Mar Sun>=8 2:00 1:00 D\n"},
		{"blank first", "\n# comment\nZone Etc/UTC 0 - UTC\n"},
		{"garbage after", "not a tzdb file\nthis is not a record\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			db := NewDatabase()
			if err := Parse(strings.NewReader(c.input), db); err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if diff := cmp.Diff(Stats{}, db.Stats()); diff != "" {
				t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Continuation(t *testing.T) {
	input := `# tzdb data for tests
Zone America/Chicago -5:50:36 - LMT 1883 Nov 18 18:00u
			-6:00	US	C%sT	1920
			-6:00	Chicago	C%sT	1936 Mar  1  2:00
			-5:00	-	EST	1936 Nov 15  2:00
			-6:00	Chicago	C%sT	1942
			-6:00	US	C%sT	1946
			-6:00	Chicago	C%sT	1967
			-6:00	US	C%sT
Zone Etc/UTC 0 - UTC
`
	db := NewDatabase()
	mustParse(t, db, input)

	chicago, _ := db.Zone("America/Chicago")
	if got, want := len(chicago.Segments), 8; got != want {
		t.Fatalf("len(Segments) = %d, want %d", got, want)
	}
	var formats []string
	for _, s := range chicago.Segments {
		formats = append(formats, s.Format)
	}
	wantFormats := []string{"LMT", "C%sT", "C%sT", "EST", "C%sT", "C%sT", "C%sT", "C%sT"}
	if diff := cmp.Diff(wantFormats, formats); diff != "" {
		t.Errorf("segment formats mismatch (-want +got):\n%s", diff)
	}

	wantFirst := ZoneSegment{
		Offset:          -(5*time.Hour + 50*time.Minute + 36*time.Second),
		Rules:           NoRules{},
		Format:          "LMT",
		UntilYear:       1883,
		UntilYearOffset: YearOffset{Month: time.November, Day: ExactDay{Day: 18}, TimeOfDay: wall(18 * time.Hour), Mode: UTC},
	}
	if diff := cmp.Diff(wantFirst, chicago.Segments[0]); diff != "" {
		t.Errorf("Segments[0] mismatch (-want +got):\n%s", diff)
	}
	wantThird := YearOffset{Month: time.March, Day: ExactDay{Day: 1}, TimeOfDay: wall(2 * time.Hour)}
	if diff := cmp.Diff(wantThird, chicago.Segments[2].UntilYearOffset); diff != "" {
		t.Errorf("Segments[2].UntilYearOffset mismatch (-want +got):\n%s", diff)
	}

	utc, _ := db.Zone("Etc/UTC")
	if got := len(utc.Segments); got != 1 {
		t.Errorf("len(Etc/UTC Segments) = %d, want 1", got)
	}
}

// Rule and link lines inside a zone's continuation block do not end the block.
func TestParse_InterleavedContinuation(t *testing.T) {
	input := `# interleaved
Zone Europe/Dublin -0:25:21 - LMT 1880 Aug 2
Rule Eire 1971 only - Oct 31 2:00u -1:00 -
Link Europe/Dublin Eire
			-0:25:21 - DMT 1916 May 21 2:00s
			1:00 Eire IST/GMT
`
	db := NewDatabase()
	mustParse(t, db, input)

	dublin, _ := db.Zone("Europe/Dublin")
	if got, want := len(dublin.Segments), 3; got != want {
		t.Fatalf("len(Segments) = %d, want %d", got, want)
	}
	want := ZoneSegment{Offset: time.Hour, Rules: NamedRules{Name: "Eire"}, Format: "IST/GMT", UntilYear: MaxYear, UntilYearOffset: StartOfYear}
	if diff := cmp.Diff(want, dublin.Segments[2]); diff != "" {
		t.Errorf("Segments[2] mismatch (-want +got):\n%s", diff)
	}
	eire, _ := db.RuleSet("Eire")
	if got := eire[0].Save; got != -time.Hour {
		t.Errorf("Eire Save = %v, want -1h", got)
	}
}

func TestParse_Accumulates(t *testing.T) {
	db := NewDatabase()
	mustParse(t, db, "# northamerica\nRule US 2007 max - Mar Sun>=8 2:00 1:00 D\nZone America/New_York -5:00 US E%sT\n")
	// Not a source file; ignored even though the database is not empty.
	mustParse(t, db, "Rule US 2007 max - Nov Sun>=1 2:00 0 S\n")
	mustParse(t, db, "# backward\nLink America/New_York US/Eastern\nRule US 2007 max - Nov Sun>=1 2:00 0 S\n")

	want := Stats{RuleSets: 1, Rules: 2, Zones: 1, Segments: 1, Aliases: 1}
	if diff := cmp.Diff(want, db.Stats()); diff != "" {
		t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
	}
}

// A zone defined again in a later file replaces the earlier definition, and
// continuation lines extend the new one.
func TestParse_RepeatedZoneAcrossCalls(t *testing.T) {
	db := NewDatabase()
	mustParse(t, db, "# europe\nZone Europe/X 1:00 - CET 1990\n\t1:00 EU CE%sT\n")
	mustParse(t, db, "# europe, revised\nZone Europe/X 2:00 - EET\n")

	z, ok := db.Zone("Europe/X")
	if !ok {
		t.Fatal("Zone(Europe/X) not found")
	}
	want := []ZoneSegment{{Offset: 2 * time.Hour, Rules: NoRules{}, Format: "EET", UntilYear: MaxYear, UntilYearOffset: StartOfYear}}
	if diff := cmp.Diff(want, z.Segments); diff != "" {
		t.Errorf("Europe/X segments mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Europe/X"}, db.ZoneNames()); diff != "" {
		t.Errorf("ZoneNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		line  int
		want  error
	}{
		{"unknown keyword", "# x\nRules US 2007 max - Mar Sun>=8 2:00 1:00 D", 2, ErrUnexpectedKeyword},
		{"abbreviated keyword", "# x\nR US 2007 max - Mar Sun>=8 2:00 1:00 D", 2, ErrUnexpectedKeyword},
		{"rule missing SAVE", "# x\nRule US 2007 max - Mar Sun>=8 2:00", 2, ErrMissingToken},
		{"rule missing AT", "# x\nRule US 2007 max - Mar Sun>=8", 2, ErrMissingToken},
		{"rule inverted range", "# x\n\nRule US 2007 2006 - Mar Sun>=8 2:00 1:00 D", 3, ErrInvalidRange},
		{"rule max to number", "# x\nRule US max 2006 - Mar Sun>=8 2:00 1:00 D", 2, ErrInvalidRange},
		{"rule bad year", "# x\nRule US 20x7 max - Mar Sun>=8 2:00 1:00 D", 2, ErrInvalidNumber},
		{"rule bad month", "# x\nRule US 2007 max - mar Sun>=8 2:00 1:00 D", 2, ErrInvalidMonth},
		{"rule bad weekday", "# x\nRule US 2007 max - Mar Sunday>=8 2:00 1:00 D", 2, ErrInvalidWeekday},
		{"rule bad day", "# x\nRule US 2007 max - Mar Sun>=x 2:00 1:00 D", 2, ErrInvalidDaySelector},
		{"rule bad time", "# x\nRule US 2007 max - Mar Sun>=8 2:7 1:00 D", 2, ErrInvalidTime},
		{"rule bad save", "# x\nRule US 2007 max - Mar Sun>=8 2:00 1h D", 2, ErrInvalidOffset},
		{"rule trailing field", "# x\nRule US 2007 max - Mar Sun>=8 2:00 1:00 D X", 2, ErrUnexpectedToken},
		{"zone missing format", "# x\nZone America/New_York -5:00 US", 2, ErrMissingToken},
		{"zone missing name", "# x\nZone", 2, ErrMissingToken},
		{"zone bad offset", "# x\nZone America/New_York -5:0x US E%sT", 2, ErrInvalidOffset},
		{"zone bad until year", "# x\nZone America/New_York -5:00 US E%sT 19x0", 2, ErrInvalidNumber},
		{"zone bad until month", "# x\nZone America/New_York -5:00 US E%sT 1920 Foo", 2, ErrInvalidMonth},
		{"zone bad numeric rules", "# x\nZone America/New_York -5:00 1:x E%sT", 2, ErrInvalidOffset},
		{"rule day beyond month", "# x\nRule US 2007 max - Apr 31 2:00 1:00 D", 2, ErrInvalidDaySelector},
		{"continuation without zone", "# x\n\t-5:00 US E%sT", 2, ErrNoOpenZone},
		{"continuation missing rules", "# x\nZone A/B 0 - X 1900\n\t-5:00", 3, ErrMissingToken},
		{"link missing name", "# x\nLink America/New_York", 2, ErrMissingToken},
		{"link trailing field", "# x\nLink A B C", 2, ErrUnexpectedToken},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Parse(strings.NewReader(c.input), NewDatabase())
			if !errors.Is(err, c.want) {
				t.Fatalf("Parse() error = %v, want %v", err, c.want)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse() error %T is not a *ParseError", err)
			}
			if pe.Line != c.line {
				t.Errorf("ParseError.Line = %d, want %d", pe.Line, c.line)
			}
		})
	}
}

// Records of lines before a malformed line stay in the database.
func TestParse_ErrorKeepsEarlierRecords(t *testing.T) {
	db := NewDatabase()
	input := "# x\nLink A B\nLink C\nLink D E\n"
	if err := Parse(strings.NewReader(input), db); err == nil {
		t.Fatal("Parse() error = nil, want error")
	}
	if diff := cmp.Diff([]Alias{{Target: "A", Name: "B"}}, db.Aliases()); diff != "" {
		t.Errorf("Aliases() mismatch (-want +got):\n%s", diff)
	}
}

func TestStripComment(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"# comment", "", false},
		{"#", "", false},
		{"", "", false},
		{"   \t ", "", false},
		{"Rule US 1967 1973 - Apr lastSun 2:00 1:00 D # comment", "Rule US 1967 1973 - Apr lastSun 2:00 1:00 D", true},
		{"\t\t\t-5:00 US E%sT\t\r", "\t\t\t-5:00 US E%sT", true},
		{"Link A B#C", "Link A B", true},
	}
	for _, c := range cases {
		got, ok := stripComment(c.in)
		if got != c.want || ok != c.wantOK {
			t.Errorf("stripComment(%q) = %q, %v, want %q, %v", c.in, got, ok, c.want, c.wantOK)
		}
	}
}
