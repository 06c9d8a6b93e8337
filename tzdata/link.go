package tzdata

// Alias represents a link line. Neither name is checked against the zones
// of the database.
type Alias struct {
	Target string // The TARGET field, usually a zone name.
	Name   string // The LINK-NAME field.
}

// parseLink parses the fields of a link line following the "Link" keyword.
//
// zic(8) says:
//
//	A link line has the form
//
//	     Link  TARGET           LINK-NAME
//
//	For example:
//
//	     Link  Europe/Istanbul  Asia/Istanbul
//
//	A link line can appear before the line that defines the link target.
func parseLink(t *tokens) (Alias, error) {
	var (
		a   Alias
		err error
	)
	if a.Target, err = t.next("TARGET"); err != nil {
		return a, err
	}
	if a.Name, err = t.next("LINK-NAME"); err != nil {
		return a, err
	}
	return a, t.done()
}
