package options

// CategoryEnum selects which lenient conversions a cast may apply.
type CategoryEnum int

const (
	CategoryTextNumber  CategoryEnum = 1 << iota // string -> integer, float: textual number representation
	CategoryNumericBool                          // integer -> boolean: 0, 1 representation of boolean values
	CategoryTextualBool                          // string -> boolean: yes, no, y, n, t, f, true, false, 1, 0
	CategoryDatetime                             // string(RFC3339Nano) <-> time.Time, string(2006-01-02) <-> date
	CategoryDuration                             // string(2h45m) <-> time.Duration
	CategoryStringer                             // fmt.Stringer (paths, urls, named ids) -> string
	CategoryNumberText                           // integer, float, boolean -> string

	CategoryAll  = (1 << iota) - 1 //all categories combined
	CategoryNone = 0               // no categories selected

	// CategoryDefault is what attribute casts use: everything except numeric
	// booleans, so integers never silently become booleans.
	CategoryDefault = CategoryAll &^ CategoryNumericBool
)

// Has reports whether every category in other is enabled in c.
func (c CategoryEnum) Has(other CategoryEnum) bool {
	return c&other == other
}
