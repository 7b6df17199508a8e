package entity

// Genre of a title. A title may carry several genres.
type Genre struct {
	BaseSimple
	Name string `db:"name"`
	Slug string `db:"slug"`
}
