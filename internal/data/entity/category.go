package entity

// Category is the type of a title ("Films", "Books", "Music"). A title
// belongs to at most one category.
type Category struct {
	BaseSimple
	Name string `db:"name"`
	Slug string `db:"slug"`
}
