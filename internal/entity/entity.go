package entity

// Entity is anything persistable to the search index under a stable slug.
type Entity interface {
	Slug() string
}
