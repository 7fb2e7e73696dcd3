package entity

// MediaType is an opaque lookup record, CRUD only.
type MediaType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
