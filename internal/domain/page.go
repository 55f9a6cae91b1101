package domain

// Page restricts a list query. A zero Limit returns every row.
type Page struct {
	Limit  int
	Offset int
}
