package domain

// Authority is a local authority that reports on its capital schemes.
type Authority struct {
	ID   uint
	Name string
}

// User is someone allowed to report for an authority.
type User struct {
	ID          uint
	Email       string
	AuthorityID uint
}
