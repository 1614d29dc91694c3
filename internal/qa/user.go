package qa

// User is a registered account. Password holds the bcrypt hash, never the
// plaintext.
type User struct {
	ID        int64
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Role      Role
}

// ReviewerProfile is a reviewer's public profile, keyed by username (1:1 with
// a user).
type ReviewerProfile struct {
	Username        string
	Bio             string
	Expertise       string
	YearsExperience int
	TotalReviews    int
	AverageRating   float64
}

// InviteCode is a single-use invitation token. Once used it never becomes
// valid again.
type InviteCode struct {
	Code string
	Used bool
}
