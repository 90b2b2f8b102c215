package owners

// Owner is the only authenticating principal. Email is stored
// lowercase+trimmed; PasswordHash is opaque (bcrypt).
type Owner struct {
	ID           int64
	Name         string
	Email        string
	PhoneNumber  string
	PasswordHash string
}
