package tenant

const (
	// collection and document names
	usersNode   string = "users"
	profileNode string = "profile"
	profileDoc  string = "data"

	// Fields' name and path
	NameFieldPath      string = "name"
	EmailFieldPath     string = "email"
	UpdatedAtFieldPath string = "updatedAt"
)
