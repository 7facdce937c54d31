package app

const (
	// collection names
	usersNode string = "users"
	appsNode  string = "apps"

	// global appId -> tenantId routing table
	routesNode string = "appRoutes"

	// Fields' name and path
	IdFieldPath        string = "id"
	NameFieldPath      string = "name"
	PlatformFieldPath  string = "platform"
	StatusFieldPath    string = "status"
	CreatedAtFieldPath string = "createdAt"
)
