package route

const (
	// collection name
	routesNode string = "appRoutes"

	// Fields' name and path
	AppIdFieldPath     string = "appId"
	TenantIdFieldPath  string = "tenantId"
	CreatedAtFieldPath string = "createdAt"
)
