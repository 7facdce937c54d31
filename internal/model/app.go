package model

import "time"

type AppStatus string

const (
	AppStatusActive AppStatus = "active"
	AppStatusPaused AppStatus = "paused"
)

// Platform is the raw platform tag selected at registration. Apps store the
// display label, not the tag, so existing dashboards keep rendering as-is.
type Platform string

const (
	PlatformWeb       Platform = "web"
	PlatformAndroid   Platform = "android"
	PlatformIOS       Platform = "ios"
	PlatformDesktop   Platform = "desktop"
	PlatformExtension Platform = "extension"
	PlatformSaaS      Platform = "saas"
)

var platformLabels = map[Platform]string{
	PlatformWeb:       "Web App",
	PlatformAndroid:   "Android App",
	PlatformIOS:       "iOS App",
	PlatformDesktop:   "Desktop App",
	PlatformExtension: "Extension",
	PlatformSaaS:      "SaaS Platform",
}

// Label maps a platform tag to its display label. Unknown tags fall back
// to the web label, matching how new apps were labelled before the
// enumeration was fixed.
func (p Platform) Label() string {
	if label, ok := platformLabels[p]; ok {
		return label
	}
	return platformLabels[PlatformWeb]
}

func (p Platform) Valid() bool {
	_, ok := platformLabels[p]
	return ok
}

// App is a tenant-registered product. Its ID doubles as the public routing
// key on the shareable feedback link, so it must be unique across all
// tenants, not only within the owning tenant's partition.
type App struct {
	ID          string    `firestore:"id" json:"id"`
	Name        string    `firestore:"name" json:"name"`
	URL         string    `firestore:"url" json:"url"`
	Platform    string    `firestore:"platform" json:"platform"`
	IconBg      string    `firestore:"iconBg" json:"iconBg"`
	Status      AppStatus `firestore:"status" json:"status"`
	Description string    `firestore:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
}

// AppRoute is the global appId -> tenantId mapping written transactionally
// with the app document. It is what lets an anonymous submitter reach the
// right tenant without ever learning the tenant's identity.
type AppRoute struct {
	AppID     string    `firestore:"appId" json:"appId"`
	TenantID  string    `firestore:"tenantId" json:"tenantId"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
