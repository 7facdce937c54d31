package model

import "time"

// Tenant is an app-owner account. The document id is the Firebase Auth uid;
// profile data lives in a subdocument so that per-tenant collections (apps,
// feedback, flaggedFeedback) can hang off the same partition.
type Tenant struct {
	ID      string        `firestore:"-" json:"id"`
	Profile TenantProfile `firestore:"-" json:"profile"`
}

type TenantProfile struct {
	Name      string    `firestore:"name" json:"name"`
	Email     string    `firestore:"email" json:"email"`
	Company   string    `firestore:"company,omitempty" json:"company,omitempty"`
	JobTitle  string    `firestore:"jobTitle,omitempty" json:"jobTitle,omitempty"`
	PhotoURL  string    `firestore:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
