// Development helper that seeds a demo tenant and a registered app so the
// public intake endpoints have something to route to.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"time"

	"github.com/satyam682/TrustPlus/internal/config"
	"github.com/satyam682/TrustPlus/internal/database"
	"github.com/satyam682/TrustPlus/internal/model"
	appRepository "github.com/satyam682/TrustPlus/internal/repository/app"
	tenantRepository "github.com/satyam682/TrustPlus/internal/repository/tenant"

	firebase "firebase.google.com/go/v4"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

func main() {

	tenantID := flag.String("tenant", "demo-tenant", "tenant uid to seed under")
	appName := flag.String("app", "Demo Web App", "name of the seeded app")
	flag.Parse()

	_ = godotenv.Load()

	cnf := config.LoadConfigOrPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := createFirebaseAppOrPanic(ctx, cnf.Firebase)
	firestoreClient := createFirestoreClientOrPanic(ctx, app, cnf.Firebase)
	defer firestoreClient.Close()

	tenantRepo := tenantRepository.New(&firestoreClient)
	appRepo := appRepository.New(&firestoreClient)

	profile := model.TenantProfile{
		Name:      "Demo Tenant",
		Email:     "demo@trustplus.app",
		Company:   "TrustPlus",
		UpdatedAt: time.Now().UTC(),
	}
	if err := tenantRepo.SaveProfile(ctx, *tenantID, profile); err != nil {
		panic(err)
	}

	appID := "app_" + uuid.NewString()
	demoApp := model.App{
		ID:        appID,
		Name:      *appName,
		URL:       "https://demo.trustplus.app",
		Platform:  string(model.PlatformWeb),
		IconBg:    "bg-blue-500",
		Status:    model.AppStatusActive,
		CreatedAt: time.Now().UTC(),
	}
	if err := appRepo.Create(ctx, *tenantID, demoApp); err != nil {
		panic(err)
	}

	fmt.Println("Seeded tenant:", *tenantID)
	fmt.Println("Seeded app id:", appID)
}

func createFirebaseAppOrPanic(ctx context.Context, cnf config.Firebase) *firebase.App {
	firebaseCreds, err := json.Marshal(cnf)
	if err != nil {
		panic(err)
	}

	sa := option.WithCredentialsJSON(firebaseCreds)
	app, err := firebase.NewApp(ctx, nil, sa)
	if err != nil {
		panic(err)
	}
	return app
}

func createFirestoreClientOrPanic(ctx context.Context, app *firebase.App, cnf config.Firebase) database.FirestoreClient {
	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		panic(err)
	}
	return database.New(firestoreClient, cnf.WriteTimeoutSecond)
}
