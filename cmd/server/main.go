package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/satyam682/TrustPlus/internal/config"
	"github.com/satyam682/TrustPlus/internal/database"
	flaggedPublisher "github.com/satyam682/TrustPlus/internal/eventpublisher/flagged"
	dashboardHandler "github.com/satyam682/TrustPlus/internal/handler/dashboard"
	flaggedAlertHandler "github.com/satyam682/TrustPlus/internal/handler/flaggedalert"
	insightsHandler "github.com/satyam682/TrustPlus/internal/handler/insights"
	publicHandler "github.com/satyam682/TrustPlus/internal/handler/public"
	customMiddleware "github.com/satyam682/TrustPlus/internal/middleware"
	"github.com/satyam682/TrustPlus/internal/moderation/classifier"
	"github.com/satyam682/TrustPlus/internal/notifier"
	"github.com/satyam682/TrustPlus/internal/pipeline"
	appRepository "github.com/satyam682/TrustPlus/internal/repository/app"
	feedbackRepository "github.com/satyam682/TrustPlus/internal/repository/feedback"
	routeRepository "github.com/satyam682/TrustPlus/internal/repository/route"
	tenantRepository "github.com/satyam682/TrustPlus/internal/repository/tenant"
	"github.com/satyam682/TrustPlus/internal/routing"
	"github.com/satyam682/TrustPlus/internal/utils"

	gpt "github.com/satyam682/TrustPlus/internal/gpt"
	gptutils "github.com/satyam682/TrustPlus/internal/gpt/utils"

	firebase "firebase.google.com/go/v4"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

func main() {

	_ = godotenv.Load()

	cnf := config.LoadConfigOrPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	defer close(sigs)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	app := createFirebaseAppOrPanic(ctx, cnf.Firebase)
	firestoreClient := createFirestoreClientOrPanic(ctx, app, cnf.Firebase)
	defer firestoreClient.Close()

	authClient, err := app.Auth(ctx)
	if err != nil {
		panic(err)
	}

	tokenizer, err := gptutils.NewTokenzier()
	if err != nil {
		panic(err)
	}

	gptFactory, err := gpt.NewClientFactory(gpt.ClientConfig{
		ApiUrl:      cnf.Classifier.ApiUrl,
		ApiKey:      cnf.Classifier.ApiKey,
		Model:       cnf.Classifier.Model,
		Temperature: utils.Float32ToPointer(0.3),
	})

	if err != nil {
		panic(err)
	}

	tenantRepo := tenantRepository.New(&firestoreClient)
	appRepo := appRepository.New(&firestoreClient)
	routeRepo := routeRepository.New(&firestoreClient)
	feedbackRepo := feedbackRepository.New(&firestoreClient)

	resolver := routing.New(routeRepo, tenantRepo, appRepo)

	policy := classifier.FailOpen
	if cnf.Classifier.FailClosed {
		policy = classifier.FailClosed
	}
	detector := classifier.New(gptFactory, tokenizer,
		classifier.WithPolicy(policy),
		classifier.WithCallTimeout(cnf.Classifier.CallTimeoutSeconds))

	pipe := pipeline.New(resolver, feedbackRepo, detector)

	var alertNotifier notifier.Notifier = notifier.NewMockNotifier()
	if cnf.Resend.ApiKey != "" {
		alertNotifier = notifier.NewEmailNotifier(cnf.Resend.ApiKey, cnf.Resend.FromEmail)
	}

	publisher := flaggedPublisher.NewPublisher(feedbackRepo)
	alerts := flaggedAlertHandler.New(publisher, tenantRepo, alertNotifier)

	pub := publicHandler.New(resolver, pipe)
	dash := dashboardHandler.New(appRepo, feedbackRepo, insightsHandler.New(gptFactory))

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"trustplus"}`))
	})

	r.Route("/public", pub.Routes)
	r.Route("/api", func(r chi.Router) {
		r.Use(customMiddleware.FirebaseAuth(authClient))
		dash.Routes(r)
	})

	srv := &http.Server{Addr: ":" + cnf.Server.Port, Handler: r}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return publisher.Start(gctx)
	})
	group.Go(func() error {
		return alerts.EventHandler(gctx)
	})
	group.Go(func() error {
		log.Info().Msgf("trustplus server listening on port %s", cnf.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second*5)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	select {
	case <-sigs:
		// Received a termination signal, continue to shutdown
	case <-gctx.Done():
		// errgroup encountered an error, continue to shutdown
	}

	cancel() // cancel the root context to signal all the consumers

	select {
	case <-time.After(time.Second * 5):
		// Give enough time to close all the pending resources
	case <-sigs:
		// Forcefully terminate the app with a signal
	}

	os.Exit(1)
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
