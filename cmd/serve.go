package cmd

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hagbad-hub/ayuuto-services/api/handlers"
	"github.com/hagbad-hub/ayuuto-services/api/middleware"
	"github.com/hagbad-hub/ayuuto-services/internal/events"
	"github.com/hagbad-hub/ayuuto-services/internal/notify"
	"github.com/hagbad-hub/ayuuto-services/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for handling API requests",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config, initialize the database and set up logging
		commonSetUp()
		defer ayuutoDB.Close()

		// Initialize event publisher
		publisher, err := events.NewEventPublisher(appCfg.Pulsar.URL, appCfg.Pulsar.TopicProducer)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize event publisher")
		}
		defer publisher.Close()

		service := &services.Service{
			Config:    appCfg,
			DB:        ayuutoDB,
			Publisher: publisher,
		}

		// Recipient announcement emails are optional
		if appCfg.Notifications.Enabled {
			sesClient, err := notify.NewSESClient(appCfg.AWS.Region)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to initialize SES client")
			}
			service.Announcer = &notify.Announcer{
				Client: sesClient,
				Sender: appCfg.Notifications.SenderEmail,
			}
		}

		// Create routes
		r := mux.NewRouter()

		// Register the routes
		api := r.PathPrefix(appCfg.BasePath).Subrouter()

		// Apply the middleware to the API routes
		api.Use(middleware.WithLogger)
		api.Use(middleware.WithMetrics)
		api.Use(middleware.JWTMiddleware)

		// Group routes
		api.HandleFunc("/groups", handlers.CreateGroup(service)).Methods(http.MethodPost)
		api.HandleFunc("/groups", handlers.ListGroups(service)).Methods(http.MethodGet)
		api.HandleFunc("/groups/{group-id}", handlers.GetGroup(service)).Methods(http.MethodGet)
		api.HandleFunc("/groups/{group-id}", handlers.UpdateGroup(service)).Methods(http.MethodPut)
		api.HandleFunc("/groups/{group-id}", handlers.ArchiveGroup(service)).Methods(http.MethodDelete)

		// Membership routes
		api.HandleFunc("/groups/{group-id}/members", handlers.ListMembers(service)).Methods(http.MethodGet)
		api.HandleFunc("/groups/{group-id}/members", handlers.AddMember(service)).Methods(http.MethodPost)
		api.HandleFunc("/groups/{group-id}/members/{member-id}", handlers.GetMember(service)).Methods(http.MethodGet)
		api.HandleFunc("/groups/{group-id}/members/{member-id}", handlers.UpdateMember(service)).Methods(http.MethodPut)
		api.HandleFunc("/groups/{group-id}/members/{member-id}", handlers.RemoveMember(service)).Methods(http.MethodDelete)

		// Cycle routes
		api.HandleFunc("/groups/{group-id}/cycles", handlers.ListCycles(service)).Methods(http.MethodGet)
		api.HandleFunc("/groups/{group-id}/cycles", handlers.OpenCycle(service)).Methods(http.MethodPost)
		api.HandleFunc("/groups/{group-id}/cycles/{cycle-id}", handlers.GetCycle(service)).Methods(http.MethodGet)
		api.HandleFunc("/groups/{group-id}/cycles/{cycle-id}", handlers.UpdateCycle(service)).Methods(http.MethodPut)

		// Contribution and verification routes
		api.HandleFunc("/groups/{group-id}/contributions", handlers.ListContributions(service)).Methods(http.MethodGet)
		api.HandleFunc("/groups/{group-id}/contributions", handlers.RecordContribution(service)).Methods(http.MethodPost)
		api.HandleFunc("/groups/{group-id}/contributions/{contribution-id}", handlers.GetContribution(service)).Methods(http.MethodGet)
		api.HandleFunc("/groups/{group-id}/contributions/{contribution-id}", handlers.UpdateContribution(service)).Methods(http.MethodPut)
		api.HandleFunc("/groups/{group-id}/contributions/{contribution-id}/verify", handlers.VerifyContribution(service)).Methods(http.MethodPost)

		// Operational endpoints, outside the authenticated subrouter
		r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
		r.HandleFunc("/healthz", handlers.Healthz(ayuutoDB)).Methods(http.MethodGet)

		log.Info().Msg(fmt.Sprintf("Server started at %s:%d", host, port))

		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", host, port),
			r); err != nil {

			log.Error().Err(err).Msg("could not start server")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on")
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to run the server on")
}
