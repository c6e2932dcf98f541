package handler

import (
	"net/http"

	"contract-analyzer/internal/domain"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	analysisHandler *AnalysisHandler,
	chatHandler *ChatHandler,
	lawHandler *LawHandler,
	logger domain.Logger,
) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"contract-analyzer"}`))
	}).Methods("GET")

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(LoggingMiddleware(logger))

	// Reference data
	api.HandleFunc("/laws", lawHandler.GetLaws).Methods("GET")
	api.HandleFunc("/topics", lawHandler.GetTopics).Methods("GET")
	api.HandleFunc("/alternatives/{category}", lawHandler.GetAlternatives).Methods("GET")

	// Contract analysis
	api.HandleFunc("/contract/analyze", analysisHandler.AnalyzeContract).Methods("POST")
	api.HandleFunc("/contract/{id}", analysisHandler.GetAnalysis).Methods("GET")
	api.HandleFunc("/contract/{id}/download", analysisHandler.DownloadReport).Methods("GET")
	api.HandleFunc("/contract/{id}/chat", chatHandler.ContractChat).Methods("POST")
	api.HandleFunc("/contract/{id}/chat/history", chatHandler.GetContractChatHistory).Methods("GET")

	// Assistant chat
	api.HandleFunc("/chat", chatHandler.Chat).Methods("POST")
	api.HandleFunc("/chat/history", chatHandler.GetHistory).Methods("GET")
	api.HandleFunc("/chat/{sessionId}/messages", chatHandler.GetSessionMessages).Methods("GET")
	api.HandleFunc("/chat/{sessionId}/rename", chatHandler.RenameSession).Methods("PUT")
	api.HandleFunc("/chat/{sessionId}", chatHandler.DeleteSession).Methods("DELETE")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:3000",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		AllowCredentials: true,
		MaxAge:           300,
	})

	return c.Handler(router)
}
