package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harshithareddy888/HackConnect/handlers"
	"github.com/harshithareddy888/HackConnect/logging"
	"github.com/harshithareddy888/HackConnect/middleware"
	"github.com/harshithareddy888/HackConnect/services"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ensureIndexes creates the unique indexes the invariants rely on:
// one account per email, one team per name, at most one team per user,
// one interaction per (user, target) pair, one match per pair.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	users := db.Collection("users")
	teams := db.Collection("teams")
	interactions := db.Collection("interactions")
	matches := db.Collection("matches")

	indexes := []struct {
		coll  *mongo.Collection
		model mongo.IndexModel
	}{
		{users, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{teams, mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{teams, mongo.IndexModel{
			Keys: bson.D{{Key: "members.user", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"members.0": bson.M{"$exists": true}}),
		}},
		{interactions, mongo.IndexModel{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "targetUser", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{matches, mongo.IndexModel{
			Keys:    bson.D{{Key: "users", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
	}

	for _, idx := range indexes {
		if _, err := idx.coll.Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("failed to create index on %s: %v", idx.coll.Name(), err)
		}
	}
	return nil
}

func main() {
	godotenv.Load()

	logging.InitLogger(getenv("LOG_DIR", ""))

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logging.Logger.Fatal("JWT_SECRET is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(getenv("MONGO_URI", "mongodb://localhost:27017")))
	if err != nil {
		logging.Logger.Fatalf("Database connection failed: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("MongoDB connection error: %v", err)
	}
	fmt.Println("Connected to MongoDB!")

	db := client.Database(getenv("MONGO_DB", "hackconnect"))
	if err := ensureIndexes(ctx, db); err != nil {
		logging.Logger.Fatalf("%v", err)
	}

	blackList := map[string]bool{}
	if path := os.Getenv("BLACKLIST_FILE"); path != "" {
		blackList, err = services.LoadBlackList(path)
		if err != nil {
			logging.Logger.Fatalf("Failed to load password blacklist: %v", err)
		}
	}

	usersColl := db.Collection("users")
	teamsColl := db.Collection("teams")
	tasksColl := db.Collection("tasks")
	interactionsColl := db.Collection("interactions")
	matchesColl := db.Collection("matches")

	tokenService := services.NewTokenService(jwtSecret)
	userService := services.NewUserService(usersColl, tokenService, blackList)
	matchService := services.NewMatchService(interactionsColl, matchesColl, usersColl)
	teamService := services.NewTeamService(teamsColl, usersColl, tasksColl)
	taskService := services.NewTaskService(tasksColl, teamsColl)

	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	matchHandler := handlers.NewMatchHandler(matchService)
	teamHandler := handlers.NewTeamHandler(teamService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "HackConnect API is running..."})
	}).Methods("GET")

	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")
	auth.HandleFunc("/refresh", authHandler.Refresh).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.JWTAuth(tokenService))

	api.HandleFunc("/users/me", userHandler.GetMe).Methods("GET")
	api.HandleFunc("/users/me", userHandler.UpdateMe).Methods("PUT")
	api.HandleFunc("/users", userHandler.ListUsers).Methods("GET")
	api.HandleFunc("/users/{id}", userHandler.GetUser).Methods("GET")

	api.HandleFunc("/match/suggestions", matchHandler.GetSuggestions).Methods("GET")
	api.HandleFunc("/match/matches", matchHandler.GetMatches).Methods("GET")
	api.HandleFunc("/match/{targetId}", matchHandler.Interact).Methods("POST")

	api.HandleFunc("/teams", teamHandler.CreateTeam).Methods("POST")
	api.HandleFunc("/teams", teamHandler.ListTeams).Methods("GET")
	api.HandleFunc("/teams/{id}", teamHandler.GetTeam).Methods("GET")
	api.HandleFunc("/teams/{id}", teamHandler.UpdateTeam).Methods("PUT")
	api.HandleFunc("/teams/{teamId}/invite/{userId}", teamHandler.Invite).Methods("POST")
	api.HandleFunc("/teams/{teamId}/respond", teamHandler.RespondToInvite).Methods("POST")
	api.HandleFunc("/teams/{teamId}/members/{userId}", teamHandler.RemoveMember).Methods("DELETE")
	api.HandleFunc("/teams/{teamId}/leave", teamHandler.Leave).Methods("POST")

	api.HandleFunc("/tasks", taskHandler.CreateTask).Methods("POST")
	api.HandleFunc("/tasks/team/{teamId}", taskHandler.GetTeamTasks).Methods("GET")
	api.HandleFunc("/tasks/{id}", taskHandler.GetTask).Methods("GET")
	api.HandleFunc("/tasks/{id}", taskHandler.UpdateTask).Methods("PUT")
	api.HandleFunc("/tasks/{id}", taskHandler.DeleteTask).Methods("DELETE")
	api.HandleFunc("/tasks/{id}/assign", taskHandler.AssignTask).Methods("POST")
	api.HandleFunc("/tasks/{taskId}/assign/{userId}", taskHandler.RemoveAssignee).Methods("DELETE")
	api.HandleFunc("/tasks/{id}/comments", taskHandler.AddComment).Methods("POST")

	port := getenv("PORT", "5000")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      enableCORS(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	fmt.Printf("Server is running on port %s\n", port)
	logging.Logger.Fatal(srv.ListenAndServe())
}

// CORS Middleware
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
