package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"barberia/internal/api"
	"barberia/internal/repository"
	"barberia/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	repo := repository.NewTurnoRepository(db)
	if err := repo.Migrate(); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	notifier := service.NewNotifyService()
	svc := service.NewTurnoService(repo, notifier)
	jobSvc := service.NewJobService(repo, notifier)

	turnoHandler := api.NewTurnoHandler(svc)

	r := mux.NewRouter()

	r.HandleFunc("/", turnoHandler.Root).Methods("GET")
	r.HandleFunc("/reservar", turnoHandler.Reservar).Methods("POST")
	r.HandleFunc("/verificar", turnoHandler.Verificar).Methods("GET")
	r.HandleFunc("/reservas-por-fecha", turnoHandler.ReservasPorFecha).Methods("GET")
	r.HandleFunc("/test", turnoHandler.Test).Methods("GET")

	c := cron.New()
	// Recordatorios de los turnos de mañana, todos los días a las 20:00.
	c.AddFunc("0 20 * * *", func() {
		if err := jobSvc.SendRecordatorios(); err != nil {
			log.Printf("Cron Job: error enviando recordatorios: %v", err)
		}
	})
	// Agenda del día por email, todos los días a las 08:30.
	c.AddFunc("30 8 * * *", func() {
		if err := jobSvc.SendAgendaDelDia(); err != nil {
			log.Printf("Cron Job: error enviando la agenda: %v", err)
		}
	})
	c.Start()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Servidor corriendo en el puerto %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
