package service

import (
	"fmt"
	"log"
	"time"

	"barberia/internal/repository"
	"barberia/internal/schedule"
)

type JobService struct {
	Repo     *repository.TurnoRepository
	Notifier *NotifyService
}

func NewJobService(repo *repository.TurnoRepository, notifier *NotifyService) *JobService {
	return &JobService{Repo: repo, Notifier: notifier}
}

// SendRecordatorios busca los turnos de mañana y envía un SMS por cada uno.
func (s *JobService) SendRecordatorios() error {
	fecha := time.Now().AddDate(0, 0, 1).Format(schedule.FechaLayout)
	log.Printf("Cron Job: buscando turnos del %s para recordar...", fecha)

	turnos, err := s.Repo.TurnosByFecha(fecha)
	if err != nil {
		return fmt.Errorf("cron job: failed to get turnos for %s: %w", fecha, err)
	}
	if len(turnos) == 0 {
		log.Printf("Cron Job: no hay turnos para el %s.", fecha)
		return nil
	}

	var failed int
	for _, t := range turnos {
		if err := s.Notifier.SendRecordatorioSMS(t); err != nil {
			failed++
		}
	}
	log.Printf("Cron Job: %d recordatorios enviados, %d fallidos.", len(turnos)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("cron job: %d of %d reminders failed", failed, len(turnos))
	}
	return nil
}

// SendAgendaDelDia envía por email la agenda de turnos de hoy.
func (s *JobService) SendAgendaDelDia() error {
	fecha := time.Now().Format(schedule.FechaLayout)
	log.Printf("Cron Job: armando la agenda del %s...", fecha)

	turnos, err := s.Repo.TurnosByFecha(fecha)
	if err != nil {
		return fmt.Errorf("cron job: failed to get turnos for %s: %w", fecha, err)
	}
	return s.Notifier.SendAgendaEmail(fecha, turnos)
}
